package dispatch_reminders

import (
	"context"
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/integrations/whatsapp"
)

// QuoteRepository интерфейс репозитория смет
type QuoteRepository interface {
	ListActive(ctx context.Context) ([]*domain.FinalQuote, error)
	Update(ctx context.Context, quote *domain.FinalQuote) error
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	EvaluateDue(quote *domain.FinalQuote, now time.Time) (domain.ReminderKind, bool)
	MarkSent(record *domain.ReminderRecord, now time.Time, messageID, deliveryStatus *string)
	MarkFailed(record *domain.ReminderRecord, sendErr error)
}

// Notifier интерфейс WhatsApp-нотификатора
type Notifier interface {
	SendReminder(ctx context.Context, quote *domain.FinalQuote, kind domain.ReminderKind) (*whatsapp.SendResult, error)
}

// MetricsCollector интерфейс счетчиков напоминаний
type MetricsCollector interface {
	IncReminderSent(kind string)
	IncReminderFailed(kind string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
