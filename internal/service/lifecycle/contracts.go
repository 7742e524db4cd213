package lifecycle

import (
	"context"
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/integrations/whatsapp"
)

// QuoteRepository интерфейс репозитория смет
// Все переходы выполняются как read-modify-write поверх целой записи:
// параллельные триггеры (вебхук, одобрение админом, проход диспетчера)
// разрешаются last-writer-wins на уровне записи
type QuoteRepository interface {
	GetByID(ctx context.Context, id string) (*domain.FinalQuote, error)
	Update(ctx context.Context, quote *domain.FinalQuote) error
}

// Notifier интерфейс внешнего нотификатора
// Сбои доставки не блокируют запись платежа
type Notifier interface {
	SendConfirmation(ctx context.Context, quote *domain.FinalQuote) (*whatsapp.SendResult, error)
	SendFinalConfirmation(ctx context.Context, quote *domain.FinalQuote) (*whatsapp.SendResult, error)
	SendRejection(ctx context.Context, quote *domain.FinalQuote) (*whatsapp.SendResult, error)
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	ScheduleEvent(quote *domain.FinalQuote, now time.Time)
}

// TierInferrer восстановление выбранного тира по сумме платежа
type TierInferrer interface {
	InferSelectedTier(quote *domain.FinalQuote, paidAmount float64) (domain.Tier, error)
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
