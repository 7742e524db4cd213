package generate_quote

import (
	"context"
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// PricingEngine интерфейс движка расчета смет
type PricingEngine interface {
	ComputeQuote(ctx context.Context, tier domain.Tier, days []domain.BookingDay, trial *domain.BridalTrial) (*domain.Quote, error)
}

// QuoteAssembler интерфейс сборщика итогового документа сметы
type QuoteAssembler interface {
	Assemble(
		ctx context.Context,
		contact domain.Contact,
		days []domain.BookingDay,
		trial *domain.BridalTrial,
		leadQuote *domain.Quote,
		teamQuote *domain.Quote,
	) (*domain.FinalQuote, error)
}

// QuoteRepository интерфейс репозитория смет
type QuoteRepository interface {
	Create(ctx context.Context, quote *domain.FinalQuote) (*domain.FinalQuote, error)
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	SchedulePromo(quote *domain.FinalQuote, now time.Time)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
