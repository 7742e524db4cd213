package record_payment

import (
	"context"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// LifecycleService интерфейс машины жизненного цикла брони
type LifecycleService interface {
	SubmitPayment(ctx context.Context, id string, stage domain.PaymentStage, method domain.PaymentMethod, amount float64) (*domain.FinalQuote, error)
	ConfirmPayment(ctx context.Context, id string, stage domain.PaymentStage, amount float64) (*domain.FinalQuote, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
