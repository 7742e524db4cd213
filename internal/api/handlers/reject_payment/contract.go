package reject_payment

import (
	"context"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

type LifecycleService interface {
	RejectPayment(ctx context.Context, id string, stage domain.PaymentStage) (*domain.FinalQuote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
