package cancel_quote

import (
	"context"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

type LifecycleService interface {
	Cancel(ctx context.Context, id string) (*domain.FinalQuote, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
