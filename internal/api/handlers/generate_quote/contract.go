package generate_quote

import (
	"context"

	generateQuote "github.com/m04kA/MUA-QuoteService/internal/usecase/generate_quote"
)

type GenerateQuoteUseCase interface {
	Execute(ctx context.Context, req *generateQuote.Request) (*generateQuote.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
