package generate_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/MUA-QuoteService/internal/api/handlers"
	generateQuote "github.com/m04kA/MUA-QuoteService/internal/usecase/generate_quote"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgInvalidInput       = "некорректные данные бронирования"
	msgNoUsableDays       = "ни один день бронирования не пригоден для расчета"
	msgIDExhausted        = "не удалось выделить номер брони, повторите попытку"
)

type Handler struct {
	useCase GenerateQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GenerateQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateQuote.ErrNoUsableDays):
			h.logger.Warn("POST /quotes - No usable booking days: contact=%s", req.Contact.Name)
			handlers.RespondBadRequest(w, msgNoUsableDays)

		case errors.Is(err, generateQuote.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			var fields generateQuote.FieldErrors
			if errors.As(err, &fields) {
				handlers.RespondJSON(w, http.StatusBadRequest, &ValidationErrorResponse{
					Error:  msgInvalidInput,
					Fields: fields,
				})
			} else {
				handlers.RespondBadRequest(w, msgInvalidInput)
			}

		case errors.Is(err, generateQuote.ErrIDExhausted):
			h.logger.Error("POST /quotes - Booking id space exhausted")
			handlers.RespondError(w, http.StatusConflict, msgIDExhausted)

		default:
			h.logger.Error("POST /quotes - Failed to generate quote: contact=%s, error=%v", req.Contact.Name, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote generated successfully: quote_id=%s, contact=%s",
		result.ID, req.Contact.Name)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
