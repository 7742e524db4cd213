package record_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/MUA-QuoteService/internal/api/handlers"
	recordPayment "github.com/m04kA/MUA-QuoteService/internal/usecase/record_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные платежа"
	msgNotFound           = "бронь не найдена"
	msgInvalidTransition  = "недопустимый переход состояния оплаты"
	msgFinalNotAvailable  = "финальный платеж доступен только после оплаты аванса"
)

type Handler struct {
	useCase RecordPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RecordPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes/{quoteId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quoteID := vars["quoteId"]

	var req RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(quoteID))
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrQuoteNotFound):
			h.logger.Warn("POST /quotes/{id}/payments - Quote not found: quote_id=%s", quoteID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, recordPayment.ErrFinalNotAvailable):
			h.logger.Warn("POST /quotes/{id}/payments - Final payment before paid advance: quote_id=%s", quoteID)
			handlers.RespondConflict(w, msgFinalNotAvailable)

		case errors.Is(err, recordPayment.ErrInvalidTransition):
			h.logger.Warn("POST /quotes/{id}/payments - Invalid transition: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, recordPayment.ErrInvalidInput):
			h.logger.Warn("POST /quotes/{id}/payments - Invalid input: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /quotes/{id}/payments - Failed to record payment: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes/{id}/payments - Payment recorded: quote_id=%s, action=%s, stage=%s",
		quoteID, req.Action, req.Stage)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
