package reject_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/MUA-QuoteService/internal/api/handlers"
	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/service/lifecycle"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStage       = "некорректная ступень оплаты"
	msgNotFound           = "бронь не найдена"
	msgInvalidTransition  = "недопустимый переход состояния оплаты"
	msgFinalNotAvailable  = "финальный платеж доступен только после оплаты аванса"
)

type Handler struct {
	service LifecycleService
	logger  Logger
}

func NewHandler(service LifecycleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes/{quoteId}/payments/reject
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quoteID := vars["quoteId"]

	var req RejectPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes/{id}/payments/reject - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	quote, err := h.service.RejectPayment(r.Context(), quoteID, domain.PaymentStage(req.Stage))
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrQuoteNotFound):
			h.logger.Warn("POST /quotes/{id}/payments/reject - Quote not found: quote_id=%s", quoteID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lifecycle.ErrFinalNotAvailable):
			h.logger.Warn("POST /quotes/{id}/payments/reject - Final before paid advance: quote_id=%s", quoteID)
			handlers.RespondConflict(w, msgFinalNotAvailable)

		case errors.Is(err, lifecycle.ErrInvalidTransition):
			h.logger.Warn("POST /quotes/{id}/payments/reject - Invalid transition: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, lifecycle.ErrInvalidInput):
			h.logger.Warn("POST /quotes/{id}/payments/reject - Invalid stage: quote_id=%s, stage=%q", quoteID, req.Stage)
			handlers.RespondBadRequest(w, msgInvalidStage)

		default:
			h.logger.Error("POST /quotes/{id}/payments/reject - Failed: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes/{id}/payments/reject - Payment rejected: quote_id=%s, stage=%s", quoteID, req.Stage)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(quote))
}
