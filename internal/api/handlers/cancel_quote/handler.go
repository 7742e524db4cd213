package cancel_quote

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/MUA-QuoteService/internal/api/handlers"
	"github.com/m04kA/MUA-QuoteService/internal/api/middleware"
	"github.com/m04kA/MUA-QuoteService/internal/service/lifecycle"
)

const (
	msgNotFound     = "бронь не найдена"
	msgCannotCancel = "бронь в терминальном статусе и не может быть отменена"
)

// CancelQuoteResponse HTTP response model
type CancelQuoteResponse struct {
	QuoteID   string `json:"quoteId"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updatedAt"`
}

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

// Handle POST /api/v1/quotes/{quoteId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quoteID := vars["quoteId"]

	quote, err := h.service.Cancel(r.Context(), quoteID)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrQuoteNotFound):
			h.logger.Warn("POST /quotes/{id}/cancel - Quote not found: quote_id=%s", quoteID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, lifecycle.ErrCannotCancel):
			h.logger.Warn("POST /quotes/{id}/cancel - Cannot cancel: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /quotes/{id}/cancel - Failed: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	adminID, _ := middleware.GetAdminID(r.Context())
	h.logger.Info("POST /quotes/{id}/cancel - Quote cancelled: quote_id=%s, admin_id=%s", quoteID, adminID)
	handlers.RespondJSON(w, http.StatusOK, &CancelQuoteResponse{
		QuoteID:   quote.ID,
		Status:    string(quote.Status),
		UpdatedAt: quote.UpdatedAt.Format(time.RFC3339),
	})
}
