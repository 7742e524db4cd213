package get_quote

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/MUA-QuoteService/internal/api/handlers"
	"github.com/m04kA/MUA-QuoteService/internal/service/lifecycle"
)

const (
	msgInvalidQuoteID = "некорректный номер брони"
	msgNotFound       = "бронь не найдена"
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

// Handle GET /api/v1/quotes/{quoteId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	quoteID := vars["quoteId"]

	if quoteID == "" {
		h.logger.Warn("GET /quotes/{id} - Empty quote ID")
		handlers.RespondBadRequest(w, msgInvalidQuoteID)
		return
	}

	quote, err := h.service.GetByID(r.Context(), quoteID)
	if err != nil {
		switch {
		case errors.Is(err, lifecycle.ErrQuoteNotFound):
			h.logger.Warn("GET /quotes/{id} - Quote not found: quote_id=%s", quoteID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /quotes/{id} - Failed to get quote: quote_id=%s, error=%v", quoteID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /quotes/{id} - Quote retrieved successfully: quote_id=%s", quoteID)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(quote))
}
