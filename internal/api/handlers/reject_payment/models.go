package reject_payment

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// RejectPaymentRequest HTTP request model
type RejectPaymentRequest struct {
	Stage string `json:"stage"` // "advance" или "final"
}

// RejectPaymentResponse HTTP response model
type RejectPaymentResponse struct {
	QuoteID       string `json:"quoteId"`
	Status        string `json:"status"`
	AdvanceStatus string `json:"advanceStatus"`
	FinalStatus   string `json:"finalStatus,omitempty"`
	UpdatedAt     string `json:"updatedAt"`
}

// FromDomain конвертирует доменный документ в HTTP response
func FromDomain(quote *domain.FinalQuote) *RejectPaymentResponse {
	return &RejectPaymentResponse{
		QuoteID:       quote.ID,
		Status:        string(quote.Status),
		AdvanceStatus: string(quote.PaymentDetails.AdvanceStatus()),
		FinalStatus:   string(quote.PaymentDetails.FinalStatus()),
		UpdatedAt:     quote.UpdatedAt.Format(time.RFC3339),
	}
}
