package approve_payment

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// ApprovePaymentRequest HTTP request model
type ApprovePaymentRequest struct {
	Stage string `json:"stage"` // "advance" или "final"
}

// ApprovePaymentResponse HTTP response model
type ApprovePaymentResponse struct {
	QuoteID       string  `json:"quoteId"`
	Status        string  `json:"status"`
	SelectedQuote *string `json:"selectedQuote,omitempty"`
	AdvanceStatus string  `json:"advanceStatus"`
	FinalStatus   string  `json:"finalStatus,omitempty"`
	UpdatedAt     string  `json:"updatedAt"`
}

// FromDomain конвертирует доменный документ в HTTP response
func FromDomain(quote *domain.FinalQuote) *ApprovePaymentResponse {
	resp := &ApprovePaymentResponse{
		QuoteID:       quote.ID,
		Status:        string(quote.Status),
		AdvanceStatus: string(quote.PaymentDetails.AdvanceStatus()),
		FinalStatus:   string(quote.PaymentDetails.FinalStatus()),
		UpdatedAt:     quote.UpdatedAt.Format(time.RFC3339),
	}

	if quote.SelectedQuote != nil {
		tier := string(*quote.SelectedQuote)
		resp.SelectedQuote = &tier
	}

	return resp
}
