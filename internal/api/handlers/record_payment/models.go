package record_payment

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	recordPayment "github.com/m04kA/MUA-QuoteService/internal/usecase/record_payment"
)

// RecordPaymentRequest HTTP request model
type RecordPaymentRequest struct {
	Action string  `json:"action"` // "submit" или "confirm"
	Stage  string  `json:"stage"`  // "advance" или "final"
	Method string  `json:"method,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

// RecordPaymentResponse HTTP response model
type RecordPaymentResponse struct {
	QuoteID       string  `json:"quoteId"`
	Status        string  `json:"status"`
	SelectedQuote *string `json:"selectedQuote,omitempty"`
	AdvanceStatus string  `json:"advanceStatus"`
	FinalStatus   string  `json:"finalStatus,omitempty"`
	DepositAmount float64 `json:"depositAmount,omitempty"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RecordPaymentRequest) ToUseCaseRequest(quoteID string) *recordPayment.Request {
	return &recordPayment.Request{
		QuoteID: quoteID,
		Action:  recordPayment.Action(r.Action),
		Stage:   domain.PaymentStage(r.Stage),
		Method:  domain.PaymentMethod(r.Method),
		Amount:  r.Amount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *recordPayment.Response) *RecordPaymentResponse {
	return &RecordPaymentResponse{
		QuoteID:       resp.QuoteID,
		Status:        resp.Status,
		SelectedQuote: resp.SelectedQuote,
		AdvanceStatus: resp.AdvanceStatus,
		FinalStatus:   resp.FinalStatus,
		DepositAmount: resp.DepositAmount,
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
