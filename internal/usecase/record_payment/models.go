package record_payment

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// Action действие платежного события
type Action string

const (
	// ActionSubmit клиент отправил платеж (или скриншот Interac), ждем подтверждения
	ActionSubmit Action = "submit"

	// ActionConfirm провайдер подтвердил платеж автоматически
	ActionConfirm Action = "confirm"
)

// IsValid возвращает true для известного действия
func (a Action) IsValid() bool {
	return a == ActionSubmit || a == ActionConfirm
}

// Request модель запроса на запись платежного события
type Request struct {
	QuoteID string               // Идентификатор брони
	Action  Action               // submit или confirm
	Stage   domain.PaymentStage  // Ступень оплаты: advance или final
	Method  domain.PaymentMethod // Способ оплаты (обязателен для submit)
	Amount  float64              // Сумма платежа (опционально)
}

// Response модель ответа с обновленным состоянием оплаты
type Response struct {
	QuoteID string
	Status  string // Статус жизненного цикла брони

	// SelectedQuote тир, восстановленный по сумме платежа
	// nil, если выбор еще не определен
	SelectedQuote *string

	AdvanceStatus string
	FinalStatus   string
	DepositAmount float64

	UpdatedAt time.Time
}

// toResponse конвертирует доменный документ в ответ
func toResponse(quote *domain.FinalQuote) *Response {
	resp := &Response{
		QuoteID:       quote.ID,
		Status:        string(quote.Status),
		AdvanceStatus: string(quote.PaymentDetails.AdvanceStatus()),
		FinalStatus:   string(quote.PaymentDetails.FinalStatus()),
		UpdatedAt:     quote.UpdatedAt,
	}

	if quote.PaymentDetails != nil {
		resp.DepositAmount = quote.PaymentDetails.DepositAmount
	}

	if quote.SelectedQuote != nil {
		tier := string(*quote.SelectedQuote)
		resp.SelectedQuote = &tier
	}

	return resp
}
