package get_quote

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/service/assembler"
)

// LineItemResponse строка сметы
type LineItemResponse struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// QuoteResponse смета одного тира
type QuoteResponse struct {
	Tier          string             `json:"tier"`
	TierLabel     string             `json:"tierLabel"`
	LineItems     []LineItemResponse `json:"lineItems"`
	Subtotal      float64            `json:"subtotal"`
	Tax           float64            `json:"tax"`
	Total         float64            `json:"total"`
	DepositAmount float64            `json:"depositAmount"`
}

// DaySummaryResponse описание одного дня брони
type DaySummaryResponse struct {
	Date      string   `json:"date"`
	ReadyTime string   `json:"readyTime"`
	Service   string   `json:"service"`
	Option    string   `json:"option"`
	Location  string   `json:"location"`
	Addons    []string `json:"addons,omitempty"`
}

// PaymentResponse состояние оплаты
type PaymentResponse struct {
	Method        string                `json:"method,omitempty"`
	Status        string                `json:"status,omitempty"`
	DepositAmount float64               `json:"depositAmount,omitempty"`
	PromoCode     *string               `json:"promoCode,omitempty"`
	FinalPayment  *FinalPaymentResponse `json:"finalPayment,omitempty"`
}

// FinalPaymentResponse состояние финального платежа
type FinalPaymentResponse struct {
	Method string  `json:"method,omitempty"`
	Status string  `json:"status,omitempty"`
	Amount float64 `json:"amount,omitempty"`
}

// ReminderResponse состояние одного напоминания
type ReminderResponse struct {
	Kind           string  `json:"kind"`
	Sent           bool    `json:"sent"`
	SentAt         *string `json:"sentAt,omitempty"`
	ScheduledFor   *string `json:"scheduledFor,omitempty"`
	DeliveryStatus *string `json:"deliveryStatus,omitempty"`
	SkipReason     *string `json:"skipReason,omitempty"`
}

// GetQuoteResponse HTTP response model
type GetQuoteResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	ContactName  string `json:"contactName"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone"`

	Days []DaySummaryResponse `json:"days"`
	Lead QuoteResponse        `json:"lead"`
	Team QuoteResponse        `json:"team"`

	SelectedQuote *string `json:"selectedQuote,omitempty"`

	Address          *string `json:"address,omitempty"`
	HasMobileService bool    `json:"hasMobileService"`

	Payment   *PaymentResponse   `json:"payment,omitempty"`
	Reminders []ReminderResponse `json:"reminders,omitempty"`

	QuoteGeneratedAt string `json:"quoteGeneratedAt"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// FromDomain конвертирует доменный документ в HTTP response
func FromDomain(quote *domain.FinalQuote) *GetQuoteResponse {
	resp := &GetQuoteResponse{
		ID:               quote.ID,
		Status:           string(quote.Status),
		ContactName:      quote.Contact.Name,
		ContactEmail:     quote.Contact.Email,
		ContactPhone:     quote.Contact.Phone,
		Days:             toDaySummaries(quote.Booking.Days),
		Lead:             toQuoteResponse(domain.TierLead, &quote.Quotes.Lead),
		Team:             toQuoteResponse(domain.TierTeam, &quote.Quotes.Team),
		Address:          quote.Booking.Address,
		HasMobileService: quote.Booking.HasMobileService,
		Payment:          toPaymentResponse(quote.PaymentDetails),
		Reminders:        toReminderResponses(quote.WhatsappMessages),
		QuoteGeneratedAt: quote.QuoteGeneratedAt.Format(time.RFC3339),
		CreatedAt:        quote.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        quote.UpdatedAt.Format(time.RFC3339),
	}

	if quote.SelectedQuote != nil {
		tier := string(*quote.SelectedQuote)
		resp.SelectedQuote = &tier
	}

	return resp
}

func toQuoteResponse(tier domain.Tier, quote *domain.Quote) QuoteResponse {
	items := make([]LineItemResponse, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		items = append(items, LineItemResponse{Description: item.Description, Price: item.Price})
	}

	return QuoteResponse{
		Tier:          string(tier),
		TierLabel:     tier.Label(),
		LineItems:     items,
		Subtotal:      quote.Subtotal,
		Tax:           quote.Tax,
		Total:         quote.Total,
		DepositAmount: quote.DepositAmount(),
	}
}

func toDaySummaries(days []domain.BookingDay) []DaySummaryResponse {
	summaries := assembler.SummarizeDays(days)
	result := make([]DaySummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, DaySummaryResponse{
			Date:      s.Date,
			ReadyTime: s.ReadyTime,
			Service:   s.Service,
			Option:    s.Option,
			Location:  s.Location,
			Addons:    s.Addons,
		})
	}
	return result
}

func toPaymentResponse(details *domain.PaymentDetails) *PaymentResponse {
	if details == nil {
		return nil
	}

	resp := &PaymentResponse{
		Method:        string(details.Method),
		Status:        string(details.Status),
		DepositAmount: details.DepositAmount,
		PromoCode:     details.PromoCode,
	}

	if details.FinalPayment != nil {
		resp.FinalPayment = &FinalPaymentResponse{
			Method: string(details.FinalPayment.Method),
			Status: string(details.FinalPayment.Status),
			Amount: details.FinalPayment.Amount,
		}
	}

	return resp
}

func toReminderResponses(log *domain.MessageLog) []ReminderResponse {
	if log == nil {
		return nil
	}

	kinds := append([]domain.ReminderKind{domain.KindInitial}, domain.AllKinds...)
	result := make([]ReminderResponse, 0, len(kinds))

	for _, kind := range kinds {
		record := log.Record(kind)
		if record == nil {
			continue
		}

		resp := ReminderResponse{
			Kind:           string(kind),
			Sent:           record.Sent,
			DeliveryStatus: record.DeliveryStatus,
			SkipReason:     record.SkipReason,
		}
		if record.SentAt != nil {
			formatted := record.SentAt.Format(time.RFC3339)
			resp.SentAt = &formatted
		}
		if record.ScheduledFor != nil {
			formatted := record.ScheduledFor.Format(time.RFC3339)
			resp.ScheduledFor = &formatted
		}

		result = append(result, resp)
	}

	return result
}
