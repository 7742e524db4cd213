package generate_quote

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/service/assembler"
)

// Request модель запроса на генерацию сметы
type Request struct {
	Contact domain.Contact      // Контактные данные клиента
	Days    []domain.BookingDay // Дни бронирования
	Trial   *domain.BridalTrial // Пробная встреча (опционально)
}

// LineItem строка сметы в ответе
type LineItem struct {
	Description string
	Price       float64
}

// QuoteView смета одного тира в ответе
type QuoteView struct {
	Tier          string     // Тир исполнителя
	TierLabel     string     // Человекочитаемое название тира
	LineItems     []LineItem // Строки сметы в порядке расчета
	Subtotal      float64
	Tax           float64
	Total         float64
	DepositAmount float64 // Размер аванса (половина полной суммы)
}

// Response модель ответа со сгенерированной сметой
type Response struct {
	ID      string         // 4-значный идентификатор брони
	Status  string         // Статус жизненного цикла
	Contact domain.Contact // Контактные данные клиента

	Days  []assembler.DaySummary // Описание дней брони
	Lead  QuoteView              // Смета тира lead
	Team  QuoteView              // Смета тира team

	QuoteGeneratedAt time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// toQuoteView конвертирует доменную смету в представление ответа
func toQuoteView(tier domain.Tier, quote *domain.Quote) QuoteView {
	items := make([]LineItem, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		items = append(items, LineItem{Description: item.Description, Price: item.Price})
	}

	return QuoteView{
		Tier:          string(tier),
		TierLabel:     tier.Label(),
		LineItems:     items,
		Subtotal:      quote.Subtotal,
		Tax:           quote.Tax,
		Total:         quote.Total,
		DepositAmount: quote.DepositAmount(),
	}
}

// toResponse конвертирует доменный документ сметы в ответ
func toResponse(quote *domain.FinalQuote) *Response {
	return &Response{
		ID:               quote.ID,
		Status:           string(quote.Status),
		Contact:          quote.Contact,
		Days:             assembler.SummarizeDays(quote.Booking.Days),
		Lead:             toQuoteView(domain.TierLead, &quote.Quotes.Lead),
		Team:             toQuoteView(domain.TierTeam, &quote.Quotes.Team),
		QuoteGeneratedAt: quote.QuoteGeneratedAt,
		CreatedAt:        quote.CreatedAt,
		UpdatedAt:        quote.UpdatedAt,
	}
}
