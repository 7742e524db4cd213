package domain

import (
	"time"
)

// LineItem строка сметы
// Отступ в начале описания помечает под-позицию (аддон, доплату)
type LineItem struct {
	Description string
	Price       float64
}

// Quote смета для одного тира
// Инварианты: Subtotal = сумма цен строк, Tax = Round2(Subtotal * GSTRate),
// Total = Subtotal + Tax
type Quote struct {
	LineItems []LineItem
	Subtotal  float64
	Tax       float64
	Total     float64
}

// DepositAmount возвращает размер аванса (половина полной суммы)
func (q *Quote) DepositAmount() float64 {
	return Round2(q.Total * DepositShare)
}

// TierQuotes пара смет, всегда считаются обе
type TierQuotes struct {
	Lead Quote
	Team Quote
}

// For возвращает смету для указанного тира
func (q *TierQuotes) For(tier Tier) *Quote {
	if tier == TierTeam {
		return &q.Team
	}
	return &q.Lead
}

// QuoteStatus статус жизненного цикла брони
type QuoteStatus string

const (
	// StatusQuoted начальный статус: смета отправлена, оплата не получена
	StatusQuoted QuoteStatus = "quoted"

	// StatusConfirmed аванс оплачен, бронь подтверждена
	// Возврат в quoted невозможен, отмена администратором - возможна
	StatusConfirmed QuoteStatus = "confirmed"

	// StatusCancelled бронь отменена администратором (терминальный)
	StatusCancelled QuoteStatus = "cancelled"
)

// IsValid возвращает true для известного статуса
func (s QuoteStatus) IsValid() bool {
	return s == StatusQuoted || s == StatusConfirmed || s == StatusCancelled
}

// IsTerminal возвращает true для терминального статуса
func (s QuoteStatus) IsTerminal() bool {
	return s == StatusCancelled
}

// Booking нормализованное описание бронирования внутри FinalQuote
type Booking struct {
	Days             []BookingDay
	Trial            *BridalTrial
	BridalParty      *PartyServices // Агрегированные party-услуги по всем дням
	Address          *string
	HasMobileService bool
}

// FinalQuote документ сметы с контактами, парой смет и состоянием жизненного цикла
// Создается при генерации сметы, мутируется платежными событиями и напоминаниями,
// ядром никогда не удаляется
type FinalQuote struct {
	ID      string // 4-значный числовой идентификатор
	Contact Contact
	Booking Booking
	Quotes  TierQuotes

	// SelectedQuote авторитетный тир после выбора клиента
	// nil, пока выбор не сделан и не восстановлен по сумме платежа
	SelectedQuote *Tier

	Status           QuoteStatus
	PaymentDetails   *PaymentDetails
	QuoteGeneratedAt time.Time
	WhatsappMessages *MessageLog

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanConfirm возвращает true, если бронь может перейти в confirmed
// Переход выполняется только через оплаченный аванс
func (q *FinalQuote) CanConfirm() bool {
	return q.Status == StatusQuoted
}

// CanBeCancelled возвращает true, если бронь может быть отменена
// Отмена доступна из любого нетерминального статуса
func (q *FinalQuote) CanBeCancelled() bool {
	return !q.Status.IsTerminal()
}

// AdvancePaid возвращает true, если аванс в оплаченном состоянии
func (q *FinalQuote) AdvancePaid() bool {
	return q.PaymentDetails.AdvanceStatus().IsPaid()
}

// FinalPaid возвращает true, если финальный платеж в оплаченном состоянии
func (q *FinalQuote) FinalPaid() bool {
	return q.PaymentDetails.FinalStatus().IsPaid()
}

// SelectedTotal возвращает полную сумму выбранного тира
// false, если тир еще не определен
func (q *FinalQuote) SelectedTotal() (float64, bool) {
	if q.SelectedQuote == nil {
		return 0, false
	}
	return q.Quotes.For(*q.SelectedQuote).Total, true
}

// FirstEventDay возвращает самый ранний корректный день бронирования
// nil, если корректных дней нет
func (q *FinalQuote) FirstEventDay() *BookingDay {
	var first *BookingDay
	for i := range q.Booking.Days {
		day := &q.Booking.Days[i]
		if day.IsMalformed() {
			continue
		}
		if first == nil || day.Date.Before(first.Date) {
			first = day
		}
	}
	return first
}

// FirstEventAt возвращает дату и время готовности самого раннего дня
// false, если корректных дней нет
func (q *FinalQuote) FirstEventAt() (time.Time, bool) {
	day := q.FirstEventDay()
	if day == nil {
		return time.Time{}, false
	}
	at, err := day.ReadyTime.On(day.Date)
	if err != nil {
		return day.Date, true
	}
	return at, true
}

// Messages возвращает журнал сообщений, создавая его при отсутствии
func (q *FinalQuote) Messages() *MessageLog {
	if q.WhatsappMessages == nil {
		q.WhatsappMessages = &MessageLog{}
	}
	return q.WhatsappMessages
}
