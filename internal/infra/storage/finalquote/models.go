package finalquote

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/pkg/types"
)

// JSON-документы для JSONB колонок
// Доменные типы не несут json-тегов, поэтому сериализация идет
// через эти модели с явной конвертацией в обе стороны

type bookingDoc struct {
	Days             []bookingDayDoc   `json:"days"`
	Trial            *trialDoc         `json:"trial,omitempty"`
	BridalParty      *partyServicesDoc `json:"bridalParty,omitempty"`
	Address          *string           `json:"address,omitempty"`
	HasMobileService bool              `json:"hasMobileService"`
}

type bookingDayDoc struct {
	Date             string            `json:"date"` // YYYY-MM-DD
	ReadyTime        string            `json:"readyTime"`
	ServiceID        string            `json:"serviceId"`
	ServiceOption    string            `json:"serviceOption,omitempty"`
	ServiceType      string            `json:"serviceType"`
	MobileLocation   *string           `json:"mobileLocation,omitempty"`
	JewellerySetting bool              `json:"jewellerySetting,omitempty"`
	SareeDraping     bool              `json:"sareeDraping,omitempty"`
	HijabSetting     bool              `json:"hijabSetting,omitempty"`
	HairExtensions   int               `json:"hairExtensions,omitempty"`
	PartyPeopleCount int               `json:"partyPeopleCount,omitempty"`
	PartyServices    *partyServicesDoc `json:"partyServices,omitempty"`
}

type partyServicesDoc struct {
	AddServices      bool `json:"addServices"`
	HairMakeup       int  `json:"hairMakeup,omitempty"`
	MakeupOnly       int  `json:"makeupOnly,omitempty"`
	HairOnly         int  `json:"hairOnly,omitempty"`
	DupattaSetting   int  `json:"dupattaSetting,omitempty"`
	ExtensionInstall int  `json:"extensionInstall,omitempty"`
	SareeDraping     int  `json:"sareeDraping,omitempty"`
	HijabSetting     int  `json:"hijabSetting,omitempty"`
	Airbrush         int  `json:"airbrush,omitempty"`
}

type trialDoc struct {
	AddTrial      bool   `json:"addTrial"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	ServiceOption string `json:"serviceOption,omitempty"`
}

type quotesDoc struct {
	Lead quoteDoc `json:"lead"`
	Team quoteDoc `json:"team"`
}

type quoteDoc struct {
	LineItems []lineItemDoc `json:"lineItems"`
	Subtotal  float64       `json:"subtotal"`
	Tax       float64       `json:"tax"`
	Total     float64       `json:"total"`
}

type lineItemDoc struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type paymentDoc struct {
	Method        string           `json:"method"`
	Status        string           `json:"status"`
	DepositAmount float64          `json:"depositAmount"`
	PromoCode     *string          `json:"promoCode,omitempty"`
	PromoDiscount *float64         `json:"promoDiscount,omitempty"`
	FinalPayment  *finalPaymentDoc `json:"finalPayment,omitempty"`
}

type finalPaymentDoc struct {
	Method string  `json:"method"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

type messageLogDoc struct {
	Initial    *reminderDoc `json:"initial,omitempty"`
	Reminder2W *reminderDoc `json:"reminder2w,omitempty"`
	Reminder1W *reminderDoc `json:"reminder1w,omitempty"`
	Followup7D *reminderDoc `json:"followup7d,omitempty"`
	Event24H   *reminderDoc `json:"event24h,omitempty"`
	DayOf      *reminderDoc `json:"dayOf,omitempty"`
	PostEvent  *reminderDoc `json:"postEvent,omitempty"`
}

type reminderDoc struct {
	Sent           bool       `json:"sent"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
	ScheduledFor   *time.Time `json:"scheduledFor,omitempty"`
	MessageID      *string    `json:"messageId,omitempty"`
	DeliveryStatus *string    `json:"deliveryStatus,omitempty"`
	SkipReason     *string    `json:"skipReason,omitempty"`
	Error          *string    `json:"error,omitempty"`
}

// Конвертация domain -> doc

func toBookingDoc(b *domain.Booking) bookingDoc {
	doc := bookingDoc{
		Days:             make([]bookingDayDoc, 0, len(b.Days)),
		BridalParty:      toPartyServicesDoc(b.BridalParty),
		Address:          b.Address,
		HasMobileService: b.HasMobileService,
	}

	for i := range b.Days {
		day := &b.Days[i]
		doc.Days = append(doc.Days, bookingDayDoc{
			Date:             day.Date.Format(domain.DateFormat),
			ReadyTime:        day.ReadyTime.String(),
			ServiceID:        day.ServiceID,
			ServiceOption:    string(day.ServiceOption),
			ServiceType:      string(day.ServiceType),
			MobileLocation:   day.MobileLocation,
			JewellerySetting: day.JewellerySetting,
			SareeDraping:     day.SareeDraping,
			HijabSetting:     day.HijabSetting,
			HairExtensions:   day.HairExtensions,
			PartyPeopleCount: day.PartyPeopleCount,
			PartyServices:    toPartyServicesDoc(day.PartyServices),
		})
	}

	if b.Trial != nil {
		doc.Trial = &trialDoc{
			AddTrial:      b.Trial.AddTrial,
			Time:          b.Trial.Time.String(),
			ServiceOption: string(b.Trial.ServiceOption),
		}
		if !b.Trial.Date.IsZero() {
			doc.Trial.Date = b.Trial.Date.Format(domain.DateFormat)
		}
	}

	return doc
}

func toPartyServicesDoc(p *domain.PartyServices) *partyServicesDoc {
	if p == nil {
		return nil
	}
	return &partyServicesDoc{
		AddServices:      p.AddServices,
		HairMakeup:       p.HairMakeup,
		MakeupOnly:       p.MakeupOnly,
		HairOnly:         p.HairOnly,
		DupattaSetting:   p.DupattaSetting,
		ExtensionInstall: p.ExtensionInstall,
		SareeDraping:     p.SareeDraping,
		HijabSetting:     p.HijabSetting,
		Airbrush:         p.Airbrush,
	}
}

func toQuotesDoc(q *domain.TierQuotes) quotesDoc {
	return quotesDoc{
		Lead: toQuoteDoc(&q.Lead),
		Team: toQuoteDoc(&q.Team),
	}
}

func toQuoteDoc(q *domain.Quote) quoteDoc {
	doc := quoteDoc{
		LineItems: make([]lineItemDoc, 0, len(q.LineItems)),
		Subtotal:  q.Subtotal,
		Tax:       q.Tax,
		Total:     q.Total,
	}
	for _, item := range q.LineItems {
		doc.LineItems = append(doc.LineItems, lineItemDoc{
			Description: item.Description,
			Price:       item.Price,
		})
	}
	return doc
}

func toPaymentDoc(p *domain.PaymentDetails) *paymentDoc {
	if p == nil {
		return nil
	}
	doc := &paymentDoc{
		Method:        string(p.Method),
		Status:        string(p.Status),
		DepositAmount: p.DepositAmount,
		PromoCode:     p.PromoCode,
		PromoDiscount: p.PromoDiscount,
	}
	if p.FinalPayment != nil {
		doc.FinalPayment = &finalPaymentDoc{
			Method: string(p.FinalPayment.Method),
			Status: string(p.FinalPayment.Status),
			Amount: p.FinalPayment.Amount,
		}
	}
	return doc
}

func toMessageLogDoc(m *domain.MessageLog) *messageLogDoc {
	if m == nil {
		return nil
	}
	return &messageLogDoc{
		Initial:    toReminderDoc(m.Initial),
		Reminder2W: toReminderDoc(m.Reminder2W),
		Reminder1W: toReminderDoc(m.Reminder1W),
		Followup7D: toReminderDoc(m.Followup7D),
		Event24H:   toReminderDoc(m.Event24H),
		DayOf:      toReminderDoc(m.DayOf),
		PostEvent:  toReminderDoc(m.PostEvent),
	}
}

func toReminderDoc(r *domain.ReminderRecord) *reminderDoc {
	if r == nil {
		return nil
	}
	return &reminderDoc{
		Sent:           r.Sent,
		SentAt:         r.SentAt,
		ScheduledFor:   r.ScheduledFor,
		MessageID:      r.MessageID,
		DeliveryStatus: r.DeliveryStatus,
		SkipReason:     r.SkipReason,
		Error:          r.Error,
	}
}

// Конвертация doc -> domain

func (d *bookingDoc) toDomain() (domain.Booking, error) {
	booking := domain.Booking{
		Days:             make([]domain.BookingDay, 0, len(d.Days)),
		BridalParty:      d.BridalParty.toDomain(),
		Address:          d.Address,
		HasMobileService: d.HasMobileService,
	}

	for _, dayDoc := range d.Days {
		date, err := time.Parse(domain.DateFormat, dayDoc.Date)
		if err != nil {
			return booking, err
		}
		booking.Days = append(booking.Days, domain.BookingDay{
			Date:             date,
			ReadyTime:        types.TimeString(dayDoc.ReadyTime),
			ServiceID:        dayDoc.ServiceID,
			ServiceOption:    domain.ServiceOption(dayDoc.ServiceOption),
			ServiceType:      domain.ServiceType(dayDoc.ServiceType),
			MobileLocation:   dayDoc.MobileLocation,
			JewellerySetting: dayDoc.JewellerySetting,
			SareeDraping:     dayDoc.SareeDraping,
			HijabSetting:     dayDoc.HijabSetting,
			HairExtensions:   dayDoc.HairExtensions,
			PartyPeopleCount: dayDoc.PartyPeopleCount,
			PartyServices:    dayDoc.PartyServices.toDomain(),
		})
	}

	if d.Trial != nil {
		trial := &domain.BridalTrial{
			AddTrial:      d.Trial.AddTrial,
			Time:          types.TimeString(d.Trial.Time),
			ServiceOption: domain.ServiceOption(d.Trial.ServiceOption),
		}
		if d.Trial.Date != "" {
			date, err := time.Parse(domain.DateFormat, d.Trial.Date)
			if err != nil {
				return booking, err
			}
			trial.Date = date
		}
		booking.Trial = trial
	}

	return booking, nil
}

func (d *partyServicesDoc) toDomain() *domain.PartyServices {
	if d == nil {
		return nil
	}
	return &domain.PartyServices{
		AddServices:      d.AddServices,
		HairMakeup:       d.HairMakeup,
		MakeupOnly:       d.MakeupOnly,
		HairOnly:         d.HairOnly,
		DupattaSetting:   d.DupattaSetting,
		ExtensionInstall: d.ExtensionInstall,
		SareeDraping:     d.SareeDraping,
		HijabSetting:     d.HijabSetting,
		Airbrush:         d.Airbrush,
	}
}

func (d *quotesDoc) toDomain() domain.TierQuotes {
	return domain.TierQuotes{
		Lead: d.Lead.toDomain(),
		Team: d.Team.toDomain(),
	}
}

func (d *quoteDoc) toDomain() domain.Quote {
	quote := domain.Quote{
		LineItems: make([]domain.LineItem, 0, len(d.LineItems)),
		Subtotal:  d.Subtotal,
		Tax:       d.Tax,
		Total:     d.Total,
	}
	for _, item := range d.LineItems {
		quote.LineItems = append(quote.LineItems, domain.LineItem{
			Description: item.Description,
			Price:       item.Price,
		})
	}
	return quote
}

func (d *paymentDoc) toDomain() *domain.PaymentDetails {
	if d == nil {
		return nil
	}
	payment := &domain.PaymentDetails{
		Method:        domain.PaymentMethod(d.Method),
		Status:        domain.PaymentStatus(d.Status),
		DepositAmount: d.DepositAmount,
		PromoCode:     d.PromoCode,
		PromoDiscount: d.PromoDiscount,
	}
	if d.FinalPayment != nil {
		payment.FinalPayment = &domain.FinalPayment{
			Method: domain.PaymentMethod(d.FinalPayment.Method),
			Status: domain.PaymentStatus(d.FinalPayment.Status),
			Amount: d.FinalPayment.Amount,
		}
	}
	return payment
}

func (d *messageLogDoc) toDomain() *domain.MessageLog {
	if d == nil {
		return nil
	}
	return &domain.MessageLog{
		Initial:    d.Initial.toDomain(),
		Reminder2W: d.Reminder2W.toDomain(),
		Reminder1W: d.Reminder1W.toDomain(),
		Followup7D: d.Followup7D.toDomain(),
		Event24H:   d.Event24H.toDomain(),
		DayOf:      d.DayOf.toDomain(),
		PostEvent:  d.PostEvent.toDomain(),
	}
}

func (d *reminderDoc) toDomain() *domain.ReminderRecord {
	if d == nil {
		return nil
	}
	return &domain.ReminderRecord{
		Sent:           d.Sent,
		SentAt:         d.SentAt,
		ScheduledFor:   d.ScheduledFor,
		MessageID:      d.MessageID,
		DeliveryStatus: d.DeliveryStatus,
		SkipReason:     d.SkipReason,
		Error:          d.Error,
	}
}
