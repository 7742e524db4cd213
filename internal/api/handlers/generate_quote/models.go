package generate_quote

import (
	"fmt"
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/service/assembler"
	generateQuote "github.com/m04kA/MUA-QuoteService/internal/usecase/generate_quote"
	"github.com/m04kA/MUA-QuoteService/pkg/types"
)

// GenerateQuoteRequest HTTP request model
type GenerateQuoteRequest struct {
	Contact ContactRequest      `json:"contact"`
	Days    []DayRequest        `json:"days"`
	Trial   *TrialRequest       `json:"bridalTrial,omitempty"`
}

// ContactRequest контактные данные клиента
type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// DayRequest один день бронирования
type DayRequest struct {
	Date           string  `json:"date"`      // "2026-09-12"
	ReadyTime      string  `json:"readyTime"` // "16:30"
	ServiceID      string  `json:"serviceId"`
	ServiceOption  string  `json:"serviceOption,omitempty"`
	ServiceType    string  `json:"serviceType,omitempty"`
	MobileLocation *string `json:"mobileLocation,omitempty"`

	JewellerySetting bool `json:"jewellerySetting,omitempty"`
	SareeDraping     bool `json:"sareeDraping,omitempty"`
	HijabSetting     bool `json:"hijabSetting,omitempty"`
	HairExtensions   int  `json:"hairExtensions,omitempty"`

	PartyPeopleCount int                   `json:"partyPeopleCount,omitempty"`
	PartyServices    *PartyServicesRequest `json:"partyServices,omitempty"`
}

// PartyServicesRequest party-услуги для гостей
type PartyServicesRequest struct {
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

// TrialRequest пробная встреча
type TrialRequest struct {
	AddTrial      bool   `json:"addTrial"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	ServiceOption string `json:"serviceOption,omitempty"`
}

// ValidationErrorResponse тело ошибки валидации с разбивкой по полям
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

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

// GenerateQuoteResponse HTTP response model
type GenerateQuoteResponse struct {
	ID      string         `json:"id"`
	Status  string         `json:"status"`
	Contact ContactRequest `json:"contact"`

	Days []DaySummaryResponse `json:"days"`
	Lead QuoteResponse        `json:"lead"`
	Team QuoteResponse        `json:"team"`

	QuoteGeneratedAt string `json:"quoteGeneratedAt"`
	CreatedAt        string `json:"createdAt"`
	UpdatedAt        string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *GenerateQuoteRequest) ToUseCaseRequest() (*generateQuote.Request, error) {
	days := make([]domain.BookingDay, 0, len(r.Days))
	for i, day := range r.Days {
		converted, err := day.toDomain()
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", i+1, err)
		}
		days = append(days, converted)
	}

	var trial *domain.BridalTrial
	if r.Trial != nil && r.Trial.AddTrial {
		converted, err := r.Trial.toDomain()
		if err != nil {
			return nil, fmt.Errorf("bridal trial: %w", err)
		}
		trial = converted
	}

	return &generateQuote.Request{
		Contact: domain.Contact{
			Name:  r.Contact.Name,
			Email: r.Contact.Email,
			Phone: r.Contact.Phone,
		},
		Days:  days,
		Trial: trial,
	}, nil
}

// toDomain конвертирует день запроса в доменную модель
// Пустые дата и время оставляются нулевыми: такие дни исключаются
// из расчета ниже по конвейеру, это не ошибка формата
func (d *DayRequest) toDomain() (domain.BookingDay, error) {
	day := domain.BookingDay{
		ServiceID:        d.ServiceID,
		ServiceOption:    domain.ServiceOption(d.ServiceOption),
		ServiceType:      domain.ServiceType(d.ServiceType),
		MobileLocation:   d.MobileLocation,
		JewellerySetting: d.JewellerySetting,
		SareeDraping:     d.SareeDraping,
		HijabSetting:     d.HijabSetting,
		HairExtensions:   d.HairExtensions,
		PartyPeopleCount: d.PartyPeopleCount,
	}

	if d.Date != "" {
		date, err := time.Parse(domain.DateFormat, d.Date)
		if err != nil {
			return domain.BookingDay{}, err
		}
		day.Date = date
	}

	if d.ReadyTime != "" {
		readyTime, err := types.NewTimeStringFromString(d.ReadyTime)
		if err != nil {
			return domain.BookingDay{}, err
		}
		day.ReadyTime = readyTime
	}

	if d.PartyServices != nil {
		day.PartyServices = &domain.PartyServices{
			AddServices:      d.PartyServices.AddServices,
			HairMakeup:       d.PartyServices.HairMakeup,
			MakeupOnly:       d.PartyServices.MakeupOnly,
			HairOnly:         d.PartyServices.HairOnly,
			DupattaSetting:   d.PartyServices.DupattaSetting,
			ExtensionInstall: d.PartyServices.ExtensionInstall,
			SareeDraping:     d.PartyServices.SareeDraping,
			HijabSetting:     d.PartyServices.HijabSetting,
			Airbrush:         d.PartyServices.Airbrush,
		}
	}

	return day, nil
}

// toDomain конвертирует пробную встречу в доменную модель
func (t *TrialRequest) toDomain() (*domain.BridalTrial, error) {
	trial := &domain.BridalTrial{
		AddTrial:      true,
		ServiceOption: domain.ServiceOption(t.ServiceOption),
	}

	if t.Date != "" {
		date, err := time.Parse(domain.DateFormat, t.Date)
		if err != nil {
			return nil, err
		}
		trial.Date = date
	}

	if t.Time != "" {
		trialTime, err := types.NewTimeStringFromString(t.Time)
		if err != nil {
			return nil, err
		}
		trial.Time = trialTime
	}

	return trial, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateQuote.Response) *GenerateQuoteResponse {
	return &GenerateQuoteResponse{
		ID:     resp.ID,
		Status: resp.Status,
		Contact: ContactRequest{
			Name:  resp.Contact.Name,
			Email: resp.Contact.Email,
			Phone: resp.Contact.Phone,
		},
		Days:             toDaySummaries(resp.Days),
		Lead:             toQuoteResponse(resp.Lead),
		Team:             toQuoteResponse(resp.Team),
		QuoteGeneratedAt: resp.QuoteGeneratedAt.Format(time.RFC3339),
		CreatedAt:        resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        resp.UpdatedAt.Format(time.RFC3339),
	}
}

func toQuoteResponse(view generateQuote.QuoteView) QuoteResponse {
	items := make([]LineItemResponse, 0, len(view.LineItems))
	for _, item := range view.LineItems {
		items = append(items, LineItemResponse{Description: item.Description, Price: item.Price})
	}

	return QuoteResponse{
		Tier:          view.Tier,
		TierLabel:     view.TierLabel,
		LineItems:     items,
		Subtotal:      view.Subtotal,
		Tax:           view.Tax,
		Total:         view.Total,
		DepositAmount: view.DepositAmount,
	}
}

func toDaySummaries(summaries []assembler.DaySummary) []DaySummaryResponse {
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
