package domain

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/pkg/types"
)

// Contact контактные данные клиента
type Contact struct {
	Name  string
	Email string
	Phone string
}

// BookingDay один календарный день многодневного бронирования
type BookingDay struct {
	Date           time.Time
	ReadyTime      types.TimeString // Время готовности клиента, HH:MM
	ServiceID      string
	ServiceOption  ServiceOption
	ServiceType    ServiceType
	MobileLocation *string // Обязательно при ServiceType = mobile

	// Аддоны дня
	JewellerySetting bool
	SareeDraping     bool
	HijabSetting     bool
	HairExtensions   int

	// Количество человек для групповой услуги party
	// Для остальных услуг подразумевается 1
	PartyPeopleCount int

	// Дополнительные party-услуги для bridal/semi-bridal дней
	PartyServices *PartyServices
}

// IsMalformed возвращает true, если день не пригоден для расчета
// Такие дни молча исключаются из сметы (валидация - внешняя забота)
func (d *BookingDay) IsMalformed() bool {
	return d.ServiceID == "" || d.Date.IsZero() || d.ReadyTime.IsZero()
}

// IsBridal возвращает true для свадебного дня
func (d *BookingDay) IsBridal() bool {
	return d.ServiceID == ServiceBridal
}

// IsSemiBridal возвращает true для semi-bridal дня
func (d *BookingDay) IsSemiBridal() bool {
	return d.ServiceID == ServiceSemiBridal
}

// IsBridalLike возвращает true для bridal или semi-bridal дня
// Такие дни допускают аддоны и party-услуги
func (d *BookingDay) IsBridalLike() bool {
	return d.IsBridal() || d.IsSemiBridal()
}

// IsMobile возвращает true для выездного дня
func (d *BookingDay) IsMobile() bool {
	return d.ServiceType == ServiceTypeMobile
}

// AllowsGatedAddons возвращает true, если для дня применимы аддоны
// jewellery/saree/hijab (только bridal, semi-bridal и party услуги)
func (d *BookingDay) AllowsGatedAddons() bool {
	return d.IsBridalLike() || d.ServiceID == ServiceParty
}

// HasPartyServices возвращает true, если к дню добавлены party-услуги
func (d *BookingDay) HasPartyServices() bool {
	return d.PartyServices != nil && d.PartyServices.AddServices
}

// DateKey возвращает календарную дату дня в формате YYYY-MM-DD
// Используется для подавления повторной агрегации party-услуг на одну дату
func (d *BookingDay) DateKey() string {
	return d.Date.Format(DateFormat)
}

// PartyServices дополнительные услуги для гостей, оплачиваемые за человека
type PartyServices struct {
	AddServices bool

	HairMakeup        int
	MakeupOnly        int
	HairOnly          int
	DupattaSetting    int
	ExtensionInstall  int
	SareeDraping      int
	HijabSetting      int
	Airbrush          int
}

// PartyServiceKey идентификатор party-услуги в каталоге цен
type PartyServiceKey string

const (
	PartyHairMakeup       PartyServiceKey = "party-hair-makeup"
	PartyMakeupOnly       PartyServiceKey = "party-makeup-only"
	PartyHairOnly         PartyServiceKey = "party-hair-only"
	PartyDupattaSetting   PartyServiceKey = "party-dupatta-setting"
	PartyExtensionInstall PartyServiceKey = "party-extension-install"
	PartySareeDraping     PartyServiceKey = "party-saree-draping"
	PartyHijabSetting     PartyServiceKey = "party-hijab-setting"
	PartyAirbrush         PartyServiceKey = "party-airbrush"
)

// Label возвращает человекочитаемое название party-услуги
func (k PartyServiceKey) Label() string {
	switch k {
	case PartyHairMakeup:
		return "Party Hair & Makeup"
	case PartyMakeupOnly:
		return "Party Makeup Only"
	case PartyHairOnly:
		return "Party Hair Only"
	case PartyDupattaSetting:
		return "Party Dupatta/Veil Setting"
	case PartyExtensionInstall:
		return "Party Hair Extension Install"
	case PartySareeDraping:
		return "Party Saree Draping"
	case PartyHijabSetting:
		return "Party Hijab Setting"
	case PartyAirbrush:
		return "Party Airbrush"
	default:
		return string(k)
	}
}

// PartyEntry пара услуга-количество для агрегации
type PartyEntry struct {
	Key   PartyServiceKey
	Count int
}

// Entries возвращает счетчики party-услуг в фиксированном порядке
// Порядок является частью контракта: строки сметы видны клиенту как есть
func (p *PartyServices) Entries() []PartyEntry {
	return []PartyEntry{
		{PartyHairMakeup, p.HairMakeup},
		{PartyMakeupOnly, p.MakeupOnly},
		{PartyHairOnly, p.HairOnly},
		{PartyDupattaSetting, p.DupattaSetting},
		{PartyExtensionInstall, p.ExtensionInstall},
		{PartySareeDraping, p.SareeDraping},
		{PartyHijabSetting, p.HijabSetting},
		{PartyAirbrush, p.Airbrush},
	}
}

// BridalTrial опциональная пробная встреча до свадебного дня
type BridalTrial struct {
	AddTrial      bool
	Date          time.Time
	Time          types.TimeString
	ServiceOption ServiceOption
}

// IsRequested возвращает true, если пробная встреча запрошена
func (t *BridalTrial) IsRequested() bool {
	return t != nil && t.AddTrial
}
