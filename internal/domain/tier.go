package domain

// Tier уровень исполнителя, для которого считается смета
// Обе сметы (lead и team) всегда считаются и сохраняются параллельно
type Tier string

const (
	TierLead Tier = "lead"
	TierTeam Tier = "team"
)

// Tiers порядок тиров для детерминированного обхода
var Tiers = []Tier{TierLead, TierTeam}

// IsValid возвращает true для известного тира
func (t Tier) IsValid() bool {
	return t == TierLead || t == TierTeam
}

// Label возвращает человекочитаемое название тира
func (t Tier) Label() string {
	switch t {
	case TierLead:
		return "Lead Artist"
	case TierTeam:
		return "Team Artist"
	default:
		return string(t)
	}
}

// TierPrice цена, заданная отдельно для каждого тира
type TierPrice struct {
	Lead float64
	Team float64
}

// For возвращает цену для указанного тира
func (p TierPrice) For(tier Tier) float64 {
	if tier == TierTeam {
		return p.Team
	}
	return p.Lead
}

// ServiceOption вариант услуги в рамках одного дня
type ServiceOption string

const (
	OptionMakeupAndHair ServiceOption = "makeup-and-hair"
	OptionMakeupOnly    ServiceOption = "makeup-only"
	OptionHairOnly      ServiceOption = "hair-only"
)

// IsValid возвращает true для известного варианта услуги
func (o ServiceOption) IsValid() bool {
	return o == OptionMakeupAndHair || o == OptionMakeupOnly || o == OptionHairOnly
}

// Label возвращает человекочитаемое название варианта
func (o ServiceOption) Label() string {
	switch o {
	case OptionMakeupAndHair:
		return "Makeup & Hair"
	case OptionMakeupOnly:
		return "Makeup Only"
	case OptionHairOnly:
		return "Hair Only"
	default:
		return string(o)
	}
}

// ServiceType тип выезда: студия или выезд к клиенту
type ServiceType string

const (
	ServiceTypeStudio ServiceType = "studio"
	ServiceTypeMobile ServiceType = "mobile"
)

// IsValid возвращает true для известного типа
func (t ServiceType) IsValid() bool {
	return t == ServiceTypeStudio || t == ServiceTypeMobile
}

// AddonKey идентификатор дополнительной услуги дня
type AddonKey string

const (
	AddonHairExtensions   AddonKey = "hair-extensions"
	AddonJewellerySetting AddonKey = "jewellery-setting"
	AddonSareeDraping     AddonKey = "saree-draping"
	AddonHijabSetting     AddonKey = "hijab-setting"
)

// Label возвращает человекочитаемое название аддона
func (k AddonKey) Label() string {
	switch k {
	case AddonHairExtensions:
		return "Hair Extensions"
	case AddonJewellerySetting:
		return "Jewellery/Dupatta Setting"
	case AddonSareeDraping:
		return "Saree Draping"
	case AddonHijabSetting:
		return "Hijab Setting"
	default:
		return string(k)
	}
}
