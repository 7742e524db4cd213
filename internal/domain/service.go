package domain

// Service справочная запись услуги из каталога
// Неизменяемые данные, управляются вне этого сервиса
type Service struct {
	ID       string
	Name     string
	Duration int // Длительность в минутах

	// BasePrice базовая цена за тир, применяется когда нет переопределения варианта
	BasePrice TierPrice

	// AskServiceType true, если услуга предлагает выбор варианта
	// (makeup-only / hair-only / makeup-and-hair)
	AskServiceType bool

	// OptionPrices явные переопределения цены для конкретных вариантов
	OptionPrices map[ServiceOption]TierPrice

	// AddonOverrides переопределения цен аддонов для этой услуги
	AddonOverrides map[AddonKey]TierPrice
}

// OptionPrice возвращает явную цену варианта, если она задана
func (s *Service) OptionPrice(option ServiceOption, tier Tier) (float64, bool) {
	if s.OptionPrices == nil {
		return 0, false
	}
	price, ok := s.OptionPrices[option]
	if !ok {
		return 0, false
	}
	return price.For(tier), true
}

// AddonOverride возвращает переопределенную цену аддона, если она задана
func (s *Service) AddonOverride(key AddonKey, tier Tier) (float64, bool) {
	if s.AddonOverrides == nil {
		return 0, false
	}
	price, ok := s.AddonOverrides[key]
	if !ok {
		return 0, false
	}
	return price.For(tier), true
}

// IsPartyService возвращает true для групповой услуги, где цена умножается
// на количество человек
func (s *Service) IsPartyService() bool {
	return s.ID == ServiceParty
}
