package pricing

import (
	"context"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// PriceCatalog контракт каталога цен
// Внедряется как зависимость, чтобы расчет оставался детерминированным
// и тестируемым на фикстурах (никаких синглтонов)
type PriceCatalog interface {
	// GetService возвращает услугу по id
	// Должен возвращать catalog.ErrServiceNotFound для неизвестного id
	GetService(ctx context.Context, serviceID string) (*domain.Service, error)

	// GetServiceOptionModifier возвращает множитель базовой цены для варианта услуги
	GetServiceOptionModifier(ctx context.Context, option domain.ServiceOption, tier domain.Tier) (float64, error)

	// GetAddonPrice возвращает цену аддона по умолчанию
	GetAddonPrice(ctx context.Context, addon domain.AddonKey, tier domain.Tier) (float64, error)

	// GetMobileLocationSurcharge возвращает транспортную доплату для локации
	GetMobileLocationSurcharge(ctx context.Context, location string, tier domain.Tier) (float64, error)

	// GetBridalPartyPrice возвращает цену party-услуги за человека
	GetBridalPartyPrice(ctx context.Context, key domain.PartyServiceKey, tier domain.Tier) (float64, error)

	// GetBridalTrialPrice возвращает цену пробной встречи для варианта услуги
	GetBridalTrialPrice(ctx context.Context, option domain.ServiceOption, tier domain.Tier) (float64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
