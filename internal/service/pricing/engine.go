package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/infra/catalog"
)

// Engine движок расчета смет
// Не хранит изменяемого состояния: один и тот же вход всегда дает
// байт-в-байт одинаковую смету, расчет можно запускать параллельно
type Engine struct {
	catalog PriceCatalog
	logger  Logger
}

// NewEngine создает новый движок расчета
func NewEngine(priceCatalog PriceCatalog, logger Logger) *Engine {
	return &Engine{
		catalog: priceCatalog,
		logger:  logger,
	}
}

// ComputeQuote считает смету для одного тира по списку дней и пробной встрече
// Вызывается по разу на каждый тир. Порядок строк - часть контракта:
// день, его аддоны, его доплаты, затем следующий день, пробная встреча последней
//
// Дни без услуги, даты или времени готовности молча исключаются из расчета
// (валидация - внешняя забота до этого этапа). Неизвестная услуга или
// неразрешенная цена - ошибка, а не пропуск
func (e *Engine) ComputeQuote(ctx context.Context, tier domain.Tier, days []domain.BookingDay, trial *domain.BridalTrial) (*domain.Quote, error) {
	if !tier.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTier, tier)
	}

	quote := &domain.Quote{LineItems: make([]domain.LineItem, 0)}
	subtotal := 0.0

	// Даты, на которых party-услуги уже учтены bridal-днем
	// Semi-bridal день на такой дате свой вклад не дает
	bridalPartyDates := collectBridalPartyDates(days)

	for i := range days {
		day := &days[i]

		if day.IsMalformed() {
			e.logger.Warn("ComputeQuote: day %d is malformed, excluded from pricing", i+1)
			continue
		}

		service, err := e.catalog.GetService(ctx, day.ServiceID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				// Неизвестная услуга фатальна для расчета: молчаливый пропуск
				// дал бы клиенту нулевую смету вместо ошибки
				return nil, fmt.Errorf("%w: day %d references unknown service %q", ErrPriceLookup, i+1, day.ServiceID)
			}
			return nil, fmt.Errorf("%w: day %d - get service %q: %v", ErrInternal, i+1, day.ServiceID, err)
		}

		daySubtotal, err := e.priceDay(ctx, quote, tier, day, service, i, bridalPartyDates)
		if err != nil {
			return nil, err
		}
		subtotal += daySubtotal
	}

	if trial.IsRequested() {
		price, err := e.priceTrial(ctx, quote, tier, trial)
		if err != nil {
			return nil, err
		}
		subtotal += price
	}

	quote.Subtotal = domain.Round2(subtotal)
	quote.Tax = domain.Round2(quote.Subtotal * domain.GSTRate)
	quote.Total = domain.Round2(quote.Subtotal + quote.Tax)

	return quote, nil
}

// priceDay считает все строки одного дня: заголовочную позицию, аддоны,
// транспортную и ночную доплаты, агрегацию party-услуг
// Возвращает вклад дня в subtotal
func (e *Engine) priceDay(
	ctx context.Context,
	quote *domain.Quote,
	tier domain.Tier,
	day *domain.BookingDay,
	service *domain.Service,
	index int,
	bridalPartyDates map[string]bool,
) (float64, error) {
	daySubtotal := 0.0

	option := resolveOption(day, service)
	people := peopleCount(day, service)

	// 1. Заголовочная позиция дня
	unit, err := e.resolveUnitPrice(ctx, service, option, tier)
	if err != nil {
		return 0, err
	}

	headline := domain.Round2(unit * float64(people))
	daySubtotal += appendLine(quote, headlineDescription(index, service, option, tier, people), headline)

	// 2. Наращивание волос: цена за единицу умножается на количество
	if day.HairExtensions > 0 {
		addonUnit, err := e.resolveAddonPrice(ctx, service, domain.AddonHairExtensions, tier)
		if err != nil {
			return 0, err
		}
		price := domain.Round2(addonUnit * float64(day.HairExtensions) * float64(people))
		daySubtotal += appendLine(quote,
			fmt.Sprintf("  %s x %d", domain.AddonHairExtensions.Label(), day.HairExtensions), price)
	}

	// 3. Аддоны, доступные только для bridal/semi-bridal/party услуг
	if day.AllowsGatedAddons() {
		if day.JewellerySetting {
			addonUnit, err := e.resolveAddonPrice(ctx, service, domain.AddonJewellerySetting, tier)
			if err != nil {
				return 0, err
			}
			price := domain.Round2(addonUnit * float64(people))
			daySubtotal += appendLine(quote, "  "+domain.AddonJewellerySetting.Label(), price)
		}

		if day.SareeDraping {
			addonUnit, err := e.resolveSareePrice(ctx, day, service, tier)
			if err != nil {
				return 0, err
			}
			price := domain.Round2(addonUnit * float64(people))
			daySubtotal += appendLine(quote, "  "+domain.AddonSareeDraping.Label(), price)
		}

		if day.HijabSetting {
			addonUnit, err := e.resolveAddonPrice(ctx, service, domain.AddonHijabSetting, tier)
			if err != nil {
				return 0, err
			}
			price := domain.Round2(addonUnit * float64(people))
			daySubtotal += appendLine(quote, "  "+domain.AddonHijabSetting.Label(), price)
		}
	}

	// 4. Транспортная доплата за выезд
	if day.IsMobile() && day.MobileLocation != nil {
		surcharge, err := e.catalog.GetMobileLocationSurcharge(ctx, *day.MobileLocation, tier)
		if err != nil {
			return 0, fmt.Errorf("%w: travel surcharge for %q (%s): %v", ErrPriceLookup, *day.MobileLocation, tier, err)
		}
		if surcharge > 0 {
			daySubtotal += appendLine(quote,
				fmt.Sprintf("  Travel Fee (%s)", *day.MobileLocation), domain.Round2(surcharge))
		}
	}

	// 5. Доплата за поздний вечер / раннее утро
	if hour, err := day.ReadyTime.Hour(); err == nil {
		if hour >= domain.LateNightStartHour || hour < domain.EarlyMorningEndHour {
			daySubtotal += appendLine(quote,
				fmt.Sprintf("  Late Night/Early Morning Fee (%s)", day.ReadyTime.Format12Hour()),
				domain.LateNightSurcharge)
		}
	} else {
		e.logger.Warn("ComputeQuote: day %d has unparseable ready time %q, late-night fee skipped", index+1, day.ReadyTime)
	}

	// 6. Party-услуги для гостей
	if day.IsBridalLike() && day.HasPartyServices() {
		if day.IsSemiBridal() && bridalPartyDates[day.DateKey()] {
			// На эту дату party-услуги уже учтены bridal-днем
			return daySubtotal, nil
		}

		for _, entry := range day.PartyServices.Entries() {
			if entry.Count <= 0 {
				continue
			}
			perPerson, err := e.catalog.GetBridalPartyPrice(ctx, entry.Key, tier)
			if err != nil {
				return 0, fmt.Errorf("%w: bridal party price for %q (%s): %v", ErrPriceLookup, entry.Key, tier, err)
			}
			price := domain.Round2(perPerson * float64(entry.Count))
			daySubtotal += appendLine(quote,
				fmt.Sprintf("  %s x %d", entry.Key.Label(), entry.Count), price)
		}
	}

	return daySubtotal, nil
}

// priceTrial добавляет строку пробной встречи
func (e *Engine) priceTrial(ctx context.Context, quote *domain.Quote, tier domain.Tier, trial *domain.BridalTrial) (float64, error) {
	option := trial.ServiceOption
	if option == "" {
		option = domain.OptionMakeupAndHair
	}

	price, err := e.catalog.GetBridalTrialPrice(ctx, option, tier)
	if err != nil {
		return 0, fmt.Errorf("%w: bridal trial price for %q (%s): %v", ErrPriceLookup, option, tier, err)
	}

	return appendLine(quote,
		fmt.Sprintf("Bridal Trial - %s (%s)", option.Label(), tier.Label()), domain.Round2(price)), nil
}

// resolveUnitPrice разрешает цену заголовочной позиции дня:
// явное переопределение варианта, иначе базовая цена с множителем варианта,
// иначе базовая цена (для услуг без вариантов)
func (e *Engine) resolveUnitPrice(ctx context.Context, service *domain.Service, option domain.ServiceOption, tier domain.Tier) (float64, error) {
	if price, ok := service.OptionPrice(option, tier); ok {
		return price, nil
	}

	if service.AskServiceType {
		modifier, err := e.catalog.GetServiceOptionModifier(ctx, option, tier)
		if err != nil {
			return 0, fmt.Errorf("%w: option modifier for %q (%s): %v", ErrPriceLookup, option, tier, err)
		}
		return service.BasePrice.For(tier) * modifier, nil
	}

	return service.BasePrice.For(tier), nil
}

// resolveAddonPrice разрешает цену аддона: переопределение услуги,
// иначе цена каталога по умолчанию
func (e *Engine) resolveAddonPrice(ctx context.Context, service *domain.Service, key domain.AddonKey, tier domain.Tier) (float64, error) {
	if price, ok := service.AddonOverride(key, tier); ok {
		return price, nil
	}

	price, err := e.catalog.GetAddonPrice(ctx, key, tier)
	if err != nil {
		return 0, fmt.Errorf("%w: addon price for %q (%s): %v", ErrPriceLookup, key, tier, err)
	}
	return price, nil
}

// resolveSareePrice разрешает цену драпировки сари
// Для bridal/semi-bridal дней с party-услугами действует фиксированная цена
// вместо обычной цены аддона
func (e *Engine) resolveSareePrice(ctx context.Context, day *domain.BookingDay, service *domain.Service, tier domain.Tier) (float64, error) {
	if day.IsBridalLike() && day.HasPartyServices() {
		return domain.PartySareeFlatPrice, nil
	}
	return e.resolveAddonPrice(ctx, service, domain.AddonSareeDraping, tier)
}

// resolveOption возвращает вариант услуги дня
// Вариант имеет смысл только если услуга его предлагает, дефолт makeup-and-hair
func resolveOption(day *domain.BookingDay, service *domain.Service) domain.ServiceOption {
	if !service.AskServiceType {
		return domain.OptionMakeupAndHair
	}
	if day.ServiceOption == "" {
		return domain.OptionMakeupAndHair
	}
	return day.ServiceOption
}

// peopleCount возвращает количество человек для дня
// Умножение на количество действует только для групповой услуги party
func peopleCount(day *domain.BookingDay, service *domain.Service) int {
	if !service.IsPartyService() {
		return 1
	}
	if day.PartyPeopleCount < 1 {
		return 1
	}
	return day.PartyPeopleCount
}

// headlineDescription формирует описание заголовочной позиции дня
func headlineDescription(index int, service *domain.Service, option domain.ServiceOption, tier domain.Tier, people int) string {
	desc := fmt.Sprintf("Day %d: %s (%s)", index+1, service.Name, tier.Label())
	if service.AskServiceType {
		desc = fmt.Sprintf("Day %d: %s - %s (%s)", index+1, service.Name, option.Label(), tier.Label())
	}
	if people > 1 {
		desc = fmt.Sprintf("%s x %d", desc, people)
	}
	return desc
}

// appendLine добавляет строку в смету и возвращает её цену
func appendLine(quote *domain.Quote, description string, price float64) float64 {
	quote.LineItems = append(quote.LineItems, domain.LineItem{
		Description: description,
		Price:       price,
	})
	return price
}

// collectBridalPartyDates возвращает даты, на которых bridal-день
// с включенными party-услугами уже дает агрегацию
func collectBridalPartyDates(days []domain.BookingDay) map[string]bool {
	dates := make(map[string]bool)
	for i := range days {
		day := &days[i]
		if day.IsMalformed() {
			continue
		}
		if day.IsBridal() && day.HasPartyServices() {
			dates[day.DateKey()] = true
		}
	}
	return dates
}
