package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/pkg/dbmetrics"
	"github.com/m04kA/MUA-QuoteService/pkg/psqlbuilder"
)

// Repository каталог цен поверх PostgreSQL
// Только чтение: справочные таблицы управляются вне этого сервиса
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает услугу по id вместе с переопределениями цен
func (r *Repository) GetService(ctx context.Context, serviceID string) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"duration_minutes",
		"ask_service_type",
		"base_price_lead",
		"base_price_team",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.Service
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.Name,
		&service.Duration,
		&service.AskServiceType,
		&service.BasePrice.Lead,
		&service.BasePrice.Team,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	if service.OptionPrices, err = r.loadOptionPrices(ctx, serviceID); err != nil {
		return nil, err
	}
	if service.AddonOverrides, err = r.loadAddonOverrides(ctx, serviceID); err != nil {
		return nil, err
	}

	return &service, nil
}

// GetServiceOptionModifier получает множитель базовой цены для варианта услуги
func (r *Repository) GetServiceOptionModifier(ctx context.Context, option domain.ServiceOption, tier domain.Tier) (float64, error) {
	return r.lookupTierValue(ctx, "option_modifiers", "modifier", squirrel.Eq{"option": string(option)}, tier,
		fmt.Sprintf("option modifier %q", option))
}

// GetAddonPrice получает цену аддона по умолчанию
func (r *Repository) GetAddonPrice(ctx context.Context, addon domain.AddonKey, tier domain.Tier) (float64, error) {
	return r.lookupTierValue(ctx, "addon_prices", "price", squirrel.Eq{"addon_key": string(addon)}, tier,
		fmt.Sprintf("addon %q", addon))
}

// GetMobileLocationSurcharge получает транспортную доплату для локации
func (r *Repository) GetMobileLocationSurcharge(ctx context.Context, location string, tier domain.Tier) (float64, error) {
	return r.lookupTierValue(ctx, "mobile_location_surcharges", "surcharge", squirrel.Eq{"location": location}, tier,
		fmt.Sprintf("mobile location %q", location))
}

// GetBridalPartyPrice получает цену party-услуги за человека
func (r *Repository) GetBridalPartyPrice(ctx context.Context, key domain.PartyServiceKey, tier domain.Tier) (float64, error) {
	return r.lookupTierValue(ctx, "bridal_party_prices", "price", squirrel.Eq{"service_key": string(key)}, tier,
		fmt.Sprintf("bridal party service %q", key))
}

// GetBridalTrialPrice получает цену пробной встречи для варианта услуги
func (r *Repository) GetBridalTrialPrice(ctx context.Context, option domain.ServiceOption, tier domain.Tier) (float64, error) {
	return r.lookupTierValue(ctx, "bridal_trial_prices", "price", squirrel.Eq{"option": string(option)}, tier,
		fmt.Sprintf("bridal trial option %q", option))
}

// lookupTierValue читает пару значений lead/team из справочной таблицы
// и возвращает значение запрошенного тира
func (r *Repository) lookupTierValue(ctx context.Context, table, column string, where squirrel.Eq, tier domain.Tier, what string) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(column+"_lead", column+"_team").
		From(table).
		Where(where).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: lookupTierValue - build select query for %s: %v", ErrBuildQuery, what, err)
	}

	var value domain.TierPrice
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value.Lead, &value.Team)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("%w: %s", ErrPriceNotFound, what)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: lookupTierValue - scan %s: %v", ErrScanRow, what, err)
	}

	return value.For(tier), nil
}

// loadOptionPrices читает переопределения цен вариантов услуги
func (r *Repository) loadOptionPrices(ctx context.Context, serviceID string) (map[domain.ServiceOption]domain.TierPrice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("option", "price_lead", "price_team").
		From("service_option_prices").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadOptionPrices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadOptionPrices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	prices := make(map[domain.ServiceOption]domain.TierPrice)
	for rows.Next() {
		var option string
		var price domain.TierPrice
		if err := rows.Scan(&option, &price.Lead, &price.Team); err != nil {
			return nil, fmt.Errorf("%w: loadOptionPrices - scan row: %v", ErrScanRow, err)
		}
		prices[domain.ServiceOption(option)] = price
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadOptionPrices - rows error: %v", ErrScanRow, err)
	}

	if len(prices) == 0 {
		return nil, nil
	}
	return prices, nil
}

// loadAddonOverrides читает переопределения цен аддонов услуги
func (r *Repository) loadAddonOverrides(ctx context.Context, serviceID string) (map[domain.AddonKey]domain.TierPrice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("addon_key", "price_lead", "price_team").
		From("service_addon_overrides").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadAddonOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadAddonOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make(map[domain.AddonKey]domain.TierPrice)
	for rows.Next() {
		var key string
		var price domain.TierPrice
		if err := rows.Scan(&key, &price.Lead, &price.Team); err != nil {
			return nil, fmt.Errorf("%w: loadAddonOverrides - scan row: %v", ErrScanRow, err)
		}
		overrides[domain.AddonKey(key)] = price
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadAddonOverrides - rows error: %v", ErrScanRow, err)
	}

	if len(overrides) == 0 {
		return nil, nil
	}
	return overrides, nil
}
