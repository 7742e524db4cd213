package pricing

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/infra/catalog"
	"github.com/m04kA/MUA-QuoteService/pkg/ptr"
	"github.com/m04kA/MUA-QuoteService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeCatalog каталог цен в памяти для тестов движка
type fakeCatalog struct {
	services   map[string]*domain.Service
	modifiers  map[domain.ServiceOption]domain.TierPrice
	addons     map[domain.AddonKey]domain.TierPrice
	surcharges map[string]domain.TierPrice
	party      map[domain.PartyServiceKey]domain.TierPrice
	trial      map[domain.ServiceOption]domain.TierPrice
}

func (f *fakeCatalog) GetService(_ context.Context, id string) (*domain.Service, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, catalog.ErrServiceNotFound
	}
	return service, nil
}

func (f *fakeCatalog) GetServiceOptionModifier(_ context.Context, option domain.ServiceOption, tier domain.Tier) (float64, error) {
	price, ok := f.modifiers[option]
	if !ok {
		return 0, fmt.Errorf("%w: modifier %q", catalog.ErrPriceNotFound, option)
	}
	return price.For(tier), nil
}

func (f *fakeCatalog) GetAddonPrice(_ context.Context, key domain.AddonKey, tier domain.Tier) (float64, error) {
	price, ok := f.addons[key]
	if !ok {
		return 0, fmt.Errorf("%w: addon %q", catalog.ErrPriceNotFound, key)
	}
	return price.For(tier), nil
}

func (f *fakeCatalog) GetMobileLocationSurcharge(_ context.Context, location string, tier domain.Tier) (float64, error) {
	price, ok := f.surcharges[location]
	if !ok {
		return 0, fmt.Errorf("%w: location %q", catalog.ErrPriceNotFound, location)
	}
	return price.For(tier), nil
}

func (f *fakeCatalog) GetBridalPartyPrice(_ context.Context, key domain.PartyServiceKey, tier domain.Tier) (float64, error) {
	price, ok := f.party[key]
	if !ok {
		return 0, fmt.Errorf("%w: party service %q", catalog.ErrPriceNotFound, key)
	}
	return price.For(tier), nil
}

func (f *fakeCatalog) GetBridalTrialPrice(_ context.Context, option domain.ServiceOption, tier domain.Tier) (float64, error) {
	price, ok := f.trial[option]
	if !ok {
		return 0, fmt.Errorf("%w: trial option %q", catalog.ErrPriceNotFound, option)
	}
	return price.For(tier), nil
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		services: map[string]*domain.Service{
			domain.ServiceBridal: {
				ID:        domain.ServiceBridal,
				Name:      "Bridal",
				BasePrice: domain.TierPrice{Lead: 800, Team: 500},
			},
			domain.ServiceSemiBridal: {
				ID:        domain.ServiceSemiBridal,
				Name:      "Semi-Bridal",
				BasePrice: domain.TierPrice{Lead: 400, Team: 300},
			},
			domain.ServiceParty: {
				ID:        domain.ServiceParty,
				Name:      "Party",
				BasePrice: domain.TierPrice{Lead: 100, Team: 80},
			},
			domain.ServiceNonBridal: {
				ID:             domain.ServiceNonBridal,
				Name:           "Photoshoot",
				BasePrice:      domain.TierPrice{Lead: 200, Team: 150},
				AskServiceType: true,
			},
		},
		modifiers: map[domain.ServiceOption]domain.TierPrice{
			domain.OptionMakeupAndHair: {Lead: 1.0, Team: 1.0},
			domain.OptionMakeupOnly:    {Lead: 0.7, Team: 0.7},
			domain.OptionHairOnly:      {Lead: 0.5, Team: 0.5},
		},
		addons: map[domain.AddonKey]domain.TierPrice{
			domain.AddonHairExtensions:   {Lead: 40, Team: 40},
			domain.AddonJewellerySetting: {Lead: 60, Team: 60},
			domain.AddonSareeDraping:     {Lead: 75, Team: 75},
			domain.AddonHijabSetting:     {Lead: 45, Team: 45},
		},
		surcharges: map[string]domain.TierPrice{
			"Surrey": {Lead: 80, Team: 80},
			"Studio": {Lead: 0, Team: 0},
		},
		party: map[domain.PartyServiceKey]domain.TierPrice{
			domain.PartyHairMakeup: {Lead: 120, Team: 90},
			domain.PartyMakeupOnly: {Lead: 80, Team: 60},
			domain.PartyHairOnly:   {Lead: 60, Team: 45},
		},
		trial: map[domain.ServiceOption]domain.TierPrice{
			domain.OptionMakeupAndHair: {Lead: 150, Team: 100},
			domain.OptionMakeupOnly:    {Lead: 100, Team: 70},
		},
	}
}

func newTestEngine() *Engine {
	return NewEngine(newFakeCatalog(), nopLogger{})
}

func mustTime(t *testing.T, value string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(value)
	require.NoError(t, err)
	return ts
}

func bridalDay(t *testing.T, date string) domain.BookingDay {
	t.Helper()
	parsed, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	return domain.BookingDay{
		Date:      parsed,
		ReadyTime: mustTime(t, "16:00"),
		ServiceID: domain.ServiceBridal,
	}
}

func lineSum(quote *domain.Quote) float64 {
	sum := 0.0
	for _, item := range quote.LineItems {
		sum += item.Price
	}
	return domain.Round2(sum)
}

func TestComputeQuote_BridalWithAddons(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.HairExtensions = 2
	day.JewellerySetting = true

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	require.Len(t, quote.LineItems, 3)
	assert.Equal(t, "Day 1: Bridal (Lead Artist)", quote.LineItems[0].Description)
	assert.Equal(t, 800.0, quote.LineItems[0].Price)
	assert.Equal(t, "  Hair Extensions x 2", quote.LineItems[1].Description)
	assert.Equal(t, 80.0, quote.LineItems[1].Price)
	assert.Equal(t, "  Jewellery/Dupatta Setting", quote.LineItems[2].Description)
	assert.Equal(t, 60.0, quote.LineItems[2].Price)

	assert.Equal(t, 940.0, quote.Subtotal)
	assert.Equal(t, 47.0, quote.Tax)
	assert.Equal(t, 987.0, quote.Total)
}

func TestComputeQuote_SubtotalEqualsLineSum(t *testing.T) {
	engine := newTestEngine()

	day1 := bridalDay(t, "2026-09-12")
	day1.HairExtensions = 3
	day1.SareeDraping = true

	day2 := bridalDay(t, "2026-09-13")
	day2.ServiceID = domain.ServiceParty
	day2.PartyPeopleCount = 4
	day2.ReadyTime = mustTime(t, "22:30")

	trial := &domain.BridalTrial{AddTrial: true, ServiceOption: domain.OptionMakeupOnly}

	for _, tier := range domain.Tiers {
		quote, err := engine.ComputeQuote(context.Background(), tier, []domain.BookingDay{day1, day2}, trial)
		require.NoError(t, err)

		assert.Equal(t, lineSum(quote), quote.Subtotal, "tier %s", tier)
		assert.Equal(t, domain.Round2(quote.Subtotal*domain.GSTRate), quote.Tax, "tier %s", tier)
		assert.Equal(t, domain.Round2(quote.Subtotal+quote.Tax), quote.Total, "tier %s", tier)
	}
}

func TestComputeQuote_Deterministic(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.HairExtensions = 1
	day.HijabSetting = true
	trial := &domain.BridalTrial{AddTrial: true}

	first, err := engine.ComputeQuote(context.Background(), domain.TierTeam, []domain.BookingDay{day}, trial)
	require.NoError(t, err)

	second, err := engine.ComputeQuote(context.Background(), domain.TierTeam, []domain.BookingDay{day}, trial)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeQuote_LateNightBoundaries(t *testing.T) {
	tests := []struct {
		readyTime string
		wantFee   bool
	}{
		{"20:59", false},
		{"21:00", true},
		{"23:30", true},
		{"05:59", true},
		{"06:00", false},
		{"12:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.readyTime, func(t *testing.T) {
			engine := newTestEngine()

			day := bridalDay(t, "2026-09-12")
			day.ReadyTime = mustTime(t, tt.readyTime)

			quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
			require.NoError(t, err)

			found := false
			for _, item := range quote.LineItems {
				if strings.HasPrefix(item.Description, "  Late Night/Early Morning Fee") {
					found = true
					assert.Equal(t, domain.LateNightSurcharge, item.Price)
				}
			}
			assert.Equal(t, tt.wantFee, found)
		})
	}
}

func TestComputeQuote_MalformedDaySkipped(t *testing.T) {
	engine := newTestEngine()

	good := bridalDay(t, "2026-09-12")
	malformed := domain.BookingDay{ServiceID: domain.ServiceBridal} // Нет даты и времени

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{malformed, good}, nil)
	require.NoError(t, err)

	require.Len(t, quote.LineItems, 1)
	// Нумерация дней сохраняет исходные позиции
	assert.Equal(t, "Day 2: Bridal (Lead Artist)", quote.LineItems[0].Description)
	assert.Equal(t, 800.0, quote.Subtotal)
}

func TestComputeQuote_UnknownServiceFails(t *testing.T) {
	engine := newTestEngine()

	unknown := bridalDay(t, "2026-09-12")
	unknown.ServiceID = "no-such-service"
	good := bridalDay(t, "2026-09-13")

	// Неизвестная услуга не пропускается: иначе бронь из одного такого дня
	// получила бы успешную нулевую смету
	_, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{unknown, good}, nil)
	assert.ErrorIs(t, err, ErrPriceLookup)

	_, err = engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{unknown}, nil)
	assert.ErrorIs(t, err, ErrPriceLookup)
}

func TestComputeQuote_PartyMultiplier(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.ServiceID = domain.ServiceParty
	day.PartyPeopleCount = 3

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	require.Len(t, quote.LineItems, 1)
	assert.Equal(t, "Day 1: Party (Lead Artist) x 3", quote.LineItems[0].Description)
	assert.Equal(t, 300.0, quote.LineItems[0].Price)
}

func TestComputeQuote_PartyCountDefaultsToOne(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.ServiceID = domain.ServiceParty
	day.PartyPeopleCount = 0

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	require.Len(t, quote.LineItems, 1)
	assert.Equal(t, 100.0, quote.LineItems[0].Price)
}

func TestComputeQuote_OptionModifier(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.ServiceID = domain.ServiceNonBridal
	day.ServiceOption = domain.OptionHairOnly

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	require.Len(t, quote.LineItems, 1)
	assert.Equal(t, "Day 1: Photoshoot - Hair Only (Lead Artist)", quote.LineItems[0].Description)
	assert.Equal(t, 100.0, quote.LineItems[0].Price)
}

func TestComputeQuote_SameDatePartySuppression(t *testing.T) {
	engine := newTestEngine()

	partyServices := &domain.PartyServices{AddServices: true, HairMakeup: 2}

	bridal := bridalDay(t, "2026-09-12")
	bridal.PartyServices = partyServices

	semi := bridalDay(t, "2026-09-12")
	semi.ServiceID = domain.ServiceSemiBridal
	semi.PartyServices = &domain.PartyServices{AddServices: true, HairMakeup: 3}

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{bridal, semi}, nil)
	require.NoError(t, err)

	// Party-строка bridal-дня присутствует, вклад semi-bridal дня подавлен
	partyLines := 0
	for _, item := range quote.LineItems {
		if item.Description == "  Party Hair & Makeup x 2" {
			partyLines++
		}
		assert.NotEqual(t, "  Party Hair & Makeup x 3", item.Description)
	}
	assert.Equal(t, 1, partyLines)
}

func TestComputeQuote_DifferentDatePartyNotSuppressed(t *testing.T) {
	engine := newTestEngine()

	bridal := bridalDay(t, "2026-09-12")
	bridal.PartyServices = &domain.PartyServices{AddServices: true, HairMakeup: 2}

	semi := bridalDay(t, "2026-09-13")
	semi.ServiceID = domain.ServiceSemiBridal
	semi.PartyServices = &domain.PartyServices{AddServices: true, HairMakeup: 3}

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{bridal, semi}, nil)
	require.NoError(t, err)

	descriptions := make([]string, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		descriptions = append(descriptions, item.Description)
	}
	assert.Contains(t, descriptions, "  Party Hair & Makeup x 2")
	assert.Contains(t, descriptions, "  Party Hair & Makeup x 3")
}

func TestComputeQuote_SareeFlatPriceWithPartyServices(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.SareeDraping = true
	day.PartyServices = &domain.PartyServices{AddServices: true, MakeupOnly: 1}

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	var sareePrice float64
	for _, item := range quote.LineItems {
		if item.Description == "  Saree Draping" {
			sareePrice = item.Price
		}
	}
	assert.Equal(t, domain.PartySareeFlatPrice, sareePrice)
}

func TestComputeQuote_SareeRegularPriceWithoutPartyServices(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.SareeDraping = true

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	var sareePrice float64
	for _, item := range quote.LineItems {
		if item.Description == "  Saree Draping" {
			sareePrice = item.Price
		}
	}
	assert.Equal(t, 75.0, sareePrice)
}

func TestComputeQuote_GatedAddonsIgnoredForNonBridal(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.ServiceID = domain.ServiceNonBridal
	day.JewellerySetting = true
	day.SareeDraping = true
	day.HijabSetting = true

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	require.Len(t, quote.LineItems, 1)
}

func TestComputeQuote_TravelFee(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.ServiceType = domain.ServiceTypeMobile
	day.MobileLocation = ptr.Ptr("Surrey")

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	descriptions := make([]string, 0, len(quote.LineItems))
	for _, item := range quote.LineItems {
		descriptions = append(descriptions, item.Description)
	}
	assert.Contains(t, descriptions, "  Travel Fee (Surrey)")
}

func TestComputeQuote_ZeroSurchargeOmitted(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	day.ServiceType = domain.ServiceTypeMobile
	day.MobileLocation = ptr.Ptr("Studio")

	quote, err := engine.ComputeQuote(context.Background(), domain.TierLead, []domain.BookingDay{day}, nil)
	require.NoError(t, err)

	require.Len(t, quote.LineItems, 1)
}

func TestComputeQuote_TrialIsLastLine(t *testing.T) {
	engine := newTestEngine()

	day := bridalDay(t, "2026-09-12")
	trial := &domain.BridalTrial{AddTrial: true, ServiceOption: domain.OptionMakeupOnly}

	quote, err := engine.ComputeQuote(context.Background(), domain.TierTeam, []domain.BookingDay{day}, trial)
	require.NoError(t, err)

	require.NotEmpty(t, quote.LineItems)
	last := quote.LineItems[len(quote.LineItems)-1]
	assert.Equal(t, "Bridal Trial - Makeup Only (Team Artist)", last.Description)
	assert.Equal(t, 70.0, last.Price)
}

func TestComputeQuote_InvalidTier(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.ComputeQuote(context.Background(), "vip", []domain.BookingDay{bridalDay(t, "2026-09-12")}, nil)
	assert.ErrorIs(t, err, ErrInvalidTier)
}
