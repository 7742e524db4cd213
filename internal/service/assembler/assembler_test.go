package assembler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/pkg/ptr"
	"github.com/m04kA/MUA-QuoteService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeIDChecker помнит занятые идентификаторы
type fakeIDChecker struct {
	taken map[string]bool
	calls int
}

func (f *fakeIDChecker) ExistsID(_ context.Context, id string) (bool, error) {
	f.calls++
	return f.taken[id], nil
}

// seqIDGenerator выдает идентификаторы по списку
type seqIDGenerator struct {
	ids  []string
	next int
}

func (g *seqIDGenerator) NextID() string {
	id := g.ids[g.next%len(g.ids)]
	g.next++
	return id
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(checker *fakeIDChecker, gen *seqIDGenerator) *Service {
	return NewServiceWithDeps(checker, gen,
		fixedClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}, nopLogger{})
}

func testDay(t *testing.T, date, serviceID string) domain.BookingDay {
	t.Helper()
	parsed, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	ready, err := types.NewTimeStringFromString("15:00")
	require.NoError(t, err)
	return domain.BookingDay{Date: parsed, ReadyTime: ready, ServiceID: serviceID}
}

func testQuotes(leadTotal, teamTotal float64) (*domain.Quote, *domain.Quote) {
	lead := &domain.Quote{Total: leadTotal}
	team := &domain.Quote{Total: teamTotal}
	return lead, team
}

func TestAssemble(t *testing.T) {
	checker := &fakeIDChecker{taken: map[string]bool{}}
	gen := &seqIDGenerator{ids: []string{"0042"}}
	svc := newTestService(checker, gen)

	days := []domain.BookingDay{testDay(t, "2026-09-12", domain.ServiceBridal)}
	days[0].ServiceType = domain.ServiceTypeMobile
	days[0].MobileLocation = ptr.Ptr("Surrey")

	lead, team := testQuotes(1000, 800)
	contact := domain.Contact{Name: "Priya", Phone: "+1604555"}

	quote, err := svc.Assemble(context.Background(), contact, days, nil, lead, team)
	require.NoError(t, err)

	assert.Equal(t, "0042", quote.ID)
	assert.Equal(t, domain.StatusQuoted, quote.Status)
	assert.Equal(t, contact, quote.Contact)
	assert.Equal(t, 1000.0, quote.Quotes.Lead.Total)
	assert.Equal(t, 800.0, quote.Quotes.Team.Total)
	assert.True(t, quote.Booking.HasMobileService)
	require.NotNil(t, quote.Booking.Address)
	assert.Equal(t, "Surrey", *quote.Booking.Address)
	assert.Nil(t, quote.SelectedQuote)
	assert.Equal(t, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC), quote.QuoteGeneratedAt)
}

func TestAssemble_IDCollisionRetry(t *testing.T) {
	checker := &fakeIDChecker{taken: map[string]bool{"0001": true, "0002": true}}
	gen := &seqIDGenerator{ids: []string{"0001", "0002", "0003"}}
	svc := newTestService(checker, gen)

	lead, team := testQuotes(100, 80)
	quote, err := svc.Assemble(context.Background(), domain.Contact{Name: "A", Phone: "1"},
		[]domain.BookingDay{testDay(t, "2026-09-12", domain.ServiceBridal)}, nil, lead, team)

	require.NoError(t, err)
	assert.Equal(t, "0003", quote.ID)
	assert.Equal(t, 3, checker.calls)
}

func TestAssemble_IDExhausted(t *testing.T) {
	checker := &fakeIDChecker{taken: map[string]bool{"7777": true}}
	gen := &seqIDGenerator{ids: []string{"7777"}}
	svc := newTestService(checker, gen)

	lead, team := testQuotes(100, 80)
	_, err := svc.Assemble(context.Background(), domain.Contact{Name: "A", Phone: "1"},
		[]domain.BookingDay{testDay(t, "2026-09-12", domain.ServiceBridal)}, nil, lead, team)

	assert.ErrorIs(t, err, ErrIDExhausted)
	assert.Equal(t, domain.BookingIDAttempts, checker.calls)
}

func TestAggregateParty_SameDateSuppression(t *testing.T) {
	bridal := domain.BookingDay{ServiceID: domain.ServiceBridal}
	bridal.Date, _ = time.Parse(domain.DateFormat, "2026-09-12")
	bridal.ReadyTime, _ = types.NewTimeStringFromString("15:00")
	bridal.PartyServices = &domain.PartyServices{AddServices: true, HairMakeup: 2}

	semi := bridal
	semi.ServiceID = domain.ServiceSemiBridal
	semi.PartyServices = &domain.PartyServices{AddServices: true, HairMakeup: 3}

	total := aggregateParty([]domain.BookingDay{bridal, semi})
	require.NotNil(t, total)
	assert.Equal(t, 2, total.HairMakeup)
}

func TestAggregateParty_DifferentDates(t *testing.T) {
	bridal := domain.BookingDay{ServiceID: domain.ServiceBridal}
	bridal.Date, _ = time.Parse(domain.DateFormat, "2026-09-12")
	bridal.ReadyTime, _ = types.NewTimeStringFromString("15:00")
	bridal.PartyServices = &domain.PartyServices{AddServices: true, HairMakeup: 2, SareeDraping: 1}

	semi := bridal
	semi.ServiceID = domain.ServiceSemiBridal
	semi.Date, _ = time.Parse(domain.DateFormat, "2026-09-13")
	semi.PartyServices = &domain.PartyServices{AddServices: true, HairMakeup: 3}

	total := aggregateParty([]domain.BookingDay{bridal, semi})
	require.NotNil(t, total)
	assert.Equal(t, 5, total.HairMakeup)
	assert.Equal(t, 1, total.SareeDraping)
}

func TestAggregateParty_NoPartyServices(t *testing.T) {
	day := domain.BookingDay{ServiceID: domain.ServiceBridal}
	day.Date, _ = time.Parse(domain.DateFormat, "2026-09-12")
	day.ReadyTime, _ = types.NewTimeStringFromString("15:00")

	assert.Nil(t, aggregateParty([]domain.BookingDay{day}))
}

func TestInferSelectedTier(t *testing.T) {
	svc := newTestService(&fakeIDChecker{taken: map[string]bool{}}, &seqIDGenerator{ids: []string{"0001"}})

	quote := &domain.FinalQuote{
		ID: "0001",
		Quotes: domain.TierQuotes{
			Lead: domain.Quote{Total: 1000},
			Team: domain.Quote{Total: 800},
		},
	}

	tests := []struct {
		name    string
		paid    float64
		want    domain.Tier
		wantErr bool
	}{
		{"exact lead deposit", 500, domain.TierLead, false},
		{"lead deposit within tolerance", 499.20, domain.TierLead, false},
		{"exact team deposit", 400, domain.TierTeam, false},
		{"matches neither", 450, "", true},
		{"zero paid", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, err := svc.InferSelectedTier(quote, tt.paid)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrTierUnresolved)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tier)
		})
	}
}

func TestInferSelectedTier_Ambiguous(t *testing.T) {
	svc := newTestService(&fakeIDChecker{taken: map[string]bool{}}, &seqIDGenerator{ids: []string{"0001"}})

	// Сметы так близки, что аванс подходит обеим
	quote := &domain.FinalQuote{
		ID: "0002",
		Quotes: domain.TierQuotes{
			Lead: domain.Quote{Total: 1000},
			Team: domain.Quote{Total: 999},
		},
	}

	_, err := svc.InferSelectedTier(quote, 500)
	assert.ErrorIs(t, err, ErrTierUnresolved)
}

func TestRandomIDGenerator_Format(t *testing.T) {
	gen := NewRandomIDGenerator()
	for i := 0; i < 100; i++ {
		id := gen.NextID()
		assert.Len(t, id, 4)
	}
}
