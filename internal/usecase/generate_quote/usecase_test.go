package generate_quote

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/service/assembler"
	"github.com/m04kA/MUA-QuoteService/internal/service/pricing"
	"github.com/m04kA/MUA-QuoteService/pkg/ptr"
	"github.com/m04kA/MUA-QuoteService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeEngine возвращает фиксированные сметы по тиру
type fakeEngine struct {
	computed []domain.Tier
	err      error
}

func (f *fakeEngine) ComputeQuote(_ context.Context, tier domain.Tier, _ []domain.BookingDay, _ *domain.BridalTrial) (*domain.Quote, error) {
	f.computed = append(f.computed, tier)
	if f.err != nil {
		return nil, f.err
	}
	if tier == domain.TierLead {
		return &domain.Quote{Subtotal: 1000, Tax: 50, Total: 1050}, nil
	}
	return &domain.Quote{Subtotal: 800, Tax: 40, Total: 840}, nil
}

type fakeAssembler struct {
	err error
}

func (f *fakeAssembler) Assemble(_ context.Context, contact domain.Contact, days []domain.BookingDay, trial *domain.BridalTrial, lead, team *domain.Quote) (*domain.FinalQuote, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.FinalQuote{
		ID:      "0042",
		Status:  domain.StatusQuoted,
		Contact: contact,
		Booking: domain.Booking{Days: days, Trial: trial},
		Quotes:  domain.TierQuotes{Lead: *lead, Team: *team},
	}, nil
}

type fakeRepo struct {
	created *domain.FinalQuote
}

func (f *fakeRepo) Create(_ context.Context, quote *domain.FinalQuote) (*domain.FinalQuote, error) {
	f.created = quote
	return quote, nil
}

type fakeScheduler struct {
	scheduled  int
	beforeSave bool
	repo       *fakeRepo
}

func (f *fakeScheduler) SchedulePromo(*domain.FinalQuote, time.Time) {
	f.scheduled++
	f.beforeSave = f.repo.created == nil
}

// fnTxManager выполняет функцию без реальной транзакции
type fnTxManager struct{}

func (fnTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func testDay(t *testing.T, date string) domain.BookingDay {
	t.Helper()
	parsed, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	ready, err := types.NewTimeStringFromString("15:00")
	require.NoError(t, err)
	return domain.BookingDay{Date: parsed, ReadyTime: ready, ServiceID: domain.ServiceBridal}
}

func validRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		Contact: domain.Contact{Name: "Priya", Phone: "+1604555"},
		Days:    []domain.BookingDay{testDay(t, "2026-09-12")},
	}
}

func testTrial(t *testing.T, date string) *domain.BridalTrial {
	t.Helper()
	parsed, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	tm, err := types.NewTimeStringFromString("13:00")
	require.NoError(t, err)
	return &domain.BridalTrial{AddTrial: true, Date: parsed, Time: tm}
}

type fixture struct {
	uc        *UseCase
	engine    *fakeEngine
	assembler *fakeAssembler
	repo      *fakeRepo
	scheduler *fakeScheduler
}

func newFixture() *fixture {
	engine := &fakeEngine{}
	quoteAssembler := &fakeAssembler{}
	repo := &fakeRepo{}
	scheduler := &fakeScheduler{repo: repo}

	uc := NewUseCase(engine, quoteAssembler, repo, scheduler, fnTxManager{}, nopLogger{}).
		WithTimeProvider(fixedClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)})

	return &fixture{uc: uc, engine: engine, assembler: quoteAssembler, repo: repo, scheduler: scheduler}
}

func TestExecute(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "0042", resp.ID)
	assert.Equal(t, string(domain.StatusQuoted), resp.Status)

	// Считаются обе сметы
	assert.Equal(t, []domain.Tier{domain.TierLead, domain.TierTeam}, f.engine.computed)
	assert.Equal(t, 1050.0, resp.Lead.Total)
	assert.Equal(t, 840.0, resp.Team.Total)
	assert.Equal(t, 525.0, resp.Lead.DepositAmount)
	assert.Equal(t, 420.0, resp.Team.DepositAmount)

	// Промо-расписание ложится в БД вместе с документом
	assert.Equal(t, 1, f.scheduler.scheduled)
	assert.True(t, f.scheduler.beforeSave, "promo schedule computed before the quote is persisted")
	require.NotNil(t, f.repo.created)
}

func TestExecute_IDExhausted(t *testing.T) {
	f := newFixture()
	f.assembler.err = assembler.ErrIDExhausted

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrIDExhausted)
}

func TestExecute_MalformedDayTolerated(t *testing.T) {
	f := newFixture()

	req := validRequest(t)
	req.Days = append(req.Days, domain.BookingDay{ServiceID: domain.ServiceParty}) // Без даты и времени

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err, "a malformed day alongside a usable one is not an error")
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, req *Request)
		wantErr error
	}{
		{
			name:    "missing contact name",
			mutate:  func(_ *testing.T, req *Request) { req.Contact.Name = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing contact phone",
			mutate:  func(_ *testing.T, req *Request) { req.Contact.Phone = "" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "no days",
			mutate:  func(_ *testing.T, req *Request) { req.Days = nil },
			wantErr: ErrInvalidInput,
		},
		{
			name: "all days malformed",
			mutate: func(_ *testing.T, req *Request) {
				req.Days = []domain.BookingDay{{ServiceID: domain.ServiceBridal}}
			},
			wantErr: ErrNoUsableDays,
		},
		{
			name: "unknown service option",
			mutate: func(_ *testing.T, req *Request) {
				req.Days[0].ServiceOption = "nails-only"
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "mobile day without location",
			mutate: func(_ *testing.T, req *Request) {
				req.Days[0].ServiceType = domain.ServiceTypeMobile
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "negative hair extensions",
			mutate: func(_ *testing.T, req *Request) {
				req.Days[0].HairExtensions = -1
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "negative party count",
			mutate: func(_ *testing.T, req *Request) {
				req.Days[0].PartyServices = &domain.PartyServices{AddServices: true, HairMakeup: -2}
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "trial without date",
			mutate: func(t *testing.T, req *Request) {
				tm, err := types.NewTimeStringFromString("13:00")
				require.NoError(t, err)
				req.Trial = &domain.BridalTrial{AddTrial: true, Time: tm}
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "trial on the bridal day",
			mutate: func(t *testing.T, req *Request) {
				req.Trial = testTrial(t, "2026-09-12")
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "trial after the bridal day",
			mutate: func(t *testing.T, req *Request) {
				req.Trial = testTrial(t, "2026-09-20")
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "trial with invalid option",
			mutate: func(t *testing.T, req *Request) {
				tm, err := types.NewTimeStringFromString("13:00")
				require.NoError(t, err)
				req.Trial = &domain.BridalTrial{
					AddTrial:      true,
					Date:          time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
					Time:          tm,
					ServiceOption: "lashes",
				}
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			req := validRequest(t)
			tt.mutate(t, req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_PriceLookupFailureIsClientError(t *testing.T) {
	f := newFixture()
	f.engine.err = fmt.Errorf("%w: day 1 references unknown service %q", pricing.ErrPriceLookup, "no-such-service")

	_, err := f.uc.Execute(context.Background(), validRequest(t))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Nil(t, f.repo.created)
}

func TestExecute_TrialBeforeBridalDay(t *testing.T) {
	f := newFixture()

	req := validRequest(t)
	req.Trial = testTrial(t, "2026-09-05")

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ValidationAccumulatesFields(t *testing.T) {
	f := newFixture()

	req := validRequest(t)
	req.Contact.Name = ""
	req.Contact.Phone = ""
	req.Days[0].HairExtensions = -1

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)

	// Клиент получает все проблемные поля за один запрос
	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "contact.name")
	assert.Contains(t, fields, "contact.phone")
	assert.Contains(t, fields, "days[0].hairExtensions")
}

func TestExecute_MobileDayWithLocation(t *testing.T) {
	f := newFixture()

	req := validRequest(t)
	req.Days[0].ServiceType = domain.ServiceTypeMobile
	req.Days[0].MobileLocation = ptr.Ptr("Surrey")

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}
