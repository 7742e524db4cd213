package dispatch_reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/integrations/whatsapp"
	"github.com/m04kA/MUA-QuoteService/internal/service/reminders"
	"github.com/m04kA/MUA-QuoteService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeRepo struct {
	quotes  []*domain.FinalQuote
	listErr error
	updates int
}

func (f *fakeRepo) ListActive(context.Context) ([]*domain.FinalQuote, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.quotes, nil
}

func (f *fakeRepo) Update(context.Context, *domain.FinalQuote) error {
	f.updates++
	return nil
}

// fakeNotifier падает для идентификаторов из failFor
type fakeNotifier struct {
	failFor map[string]bool
	sent    []domain.ReminderKind
}

func (f *fakeNotifier) SendReminder(_ context.Context, quote *domain.FinalQuote, kind domain.ReminderKind) (*whatsapp.SendResult, error) {
	if f.failFor[quote.ID] {
		return nil, errors.New("gateway timeout")
	}
	f.sent = append(f.sent, kind)
	msgID := "wamid." + quote.ID
	status := "sent"
	return &whatsapp.SendResult{Success: true, MessageID: &msgID, DeliveryStatus: &status}, nil
}

type fakeMetrics struct {
	sent   int
	failed int
}

func (f *fakeMetrics) IncReminderSent(string)   { f.sent++ }
func (f *fakeMetrics) IncReminderFailed(string) { f.failed++ }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// Событие 12 сентября 2026, промо-напоминания запланированы 1 августа
func scheduledQuote(t *testing.T, id string) *domain.FinalQuote {
	t.Helper()

	date, err := time.Parse(domain.DateFormat, "2026-09-12")
	require.NoError(t, err)
	ready, err := types.NewTimeStringFromString("16:00")
	require.NoError(t, err)

	quote := &domain.FinalQuote{
		ID:      id,
		Status:  domain.StatusQuoted,
		Booking: domain.Booking{Days: []domain.BookingDay{{Date: date, ReadyTime: ready, ServiceID: domain.ServiceBridal}}},
		Quotes: domain.TierQuotes{
			Lead: domain.Quote{Total: 1000},
			Team: domain.Quote{Total: 800},
		},
		QuoteGeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	reminders.NewScheduler(nopLogger{}).SchedulePromo(quote, quote.QuoteGeneratedAt)
	return quote
}

type fixture struct {
	uc       *UseCase
	repo     *fakeRepo
	notifier *fakeNotifier
	metrics  *fakeMetrics
}

func newFixture(now time.Time, quotes ...*domain.FinalQuote) *fixture {
	repo := &fakeRepo{quotes: quotes}
	notifier := &fakeNotifier{failFor: map[string]bool{}}
	collector := &fakeMetrics{}

	uc := NewUseCase(repo, reminders.NewScheduler(nopLogger{}), notifier, collector, nopLogger{}).
		WithTimeProvider(fixedClock{now: now})

	return &fixture{uc: uc, repo: repo, notifier: notifier, metrics: collector}
}

func TestExecute_OneReminderPerPass(t *testing.T) {
	quote := scheduledQuote(t, "0042")

	// Все промо-окна уже наступили
	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	f := newFixture(now, quote)

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, []domain.ReminderKind{domain.KindReminder2W}, f.notifier.sent)
	assert.Equal(t, 1, f.repo.updates)
	assert.Equal(t, 1, f.metrics.sent)

	// Следующий проход отправляет следующее по приоритету напоминание
	result, err = f.uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, []domain.ReminderKind{domain.KindReminder2W, domain.KindReminder1W}, f.notifier.sent)
}

func TestExecute_NothingDue(t *testing.T) {
	quote := scheduledQuote(t, "0042")

	// Ни одно окно еще не наступило
	now := time.Date(2026, 8, 2, 12, 0, 0, 0, time.UTC)
	f := newFixture(now, quote)

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 0, f.repo.updates, "clean quote is not rewritten")
}

func TestExecute_FailureDoesNotStopPass(t *testing.T) {
	first := scheduledQuote(t, "0001")
	second := scheduledQuote(t, "0002")

	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	f := newFixture(now, first, second)
	f.notifier.failFor["0001"] = true

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, f.metrics.failed)

	// Ошибка зафиксирована в записи, напоминание остается к повтору
	rec := first.WhatsappMessages.Reminder2W
	assert.False(t, rec.Sent)
	require.NotNil(t, rec.Error)

	// Обе брони сохранены: и результат, и ошибка для повтора
	assert.Equal(t, 2, f.repo.updates)
}

func TestExecute_SkipMarksArePersisted(t *testing.T) {
	quote := scheduledQuote(t, "0042")
	quote.Status = domain.StatusConfirmed
	quote.PaymentDetails = &domain.PaymentDetails{Status: domain.PaymentDepositPaid}

	now := time.Date(2026, 9, 12, 10, 0, 0, 0, time.UTC)
	f := newFixture(now, quote)

	result, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	// Промо после оплаты аванса не отправляются, но пометки пропуска
	// должны попасть в БД
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 1, f.repo.updates)

	rec := quote.WhatsappMessages.Reminder2W
	assert.True(t, rec.Sent)
	require.NotNil(t, rec.SkipReason)
}

func TestExecute_ListError(t *testing.T) {
	f := newFixture(time.Now())
	f.repo.listErr = errors.New("connection refused")

	_, err := f.uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}
