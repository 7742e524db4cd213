package assembler

import (
	"context"
	"fmt"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// Service сборщик итогового документа сметы
// Упаковывает пару смет с контактами и нормализованным описанием брони,
// генерирует идентификатор и восстанавливает выбранный тир по платежу
type Service struct {
	idChecker    QuoteIDChecker
	idGenerator  IDGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сборщика
func NewService(idChecker QuoteIDChecker, logger Logger) *Service {
	return &Service{
		idChecker:    idChecker,
		idGenerator:  NewRandomIDGenerator(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// NewServiceWithDeps создает сборщик с внешними генератором и часами (для тестов)
func NewServiceWithDeps(idChecker QuoteIDChecker, idGenerator IDGenerator, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		idChecker:    idChecker,
		idGenerator:  idGenerator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Assemble собирает FinalQuote из входных данных и пары рассчитанных смет
// Агрегация party-услуг использует то же правило подавления по дате,
// что и движок расчета: вклад semi-bridal дня на дате с bridal-днем не считается
func (s *Service) Assemble(
	ctx context.Context,
	contact domain.Contact,
	days []domain.BookingDay,
	trial *domain.BridalTrial,
	leadQuote *domain.Quote,
	teamQuote *domain.Quote,
) (*domain.FinalQuote, error) {
	id, err := s.newBookingID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()

	quote := &domain.FinalQuote{
		ID:      id,
		Contact: contact,
		Booking: domain.Booking{
			Days:             days,
			Trial:            trial,
			BridalParty:      aggregateParty(days),
			Address:          firstMobileLocation(days),
			HasMobileService: hasMobileService(days),
		},
		Quotes: domain.TierQuotes{
			Lead: *leadQuote,
			Team: *teamQuote,
		},
		Status:           domain.StatusQuoted,
		QuoteGeneratedAt: now,
	}

	s.logger.Info("Assemble: built final quote id=%s, days=%d, lead_total=%.2f, team_total=%.2f",
		id, len(days), leadQuote.Total, teamQuote.Total)

	return quote, nil
}

// InferSelectedTier восстанавливает выбранный тир по сумме оплаченного аванса
// Аванс равен половине полной суммы; допуск покрывает расхождения округления
// Неоднозначный результат (обе сметы подходят или ни одна) - явная ошибка
func (s *Service) InferSelectedTier(quote *domain.FinalQuote, paidAmount float64) (domain.Tier, error) {
	var matched []domain.Tier

	for _, tier := range domain.Tiers {
		expected := quote.Quotes.For(tier).Total * domain.DepositShare
		diff := expected - paidAmount
		if diff < 0 {
			diff = -diff
		}
		if diff <= domain.TierInferenceTolerance {
			matched = append(matched, tier)
		}
	}

	if len(matched) != 1 {
		s.logger.Warn("InferSelectedTier: quote id=%s, paid=%.2f matched %d tiers, manual reconciliation required",
			quote.ID, paidAmount, len(matched))
		return "", fmt.Errorf("%w: quote id=%s, paid=%.2f", ErrTierUnresolved, quote.ID, paidAmount)
	}

	s.logger.Info("InferSelectedTier: quote id=%s, paid=%.2f resolved to tier=%s", quote.ID, paidAmount, matched[0])
	return matched[0], nil
}

// newBookingID генерирует 4-значный идентификатор с повторами при коллизии
func (s *Service) newBookingID(ctx context.Context) (string, error) {
	for attempt := 0; attempt < domain.BookingIDAttempts; attempt++ {
		id := s.idGenerator.NextID()

		exists, err := s.idChecker.ExistsID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("%w: newBookingID - check id: %v", ErrInternal, err)
		}
		if !exists {
			return id, nil
		}

		s.logger.Warn("newBookingID: id=%s already taken, retrying (attempt %d/%d)",
			id, attempt+1, domain.BookingIDAttempts)
	}

	return "", ErrIDExhausted
}

// aggregateParty суммирует party-услуги по всем дням брони в одну сводку
func aggregateParty(days []domain.BookingDay) *domain.PartyServices {
	bridalPartyDates := make(map[string]bool)
	for i := range days {
		day := &days[i]
		if !day.IsMalformed() && day.IsBridal() && day.HasPartyServices() {
			bridalPartyDates[day.DateKey()] = true
		}
	}

	total := &domain.PartyServices{}
	counted := false

	for i := range days {
		day := &days[i]
		if day.IsMalformed() || !day.IsBridalLike() || !day.HasPartyServices() {
			continue
		}
		if day.IsSemiBridal() && bridalPartyDates[day.DateKey()] {
			continue
		}

		p := day.PartyServices
		total.HairMakeup += p.HairMakeup
		total.MakeupOnly += p.MakeupOnly
		total.HairOnly += p.HairOnly
		total.DupattaSetting += p.DupattaSetting
		total.ExtensionInstall += p.ExtensionInstall
		total.SareeDraping += p.SareeDraping
		total.HijabSetting += p.HijabSetting
		total.Airbrush += p.Airbrush
		counted = true
	}

	if !counted {
		return nil
	}

	total.AddServices = true
	return total
}

// firstMobileLocation возвращает локацию первого выездного дня
func firstMobileLocation(days []domain.BookingDay) *string {
	for i := range days {
		day := &days[i]
		if day.IsMobile() && day.MobileLocation != nil {
			return day.MobileLocation
		}
	}
	return nil
}

// hasMobileService возвращает true, если хотя бы один день выездной
func hasMobileService(days []domain.BookingDay) bool {
	for i := range days {
		if days[i].IsMobile() {
			return true
		}
	}
	return false
}
