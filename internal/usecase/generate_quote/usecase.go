package generate_quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/service/assembler"
	"github.com/m04kA/MUA-QuoteService/internal/service/pricing"
)

// UseCase use case генерации сметы
// Считает обе сметы (lead и team), собирает итоговый документ,
// планирует промо-напоминания и сохраняет результат
type UseCase struct {
	engine       PricingEngine
	assembler    QuoteAssembler
	quoteRepo    QuoteRepository
	scheduler    ReminderScheduler
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	engine PricingEngine,
	quoteAssembler QuoteAssembler,
	quoteRepo QuoteRepository,
	scheduler ReminderScheduler,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		engine:       engine,
		assembler:    quoteAssembler,
		quoteRepo:    quoteRepo,
		scheduler:    scheduler,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider заменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case генерации сметы
// Сборка и сохранение идут в сериализуемой транзакции: проверка занятости
// идентификатора и вставка документа должны быть атомарны
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateQuote: contact=%s, days=%d, trial=%t",
		req.Contact.Name, len(req.Days), req.Trial.IsRequested())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateQuote: validation failed: %v", err)
		return nil, err
	}

	// 2. Считаем обе сметы. Расчет детерминирован и не трогает БД
	leadQuote, err := uc.engine.ComputeQuote(ctx, domain.TierLead, req.Days, req.Trial)
	if err != nil {
		return nil, uc.computeError(domain.TierLead, err)
	}

	teamQuote, err := uc.engine.ComputeQuote(ctx, domain.TierTeam, req.Days, req.Trial)
	if err != nil {
		return nil, uc.computeError(domain.TierTeam, err)
	}

	var result *domain.FinalQuote

	// 3. Сборка документа и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		quote, err := uc.assembler.Assemble(txCtx, req.Contact, req.Days, req.Trial, leadQuote, teamQuote)
		if err != nil {
			if errors.Is(err, assembler.ErrIDExhausted) {
				uc.logger.Error("GenerateQuote: booking id space exhausted")
				return ErrIDExhausted
			}
			uc.logger.Error("GenerateQuote: assembly failed: %v", err)
			return fmt.Errorf("%w: assemble final quote: %v", ErrInternal, err)
		}

		// Промо-напоминания планируются до сохранения, чтобы расписание
		// легло в БД вместе с документом
		uc.scheduler.SchedulePromo(quote, uc.timeProvider.Now())

		created, err := uc.quoteRepo.Create(txCtx, quote)
		if err != nil {
			uc.logger.Error("GenerateQuote: failed to persist quote id=%s: %v", quote.ID, err)
			return fmt.Errorf("%w: persist final quote: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("GenerateQuote: quote id=%s generated, lead_total=%.2f, team_total=%.2f",
		result.ID, result.Quotes.Lead.Total, result.Quotes.Team.Total)

	return toResponse(result), nil
}

// computeError маппит ошибку расчета сметы на ошибку use case
// Неразрешимая цена (например неизвестная услуга в запросе) - проблема
// входных данных, а не сбой сервиса
func (uc *UseCase) computeError(tier domain.Tier, err error) error {
	if errors.Is(err, pricing.ErrPriceLookup) {
		uc.logger.Warn("GenerateQuote: %s quote computation rejected: %v", tier, err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	uc.logger.Error("GenerateQuote: %s quote computation failed: %v", tier, err)
	return fmt.Errorf("%w: compute %s quote: %v", ErrInternal, tier, err)
}
