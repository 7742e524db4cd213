package dispatch_reminders

import (
	"context"
	"fmt"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// UseCase use case диспетчеризации напоминаний
// Периодический проход по активным броням: для каждой оценивается
// готовность напоминаний, отправляется не больше одного вида за проход,
// результат фиксируется в журнале сообщений и сохраняется
//
// Сбой по одной броне не прерывает проход: остальные брони
// обрабатываются, ошибка только логируется
type UseCase struct {
	quoteRepo    QuoteRepository
	scheduler    ReminderScheduler
	notifier     Notifier
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	quoteRepo QuoteRepository,
	scheduler ReminderScheduler,
	notifier Notifier,
	metricsCollector MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		quoteRepo:    quoteRepo,
		scheduler:    scheduler,
		notifier:     notifier,
		metrics:      metricsCollector,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider заменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Result итог одного прохода диспетчера
type Result struct {
	Scanned int // Просмотрено активных броней
	Sent    int // Успешно отправлено напоминаний
	Failed  int // Ошибок отправки (будут повторены следующим проходом)
}

// Execute выполняет один проход диспетчера напоминаний
func (uc *UseCase) Execute(ctx context.Context) (*Result, error) {
	quotes, err := uc.quoteRepo.ListActive(ctx)
	if err != nil {
		uc.logger.Error("DispatchReminders: failed to list active quotes: %v", err)
		return nil, fmt.Errorf("%w: list active quotes: %v", ErrInternal, err)
	}

	result := &Result{Scanned: len(quotes)}

	for _, quote := range quotes {
		if err := uc.dispatchOne(ctx, quote, result); err != nil {
			uc.logger.Error("DispatchReminders: quote id=%s dispatch failed: %v", quote.ID, err)
		}
	}

	uc.logger.Info("DispatchReminders: pass complete, scanned=%d, sent=%d, failed=%d",
		result.Scanned, result.Sent, result.Failed)

	return result, nil
}

// dispatchOne обрабатывает одну бронь
// Оценка готовности может пометить неактуальные напоминания пропущенными;
// такие мутации тоже должны попасть в БД, даже если отправлять нечего
func (uc *UseCase) dispatchOne(ctx context.Context, quote *domain.FinalQuote, result *Result) error {
	now := uc.timeProvider.Now()

	kind, due := uc.scheduler.EvaluateDue(quote, now)
	if !due {
		return uc.persistIfDirty(ctx, quote)
	}

	record := quote.Messages().EnsureRecord(kind)

	sendResult, err := uc.notifier.SendReminder(ctx, quote, kind)
	if err != nil {
		uc.scheduler.MarkFailed(record, err)
		uc.metrics.IncReminderFailed(string(kind))
		result.Failed++
		uc.logger.Error("DispatchReminders: quote id=%s, kind=%s send failed: %v", quote.ID, kind, err)
	} else {
		uc.scheduler.MarkSent(record, now, sendResult.MessageID, sendResult.DeliveryStatus)
		uc.metrics.IncReminderSent(string(kind))
		result.Sent++
		uc.logger.Info("DispatchReminders: quote id=%s, kind=%s sent", quote.ID, kind)
	}

	// Запись результата (или ошибки для повтора) по принципу
	// last-writer-wins: конкурентные платежные мутации документа
	// разрешаются на уровне целой записи
	if err := uc.quoteRepo.Update(ctx, quote); err != nil {
		return fmt.Errorf("persist dispatch result: %v", err)
	}

	return nil
}

// persistIfDirty сохраняет бронь, если оценка готовности пометила
// какие-то напоминания пропущенными
func (uc *UseCase) persistIfDirty(ctx context.Context, quote *domain.FinalQuote) error {
	if !hasFreshSkips(quote) {
		return nil
	}

	if err := uc.quoteRepo.Update(ctx, quote); err != nil {
		return fmt.Errorf("persist skip marks: %v", err)
	}
	return nil
}

// hasFreshSkips возвращает true, если в журнале есть пропущенные записи
// Пропуски идемпотентны, повторное сохранение уже сохраненных безвредно
func hasFreshSkips(quote *domain.FinalQuote) bool {
	log := quote.WhatsappMessages
	if log == nil {
		return false
	}
	for _, kind := range domain.AllKinds {
		record := log.Record(kind)
		if record != nil && record.Sent && record.SkipReason != nil {
			return true
		}
	}
	return false
}
