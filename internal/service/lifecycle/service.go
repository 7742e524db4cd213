package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	quoteRepo "github.com/m04kA/MUA-QuoteService/internal/infra/storage/finalquote"
)

// Service машина жизненного цикла брони
// Управляет статусом сметы (quoted -> confirmed, cancelled из нетерминальных)
// и двумя независимыми платежными под-машинами (аванс, финальный платеж)
type Service struct {
	quoteRepo    QuoteRepository
	notifier     Notifier
	scheduler    ReminderScheduler
	inferrer     TierInferrer
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр машины жизненного цикла
func NewService(
	quoteRepo QuoteRepository,
	notifier Notifier,
	scheduler ReminderScheduler,
	inferrer TierInferrer,
	logger Logger,
) *Service {
	return &Service{
		quoteRepo:    quoteRepo,
		notifier:     notifier,
		scheduler:    scheduler,
		inferrer:     inferrer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider заменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByID получает смету по идентификатору
func (s *Service) GetByID(ctx context.Context, id string) (*domain.FinalQuote, error) {
	quote, err := s.fetch(ctx, id, "GetByID")
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// SubmitPayment переводит платежную под-машину в deposit-pending
// Для ступени final требуется оплаченный аванс
func (s *Service) SubmitPayment(ctx context.Context, id string, stage domain.PaymentStage, method domain.PaymentMethod, amount float64) (*domain.FinalQuote, error) {
	if !stage.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment stage %q", ErrInvalidInput, stage)
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, method)
	}

	quote, err := s.fetch(ctx, id, "SubmitPayment")
	if err != nil {
		return nil, err
	}

	if err := s.guardTransition(quote, stage, domain.PaymentDepositPending); err != nil {
		return nil, err
	}

	switch stage {
	case domain.StageAdvance:
		if quote.PaymentDetails == nil {
			quote.PaymentDetails = &domain.PaymentDetails{}
		}
		quote.PaymentDetails.Method = method
		quote.PaymentDetails.Status = domain.PaymentDepositPending
		if amount > 0 {
			quote.PaymentDetails.DepositAmount = amount
		}
	case domain.StageFinal:
		if quote.PaymentDetails.FinalPayment == nil {
			quote.PaymentDetails.FinalPayment = &domain.FinalPayment{}
		}
		quote.PaymentDetails.FinalPayment.Method = method
		quote.PaymentDetails.FinalPayment.Status = domain.PaymentDepositPending
		if amount > 0 {
			quote.PaymentDetails.FinalPayment.Amount = amount
		}
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("%w: SubmitPayment - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SubmitPayment: quote id=%s, stage=%s, method=%s moved to %s",
		id, stage, method, domain.PaymentDepositPending)
	return quote, nil
}

// ConfirmPayment переводит платежную под-машину в deposit-paid
// (автоматическое подтверждение провайдером)
func (s *Service) ConfirmPayment(ctx context.Context, id string, stage domain.PaymentStage, amount float64) (*domain.FinalQuote, error) {
	return s.markPaid(ctx, id, stage, domain.PaymentDepositPaid, amount)
}

// ApprovePayment переводит платежную под-машину в payment-approved
// (ручное одобрение скриншота администратором); для downstream-логики
// эквивалентен deposit-paid
func (s *Service) ApprovePayment(ctx context.Context, id string, stage domain.PaymentStage) (*domain.FinalQuote, error) {
	return s.markPaid(ctx, id, stage, domain.PaymentApproved, 0)
}

// RejectPayment отклоняет скриншот оплаты
// Допустим возврат в deposit-pending повторной отправкой
func (s *Service) RejectPayment(ctx context.Context, id string, stage domain.PaymentStage) (*domain.FinalQuote, error) {
	if !stage.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment stage %q", ErrInvalidInput, stage)
	}

	quote, err := s.fetch(ctx, id, "RejectPayment")
	if err != nil {
		return nil, err
	}

	if err := s.guardTransition(quote, stage, domain.PaymentScreenshotRejected); err != nil {
		return nil, err
	}

	switch stage {
	case domain.StageAdvance:
		quote.PaymentDetails.Status = domain.PaymentScreenshotRejected
	case domain.StageFinal:
		quote.PaymentDetails.FinalPayment.Status = domain.PaymentScreenshotRejected
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("%w: RejectPayment - repository error: %v", ErrInternal, err)
	}

	// Уведомление об отклонении: сбой не откатывает переход
	if _, err := s.notifier.SendRejection(ctx, quote); err != nil {
		s.logger.Error("RejectPayment: quote id=%s rejection notification failed: %v", id, err)
	}

	s.logger.Info("RejectPayment: quote id=%s, stage=%s screenshot rejected", id, stage)
	return quote, nil
}

// Cancel отменяет бронь (явное действие администратора)
// Доступно из любого нетерминального статуса, возврата из cancelled нет
func (s *Service) Cancel(ctx context.Context, id string) (*domain.FinalQuote, error) {
	quote, err := s.fetch(ctx, id, "Cancel")
	if err != nil {
		return nil, err
	}

	if !quote.CanBeCancelled() {
		s.logger.Warn("Cancel: quote id=%s cannot be cancelled, status=%s", id, quote.Status)
		return nil, fmt.Errorf("%w: status=%s", ErrCannotCancel, quote.Status)
	}

	quote.Status = domain.StatusCancelled

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: quote id=%s cancelled", id)
	return quote, nil
}

// markPaid общий путь для deposit-paid и payment-approved
// Побочные эффекты оплаты аванса: подтверждение брони, восстановление тира,
// планирование событийных напоминаний, уведомление клиента
// Оплата финального платежа дает только финальное уведомление
func (s *Service) markPaid(ctx context.Context, id string, stage domain.PaymentStage, target domain.PaymentStatus, amount float64) (*domain.FinalQuote, error) {
	if !stage.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment stage %q", ErrInvalidInput, stage)
	}

	quote, err := s.fetch(ctx, id, "markPaid")
	if err != nil {
		return nil, err
	}

	if err := s.guardTransition(quote, stage, target); err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()

	switch stage {
	case domain.StageAdvance:
		quote.PaymentDetails.Status = target
		if amount > 0 {
			quote.PaymentDetails.DepositAmount = amount
		}

		// Восстанавливаем тир по сумме платежа, если выбор не зафиксирован
		// Неоднозначность не блокирует платеж - смета остается на ручную сверку
		if quote.SelectedQuote == nil {
			paid := quote.PaymentDetails.DepositAmount
			if tier, inferErr := s.inferrer.InferSelectedTier(quote, paid); inferErr == nil {
				quote.SelectedQuote = &tier
			} else {
				s.logger.Warn("markPaid: quote id=%s tier unresolved from paid=%.2f, left for manual reconciliation", id, paid)
			}
		}

		if quote.CanConfirm() {
			quote.Status = domain.StatusConfirmed
		}

		s.scheduler.ScheduleEvent(quote, now)

	case domain.StageFinal:
		quote.PaymentDetails.FinalPayment.Status = target
		if amount > 0 {
			quote.PaymentDetails.FinalPayment.Amount = amount
		}
	}

	// Уведомление: сбой деградирует до "платеж записан, уведомление не отправлено"
	switch stage {
	case domain.StageAdvance:
		s.recordConfirmation(ctx, quote, now)
	case domain.StageFinal:
		if _, err := s.notifier.SendFinalConfirmation(ctx, quote); err != nil {
			s.logger.Error("markPaid: quote id=%s final confirmation failed: %v", id, err)
		}
	}

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("%w: markPaid - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("markPaid: quote id=%s, stage=%s moved to %s", id, stage, target)
	return quote, nil
}

// recordConfirmation отправляет подтверждение брони и фиксирует результат
// в журнале сообщений (запись initial)
func (s *Service) recordConfirmation(ctx context.Context, quote *domain.FinalQuote, now time.Time) {
	record := quote.Messages().EnsureRecord(domain.KindInitial)

	result, err := s.notifier.SendConfirmation(ctx, quote)
	if err != nil {
		s.logger.Error("recordConfirmation: quote id=%s confirmation failed: %v", quote.ID, err)
		msg := err.Error()
		record.Error = &msg
		return
	}

	record.Sent = true
	record.SentAt = &now
	record.MessageID = result.MessageID
	record.DeliveryStatus = result.DeliveryStatus
	record.Error = nil
}

// guardTransition проверяет допустимость перехода для ступени оплаты
// При недопустимом переходе мутация не применяется
func (s *Service) guardTransition(quote *domain.FinalQuote, stage domain.PaymentStage, target domain.PaymentStatus) error {
	var current domain.PaymentStatus

	switch stage {
	case domain.StageAdvance:
		current = quote.PaymentDetails.AdvanceStatus()
	case domain.StageFinal:
		if !quote.AdvancePaid() {
			return ErrFinalNotAvailable
		}
		current = quote.PaymentDetails.FinalStatus()
	}

	if !current.CanTransitionTo(target) {
		return fmt.Errorf("%w: stage=%s, %q -> %q", ErrInvalidTransition, stage, current, target)
	}
	return nil
}

// fetch получает смету по id с маппингом ошибки репозитория
func (s *Service) fetch(ctx context.Context, id string, op string) (*domain.FinalQuote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, quoteRepo.ErrQuoteNotFound) {
			s.logger.Warn("%s: quote id=%s not found", op, id)
			return nil, ErrQuoteNotFound
		}
		s.logger.Error("%s: repository error for quote id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return quote, nil
}
