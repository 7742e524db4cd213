package record_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
	"github.com/m04kA/MUA-QuoteService/internal/service/lifecycle"
)

// UseCase use case записи платежного события
// Транслирует событие (отправка платежа, подтверждение провайдером)
// в переход платежной под-машины жизненного цикла
type UseCase struct {
	lifecycle LifecycleService
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(lifecycleService LifecycleService, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		lifecycle: lifecycleService,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute выполняет use case записи платежного события
// Чтение, переход и запись документа идут в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RecordPayment: quote id=%s, action=%s, stage=%s, method=%s, amount=%.2f",
		req.QuoteID, req.Action, req.Stage, req.Method, req.Amount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RecordPayment: validation failed: %v", err)
		return nil, err
	}

	var resp *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		quote, err := uc.apply(txCtx, req)
		if err != nil {
			return err
		}
		resp = toResponse(quote)
		return nil
	})

	if err != nil {
		return nil, uc.mapError(req, err)
	}

	uc.logger.Info("RecordPayment: quote id=%s, stage=%s recorded, status=%s, advance=%s, final=%s",
		resp.QuoteID, req.Stage, resp.Status, resp.AdvanceStatus, resp.FinalStatus)

	return resp, nil
}

// apply вызывает переход жизненного цикла, соответствующий действию
func (uc *UseCase) apply(ctx context.Context, req *Request) (*domain.FinalQuote, error) {
	switch req.Action {
	case ActionSubmit:
		return uc.lifecycle.SubmitPayment(ctx, req.QuoteID, req.Stage, req.Method, req.Amount)
	case ActionConfirm:
		return uc.lifecycle.ConfirmPayment(ctx, req.QuoteID, req.Stage, req.Amount)
	default:
		return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}
}

// mapError транслирует ошибки машины жизненного цикла в ошибки usecase
func (uc *UseCase) mapError(req *Request, err error) error {
	switch {
	case errors.Is(err, lifecycle.ErrQuoteNotFound):
		uc.logger.Warn("RecordPayment: quote id=%s not found", req.QuoteID)
		return ErrQuoteNotFound
	case errors.Is(err, lifecycle.ErrFinalNotAvailable):
		uc.logger.Warn("RecordPayment: quote id=%s final payment before paid advance", req.QuoteID)
		return ErrFinalNotAvailable
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		uc.logger.Warn("RecordPayment: quote id=%s invalid transition: %v", req.QuoteID, err)
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	case errors.Is(err, lifecycle.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, ErrInvalidInput):
		return err
	default:
		uc.logger.Error("RecordPayment: quote id=%s failed: %v", req.QuoteID, err)
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.QuoteID == "" {
		return fmt.Errorf("%w: quote id is required", ErrInvalidInput)
	}

	if !req.Action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	if !req.Stage.IsValid() {
		return fmt.Errorf("%w: unknown payment stage %q", ErrInvalidInput, req.Stage)
	}

	if req.Action == ActionSubmit && !req.Method.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
	}

	if req.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	return nil
}
