package lifecycle

import "errors"

var (
	// ErrQuoteNotFound возвращается, когда смета не найдена
	ErrQuoteNotFound = errors.New("lifecycle: quote not found")

	// ErrInvalidTransition возвращается при недопустимом переходе
	// платежной под-машины; мутация не применяется
	ErrInvalidTransition = errors.New("lifecycle: invalid payment transition")

	// ErrFinalNotAvailable возвращается при попытке работать с финальным
	// платежом до оплаты аванса
	ErrFinalNotAvailable = errors.New("lifecycle: final payment is not available until advance is paid")

	// ErrCannotCancel возвращается, когда бронь не может быть отменена
	ErrCannotCancel = errors.New("lifecycle: quote cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("lifecycle: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("lifecycle: internal error")
)
