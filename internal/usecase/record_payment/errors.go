package record_payment

import "errors"

var (
	// ErrQuoteNotFound возвращается, когда смета не найдена
	ErrQuoteNotFound = errors.New("record_payment: quote not found")

	// ErrInvalidTransition возвращается при недопустимом переходе платежной под-машины
	ErrInvalidTransition = errors.New("record_payment: invalid payment transition")

	// ErrFinalNotAvailable возвращается при попытке финального платежа до оплаты аванса
	ErrFinalNotAvailable = errors.New("record_payment: final payment requires paid advance")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("record_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("record_payment: internal error")
)
