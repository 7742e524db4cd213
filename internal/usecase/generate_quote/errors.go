package generate_quote

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_quote: invalid input data")

	// ErrNoUsableDays возвращается, когда ни один день брони не пригоден для расчета
	ErrNoUsableDays = errors.New("generate_quote: no usable booking days")

	// ErrIDExhausted возвращается, когда не удалось подобрать свободный идентификатор
	ErrIDExhausted = errors.New("generate_quote: booking id space exhausted")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_quote: internal error")
)
