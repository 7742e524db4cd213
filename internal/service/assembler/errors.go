package assembler

import "errors"

var (
	// ErrTierUnresolved возвращается, когда тир не удалось однозначно
	// восстановить по сумме платежа. Такая смета требует ручной сверки,
	// молчаливый дефолт в lead недопустим
	ErrTierUnresolved = errors.New("assembler: selected tier could not be resolved from payment amount")

	// ErrIDExhausted возвращается, когда все попытки генерации
	// идентификатора завершились коллизией
	ErrIDExhausted = errors.New("assembler: failed to generate unique booking id")

	// ErrInternal возвращается при внутренних ошибках сборки
	ErrInternal = errors.New("assembler: internal error")
)
