package whatsapp

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от шлюза
	ErrInvalidResponse = errors.New("whatsapp client: invalid response")

	// ErrGatewayUnavailable возвращается, когда шлюз недоступен
	// Вызывающий фиксирует ошибку на записи напоминания и не блокирует
	// основное действие (платеж записан, уведомление не отправлено)
	ErrGatewayUnavailable = errors.New("whatsapp client: gateway unavailable")
)
