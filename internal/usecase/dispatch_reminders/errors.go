package dispatch_reminders

import "errors"

var (
	// ErrInternal возвращается, когда проход диспетчера не смог даже начаться
	// (ошибки по отдельным броням проход не прерывают)
	ErrInternal = errors.New("dispatch_reminders: internal error")
)
