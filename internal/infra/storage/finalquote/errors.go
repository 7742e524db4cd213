package finalquote

import "errors"

var (
	// ErrQuoteNotFound возвращается, когда смета не найдена
	ErrQuoteNotFound = errors.New("finalquote.repository: quote not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("finalquote.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("finalquote.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("finalquote.repository: failed to scan row")

	// ErrMarshal возвращается при ошибке сериализации документа сметы
	ErrMarshal = errors.New("finalquote.repository: failed to marshal quote document")

	// ErrUnmarshal возвращается при ошибке десериализации документа сметы
	ErrUnmarshal = errors.New("finalquote.repository: failed to unmarshal quote document")
)
