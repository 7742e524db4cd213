package pricing

import "errors"

var (
	// ErrInvalidTier возвращается при неизвестном тире
	ErrInvalidTier = errors.New("pricing: invalid tier")

	// ErrPriceLookup возвращается, когда каталог не смог разрешить цену
	// Ошибка фатальна для расчета сметы и поднимается вызывающему,
	// молчаливый дефолт в ноль недопустим
	ErrPriceLookup = errors.New("pricing: price lookup failed")

	// ErrInternal возвращается при внутренних ошибках расчета
	ErrInternal = errors.New("pricing: internal error")
)
