package domain

import "math"

// Налоги и фиксированные цены
const (
	// GSTRate ставка налога GST, применяется к subtotal обеих смет
	GSTRate = 0.05

	// LateNightSurcharge фиксированная доплата за ранний/поздний выезд
	LateNightSurcharge = 25.0

	// LateNightStartHour час, начиная с которого действует доплата (>= 21:00)
	LateNightStartHour = 21

	// EarlyMorningEndHour час, до которого действует доплата (< 06:00)
	EarlyMorningEndHour = 6

	// PartySareeFlatPrice фиксированная цена драпировки сари для bridal/semi-bridal
	// дней с дополнительными party-услугами (оба тира)
	PartySareeFlatPrice = 50.0
)

// Платежи
const (
	// DepositShare доля аванса от полной суммы (50% при бронировании, 50% после)
	DepositShare = 0.5

	// TierInferenceTolerance допуск в долларах при восстановлении выбранного тира
	// по сумме платежа (покрывает расхождения округления)
	TierInferenceTolerance = 1.0
)

// Генерация идентификатора брони
const (
	// BookingIDMax верхняя граница 4-значного числового идентификатора
	BookingIDMax = 10000

	// BookingIDAttempts количество попыток генерации при коллизии
	BookingIDAttempts = 5
)

// Форматы дат и времени
const (
	DateFormat      = "2006-01-02"
	HumanDateFormat = "Monday, January 2, 2006"
	TimeFormat      = "15:04"
)

// Известные идентификаторы услуг
// Гейтинг аддонов и агрегация party-услуг привязаны к этим id
const (
	ServiceBridal     = "bridal"
	ServiceSemiBridal = "semi-bridal"
	ServiceParty      = "party"
	ServiceNonBridal  = "non-bridal"
)

// Round2 округляет сумму до центов
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
