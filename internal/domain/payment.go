package domain

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	MethodStripe  PaymentMethod = "stripe"
	MethodInterac PaymentMethod = "interac"
)

// IsValid возвращает true для известного способа оплаты
func (m PaymentMethod) IsValid() bool {
	return m == MethodStripe || m == MethodInterac
}

// PaymentStage ступень двухэтапной оплаты (50% аванс, 50% после)
type PaymentStage string

const (
	StageAdvance PaymentStage = "advance"
	StageFinal   PaymentStage = "final"
)

// IsValid возвращает true для известной ступени оплаты
func (s PaymentStage) IsValid() bool {
	return s == StageAdvance || s == StageFinal
}

// PaymentStatus состояние платежной под-машины
// Применяется одинаково к авансу и финальному платежу
type PaymentStatus string

const (
	// PaymentUnset платеж еще не инициирован (нулевое значение)
	PaymentUnset PaymentStatus = ""

	// PaymentDepositPending платеж ожидает подтверждения
	PaymentDepositPending PaymentStatus = "deposit-pending"

	// PaymentDepositPaid платеж подтвержден автоматически (провайдером)
	PaymentDepositPaid PaymentStatus = "deposit-paid"

	// PaymentApproved платеж подтвержден вручную администратором
	// Для downstream-логики эквивалентен deposit-paid
	PaymentApproved PaymentStatus = "payment-approved"

	// PaymentScreenshotRejected скриншот оплаты отклонен, допускается повторная отправка
	PaymentScreenshotRejected PaymentStatus = "screenshot-rejected"
)

// IsPaid возвращает true для любого оплаченного состояния
func (s PaymentStatus) IsPaid() bool {
	return s == PaymentDepositPaid || s == PaymentApproved
}

// CanTransitionTo проверяет допустимость перехода платежной под-машины
//
//	unset -> deposit-pending
//	deposit-pending -> deposit-paid | payment-approved | screenshot-rejected
//	screenshot-rejected -> deposit-pending (повторная отправка скриншота)
//
// Оплаченные состояния терминальны
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentUnset:
		return next == PaymentDepositPending
	case PaymentDepositPending:
		return next == PaymentDepositPaid || next == PaymentApproved || next == PaymentScreenshotRejected
	case PaymentScreenshotRejected:
		return next == PaymentDepositPending
	default:
		return false
	}
}

// PaymentDetails состояние авансового платежа и вложенного финального
type PaymentDetails struct {
	Method        PaymentMethod
	Status        PaymentStatus
	DepositAmount float64

	// Промокод, если применялся
	PromoCode     *string
	PromoDiscount *float64

	// FinalPayment вторая половина оплаты, доступна только после оплаты аванса
	FinalPayment *FinalPayment
}

// FinalPayment состояние финального платежа (та же под-машина, что и аванс)
type FinalPayment struct {
	Method PaymentMethod
	Status PaymentStatus
	Amount float64
}

// AdvanceStatus возвращает состояние авансовой под-машины
// nil-безопасно: отсутствие PaymentDetails означает unset
func (p *PaymentDetails) AdvanceStatus() PaymentStatus {
	if p == nil {
		return PaymentUnset
	}
	return p.Status
}

// FinalStatus возвращает состояние финальной под-машины
func (p *PaymentDetails) FinalStatus() PaymentStatus {
	if p == nil || p.FinalPayment == nil {
		return PaymentUnset
	}
	return p.FinalPayment.Status
}
