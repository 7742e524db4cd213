package assembler

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// QuoteIDChecker проверка занятости идентификатора брони
type QuoteIDChecker interface {
	ExistsID(ctx context.Context, id string) (bool, error)
}

// IDGenerator источник кандидатов идентификатора брони
type IDGenerator interface {
	NextID() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// RandomIDGenerator генератор случайных 4-значных идентификаторов
// Источник - crypto/rand: номер брони уходит клиенту в ссылках,
// последовательность не должна быть предсказуемой
type RandomIDGenerator struct{}

// NewRandomIDGenerator создает генератор идентификаторов
func NewRandomIDGenerator() *RandomIDGenerator {
	return &RandomIDGenerator{}
}

// NextID возвращает случайный 4-значный числовой идентификатор
func (g *RandomIDGenerator) NextID() string {
	n, err := rand.Int(rand.Reader, big.NewInt(domain.BookingIDMax))
	if err != nil {
		// rand.Reader на поддерживаемых платформах не отказывает
		panic(fmt.Sprintf("assembler: crypto rand failed: %v", err))
	}
	return fmt.Sprintf("%04d", n.Int64())
}
