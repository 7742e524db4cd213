package reminders

import (
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// Scheduler планировщик напоминаний
// Вычисляет целевое время отправки для каждого вида напоминания и
// оценивает готовность к отправке. Сама отправка - забота внешнего
// нотификатора; ядро лишь отвечает на вопрос "что должно уйти сейчас"
type Scheduler struct {
	logger Logger
}

// NewScheduler создает новый планировщик
func NewScheduler(logger Logger) *Scheduler {
	return &Scheduler{logger: logger}
}

// SchedulePromo планирует промо-напоминания при сохранении сметы
// Идемпотентно: запись с уже вычисленным временем не пересчитывается
// Виды, чье время уже прошло на момент планирования, не планируются вовсе
func (s *Scheduler) SchedulePromo(quote *domain.FinalQuote, now time.Time) {
	eventAt, hasEvent := quote.FirstEventAt()

	if hasEvent {
		s.scheduleAt(quote, domain.KindReminder2W, eventAt.Add(-domain.Reminder2WOffset), now)
		s.scheduleAt(quote, domain.KindReminder1W, eventAt.Add(-domain.Reminder1WOffset), now)
	} else {
		s.logger.Warn("SchedulePromo: quote id=%s has no valid event day, event-relative reminders skipped", quote.ID)
	}

	s.scheduleAt(quote, domain.KindFollowup7D, quote.QuoteGeneratedAt.Add(domain.Followup7DOffset), now)
}

// ScheduleEvent планирует событийные напоминания при подтверждении оплаты
// Идемпотентно, как и SchedulePromo
func (s *Scheduler) ScheduleEvent(quote *domain.FinalQuote, now time.Time) {
	eventAt, hasEvent := quote.FirstEventAt()
	if !hasEvent {
		s.logger.Warn("ScheduleEvent: quote id=%s has no valid event day, event reminders skipped", quote.ID)
		return
	}

	s.scheduleAt(quote, domain.KindEvent24H, eventAt.Add(-domain.Event24HOffset), now)
	s.scheduleAt(quote, domain.KindDayOf, eventAt.Add(-time.Duration(domain.DayOfLeadMinutes)*time.Minute), now)
	s.scheduleAt(quote, domain.KindPostEvent, eventAt.Add(domain.PostEventOffset), now)
}

// scheduleAt записывает время отправки для вида напоминания
func (s *Scheduler) scheduleAt(quote *domain.FinalQuote, kind domain.ReminderKind, at time.Time, now time.Time) {
	record := quote.Messages().EnsureRecord(kind)
	if record.IsScheduled() {
		// Уже запланировано - не пересчитываем
		return
	}

	if at.Before(now) {
		s.logger.Info("scheduleAt: quote id=%s, kind=%s target time %s already passed, not scheduled",
			quote.ID, kind, at.Format(time.RFC3339))
		return
	}

	record.ScheduledFor = &at
	s.logger.Info("scheduleAt: quote id=%s, kind=%s scheduled for %s", quote.ID, kind, at.Format(time.RFC3339))
}

// EvaluateDue возвращает вид напоминания, который должен быть отправлен сейчас
// За один проход отправляется не больше одного вида (по приоритету, самый
// ранний оффсет первым), чтобы клиент не получил пачку сообщений разом
//
// Неактуальные напоминания помечаются отправленными с причиной пропуска:
// промо не отправляются после оплаты аванса или при статусе, отличном от
// quoted; событийные - по отмененной броне. Повторная оценка уже
// отправленной записи - no-op
func (s *Scheduler) EvaluateDue(quote *domain.FinalQuote, now time.Time) (domain.ReminderKind, bool) {
	for _, kind := range domain.AllKinds {
		record := quote.WhatsappMessages.Record(kind)
		if !record.IsDue(now) {
			continue
		}

		if reason, skip := s.skipReason(quote, kind); skip {
			s.markSkipped(quote, kind, record, reason, now)
			continue
		}

		return kind, true
	}

	return "", false
}

// skipReason возвращает причину, по которой вид напоминания неактуален
func (s *Scheduler) skipReason(quote *domain.FinalQuote, kind domain.ReminderKind) (string, bool) {
	if kind.IsPromotional() {
		if quote.AdvancePaid() {
			return "advance payment already received", true
		}
		if quote.Status != domain.StatusQuoted {
			return "quote is no longer in quoted status", true
		}
		return "", false
	}

	if quote.Status == domain.StatusCancelled {
		return "booking was cancelled", true
	}
	return "", false
}

// markSkipped помечает напоминание отправленным без отправки
func (s *Scheduler) markSkipped(quote *domain.FinalQuote, kind domain.ReminderKind, record *domain.ReminderRecord, reason string, now time.Time) {
	record.Sent = true
	record.SentAt = &now
	record.SkipReason = &reason
	s.logger.Info("EvaluateDue: quote id=%s, kind=%s skipped: %s", quote.ID, kind, reason)
}

// MarkSent записывает результат успешной отправки
func (s *Scheduler) MarkSent(record *domain.ReminderRecord, now time.Time, messageID, deliveryStatus *string) {
	record.Sent = true
	record.SentAt = &now
	record.MessageID = messageID
	record.DeliveryStatus = deliveryStatus
	record.Error = nil
}

// MarkFailed записывает ошибку отправки
// Запись остается неотправленной: следующий проход диспетчера найдет
// её снова и повторит попытку
func (s *Scheduler) MarkFailed(record *domain.ReminderRecord, sendErr error) {
	msg := sendErr.Error()
	record.Error = &msg
}
