package domain

import "time"

// ReminderKind вид запланированного уведомления
type ReminderKind string

const (
	// KindInitial подтверждение брони после оплаты аванса
	// Не планируется по времени: отправляется сразу при переходе
	KindInitial ReminderKind = "initial"

	// Промо-напоминания: отправляются пока смета не оплачена
	KindReminder2W ReminderKind = "reminder-2w" // За 2 недели до события
	KindReminder1W ReminderKind = "reminder-1w" // За 1 неделю до события
	KindFollowup7D ReminderKind = "followup-7d" // Через 7 дней после отправки сметы

	// Событийные напоминания: планируются после оплаты аванса
	KindEvent24H  ReminderKind = "event-24h"  // За 24 часа до события
	KindDayOf     ReminderKind = "day-of"     // В день события, до времени готовности
	KindPostEvent ReminderKind = "post-event" // После события
)

// PromoKinds промо-напоминания в порядке приоритета (самый ранний оффсет первым)
// За один проход диспетчера отправляется не больше одного напоминания
var PromoKinds = []ReminderKind{KindReminder2W, KindReminder1W, KindFollowup7D}

// EventKinds событийные напоминания в порядке приоритета
var EventKinds = []ReminderKind{KindEvent24H, KindDayOf, KindPostEvent}

// AllKinds все виды напоминаний в порядке приоритета диспетчеризации
var AllKinds = []ReminderKind{
	KindReminder2W, KindReminder1W, KindFollowup7D,
	KindEvent24H, KindDayOf, KindPostEvent,
}

// IsPromotional возвращает true для промо-напоминаний
// Промо теряют смысл после оплаты и при любом статусе кроме quoted
func (k ReminderKind) IsPromotional() bool {
	return k == KindReminder2W || k == KindReminder1W || k == KindFollowup7D
}

// Смещения планирования напоминаний
const (
	Reminder2WOffset = 14 * 24 * time.Hour
	Reminder1WOffset = 7 * 24 * time.Hour
	Followup7DOffset = 7 * 24 * time.Hour
	Event24HOffset   = 24 * time.Hour
	DayOfLeadMinutes = 120
	PostEventOffset  = 5 * time.Hour
)

// ReminderRecord состояние одного вида напоминания для брони
type ReminderRecord struct {
	Sent         bool
	SentAt       *time.Time
	ScheduledFor *time.Time

	// Результат доставки от внешнего нотификатора
	MessageID      *string
	DeliveryStatus *string

	// SkipReason причина, по которой напоминание помечено отправленным без отправки
	SkipReason *string

	// Error последняя ошибка отправки; запись остается неотправленной
	// и будет подхвачена следующим проходом диспетчера
	Error *string
}

// IsScheduled возвращает true, если время отправки уже вычислено
func (r *ReminderRecord) IsScheduled() bool {
	return r != nil && r.ScheduledFor != nil
}

// IsDue возвращает true, если напоминание запланировано, не отправлено
// и его время наступило
func (r *ReminderRecord) IsDue(now time.Time) bool {
	return r.IsScheduled() && !r.Sent && !r.ScheduledFor.After(now)
}

// MessageLog журнал WhatsApp-сообщений брони, по записи на вид напоминания
type MessageLog struct {
	Initial    *ReminderRecord
	Reminder2W *ReminderRecord
	Reminder1W *ReminderRecord
	Followup7D *ReminderRecord
	Event24H   *ReminderRecord
	DayOf      *ReminderRecord
	PostEvent  *ReminderRecord
}

// Record возвращает запись для вида напоминания (nil, если записи нет)
func (m *MessageLog) Record(kind ReminderKind) *ReminderRecord {
	if m == nil {
		return nil
	}
	switch kind {
	case KindInitial:
		return m.Initial
	case KindReminder2W:
		return m.Reminder2W
	case KindReminder1W:
		return m.Reminder1W
	case KindFollowup7D:
		return m.Followup7D
	case KindEvent24H:
		return m.Event24H
	case KindDayOf:
		return m.DayOf
	case KindPostEvent:
		return m.PostEvent
	default:
		return nil
	}
}

// EnsureRecord возвращает запись для вида напоминания, создавая её при отсутствии
func (m *MessageLog) EnsureRecord(kind ReminderKind) *ReminderRecord {
	if rec := m.Record(kind); rec != nil {
		return rec
	}

	rec := &ReminderRecord{}
	switch kind {
	case KindInitial:
		m.Initial = rec
	case KindReminder2W:
		m.Reminder2W = rec
	case KindReminder1W:
		m.Reminder1W = rec
	case KindFollowup7D:
		m.Followup7D = rec
	case KindEvent24H:
		m.Event24H = rec
	case KindDayOf:
		m.DayOf = rec
	case KindPostEvent:
		m.PostEvent = rec
	}
	return rec
}
