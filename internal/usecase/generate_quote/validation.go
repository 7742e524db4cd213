package generate_quote

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// FieldErrors ошибки валидации, накопленные по полям запроса
// Ключ указывает на поле во входном запросе, значение описывает проблему
type FieldErrors map[string]string

// Error перечисляет все проблемные поля в одном сообщении
func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e[key]))
	}
	return "generate_quote: invalid input: " + strings.Join(parts, "; ")
}

// Unwrap сопоставляет накопленные ошибки с ErrInvalidInput через errors.Is
func (e FieldErrors) Unwrap() error { return ErrInvalidInput }

// validateRequest валидирует входные данные запроса
// Дни с пустой услугой, датой или временем готовности не являются ошибкой:
// они молча исключаются из расчета ниже по конвейеру. Ошибкой считается
// запрос, в котором расчет в принципе не из чего собирать, и поля,
// которые были переданы, но содержат неизвестные значения
//
// Ошибки полей накапливаются: клиент видит все проблемные поля разом,
// а не по одному на каждую попытку
func validateRequest(req *Request) error {
	fields := FieldErrors{}

	if req.Contact.Name == "" {
		fields["contact.name"] = "contact name is required"
	}

	if req.Contact.Phone == "" {
		fields["contact.phone"] = "contact phone is required"
	}

	if len(req.Days) == 0 {
		fields["days"] = "at least one booking day is required"
	}

	usable := 0
	for i := range req.Days {
		day := &req.Days[i]

		validateDay(fields, day, i)

		if !day.IsMalformed() {
			usable++
		}
	}

	if req.Trial.IsRequested() {
		validateTrial(fields, req.Trial, req.Days)
	}

	if len(fields) > 0 {
		return fields
	}

	if usable == 0 {
		return ErrNoUsableDays
	}

	return nil
}

// validateDay проверяет заполненные поля одного дня
func validateDay(fields FieldErrors, day *domain.BookingDay, i int) {
	key := func(name string) string { return fmt.Sprintf("days[%d].%s", i, name) }

	if day.ServiceOption != "" && !day.ServiceOption.IsValid() {
		fields[key("serviceOption")] = fmt.Sprintf("unknown service option %q", day.ServiceOption)
	}

	if day.ServiceType != "" && !day.ServiceType.IsValid() {
		fields[key("serviceType")] = fmt.Sprintf("unknown service type %q", day.ServiceType)
	}

	if day.IsMobile() && (day.MobileLocation == nil || *day.MobileLocation == "") {
		fields[key("mobileLocation")] = "mobile day requires a location"
	}

	if !day.ReadyTime.IsZero() {
		if err := day.ReadyTime.Validate(); err != nil {
			fields[key("readyTime")] = fmt.Sprintf("invalid ready time: %v", err)
		}
	}

	if day.HairExtensions < 0 {
		fields[key("hairExtensions")] = "must not be negative"
	}

	if day.PartyPeopleCount < 0 {
		fields[key("partyPeopleCount")] = "must not be negative"
	}

	if day.PartyServices != nil {
		for _, entry := range day.PartyServices.Entries() {
			if entry.Count < 0 {
				fields[key("partyServices."+string(entry.Key))] = "must not be negative"
			}
		}
	}
}

// validateTrial проверяет данные пробной встречи
// Пробная встреча предшествует самому раннему свадебному дню брони
func validateTrial(fields FieldErrors, trial *domain.BridalTrial, days []domain.BookingDay) {
	if trial.Date.IsZero() {
		fields["trial.date"] = "trial date is required"
	}

	if trial.Time.IsZero() {
		fields["trial.time"] = "trial time is required"
	} else if err := trial.Time.Validate(); err != nil {
		fields["trial.time"] = fmt.Sprintf("invalid trial time format: %v", err)
	}

	if trial.ServiceOption != "" && !trial.ServiceOption.IsValid() {
		fields["trial.serviceOption"] = fmt.Sprintf("unknown service option %q", trial.ServiceOption)
	}

	if trial.Date.IsZero() {
		return
	}

	if bridalAt, ok := earliestBridalDate(days); ok && !trial.Date.Before(bridalAt) {
		fields["trial.date"] = fmt.Sprintf("trial must precede the bridal day %s", bridalAt.Format(domain.DateFormat))
	}
}

// earliestBridalDate возвращает дату самого раннего корректного bridal-дня
func earliestBridalDate(days []domain.BookingDay) (time.Time, bool) {
	var earliest time.Time
	found := false

	for i := range days {
		day := &days[i]
		if day.IsMalformed() || !day.IsBridal() {
			continue
		}
		if !found || day.Date.Before(earliest) {
			earliest = day.Date
			found = true
		}
	}

	return earliest, found
}
