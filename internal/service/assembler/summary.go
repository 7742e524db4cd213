package assembler

import (
	"fmt"

	"github.com/m04kA/MUA-QuoteService/internal/domain"
)

// DaySummary клиентское представление одного дня брони
// Строится из тех же данных, что использует движок расчета,
// чтобы смета и описание не расходились
type DaySummary struct {
	Date      string
	ReadyTime string
	Service   string
	Option    string
	Location  string
	Addons    []string
}

// SummarizeDays формирует человекочитаемое описание дней брони
// Некорректные дни пропускаются так же, как при расчете сметы
func SummarizeDays(days []domain.BookingDay) []DaySummary {
	summaries := make([]DaySummary, 0, len(days))

	for i := range days {
		day := &days[i]
		if day.IsMalformed() {
			continue
		}

		summary := DaySummary{
			Date:      day.Date.Format(domain.HumanDateFormat),
			ReadyTime: day.ReadyTime.Format12Hour(),
			Service:   day.ServiceID,
			Option:    day.ServiceOption.Label(),
			Location:  "Studio",
			Addons:    summarizeAddons(day),
		}

		if day.IsMobile() && day.MobileLocation != nil {
			summary.Location = *day.MobileLocation
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

// summarizeAddons возвращает метки включенных аддонов дня
func summarizeAddons(day *domain.BookingDay) []string {
	addons := make([]string, 0)

	if day.HairExtensions > 0 {
		addons = append(addons, fmt.Sprintf("%s x %d", domain.AddonHairExtensions.Label(), day.HairExtensions))
	}
	if day.AllowsGatedAddons() {
		if day.JewellerySetting {
			addons = append(addons, domain.AddonJewellerySetting.Label())
		}
		if day.SareeDraping {
			addons = append(addons, domain.AddonSareeDraping.Label())
		}
		if day.HijabSetting {
			addons = append(addons, domain.AddonHijabSetting.Label())
		}
	}

	return addons
}
