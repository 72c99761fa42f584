package get_availability

import (
	"time"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
)

// generateDailySlots генерирует кандидатов начала слота на день.
// Кандидаты идут от day@openHour:00 с шагом stepMinutes, пока НАЧАЛО
// кандидата строго раньше day@closeHour:00.
//
// Конец последнего слота может выходить за час закрытия — это осознанное
// поведение продукта: начатая услуга дорабатывается после закрытия.
// Проверяется только начало слота.
//
// При openHour >= closeHour возвращается пустой список, не ошибка.
func generateDailySlots(day time.Time, loc *time.Location, openHour, closeHour, stepMinutes int) []time.Time {
	if openHour >= closeHour || stepMinutes <= 0 {
		return []time.Time{}
	}

	year, month, dayOfMonth := day.Date()
	open := time.Date(year, month, dayOfMonth, openHour, 0, 0, 0, loc)
	close := time.Date(year, month, dayOfMonth, closeHour, 0, 0, 0, loc)
	step := time.Duration(stepMinutes) * time.Minute

	slots := make([]time.Time, 0, (closeHour-openHour)*60/stepMinutes+1)
	for t := open; t.Before(close); t = t.Add(step) {
		slots = append(slots, t)
	}

	return slots
}

// dayWindow возвращает границы суток [00:00, следующие 00:00) в таймзоне
// бизнеса — окно одного range-запроса за бронированиями дня
func dayWindow(day time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, dayOfMonth := day.Date()
	start := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// filterFreeSlots оставляет кандидатов, чей интервал [s, s+step) не
// пересекается ни с одним активным бронированием.
//
// Пересечение полуоткрытое: бронирование, заканчивающееся ровно в начале
// кандидата, слот не занимает.
func filterFreeSlots(candidates []time.Time, stepMinutes int, bookings []*domain.Booking) []time.Time {
	step := time.Duration(stepMinutes) * time.Minute

	free := make([]time.Time, 0, len(candidates))
	for _, start := range candidates {
		end := start.Add(step)

		taken := false
		for _, booking := range bookings {
			// Запрос уже отфильтровал отменённые, но фильтр дублируем:
			// инвариант пересечений держится только на активных бронях
			if !booking.IsActive() {
				continue
			}
			if booking.Overlaps(start, end) {
				taken = true
				break
			}
		}

		if !taken {
			free = append(free, start)
		}
	}

	return free
}
