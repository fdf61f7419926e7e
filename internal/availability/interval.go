package availability

import "time"

// Interval полуинтервал времени [Start, End): начало включается, конец нет
// Единый тип для занятых и заблокированных окон календаря
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет реальное пересечение двух полуинтервалов
// Интервалы пересекаются, только если начало одного СТРОГО раньше конца
// другого и наоборот. Граничащие интервалы (конец одного равен началу
// другого) пересечением не считаются:
//
//   - [11:30, 12:00) и [11:20, 11:40) → ЕСТЬ пересечение
//   - [11:30, 12:00) и [11:00, 11:30) → НЕТ пересечения (граничат)
//   - [11:30, 12:00) и [12:00, 12:30) → НЕТ пересечения (граничат)
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// overlapsAny возвращает true, если интервал пересекается хотя бы с одним из списка
func overlapsAny(candidate Interval, intervals []Interval) bool {
	for _, iv := range intervals {
		if candidate.Overlaps(iv) {
			return true
		}
	}
	return false
}
