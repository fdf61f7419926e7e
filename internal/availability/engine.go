package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/BMP-BookingService/internal/domain"
)

// ComputeAvailableSlots вычисляет доступные времена начала записи на один
// календарный день. Чистая функция без I/O и состояния: все данные передаются
// аргументами, результат детерминирован. Безопасна для параллельных вызовов.
//
// hours - запись рабочих часов для дня недели queryDate, nil если записи нет.
// При отсутствии записи применяется политика по умолчанию: воскресенье
// закрыто, остальные дни 09:00-18:00.
//
// booked и blocked предварительно отфильтрованы вызывающей стороной по дню,
// но функция перепроверяет фактическое пересечение каждого кандидата сама и
// префильтру не доверяет.
//
// Результат строго возрастает по времени, без дубликатов. Пустой список - не
// ошибка: так выглядит закрытый или полностью занятый день.
//
// Результат носит справочный характер: он вычислен по снимку данных на момент
// чтения и не резервирует слоты. Между этим чтением и созданием записи другой
// клиент может занять слот - окончательную проверку коллизий выполняет путь
// создания бронирования внутри сериализуемой транзакции.
func ComputeAvailableSlots(
	hours *domain.OperatingHours,
	serviceDurationMinutes int,
	booked []Interval,
	blocked []Interval,
	queryDate time.Time,
	granularityMinutes int,
) ([]time.Time, error) {
	if serviceDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: service duration must be positive, got %d", ErrInvalidInput, serviceDurationMinutes)
	}
	if granularityMinutes <= 0 {
		return nil, fmt.Errorf("%w: slot granularity must be positive, got %d", ErrInvalidInput, granularityMinutes)
	}

	// Нормализуем дату до полуночи, компонент времени игнорируется
	day := time.Date(queryDate.Year(), queryDate.Month(), queryDate.Day(), 0, 0, 0, 0, queryDate.Location())

	openHour, closeHour, closed := scanBounds(hours, day.Weekday())
	if closed {
		return []time.Time{}, nil
	}

	dayStart := day.Add(time.Duration(openHour) * time.Hour)
	dayEnd := day.Add(time.Duration(closeHour) * time.Hour)

	duration := time.Duration(serviceDurationMinutes) * time.Minute
	step := time.Duration(granularityMinutes) * time.Minute

	slots := make([]time.Time, 0)

	for start := dayStart; ; start = start.Add(step) {
		end := start.Add(duration)
		// Дальше ни один кандидат не поместится - прекращаем сканирование
		if end.After(dayEnd) {
			break
		}

		candidate := Interval{Start: start, End: end}
		if overlapsAny(candidate, booked) || overlapsAny(candidate, blocked) {
			continue
		}

		slots = append(slots, start)
	}

	return slots, nil
}

// scanBounds определяет границы сканирования дня в целых часах
//
// От сохраненных рабочих часов берется только компонент часа: бизнес с
// открытием в 09:30 сканируется с 09:00. Это унаследованное поведение,
// зафиксированное тестами - не менять молча.
func scanBounds(hours *domain.OperatingHours, weekday time.Weekday) (openHour, closeHour int, closed bool) {
	if hours == nil {
		// Записи нет: воскресенье закрыто, остальные дни - окно по умолчанию
		if weekday == time.Sunday {
			return 0, 0, true
		}
		return domain.DefaultOpenHour, domain.DefaultCloseHour, false
	}

	if hours.IsClosed {
		return 0, 0, true
	}

	return hours.OpenTime.Hour(), hours.CloseTime.Hour(), false
}
