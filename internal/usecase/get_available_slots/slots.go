package get_available_slots

import (
	"github.com/m04kA/BMP-BookingService/internal/availability"
	"github.com/m04kA/BMP-BookingService/internal/domain"
)

// bookedIntervals конвертирует бронирования в интервалы для расчета доступности
// Неактивные бронирования (отмененные, no-show) слоты не занимают:
// репозиторий их уже отфильтровал, но здесь перепроверяем
func bookedIntervals(bookings []*domain.Booking) []availability.Interval {
	intervals := make([]availability.Interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		intervals = append(intervals, availability.Interval{
			Start: b.StartsAt(),
			End:   b.EndsAt(),
		})
	}
	return intervals
}

// blockedIntervals конвертирует заблокированные окна в интервалы
func blockedIntervals(blocks []*domain.Block) []availability.Interval {
	intervals := make([]availability.Interval, 0, len(blocks))
	for _, b := range blocks {
		intervals = append(intervals, availability.Interval{
			Start: b.StartsAt,
			End:   b.EndsAt,
		})
	}
	return intervals
}
