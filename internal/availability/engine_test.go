package availability

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	"github.com/m04kA/BMP-BookingService/pkg/types"
)

// 2025-11-01 - суббота
var saturday = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

func hoursFor(day time.Weekday, open, close string) *domain.OperatingHours {
	return &domain.OperatingHours{
		DayOfWeek: day,
		OpenTime:  types.TimeString(open),
		CloseTime: types.TimeString(close),
	}
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func TestComputeAvailableSlots_FullOpenDay(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")

	slots, err := ComputeAvailableSlots(hours, 60, nil, nil, saturday, 30)
	require.NoError(t, err)

	// 09:00 .. 17:00 с шагом 30 минут, последний слот 17:00-18:00
	require.Len(t, slots, 17)
	assert.Equal(t, at(saturday, 9, 0), slots[0])
	assert.Equal(t, at(saturday, 9, 30), slots[1])
	assert.Equal(t, at(saturday, 17, 0), slots[len(slots)-1])
}

func TestComputeAvailableSlots_BookingRemovesOverlappingCandidates(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")
	booked := []Interval{{Start: at(saturday, 10, 0), End: at(saturday, 11, 0)}}

	slots, err := ComputeAvailableSlots(hours, 60, booked, nil, saturday, 30)
	require.NoError(t, err)

	// 09:30, 10:00 и 10:30 пересекаются с [10:00, 11:00) при длительности 60 минут
	assert.Contains(t, slots, at(saturday, 9, 0))
	assert.NotContains(t, slots, at(saturday, 9, 30))
	assert.NotContains(t, slots, at(saturday, 10, 0))
	assert.NotContains(t, slots, at(saturday, 10, 30))
	// Слот, начинающийся ровно в конце бронирования, доступен
	assert.Contains(t, slots, at(saturday, 11, 0))
	require.Len(t, slots, 14)
}

func TestComputeAvailableSlots_NoRecordSundayClosed(t *testing.T) {
	sunday := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Sunday, sunday.Weekday())

	slots, err := ComputeAvailableSlots(nil, 30, nil, nil, sunday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_NoRecordWeekdayDefaults(t *testing.T) {
	tuesday := time.Date(2025, 11, 4, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Tuesday, tuesday.Weekday())

	slots, err := ComputeAvailableSlots(nil, 30, nil, nil, tuesday, 30)
	require.NoError(t, err)

	// Окно по умолчанию 09:00-18:00: 09:00 .. 17:30, всего 18 слотов
	require.Len(t, slots, 18)
	assert.Equal(t, at(tuesday, 9, 0), slots[0])
	assert.Equal(t, at(tuesday, 17, 30), slots[len(slots)-1])
}

func TestComputeAvailableSlots_ClosedDayAlwaysEmpty(t *testing.T) {
	hours := &domain.OperatingHours{DayOfWeek: time.Saturday, IsClosed: true}
	booked := []Interval{{Start: at(saturday, 10, 0), End: at(saturday, 11, 0)}}

	slots, err := ComputeAvailableSlots(hours, 30, booked, nil, saturday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_LunchBlockBoundaries(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")
	blocked := []Interval{{Start: at(saturday, 12, 0), End: at(saturday, 13, 0)}}

	slots, err := ComputeAvailableSlots(hours, 30, nil, blocked, saturday, 30)
	require.NoError(t, err)

	// Слот 11:30-12:00 заканчивается ровно в начале блока - доступен
	assert.Contains(t, slots, at(saturday, 11, 30))
	assert.NotContains(t, slots, at(saturday, 12, 0))
	assert.NotContains(t, slots, at(saturday, 12, 30))
	// Слот 13:00 начинается ровно в конце блока - доступен
	assert.Contains(t, slots, at(saturday, 13, 0))
}

func TestComputeAvailableSlots_FullDayBlock(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")
	blocked := []Interval{{Start: at(saturday, 9, 0), End: at(saturday, 18, 0)}}

	slots, err := ComputeAvailableSlots(hours, 30, nil, blocked, saturday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_CrossMidnightBlock(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")
	// Блок начался накануне и захватывает утро запрошенного дня
	blocked := []Interval{{
		Start: at(saturday.AddDate(0, 0, -1), 22, 0),
		End:   at(saturday, 11, 0),
	}}

	slots, err := ComputeAvailableSlots(hours, 30, nil, blocked, saturday, 30)
	require.NoError(t, err)

	assert.NotContains(t, slots, at(saturday, 9, 0))
	assert.NotContains(t, slots, at(saturday, 10, 30))
	assert.Contains(t, slots, at(saturday, 11, 0))
}

func TestComputeAvailableSlots_DurationFitBoundary(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")

	// 540 минут окна кратны 90: последний кандидат 16:30 заканчивается ровно в 18:00
	slots, err := ComputeAvailableSlots(hours, 90, nil, nil, saturday, 90)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, at(saturday, 16, 30), slots[len(slots)-1])

	// Превышение границы хотя бы на минуту исключает кандидата
	slots, err = ComputeAvailableSlots(hours, 91, nil, nil, saturday, 90)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, at(saturday, 15, 0), slots[len(slots)-1])
}

func TestComputeAvailableSlots_WindowNarrowerThanDuration(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "10:00")

	slots, err := ComputeAvailableSlots(hours, 120, nil, nil, saturday, 30)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlots_StrictlyAscendingNoDuplicates(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")
	booked := []Interval{
		{Start: at(saturday, 10, 0), End: at(saturday, 10, 45)},
		{Start: at(saturday, 14, 15), End: at(saturday, 15, 0)},
	}

	slots, err := ComputeAvailableSlots(hours, 45, booked, nil, saturday, 15)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Before(slots[i]),
			"slots must be strictly ascending: %v before %v", slots[i-1], slots[i])
	}
}

func TestComputeAvailableSlots_NoReturnedSlotOverlapsInputs(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")
	booked := []Interval{
		{Start: at(saturday, 9, 10), End: at(saturday, 9, 50)},
		{Start: at(saturday, 13, 0), End: at(saturday, 14, 30)},
	}
	blocked := []Interval{
		{Start: at(saturday, 11, 0), End: at(saturday, 11, 20)},
	}

	slots, err := ComputeAvailableSlots(hours, 40, booked, blocked, saturday, 20)
	require.NoError(t, err)

	duration := 40 * time.Minute
	for _, start := range slots {
		candidate := Interval{Start: start, End: start.Add(duration)}
		for _, iv := range append(booked, blocked...) {
			assert.False(t, candidate.Overlaps(iv),
				"slot %v overlaps input interval %v", candidate, iv)
		}
	}
}

func TestComputeAvailableSlots_HourTruncationOfStoredTimes(t *testing.T) {
	// Унаследованное поведение: минуты открытия/закрытия отбрасываются.
	// Бизнес с часами 09:30-17:45 сканируется как 09:00-17:00.
	hours := hoursFor(time.Saturday, "09:30", "17:45")

	slots, err := ComputeAvailableSlots(hours, 60, nil, nil, saturday, 30)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	assert.Equal(t, at(saturday, 9, 0), slots[0])
	assert.Equal(t, at(saturday, 16, 0), slots[len(slots)-1])
}

func TestComputeAvailableSlots_InvalidInput(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")

	_, err := ComputeAvailableSlots(hours, 0, nil, nil, saturday, 30)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeAvailableSlots(hours, -15, nil, nil, saturday, 30)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeAvailableSlots(hours, 30, nil, nil, saturday, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeAvailableSlots(hours, 30, nil, nil, saturday, -5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestComputeAvailableSlots_Idempotent(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")
	booked := []Interval{{Start: at(saturday, 10, 0), End: at(saturday, 11, 0)}}

	first, err := ComputeAvailableSlots(hours, 60, booked, nil, saturday, 30)
	require.NoError(t, err)
	second, err := ComputeAvailableSlots(hours, 60, booked, nil, saturday, 30)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// Расчет доступности выполняется по снимку данных и не даёт взаимного
// исключения: два одновременных клиента видят один и тот же свободный слот.
// Окончательная защита от двойного бронирования - на пути записи.
func TestComputeAvailableSlots_ConcurrentReadersSeeSameSnapshot(t *testing.T) {
	hours := hoursFor(time.Saturday, "09:00", "18:00")
	booked := []Interval{{Start: at(saturday, 10, 0), End: at(saturday, 11, 0)}}

	const readers = 8
	results := make([][]time.Time, readers)

	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			slots, err := ComputeAvailableSlots(hours, 60, booked, nil, saturday, 30)
			require.NoError(t, err)
			results[i] = slots
		}(i)
	}
	wg.Wait()

	for i := 1; i < readers; i++ {
		assert.Equal(t, results[0], results[i])
	}
	// Оба "одновременных" клиента считают слот 11:00 свободным
	assert.Contains(t, results[0], at(saturday, 11, 0))
}
