package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, invalid := range []string{"", "9:30:00", "25:00", "12:60", "abc"} {
		_, err := NewTimeStringFromString(invalid)
		assert.Error(t, err, "expected error for %q", invalid)
	}
}

func TestTimeStringComponents(t *testing.T) {
	ts := TimeString("17:45")
	assert.Equal(t, 17, ts.Hour())
	assert.Equal(t, 45, ts.Minute())
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("10:00")

	end, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), end)

	// Ровно до конца суток допустимо
	end, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	// Переход через полночь - ошибка
	_, err = TimeString("23:30").AddMinutes(60)
	assert.Error(t, err)

	_, err = TimeString("00:30").AddMinutes(-60)
	assert.Error(t, err)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("09:30")))
	assert.False(t, TimeString("09:30").IsBefore(TimeString("09:30")))
	assert.True(t, TimeString("18:00").IsAfter(TimeString("09:00")))
	assert.False(t, TimeString("09:00").IsAfter(TimeString("09:00")))
}

func TestTimeStringAt(t *testing.T) {
	date := time.Date(2025, 11, 1, 15, 42, 7, 0, time.UTC)
	got := TimeString("09:30").At(date)
	assert.Equal(t, time.Date(2025, 11, 1, 9, 30, 0, 0, time.UTC), got)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan(time.Date(0, 1, 1, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan("14:00:00"))
	assert.Equal(t, TimeString("14:00"), ts)

	require.NoError(t, ts.Scan([]byte("08:15")))
	assert.Equal(t, TimeString("08:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("12:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "12:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("junk").Value()
	assert.Error(t, err)
}
