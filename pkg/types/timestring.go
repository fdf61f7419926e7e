package types

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeString represents a wall-clock time of day in "HH:MM" format.
// It is the canonical time-of-day value used across the service: stored in
// Postgres TIME columns, serialized to JSON as-is, compared as minutes from
// midnight. "24:00" is allowed as an interval end boundary but is not a valid
// external input (Validate rejects it).
type TimeString string

const timeStringLayout = "15:04"

// minutesPerDay количество минут в сутках, верхняя граница для TimeString
const minutesPerDay = 24 * 60

// NewTimeString создает TimeString из time.Time (компонент даты отбрасывается)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeStringLayout))
}

// NewTimeStringFromString создает TimeString из строки "HH:MM" с валидацией
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return "", fmt.Errorf("time out of range: %d minutes", minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero returns true if the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение имеет формат "HH:MM" с часами 00-23
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeStringLayout, string(t)); err != nil {
		return fmt.Errorf("invalid time string format: %v", err)
	}
	return nil
}

// Minutes возвращает количество минут от полуночи
// Для некорректного значения возвращает ошибку
func (t TimeString) Minutes() (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(string(t), "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time string format: %v", err)
	}
	if h < 0 || m < 0 || m > 59 || h*60+m > minutesPerDay {
		return 0, fmt.Errorf("time out of range: %s", t)
	}
	return h*60 + m, nil
}

// Hour возвращает компонент часа (для некорректного значения 0)
func (t TimeString) Hour() int {
	minutes, err := t.Minutes()
	if err != nil {
		return 0
	}
	return minutes / 60
}

// Minute возвращает компонент минут (для некорректного значения 0)
func (t TimeString) Minute() int {
	minutes, err := t.Minutes()
	if err != nil {
		return 0
	}
	return minutes % 60
}

// AddMinutes возвращает новый TimeString, сдвинутый на указанное число минут
// Возвращает ошибку, если результат выходит за границы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	total, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(total + minutes)
}

// IsBefore возвращает true, если t строго раньше other
// Некорректные значения считаются равными полуночи
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutesOrZero() < other.minutesOrZero()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutesOrZero() > other.minutesOrZero()
}

func (t TimeString) minutesOrZero() int {
	minutes, err := t.Minutes()
	if err != nil {
		return 0
	}
	return minutes
}

// At привязывает время к календарной дате, получая абсолютный time.Time
func (t TimeString) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location())
}

// Scan реализует sql.Scanner
// Postgres TIME сканируется драйвером как time.Time, string или []byte
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TimeString", value)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME колонка может прийти с секундами ("10:00:00")
	if len(s) > 5 {
		s = s[:5]
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
