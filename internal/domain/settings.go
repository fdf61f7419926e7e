package domain

import "time"

// BusinessBookingSettings represents the per-business booking configuration:
// how fine the slot grid is and how far ahead/close to now customers may book.
type BusinessBookingSettings struct {
	ID                      int64
	BusinessID              int64
	SlotGranularityMinutes  int
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *BusinessBookingSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// DefaultBookingSettings returns the settings applied when a business has no
// stored configuration
func DefaultBookingSettings(businessID int64) *BusinessBookingSettings {
	return &BusinessBookingSettings{
		BusinessID:              businessID,
		SlotGranularityMinutes:  DefaultSlotGranularityMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}
