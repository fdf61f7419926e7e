package domain

import "time"

// Block represents an explicit business-initiated unavailability window not
// tied to any booking: vacation, lunch break, maintenance. A block may span
// multiple days or only partially overlap a queried day.
type Block struct {
	ID         int64
	BusinessID int64
	StartsAt   time.Time
	EndsAt     time.Time
	Reason     string // free-text label, not used in availability logic
	CreatedBy  int64
	CreatedAt  time.Time
}
