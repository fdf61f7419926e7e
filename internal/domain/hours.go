package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/BMP-BookingService/pkg/types"
)

// OperatingHours represents a business's configured open/close window for one
// weekday. DayOfWeek follows time.Weekday numbering: 0 = Sunday.
// A business may have no record at all for a weekday; the availability engine
// applies the default policy in that case.
type OperatingHours struct {
	BusinessID int64
	DayOfWeek  time.Weekday
	IsClosed   bool
	OpenTime   types.TimeString // meaningful only when IsClosed is false
	CloseTime  types.TimeString
}

// Validate checks the open/close invariant for a non-closed record
func (h *OperatingHours) Validate() error {
	if h.DayOfWeek < time.Sunday || h.DayOfWeek > time.Saturday {
		return fmt.Errorf("dayOfWeek out of range: %d", h.DayOfWeek)
	}
	if h.IsClosed {
		return nil
	}
	if err := h.OpenTime.Validate(); err != nil {
		return fmt.Errorf("openTime: %v", err)
	}
	if err := h.CloseTime.Validate(); err != nil {
		return fmt.Errorf("closeTime: %v", err)
	}
	if !h.OpenTime.IsBefore(h.CloseTime) {
		return fmt.Errorf("openTime %s must be before closeTime %s", h.OpenTime, h.CloseTime)
	}
	return nil
}
