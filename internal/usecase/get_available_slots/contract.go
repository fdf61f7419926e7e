package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	"github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetForDay получает активные бронирования бизнеса на календарный день
	GetForDay(ctx context.Context, businessID int64, date time.Time) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория заблокированных интервалов
type BlockRepository interface {
	// GetOverlappingDay получает блоки, пересекающие календарный день
	GetOverlappingDay(ctx context.Context, businessID int64, date time.Time) ([]*domain.Block, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	GetByBusinessID(ctx context.Context, businessID int64) (*domain.BusinessBookingSettings, error)
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*directoryservice.Service, error)
	GetOperatingHours(ctx context.Context, businessID int64, dayOfWeek time.Weekday) (*domain.OperatingHours, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
