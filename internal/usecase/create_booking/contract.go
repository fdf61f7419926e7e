package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	"github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	// GetForDay в транзакции использует FOR UPDATE
	GetForDay(ctx context.Context, businessID int64, date time.Time) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория заблокированных интервалов
type BlockRepository interface {
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

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
