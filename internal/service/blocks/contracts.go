package blocks

import (
	"context"
	"time"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	"github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
)

// BlockRepository интерфейс репозитория заблокированных интервалов
type BlockRepository interface {
	Create(ctx context.Context, block *domain.Block) (*domain.Block, error)
	GetByID(ctx context.Context, id int64) (*domain.Block, error)
	GetByBusiness(ctx context.Context, businessID int64, from *time.Time) ([]*domain.Block, error)
	Delete(ctx context.Context, id int64) error
}

// DirectoryServiceClient интерфейс клиента для DirectoryService
type DirectoryServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*directoryservice.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
