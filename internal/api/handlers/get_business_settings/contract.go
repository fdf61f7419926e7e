package get_business_settings

import (
	"context"

	"github.com/m04kA/BMP-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	Get(ctx context.Context, req *models.GetSettingsRequest) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
