package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BMP-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/BMP-BookingService/internal/infra/storage/settings"
	directoryClient "github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
	"github.com/m04kA/BMP-BookingService/internal/service/settings/models"
)

// Service сервис для работы с настройками бронирования бизнеса
type Service struct {
	settingsRepo    SettingsRepository
	directoryClient DirectoryServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	directoryClient DirectoryServiceClient,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:    settingsRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// Get возвращает настройки бронирования бизнеса
// Доступно только менеджерам бизнеса
// Если настройки не сохранены, возвращаются значения по умолчанию
func (s *Service) Get(ctx context.Context, req *models.GetSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for business=%d by user=%d", req.BusinessID, req.UserID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	// Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	stored, err := s.settingsRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: no stored settings for business=%d, returning defaults", req.BusinessID)
			resp := models.FromDomainSettings(domain.DefaultBookingSettings(req.BusinessID))
			resp.IsDefault = true
			return resp, nil
		}
		s.logger.Error("Get: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched settings for business=%d", req.BusinessID)
	return models.FromDomainSettings(stored), nil
}

// Update обновляет настройки бронирования бизнеса
// Доступно только менеджерам бизнеса
// Поддерживает частичное обновление - не переданные поля сохраняют
// текущие (или дефолтные) значения
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for business=%d by user=%d", req.BusinessID, req.UserID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	// 1. Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// 2. Загружаем текущие настройки, отсутствие строки - старт с дефолтов
	current, err := s.settingsRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error for business=%d: %v", req.BusinessID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		current = domain.DefaultBookingSettings(req.BusinessID)
	}

	// 3. Применяем частичное обновление и валидируем результат
	req.ApplyToSettings(current)
	if err := validateSettingsData(current); err != nil {
		s.logger.Warn("Update: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, err
	}

	// 4. Сохраняем (insert или update одной операцией)
	updated, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for business=%d", req.BusinessID)
	return models.FromDomainSettings(updated), nil
}

// Вспомогательные методы

// validateSettingsData валидирует параметры настроек бронирования
func validateSettingsData(s *domain.BusinessBookingSettings) error {
	// Проверяем slotGranularityMinutes
	if s.SlotGranularityMinutes < 5 || s.SlotGranularityMinutes > 240 {
		return fmt.Errorf("%w: slotGranularityMinutes must be between 5 and 240", ErrInvalidInput)
	}

	// Проверяем advanceBookingDays (0 = без ограничений)
	if s.AdvanceBookingDays < 0 || s.AdvanceBookingDays > 365 {
		return fmt.Errorf("%w: advanceBookingDays must be between 0 and 365", ErrInvalidInput)
	}

	// Проверяем minBookingNoticeMinutes (максимум 7 дней в минутах)
	if s.MinBookingNoticeMinutes < 0 || s.MinBookingNoticeMinutes > 10080 {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between 0 and 10080", ErrInvalidInput)
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) error {
	business, err := s.directoryClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkManagerAccess - failed to get business: %v", ErrInternal, err)
	}

	for _, managerID := range business.ManagerIDs {
		if managerID == userID {
			return nil
		}
	}

	s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
	return ErrAccessDenied
}
