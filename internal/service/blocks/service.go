package blocks

import (
	"context"
	"errors"
	"fmt"

	blockRepo "github.com/m04kA/BMP-BookingService/internal/infra/storage/block"
	directoryClient "github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
	"github.com/m04kA/BMP-BookingService/internal/service/blocks/models"
)

// Service сервис для работы с заблокированными интервалами
type Service struct {
	blockRepo       BlockRepository
	directoryClient DirectoryServiceClient
	logger          Logger
}

// NewService создает новый экземпляр сервиса блоков
func NewService(
	blockRepo BlockRepository,
	directoryClient DirectoryServiceClient,
	logger Logger,
) *Service {
	return &Service{
		blockRepo:       blockRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// Create создает новый заблокированный интервал
// Доступно только менеджерам бизнеса
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: creating block for business=%d, interval=[%s, %s) by user=%d",
		req.BusinessID, req.StartsAt, req.EndsAt, req.UserID)

	// 1. Валидируем входные данные
	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права доступа (только менеджер бизнеса)
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	// 3. Создаем блок
	created, err := s.blockRepo.Create(ctx, req.ToDomainBlock())
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created block id=%d", created.ID)
	return models.FromDomainBlock(created), nil
}

// Delete удаляет заблокированный интервал
// Доступно только менеджерам бизнеса, которому принадлежит блок
func (s *Service) Delete(ctx context.Context, blockID int64, userID int64) error {
	s.logger.Info("Delete: deleting block id=%d by user=%d", blockID, userID)

	// Получаем блок, чтобы определить бизнес для проверки прав
	block, err := s.blockRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if err := s.checkManagerAccess(ctx, block.BusinessID, userID); err != nil {
		return err
	}

	if err := s.blockRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%d not found during deletion", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%d: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted block id=%d", blockID)
	return nil
}

// List возвращает заблокированные интервалы бизнеса
// Доступно только менеджерам бизнеса
func (s *Service) List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("List: fetching blocks for business=%d by user=%d", req.BusinessID, req.UserID)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	// Проверяем права доступа
	if err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	blocks, err := s.blockRepo.GetByBusiness(ctx, req.BusinessID, req.From)
	if err != nil {
		s.logger.Error("List: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blocks for business=%d", len(blocks), req.BusinessID)
	return models.FromDomainBlockList(blocks), nil
}

// Вспомогательные методы

// validateCreateRequest валидирует запрос на создание блока
func validateCreateRequest(req *models.CreateBlockRequest) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.StartsAt.IsZero() || req.EndsAt.IsZero() {
		return fmt.Errorf("%w: startsAt and endsAt are required", ErrInvalidInput)
	}
	if !req.StartsAt.Before(req.EndsAt) {
		return fmt.Errorf("%w: startsAt must be before endsAt", ErrInvalidInput)
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
