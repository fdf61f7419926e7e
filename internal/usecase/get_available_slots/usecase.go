package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BMP-BookingService/internal/availability"
	"github.com/m04kA/BMP-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/BMP-BookingService/internal/infra/storage/settings"
	directoryClient "github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
)

// UseCase use case для получения доступных слотов для записи
//
// Результат вычисляется по снимку бронирований и блоков на момент чтения и
// никак слоты не резервирует. Между этим чтением и созданием записи другой
// клиент может занять слот - защита от двойного бронирования целиком лежит
// на usecase создания бронирования (сериализуемая транзакция + FOR UPDATE)
type UseCase struct {
	bookingRepo     BookingRepository
	blockRepo       BlockRepository
	settingsRepo    SettingsRepository
	directoryClient DirectoryServiceClient
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	settingsRepo SettingsRepository,
	directoryClient DirectoryServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		blockRepo:       blockRepo,
		settingsRepo:    settingsRepo,
		directoryClient: directoryClient,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	if _, err := uc.directoryClient.GetBusiness(ctx, req.BusinessID); err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Получаем услугу - её длительность определяет ширину слота
	service, err := uc.directoryClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Получаем рабочие часы на день недели запрошенной даты
	// Отсутствие записи (nil) - валидный случай, расчет доступности
	// применит политику по умолчанию
	hours, err := uc.directoryClient.GetOperatingHours(ctx, req.BusinessID, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get operating hours for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}

	// 5. Получаем настройки бронирования (шаг сетки слотов)
	settings, err := uc.settingsRepo.GetByBusinessID(ctx, req.BusinessID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings == nil {
		settings = domain.DefaultBookingSettings(req.BusinessID)
		uc.logger.Info("GetAvailableSlots: using default settings for business=%d", req.BusinessID)
	}

	// 6. Получаем бронирования и блоки на запрошенный день
	bookings, err := uc.bookingRepo.GetForDay(ctx, req.BusinessID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.GetOverlappingDay(ctx, req.BusinessID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	// 7. Вычисляем доступные слоты
	starts, err := availability.ComputeAvailableSlots(
		hours,
		service.DurationMinutes,
		bookedIntervals(bookings),
		blockedIntervals(blocks),
		req.Date,
		settings.SlotGranularityMinutes,
	)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			uc.logger.Warn("GetAvailableSlots: invalid computation input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to compute slots: %v", err)
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	slots := make([]Slot, len(starts))
	for i, start := range starts {
		slots[i] = Slot{
			StartsAt:        start,
			DurationMinutes: service.DurationMinutes,
		}
	}

	uc.logger.Info("GetAvailableSlots: computed %d slots for business=%d, service=%d, date=%s",
		len(slots), req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       req.Date,
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Slots:      slots,
	}, nil
}
