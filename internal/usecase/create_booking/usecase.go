package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/BMP-BookingService/internal/availability"
	"github.com/m04kA/BMP-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/BMP-BookingService/internal/infra/storage/settings"
	directoryClient "github.com/m04kA/BMP-BookingService/internal/integrations/directoryservice"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	blockRepo       BlockRepository
	settingsRepo    SettingsRepository
	directoryClient DirectoryServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	settingsRepo SettingsRepository,
	directoryClient DirectoryServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:     bookingRepo,
		blockRepo:       blockRepo,
		settingsRepo:    settingsRepo,
		directoryClient: directoryClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// доступность слота перепроверяется внутри транзакции по данным,
// заблокированным через FOR UPDATE
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, business=%d, service=%d, date=%s, time=%s",
		req.UserID, req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бизнес
	if _, err := uc.directoryClient.GetBusiness(ctx, req.BusinessID); err != nil {
		if errors.Is(err, directoryClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 4. Получаем услугу - её длительность определяет занимаемый интервал
	service, err := uc.directoryClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, directoryClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Получаем рабочие часы на день недели - HTTP вызов держим вне транзакции
	hours, err := uc.directoryClient.GetOperatingHours(ctx, req.BusinessID, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get operating hours for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get operating hours: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Получаем настройки бронирования
		settings, err := uc.settingsRepo.GetByBusinessID(txCtx, req.BusinessID)
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateBooking: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		if settings == nil {
			settings = domain.DefaultBookingSettings(req.BusinessID)
			uc.logger.Info("CreateBooking: using default settings for business=%d", req.BusinessID)
		}

		// 6.2. Валидация даты с учетом настроек
		if err := validateDate(req.Date, now, settings); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 6.3. Валидация времени бронирования (minBookingNoticeMinutes)
		if err := validateBookingTime(req.Date, req.StartTime, now, settings.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateBooking: booking time validation failed: %v", err)
			return err
		}

		// 6.4. Получаем активные бронирования на дату с блокировкой (FOR UPDATE) и блоки
		bookings, err := uc.bookingRepo.GetForDay(txCtx, req.BusinessID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		blocks, err := uc.blockRepo.GetOverlappingDay(txCtx, req.BusinessID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocks: %v", err)
			return fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
		}

		// 6.5. Проверяем, что запрошенное время лежит на пустой сетке слотов:
		// выровнено по шагу и помещается в рабочие часы
		grid, err := availability.ComputeAvailableSlots(
			hours, service.DurationMinutes, nil, nil, req.Date, settings.SlotGranularityMinutes)
		if err != nil {
			if errors.Is(err, availability.ErrInvalidInput) {
				uc.logger.Warn("CreateBooking: invalid computation input: %v", err)
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			uc.logger.Error("CreateBooking: failed to compute slot grid: %v", err)
			return fmt.Errorf("%w: failed to compute slot grid: %v", ErrInternal, err)
		}

		requestedStart := req.StartTime.At(req.Date)

		if len(grid) == 0 {
			uc.logger.Warn("CreateBooking: business is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrBusinessClosed
		}
		if !containsSlot(grid, requestedStart) {
			uc.logger.Warn("CreateBooking: time %s is not on the slot grid", req.StartTime)
			return ErrInvalidTimeSlot
		}

		// 6.6. Проверяем доступность слота с учетом занятости
		available, err := availability.ComputeAvailableSlots(
			hours,
			service.DurationMinutes,
			bookedIntervals(bookings),
			blockedIntervals(blocks),
			req.Date,
			settings.SlotGranularityMinutes,
		)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute available slots: %v", err)
			return fmt.Errorf("%w: failed to compute available slots: %v", ErrInternal, err)
		}

		if !containsSlot(available, requestedStart) {
			uc.logger.Warn("CreateBooking: slot %s %s is already taken",
				req.Date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotNotAvailable
		}

		// 6.7. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			UserID:          req.UserID,
			BusinessID:      req.BusinessID,
			ServiceID:       req.ServiceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusConfirmed,
			ServiceName:     service.Name,
			ServicePrice:    getServicePrice(service),
			Notes:           req.Notes,
		}

		// 6.8. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		BusinessID:      result.BusinessID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// bookedIntervals конвертирует бронирования в занимаемые интервалы
func bookedIntervals(bookings []*domain.Booking) []availability.Interval {
	intervals := make([]availability.Interval, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		intervals = append(intervals, availability.Interval{Start: b.StartsAt(), End: b.EndsAt()})
	}
	return intervals
}

// blockedIntervals конвертирует заблокированные окна в интервалы
func blockedIntervals(blocks []*domain.Block) []availability.Interval {
	intervals := make([]availability.Interval, 0, len(blocks))
	for _, b := range blocks {
		intervals = append(intervals, availability.Interval{Start: b.StartsAt, End: b.EndsAt})
	}
	return intervals
}
