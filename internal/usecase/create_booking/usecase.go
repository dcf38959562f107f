package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	providerClient ProviderServiceClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	providerClient ProviderServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		providerClient: providerClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// расписание и занятые слоты перечитываются внутри транзакции с блокировкой,
// а уникальный индекс по активным бронированиям страхует от двойной записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%d, provider=%d, service=%d, date=%s, start=%s",
		req.CustomerID, req.ProviderID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartMinute)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем существование провайдера
	provider, err := uc.providerClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("CreateBooking: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	if !provider.IsActive {
		uc.logger.Warn("CreateBooking: provider id=%d is not active", req.ProviderID)
		return nil, ErrProviderNotFound
	}

	// 4. Получаем услугу провайдера
	service, err := uc.providerClient.GetService(ctx, req.ProviderID, req.ServiceID)
	if err != nil {
		if errors.Is(err, providerClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found for provider id=%d",
				req.ServiceID, req.ProviderID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 5. Выполняем проверку и запись в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Валидация даты
		if err := validateDate(req.Date, now); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.2. Перечитываем расписание внутри транзакции
		template, err := uc.scheduleRepo.GetByProviderID(txCtx, req.ProviderID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateBooking: provider id=%d has no schedule", req.ProviderID)
				return ErrProviderClosed
			}
			uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		rule := template.RuleForDate(req.Date)
		if !rule.IsOpen {
			uc.logger.Warn("CreateBooking: provider id=%d is closed on %s",
				req.ProviderID, req.Date.Format(domain.DateFormat))
			return ErrProviderClosed
		}

		// 5.3. Проверяем, что слот лежит на сетке рабочего дня
		if err := validateSlotInGrid(rule, req.StartMinute, duration); err != nil {
			uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
			return err
		}

		// 5.4. Слот на сегодня не должен быть в прошлом
		if err := validateNotInPastToday(req.Date, req.StartMinute, now); err != nil {
			uc.logger.Warn("CreateBooking: slot already started: start=%s", req.StartMinute)
			return err
		}

		// 5.5. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetByProviderAndDate(txCtx, req.ProviderID, req.Date, true)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 5.6. Проверяем, что слот свободен
		if conflict := findConflictingBooking(req.StartMinute, bookings); conflict != nil {
			uc.logger.Warn("CreateBooking: slot %s on %s taken by booking id=%d",
				req.StartMinute, req.Date.Format(domain.DateFormat), conflict.ID)
			return ErrSlotTaken
		}

		// 5.7. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			CustomerID:      req.CustomerID,
			ProviderID:      req.ProviderID,
			ServiceID:       req.ServiceID,
			BookingDate:     domain.DateOnly(req.Date),
			StartMinute:     req.StartMinute,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			ServiceName:     service.Name,
			ServicePrice:    getServicePrice(service),
			Notes:           req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Уникальный индекс сработал: кто-то успел занять слот раньше
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot %s on %s taken concurrently",
					req.StartMinute, req.Date.Format(domain.DateFormat))
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) || errors.Is(err, simpletxmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization retries exhausted: %v", err)
			return nil, ErrContentionTimeout
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		ProviderID:      result.ProviderID,
		ServiceID:       result.ServiceID,
		BookingDate:     result.BookingDate,
		StartMinute:     result.StartMinute,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// getServicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func getServicePrice(service *providerClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
