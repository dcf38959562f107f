package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	providerClient ProviderServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	providerClient ProviderServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		providerClient: providerClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case получения доступных слотов
// Отсутствие доступности (закрытый день, прошедшая дата, нет расписания) -
// валидный результат с пустым списком, а не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%d, date=%s, duration=%d",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	duration := effectiveDuration(req.DurationMinutes)
	now := uc.timeProvider.Now()

	// 2. Проверяем существование провайдера
	if _, err := uc.providerClient.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailableSlots: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	emptyResponse := &Response{
		ProviderID:      req.ProviderID,
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           []types.MinuteOfDay{},
	}

	// 3. Прошедшие даты всегда пусты
	if domain.IsDateInPast(req.Date, now) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 4. Получаем расписание; отсутствие расписания означает закрытого провайдера
	template, err := uc.scheduleRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailableSlots: provider id=%d has no schedule", req.ProviderID)
			return emptyResponse, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	rule := template.RuleForDate(req.Date)
	if !rule.IsOpen {
		uc.logger.Info("GetAvailableSlots: provider id=%d is closed on %s",
			req.ProviderID, req.Date.Format(domain.DateFormat))
		return emptyResponse, nil
	}

	// 5. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.GetByProviderAndDate(ctx, req.ProviderID, domain.DateOnly(req.Date), true)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Генерируем сетку слотов и убираем занятые и прошедшие
	allSlots := domain.GenerateSlots(rule, duration)
	available := domain.FilterAvailable(
		allSlots,
		bookings,
		domain.IsSameDay(req.Date, now),
		types.MinuteOfDayFromClock(now),
	)

	uc.logger.Info("GetAvailableSlots: %d of %d slots available for provider=%d, date=%s",
		len(available), len(allSlots), req.ProviderID, req.Date.Format(domain.DateFormat))

	return &Response{
		ProviderID:      req.ProviderID,
		Date:            req.Date,
		DurationMinutes: duration,
		Slots:           available,
	}, nil
}
