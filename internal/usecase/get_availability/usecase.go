package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UseCase use case для получения агрегированной доступности провайдера на дату
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

// Execute выполняет use case получения доступности
// Закрытый день, прошедшая дата и отсутствие расписания дают статус closed,
// а не ошибку: отсутствие доступности - валидное терминальное состояние
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: provider=%d, date=%s",
		req.ProviderID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	duration := effectiveDuration(req.DurationMinutes)
	now := uc.timeProvider.Now()

	// 2. Проверяем существование провайдера
	if _, err := uc.providerClient.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			uc.logger.Warn("GetAvailability: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetAvailability: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	closedResponse := &Response{
		ProviderID:      req.ProviderID,
		Date:            req.Date,
		DurationMinutes: duration,
		Status:          domain.AvailabilityStatus{Available: false, StatusTag: domain.TagClosed},
	}

	// 3. Прошедшие даты считаются закрытыми
	if domain.IsDateInPast(req.Date, now) {
		return closedResponse, nil
	}

	// 4. Получаем расписание
	template, err := uc.scheduleRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetAvailability: provider id=%d has no schedule", req.ProviderID)
			return closedResponse, nil
		}
		uc.logger.Error("GetAvailability: failed to get schedule for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	rule := template.RuleForDate(req.Date)
	if !rule.IsOpen {
		return closedResponse, nil
	}

	// 5. Получаем активные бронирования на дату
	bookings, err := uc.bookingRepo.GetByProviderAndDate(ctx, req.ProviderID, domain.DateOnly(req.Date), true)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Вычисляем агрегированную доступность
	status := domain.ComputeDayAvailability(
		rule,
		bookings,
		duration,
		domain.IsSameDay(req.Date, now),
		types.MinuteOfDayFromClock(now),
	)

	uc.logger.Info("GetAvailability: provider=%d, date=%s, tag=%s, available=%d/%d",
		req.ProviderID, req.Date.Format(domain.DateFormat),
		status.StatusTag, status.AvailableSlotCount, status.TotalSlotCount)

	return &Response{
		ProviderID:      req.ProviderID,
		Date:            req.Date,
		DurationMinutes: duration,
		Status:          status,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	return nil
}

// effectiveDuration возвращает длительность слота с учётом значения по умолчанию
func effectiveDuration(requested int) int {
	if requested == 0 {
		return domain.DefaultSlotDurationMinutes
	}
	return requested
}
