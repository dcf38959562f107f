package get_weekly_overview

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UseCase use case для недельного обзора доступности провайдера
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

// Execute строит обзор доступности на семь последовательных дат начиная с WeekStart
// Бронирования всей недели выбираются одним запросом и раскладываются по датам
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeeklyOverview: provider=%d, weekStart=%s",
		req.ProviderID, req.WeekStart.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetWeeklyOverview: validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	now := uc.timeProvider.Now()
	weekStart := domain.DateOnly(req.WeekStart)
	weekEnd := weekStart.AddDate(0, 0, domain.DaysPerWeek-1)

	// 2. Проверяем существование провайдера
	if _, err := uc.providerClient.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			uc.logger.Warn("GetWeeklyOverview: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetWeeklyOverview: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Получаем расписание; его отсутствие означает закрытую неделю
	template, err := uc.scheduleRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil && !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("GetWeeklyOverview: failed to get schedule for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Выбираем активные бронирования всей недели одним запросом
	var bookingsByDate map[string][]*domain.Booking
	if template != nil {
		filter := domain.ProviderBookingsFilter{
			ProviderID: req.ProviderID,
			StartDate:  ptr.Ptr(weekStart),
			EndDate:    ptr.Ptr(weekEnd),
		}

		bookings, err := uc.bookingRepo.GetByProviderWithFilter(ctx, filter)
		if err != nil {
			uc.logger.Error("GetWeeklyOverview: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		bookingsByDate = groupByDate(bookings)
	}

	// 5. Считаем доступность каждого дня
	days := make([]DayOverview, 0, domain.DaysPerWeek)
	nowMinute := types.MinuteOfDayFromClock(now)

	for offset := 0; offset < domain.DaysPerWeek; offset++ {
		date := weekStart.AddDate(0, 0, offset)

		var status domain.AvailabilityStatus
		if template == nil || domain.IsDateInPast(date, now) {
			status = domain.AvailabilityStatus{Available: false, StatusTag: domain.TagClosed}
		} else {
			status = domain.ComputeDayAvailability(
				template.RuleForDate(date),
				bookingsByDate[date.Format(domain.DateFormat)],
				duration,
				domain.IsSameDay(date, now),
				nowMinute,
			)
		}

		days = append(days, DayOverview{
			Date:    date,
			Weekday: date.Weekday().String(),
			Status:  status,
		})
	}

	uc.logger.Info("GetWeeklyOverview: provider=%d, weekStart=%s, built %d days",
		req.ProviderID, weekStart.Format(domain.DateFormat), len(days))

	return &Response{
		ProviderID:      req.ProviderID,
		WeekStart:       weekStart,
		DurationMinutes: duration,
		Days:            days,
	}, nil
}

// groupByDate раскладывает бронирования по датам (ключ - YYYY-MM-DD)
func groupByDate(bookings []*domain.Booking) map[string][]*domain.Booking {
	grouped := make(map[string][]*domain.Booking)
	for _, booking := range bookings {
		key := booking.BookingDate.Format(domain.DateFormat)
		grouped[key] = append(grouped[key], booking)
	}
	return grouped
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.WeekStart.IsZero() {
		return fmt.Errorf("%w: weekStart is required", ErrInvalidInput)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	return nil
}
