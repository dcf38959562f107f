package get_next_available

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// UseCase use case для поиска ближайшей даты со свободным слотом
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

// Execute сканирует дни от сегодня (включительно) до horizonDays-1 дней вперед
// и возвращает первую дату с непустым списком свободных слотов вместе
// с самым ранним слотом. Пустой горизонт - валидный результат, не ошибка
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetNextAvailable: provider=%d, horizon=%d, duration=%d",
		req.ProviderID, req.HorizonDays, req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetNextAvailable: validation failed: %v", err)
		return nil, err
	}

	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = domain.DefaultHorizonDays
	}
	duration := req.DurationMinutes
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	now := uc.timeProvider.Now()

	// 2. Проверяем существование провайдера
	if _, err := uc.providerClient.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			uc.logger.Warn("GetNextAvailable: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		uc.logger.Error("GetNextAvailable: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	noneResponse := &Response{
		ProviderID:      req.ProviderID,
		HorizonDays:     horizon,
		DurationMinutes: duration,
		Available:       false,
	}

	// 3. Получаем расписание; без расписания искать нечего
	template, err := uc.scheduleRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Info("GetNextAvailable: provider id=%d has no schedule", req.ProviderID)
			return noneResponse, nil
		}
		uc.logger.Error("GetNextAvailable: failed to get schedule for provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	// 4. Сканируем горизонт день за днём
	today := domain.DateOnly(now)
	nowMinute := types.MinuteOfDayFromClock(now)

	for offset := 0; offset < horizon; offset++ {
		date := today.AddDate(0, 0, offset)

		rule := template.RuleForDate(date)
		if !rule.IsOpen {
			continue
		}

		bookings, err := uc.bookingRepo.GetByProviderAndDate(ctx, req.ProviderID, date, true)
		if err != nil {
			uc.logger.Error("GetNextAvailable: failed to get bookings for %s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		available := domain.FilterAvailable(
			domain.GenerateSlots(rule, duration),
			bookings,
			offset == 0, // Фильтрация по текущему времени нужна только для сегодня
			nowMinute,
		)

		if len(available) > 0 {
			first := available[0]
			uc.logger.Info("GetNextAvailable: provider=%d, first available date=%s, slot=%s",
				req.ProviderID, date.Format(domain.DateFormat), first)

			return &Response{
				ProviderID:      req.ProviderID,
				HorizonDays:     horizon,
				DurationMinutes: duration,
				Available:       true,
				Date:            &date,
				StartMinute:     &first,
			}, nil
		}
	}

	uc.logger.Info("GetNextAvailable: provider=%d has no availability within %d days",
		req.ProviderID, horizon)
	return noneResponse, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.HorizonDays != 0 {
		if req.HorizonDays < domain.MinHorizonDays || req.HorizonDays > domain.MaxHorizonDays {
			return fmt.Errorf("%w: horizonDays must be between %d and %d",
				ErrInvalidInput, domain.MinHorizonDays, domain.MaxHorizonDays)
		}
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	return nil
}
