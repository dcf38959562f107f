package schedule

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	providerClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// Service сервис для работы с расписаниями провайдеров
type Service struct {
	scheduleRepo   ScheduleRepository
	providerClient ProviderServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	providerClient ProviderServiceClient,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		providerClient: providerClient,
		logger:         logger,
	}
}

// Get получает расписание провайдера
// Публичный метод - доступен всем
func (s *Service) Get(ctx context.Context, providerID int64) (*models.ScheduleResponse, error) {
	s.logger.Info("Get: fetching schedule for provider=%d", providerID)

	template, err := s.scheduleRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("Get: schedule for provider=%d not found", providerID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("Get: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched schedule for provider=%d", providerID)
	return models.FromDomainTemplate(template), nil
}

// Upsert полностью заменяет недельное расписание провайдера
// Доступно только владельцу провайдера; требует правил на все семь дней недели
func (s *Service) Upsert(ctx context.Context, req *models.UpsertScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("Upsert: updating schedule for provider=%d by user=%d", req.ProviderID, req.UserID)

	// 1. Получаем провайдера для проверки прав доступа
	provider, err := s.providerClient.GetProvider(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, providerClient.ErrProviderNotFound) {
			s.logger.Warn("Upsert: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("Upsert: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 2. Проверяем права доступа (только владелец провайдера)
	if provider.OwnerUserID != req.UserID {
		s.logger.Warn("Upsert: user=%d is not the owner of provider=%d", req.UserID, req.ProviderID)
		return nil, ErrAccessDenied
	}

	// 3. Конвертируем и валидируем расписание
	template := req.ToDomainTemplate()
	if err := template.Validate(); err != nil {
		s.logger.Warn("Upsert: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 4. Сохраняем расписание
	if err := s.scheduleRepo.Upsert(ctx, template); err != nil {
		s.logger.Error("Upsert: repository error for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	// 5. Перечитываем сохраненное расписание для актуального updated_at
	saved, err := s.scheduleRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		s.logger.Error("Upsert: failed to reload schedule for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to reload schedule: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully updated schedule for provider=%d", req.ProviderID)
	return models.FromDomainTemplate(saved), nil
}
