package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

type fakeScheduleRepo struct {
	template  *domain.ScheduleTemplate
	getErr    error
	upsertErr error
	upserted  *domain.ScheduleTemplate
}

func (f *fakeScheduleRepo) GetByProviderID(_ context.Context, _ int64) (*domain.ScheduleTemplate, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.template, nil
}

func (f *fakeScheduleRepo) Upsert(_ context.Context, template *domain.ScheduleTemplate) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserted = template
	f.template = template
	return nil
}

type fakeProviderClient struct {
	provider *providerservice.Provider
	err      error
}

func (f *fakeProviderClient) GetProvider(_ context.Context, _ int64) (*providerservice.Provider, error) {
	return f.provider, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func fullWeekDays() []models.DayRuleInput {
	days := make([]models.DayRuleInput, 0, domain.DaysPerWeek)
	for weekday := domain.WeekdaySunday; weekday <= domain.WeekdaySaturday; weekday++ {
		day := models.DayRuleInput{Weekday: weekday}
		if weekday >= 1 && weekday <= 5 {
			day.IsOpen = true
			day.StartMinute = 540
			day.EndMinute = 1020
		}
		days = append(days, day)
	}
	return days
}

func ownerClient() *fakeProviderClient {
	return &fakeProviderClient{provider: &providerservice.Provider{ID: 1, OwnerUserID: 10, IsActive: true}}
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns sorted days", func(t *testing.T) {
		req := &models.UpsertScheduleRequest{UserID: 10, ProviderID: 1, Days: fullWeekDays()}
		repo := &fakeScheduleRepo{template: req.ToDomainTemplate()}
		svc := NewService(repo, ownerClient(), nopLogger{})

		resp, err := svc.Get(ctx, 1)
		require.NoError(t, err)

		require.Len(t, resp.Days, domain.DaysPerWeek)
		for weekday, day := range resp.Days {
			assert.Equal(t, weekday, day.Weekday)
		}
		assert.Equal(t, "09:00", resp.Days[1].StartTime)
		assert.Empty(t, resp.Days[0].StartTime)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{getErr: scheduleRepo.ErrScheduleNotFound}, ownerClient(), nopLogger{})

		_, err := svc.Get(ctx, 1)
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("owner replaces schedule", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, ownerClient(), nopLogger{})

		resp, err := svc.Upsert(ctx, &models.UpsertScheduleRequest{UserID: 10, ProviderID: 1, Days: fullWeekDays()})
		require.NoError(t, err)

		require.NotNil(t, repo.upserted)
		assert.Equal(t, int64(1), resp.ProviderID)
		assert.Len(t, resp.Days, domain.DaysPerWeek)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, ownerClient(), nopLogger{})

		_, err := svc.Upsert(ctx, &models.UpsertScheduleRequest{UserID: 999, ProviderID: 1, Days: fullWeekDays()})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.Nil(t, repo.upserted)
	})

	t.Run("provider not found", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, &fakeProviderClient{err: providerservice.ErrProviderNotFound}, nopLogger{})

		_, err := svc.Upsert(ctx, &models.UpsertScheduleRequest{UserID: 10, ProviderID: 99, Days: fullWeekDays()})
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("incomplete week rejected", func(t *testing.T) {
		repo := &fakeScheduleRepo{}
		svc := NewService(repo, ownerClient(), nopLogger{})

		days := fullWeekDays()[:5]
		_, err := svc.Upsert(ctx, &models.UpsertScheduleRequest{UserID: 10, ProviderID: 1, Days: days})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Nil(t, repo.upserted)
	})

	t.Run("open day with inverted window rejected", func(t *testing.T) {
		svc := NewService(&fakeScheduleRepo{}, ownerClient(), nopLogger{})

		days := fullWeekDays()
		days[1].StartMinute = 1020
		days[1].EndMinute = 540
		_, err := svc.Upsert(ctx, &models.UpsertScheduleRequest{UserID: 10, ProviderID: 1, Days: days})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
