package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByProviderAndDate(_ context.Context, _ int64, _ time.Time, _ bool) ([]*domain.Booking, error) {
	return f.bookings, nil
}

type fakeScheduleRepo struct {
	template *domain.ScheduleTemplate
	err      error
}

func (f *fakeScheduleRepo) GetByProviderID(_ context.Context, _ int64) (*domain.ScheduleTemplate, error) {
	return f.template, f.err
}

type fakeProviderClient struct {
	provider *providerservice.Provider
	err      error
}

func (f *fakeProviderClient) GetProvider(_ context.Context, _ int64) (*providerservice.Provider, error) {
	return f.provider, f.err
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// everyDayTemplate расписание 09:00-17:00 без выходных (8 слотов по 60 минут)
func everyDayTemplate(providerID int64) *domain.ScheduleTemplate {
	days := make(map[int]domain.DayRule, domain.DaysPerWeek)
	for weekday := domain.WeekdaySunday; weekday <= domain.WeekdaySaturday; weekday++ {
		days[weekday] = domain.DayRule{
			IsOpen:      true,
			StartMinute: types.MinuteOfDay(540),
			EndMinute:   types.MinuteOfDay(1020),
		}
	}
	return &domain.ScheduleTemplate{ProviderID: providerID, Days: days}
}

func bookingsAt(minutes ...int) []*domain.Booking {
	result := make([]*domain.Booking, 0, len(minutes))
	for _, m := range minutes {
		result = append(result, &domain.Booking{
			ProviderID:      1,
			StartMinute:     types.MinuteOfDay(m),
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		})
	}
	return result
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	activeProvider := &providerservice.Provider{ID: 1, OwnerUserID: 10, IsActive: true}

	newUC := func(bookings []*domain.Booking, schedules *fakeScheduleRepo, nowAt time.Time) *UseCase {
		uc := NewUseCase(
			&fakeBookingRepo{bookings: bookings},
			schedules,
			&fakeProviderClient{provider: activeProvider},
			nopLogger{},
		)
		uc.timeProvider = &fixedTime{now: nowAt}
		return uc
	}

	t.Run("fully free day is available", func(t *testing.T) {
		uc := newUC(nil, &fakeScheduleRepo{template: everyDayTemplate(1)}, now)

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: date, DurationMinutes: 60})
		require.NoError(t, err)

		assert.True(t, resp.Status.Available)
		assert.Equal(t, domain.TagAvailable, resp.Status.StatusTag)
		assert.Equal(t, 8, resp.Status.TotalSlotCount)
		assert.Equal(t, 8, resp.Status.AvailableSlotCount)
		assert.Equal(t, 0, resp.Status.BookedSlotCount)
	})

	t.Run("partially booked day is moderate", func(t *testing.T) {
		// 5 из 8 слотов занято, свободно 37.5%
		uc := newUC(
			bookingsAt(540, 600, 660, 720, 780),
			&fakeScheduleRepo{template: everyDayTemplate(1)},
			now,
		)

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: date, DurationMinutes: 60})
		require.NoError(t, err)

		assert.True(t, resp.Status.Available)
		assert.Equal(t, domain.TagModerate, resp.Status.StatusTag)
		assert.Equal(t, 3, resp.Status.AvailableSlotCount)
		assert.Equal(t, 5, resp.Status.BookedSlotCount)
	})

	t.Run("one free slot is limited", func(t *testing.T) {
		uc := newUC(
			bookingsAt(540, 600, 660, 720, 780, 840, 900),
			&fakeScheduleRepo{template: everyDayTemplate(1)},
			now,
		)

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: date, DurationMinutes: 60})
		require.NoError(t, err)

		assert.Equal(t, domain.TagLimited, resp.Status.StatusTag)
		assert.Equal(t, 1, resp.Status.AvailableSlotCount)
	})

	t.Run("all slots booked is fully-booked", func(t *testing.T) {
		uc := newUC(
			bookingsAt(540, 600, 660, 720, 780, 840, 900, 960),
			&fakeScheduleRepo{template: everyDayTemplate(1)},
			now,
		)

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: date, DurationMinutes: 60})
		require.NoError(t, err)

		assert.False(t, resp.Status.Available)
		assert.Equal(t, domain.TagFullyBooked, resp.Status.StatusTag)
		assert.Equal(t, 0, resp.Status.AvailableSlotCount)
	})

	t.Run("past date is closed", func(t *testing.T) {
		uc := newUC(nil, &fakeScheduleRepo{template: everyDayTemplate(1)},
			time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC))

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: date, DurationMinutes: 60})
		require.NoError(t, err)

		assert.False(t, resp.Status.Available)
		assert.Equal(t, domain.TagClosed, resp.Status.StatusTag)
	})

	t.Run("no schedule is closed", func(t *testing.T) {
		uc := newUC(nil, &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}, now)

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, Date: date})
		require.NoError(t, err)

		assert.Equal(t, domain.TagClosed, resp.Status.StatusTag)
		assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.DurationMinutes)
	})

	t.Run("provider not found", func(t *testing.T) {
		uc := NewUseCase(
			&fakeBookingRepo{},
			&fakeScheduleRepo{template: everyDayTemplate(1)},
			&fakeProviderClient{err: providerservice.ErrProviderNotFound},
			nopLogger{},
		)
		uc.timeProvider = &fixedTime{now: now}

		_, err := uc.Execute(ctx, &Request{ProviderID: 99, Date: date})
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})
}
