package get_weekly_overview

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
	filter   *domain.ProviderBookingsFilter
}

func (f *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	f.filter = &filter
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

func weekdaysTemplate(providerID int64) *domain.ScheduleTemplate {
	days := make(map[int]domain.DayRule, domain.DaysPerWeek)
	for weekday := domain.WeekdaySunday; weekday <= domain.WeekdaySaturday; weekday++ {
		days[weekday] = domain.DayRule{IsOpen: false}
	}
	for weekday := 1; weekday <= 5; weekday++ {
		days[weekday] = domain.DayRule{
			IsOpen:      true,
			StartMinute: types.MinuteOfDay(540),
			EndMinute:   types.MinuteOfDay(1020),
		}
	}
	return &domain.ScheduleTemplate{ProviderID: providerID, Days: days}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	// Понедельник
	weekStart := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	activeProvider := &providerservice.Provider{ID: 1, OwnerUserID: 10, IsActive: true}

	newUC := func(bookings *fakeBookingRepo, schedules *fakeScheduleRepo, nowAt time.Time) *UseCase {
		uc := NewUseCase(bookings, schedules, &fakeProviderClient{provider: activeProvider}, nopLogger{})
		uc.timeProvider = &fixedTime{now: nowAt}
		return uc
	}

	t.Run("seven days with weekend closed", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newUC(repo, &fakeScheduleRepo{template: weekdaysTemplate(1)}, now)

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, WeekStart: weekStart, DurationMinutes: 60})
		require.NoError(t, err)

		require.Len(t, resp.Days, domain.DaysPerWeek)
		assert.Equal(t, "Monday", resp.Days[0].Weekday)
		assert.Equal(t, domain.TagAvailable, resp.Days[0].Status.StatusTag)
		// Суббота и воскресенье закрыты
		assert.Equal(t, domain.TagClosed, resp.Days[5].Status.StatusTag)
		assert.Equal(t, domain.TagClosed, resp.Days[6].Status.StatusTag)
	})

	t.Run("bookings grouped onto their dates", func(t *testing.T) {
		wednesday := weekStart.AddDate(0, 0, 2)
		bookings := make([]*domain.Booking, 0, 8)
		for minute := 540; minute < 1020; minute += 60 {
			bookings = append(bookings, &domain.Booking{
				ProviderID:      1,
				BookingDate:     wednesday,
				StartMinute:     types.MinuteOfDay(minute),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			})
		}
		repo := &fakeBookingRepo{bookings: bookings}
		uc := newUC(repo, &fakeScheduleRepo{template: weekdaysTemplate(1)}, now)

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, WeekStart: weekStart, DurationMinutes: 60})
		require.NoError(t, err)

		assert.Equal(t, domain.TagFullyBooked, resp.Days[2].Status.StatusTag)
		assert.Equal(t, domain.TagAvailable, resp.Days[1].Status.StatusTag)
		assert.Equal(t, domain.TagAvailable, resp.Days[3].Status.StatusTag)
	})

	t.Run("bookings fetched for the whole week at once", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newUC(repo, &fakeScheduleRepo{template: weekdaysTemplate(1)}, now)

		_, err := uc.Execute(ctx, &Request{ProviderID: 1, WeekStart: weekStart})
		require.NoError(t, err)

		require.NotNil(t, repo.filter)
		require.NotNil(t, repo.filter.StartDate)
		require.NotNil(t, repo.filter.EndDate)
		assert.Equal(t, "2026-03-09", repo.filter.StartDate.Format(domain.DateFormat))
		assert.Equal(t, "2026-03-15", repo.filter.EndDate.Format(domain.DateFormat))
	})

	t.Run("past days in the window are closed", func(t *testing.T) {
		// Сейчас среда, понедельник и вторник уже прошли
		repo := &fakeBookingRepo{}
		uc := newUC(repo, &fakeScheduleRepo{template: weekdaysTemplate(1)},
			time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC))

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, WeekStart: weekStart, DurationMinutes: 60})
		require.NoError(t, err)

		assert.Equal(t, domain.TagClosed, resp.Days[0].Status.StatusTag)
		assert.Equal(t, domain.TagClosed, resp.Days[1].Status.StatusTag)
		assert.Equal(t, domain.TagAvailable, resp.Days[2].Status.StatusTag)
	})

	t.Run("no schedule means closed week", func(t *testing.T) {
		repo := &fakeBookingRepo{}
		uc := newUC(repo, &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}, now)

		resp, err := uc.Execute(ctx, &Request{ProviderID: 1, WeekStart: weekStart})
		require.NoError(t, err)

		require.Len(t, resp.Days, domain.DaysPerWeek)
		for _, day := range resp.Days {
			assert.Equal(t, domain.TagClosed, day.Status.StatusTag)
		}
		// Без расписания за бронированиями не ходим
		assert.Nil(t, repo.filter)
	})

	t.Run("provider not found", func(t *testing.T) {
		uc := NewUseCase(
			&fakeBookingRepo{},
			&fakeScheduleRepo{template: weekdaysTemplate(1)},
			&fakeProviderClient{err: providerservice.ErrProviderNotFound},
			nopLogger{},
		)
		uc.timeProvider = &fixedTime{now: now}

		_, err := uc.Execute(ctx, &Request{ProviderID: 99, WeekStart: weekStart})
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})
}
