package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// memBookingRepo in-memory репозиторий с уникальностью активного слота,
// имитирует частичный уникальный индекс по (provider_id, booking_date, start_minute)
type memBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func (f *memBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.bookings {
		if existing.OccupiesSlot() &&
			existing.ProviderID == booking.ProviderID &&
			existing.BookingDate.Equal(booking.BookingDate) &&
			existing.StartMinute == booking.StartMinute {
			return nil, bookingRepo.ErrSlotTaken
		}
	}

	f.nextID++
	stored := *booking
	stored.ID = f.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.bookings = append(f.bookings, &stored)
	return &stored, nil
}

func (f *memBookingRepo) GetByProviderAndDate(_ context.Context, providerID int64, date time.Time, activeOnly bool) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.ProviderID != providerID || !b.BookingDate.Equal(domain.DateOnly(date)) {
			continue
		}
		if activeOnly && !b.OccupiesSlot() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
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
	service  *providerservice.Service
}

func (f *fakeProviderClient) GetProvider(_ context.Context, _ int64) (*providerservice.Provider, error) {
	if f.provider == nil {
		return nil, providerservice.ErrProviderNotFound
	}
	return f.provider, nil
}

func (f *fakeProviderClient) GetService(_ context.Context, _, _ int64) (*providerservice.Service, error) {
	if f.service == nil {
		return nil, providerservice.ErrServiceNotFound
	}
	return f.service, nil
}

// serialTxManager выполняет транзакции строго по одной, как сериализуемый
// уровень изоляции в худшем случае
type serialTxManager struct {
	mu  sync.Mutex
	err error
}

func (f *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
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

func defaultRequest(date time.Time) *Request {
	return &Request{
		CustomerID:      100,
		ProviderID:      1,
		ServiceID:       5,
		Date:            date,
		StartMinute:     types.MinuteOfDay(600),
		DurationMinutes: 60,
	}
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	// Среда
	date := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)

	price := 1500.0
	client := &fakeProviderClient{
		provider: &providerservice.Provider{ID: 1, OwnerUserID: 10, Name: "Autoservice", IsActive: true},
		service:  &providerservice.Service{ID: 5, ProviderID: 1, Name: "Замена масла", Price: &price},
	}

	newUC := func(repo *memBookingRepo, schedules *fakeScheduleRepo, providers *fakeProviderClient) *UseCase {
		uc := NewUseCase(repo, schedules, providers, &serialTxManager{}, nopLogger{})
		uc.timeProvider = &fixedTime{now: now}
		return uc
	}

	t.Run("creates pending booking with denormalized service data", func(t *testing.T) {
		repo := &memBookingRepo{}
		uc := newUC(repo, &fakeScheduleRepo{template: weekdaysTemplate(1)}, client)

		resp, err := uc.Execute(ctx, defaultRequest(date))
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusPending), resp.Status)
		assert.Equal(t, "Замена масла", resp.ServiceName)
		assert.Equal(t, 1500.0, resp.ServicePrice)
		assert.Equal(t, types.MinuteOfDay(600), resp.StartMinute)
		assert.NotZero(t, resp.ID)
	})

	t.Run("slot taken by existing active booking", func(t *testing.T) {
		repo := &memBookingRepo{}
		uc := newUC(repo, &fakeScheduleRepo{template: weekdaysTemplate(1)}, client)

		_, err := uc.Execute(ctx, defaultRequest(date))
		require.NoError(t, err)

		req := defaultRequest(date)
		req.CustomerID = 200
		_, err = uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("rejected booking frees the slot", func(t *testing.T) {
		repo := &memBookingRepo{bookings: []*domain.Booking{{
			ID:          1,
			ProviderID:  1,
			BookingDate: domain.DateOnly(date),
			StartMinute: 600,
			Status:      domain.StatusRejected,
		}}}
		repo.nextID = 1
		uc := newUC(repo, &fakeScheduleRepo{template: weekdaysTemplate(1)}, client)

		_, err := uc.Execute(ctx, defaultRequest(date))
		assert.NoError(t, err)
	})

	t.Run("concurrent requests for same slot, exactly one wins", func(t *testing.T) {
		repo := &memBookingRepo{}
		schedules := &fakeScheduleRepo{template: weekdaysTemplate(1)}

		const workers = 8
		errs := make(chan error, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(customerID int64) {
				defer wg.Done()
				uc := newUC(repo, schedules, client)
				req := defaultRequest(date)
				req.CustomerID = customerID
				_, err := uc.Execute(ctx, req)
				errs <- err
			}(int64(100 + i))
		}
		wg.Wait()
		close(errs)

		var successes, conflicts int
		for err := range errs {
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, ErrSlotTaken):
				conflicts++
			}
		}

		assert.Equal(t, 1, successes)
		assert.Equal(t, workers-1, conflicts)
		assert.Len(t, repo.bookings, 1)
	})

	t.Run("closed day", func(t *testing.T) {
		// Воскресенье
		sunday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
		uc := newUC(&memBookingRepo{}, &fakeScheduleRepo{template: weekdaysTemplate(1)}, client)

		_, err := uc.Execute(ctx, defaultRequest(sunday))
		assert.ErrorIs(t, err, ErrProviderClosed)
	})

	t.Run("no schedule means closed", func(t *testing.T) {
		uc := newUC(&memBookingRepo{}, &fakeScheduleRepo{err: scheduleRepo.ErrScheduleNotFound}, client)

		_, err := uc.Execute(ctx, defaultRequest(date))
		assert.ErrorIs(t, err, ErrProviderClosed)
	})

	t.Run("slot off the grid", func(t *testing.T) {
		uc := newUC(&memBookingRepo{}, &fakeScheduleRepo{template: weekdaysTemplate(1)}, client)

		req := defaultRequest(date)
		req.StartMinute = types.MinuteOfDay(615) // не кратно сетке от 540
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("slot past closing time", func(t *testing.T) {
		uc := newUC(&memBookingRepo{}, &fakeScheduleRepo{template: weekdaysTemplate(1)}, client)

		req := defaultRequest(date)
		req.StartMinute = types.MinuteOfDay(1020) // конец рабочего дня
		_, err := uc.Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInvalidTimeSlot)
	})

	t.Run("past date", func(t *testing.T) {
		uc := newUC(&memBookingRepo{}, &fakeScheduleRepo{template: weekdaysTemplate(1)}, client)

		_, err := uc.Execute(ctx, defaultRequest(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)))
		assert.ErrorIs(t, err, ErrInvalidDate)
	})

	t.Run("slot already started today", func(t *testing.T) {
		uc := newUC(&memBookingRepo{}, &fakeScheduleRepo{template: weekdaysTemplate(1)}, client)
		// Сегодня 11:00, запрошенный слот 10:00
		uc.timeProvider = &fixedTime{now: time.Date(2026, 3, 11, 11, 0, 0, 0, time.UTC)}

		_, err := uc.Execute(ctx, defaultRequest(date))
		assert.ErrorIs(t, err, ErrTooLateToBook)
	})

	t.Run("inactive provider", func(t *testing.T) {
		inactive := &fakeProviderClient{
			provider: &providerservice.Provider{ID: 1, IsActive: false},
			service:  client.service,
		}
		uc := newUC(&memBookingRepo{}, &fakeScheduleRepo{template: weekdaysTemplate(1)}, inactive)

		_, err := uc.Execute(ctx, defaultRequest(date))
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})

	t.Run("service not found", func(t *testing.T) {
		noService := &fakeProviderClient{provider: client.provider}
		uc := newUC(&memBookingRepo{}, &fakeScheduleRepo{template: weekdaysTemplate(1)}, noService)

		_, err := uc.Execute(ctx, defaultRequest(date))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("serialization retries exhausted map to contention timeout", func(t *testing.T) {
		uc := NewUseCase(
			&memBookingRepo{},
			&fakeScheduleRepo{template: weekdaysTemplate(1)},
			client,
			&serialTxManager{err: fmt.Errorf("tx failed: %w", txmanager.ErrSerializationFailure)},
			nopLogger{},
		)
		uc.timeProvider = &fixedTime{now: now}

		_, err := uc.Execute(ctx, defaultRequest(date))
		assert.ErrorIs(t, err, ErrContentionTimeout)
	})
}
