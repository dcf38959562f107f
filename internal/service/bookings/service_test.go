package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/providerservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

type fakeBookingRepo struct {
	booking      *domain.Booking
	getErr       error
	updateErr    error
	updateCalled bool
	updatedFrom  domain.BookingStatus
	updatedTo    domain.BookingStatus
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByCustomerID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) GetByProviderWithFilter(_ context.Context, _ domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	if f.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) UpdateStatusFrom(_ context.Context, _ int64, expected, target domain.BookingStatus) error {
	f.updateCalled = true
	f.updatedFrom = expected
	f.updatedTo = target
	return f.updateErr
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

func pendingBooking() *domain.Booking {
	notes := "перезвонить заранее"
	return &domain.Booking{
		ID:              1,
		CustomerID:      100,
		ProviderID:      1,
		ServiceID:       5,
		BookingDate:     time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		StartMinute:     600,
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		ServiceName:     "Замена масла",
		ServicePrice:    1500,
		Notes:           &notes,
	}
}

func ownerClient() *fakeProviderClient {
	return &fakeProviderClient{provider: &providerservice.Provider{ID: 1, OwnerUserID: 10, IsActive: true}}
}

func TestService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("customer sees own booking", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{booking: pendingBooking()}, ownerClient(), nopLogger{})

		resp, err := svc.GetByID(ctx, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "10:00", resp.StartTime)
	})

	t.Run("provider owner sees booking", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{booking: pendingBooking()}, ownerClient(), nopLogger{})

		_, err := svc.GetByID(ctx, 1, 10)
		require.NoError(t, err)
	})

	t.Run("stranger denied", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{booking: pendingBooking()}, ownerClient(), nopLogger{})

		_, err := svc.GetByID(ctx, 1, 999)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}, ownerClient(), nopLogger{})

		_, err := svc.GetByID(ctx, 42, 100)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("owner confirms pending booking", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking()}
		svc := NewService(repo, ownerClient(), nopLogger{})

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 10, Status: "confirmed"})
		require.NoError(t, err)

		assert.True(t, repo.updateCalled)
		assert.Equal(t, domain.StatusPending, repo.updatedFrom)
		assert.Equal(t, domain.StatusConfirmed, repo.updatedTo)
	})

	t.Run("customer cannot update status", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking()}
		svc := NewService(repo, ownerClient(), nopLogger{})

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 100, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrAccessDenied)
		assert.False(t, repo.updateCalled)
	})

	t.Run("invalid transition pending to completed", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking()}
		svc := NewService(repo, ownerClient(), nopLogger{})

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 10, Status: "completed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.False(t, repo.updateCalled)
	})

	t.Run("completed booking is terminal", func(t *testing.T) {
		booking := pendingBooking()
		booking.Status = domain.StatusCompleted
		repo := &fakeBookingRepo{booking: booking}
		svc := NewService(repo, ownerClient(), nopLogger{})

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 10, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown status", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking()}
		svc := NewService(repo, ownerClient(), nopLogger{})

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 10, Status: "cancelled"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("concurrent status change maps to invalid transition", func(t *testing.T) {
		repo := &fakeBookingRepo{booking: pendingBooking(), updateErr: bookingRepo.ErrStatusConflict}
		svc := NewService(repo, ownerClient(), nopLogger{})

		err := svc.UpdateStatus(ctx, 1, &models.UpdateStatusRequest{UserID: 10, Status: "confirmed"})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestService_GetProviderBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("owner gets bookings", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{booking: pendingBooking()}, ownerClient(), nopLogger{})

		resp, err := svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{ProviderID: 1, UserID: 10})
		require.NoError(t, err)
		require.Len(t, resp.Bookings, 1)
		assert.Equal(t, "pending", resp.Bookings[0].Status)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{booking: pendingBooking()}, ownerClient(), nopLogger{})

		_, err := svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{ProviderID: 1, UserID: 999})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("provider not found", func(t *testing.T) {
		svc := NewService(
			&fakeBookingRepo{booking: pendingBooking()},
			&fakeProviderClient{err: providerservice.ErrProviderNotFound},
			nopLogger{},
		)

		_, err := svc.GetProviderBookings(ctx, &models.GetProviderBookingsRequest{ProviderID: 99, UserID: 10})
		assert.ErrorIs(t, err, ErrProviderNotFound)
	})
}

func TestService_GetCustomerBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("returns customer history", func(t *testing.T) {
		svc := NewService(&fakeBookingRepo{booking: pendingBooking()}, ownerClient(), nopLogger{})

		resp, err := svc.GetCustomerBookings(ctx, &models.GetCustomerBookingsRequest{CustomerID: 100})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("invalid status filter", func(t *testing.T) {
		status := "archived"
		svc := NewService(&fakeBookingRepo{booking: pendingBooking()}, ownerClient(), nopLogger{})

		_, err := svc.GetCustomerBookings(ctx, &models.GetCustomerBookingsRequest{CustomerID: 100, Status: &status})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
