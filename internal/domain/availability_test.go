package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func openDay(start, end int) DayRule {
	return DayRule{
		IsOpen:      true,
		StartMinute: types.MinuteOfDay(start),
		EndMinute:   types.MinuteOfDay(end),
	}
}

func activeBooking(startMinute int, status BookingStatus) *Booking {
	return &Booking{
		StartMinute:     types.MinuteOfDay(startMinute),
		DurationMinutes: 60,
		Status:          status,
	}
}

func TestGenerateSlots(t *testing.T) {
	t.Run("closed day yields no slots", func(t *testing.T) {
		slots := GenerateSlots(DayRule{IsOpen: false}, 60)
		assert.Empty(t, slots)
	})

	t.Run("working day 09:00-17:00 with hour slots", func(t *testing.T) {
		slots := GenerateSlots(openDay(540, 1020), 60)
		require.Len(t, slots, 8)
		assert.Equal(t, types.MinuteOfDay(540), slots[0])
		assert.Equal(t, types.MinuteOfDay(960), slots[len(slots)-1])
	})

	t.Run("slot not fitting before closing is dropped", func(t *testing.T) {
		// 09:00-10:30 с шагом 60: помещается только 09:00
		slots := GenerateSlots(openDay(540, 630), 60)
		require.Len(t, slots, 1)
		assert.Equal(t, types.MinuteOfDay(540), slots[0])
	})

	t.Run("window shorter than slot", func(t *testing.T) {
		slots := GenerateSlots(openDay(540, 570), 60)
		assert.Empty(t, slots)
	})

	t.Run("slots are sorted ascending", func(t *testing.T) {
		slots := GenerateSlots(openDay(480, 1200), 90)
		for i := 1; i < len(slots); i++ {
			assert.Less(t, slots[i-1], slots[i])
		}
	})
}

func TestFilterAvailable(t *testing.T) {
	slots := GenerateSlots(openDay(540, 1020), 60)

	t.Run("occupied slots are removed", func(t *testing.T) {
		bookings := []*Booking{
			activeBooking(600, StatusConfirmed),
			activeBooking(720, StatusPending),
		}

		available := FilterAvailable(slots, bookings, false, 0)
		require.Len(t, available, 6)
		assert.NotContains(t, available, types.MinuteOfDay(600))
		assert.NotContains(t, available, types.MinuteOfDay(720))
	})

	t.Run("inactive bookings do not occupy slots", func(t *testing.T) {
		bookings := []*Booking{
			activeBooking(600, StatusRejected),
			activeBooking(720, StatusCompleted),
		}

		available := FilterAvailable(slots, bookings, false, 0)
		assert.Len(t, available, 8)
	})

	t.Run("duplicate bookings on one slot count once", func(t *testing.T) {
		bookings := []*Booking{
			activeBooking(600, StatusConfirmed),
			activeBooking(600, StatusPending),
		}

		available := FilterAvailable(slots, bookings, false, 0)
		assert.Len(t, available, 7)
	})

	t.Run("today excludes slots that already started", func(t *testing.T) {
		// now = 14:30: слот 09:00 исключен, 15:00 остается
		available := FilterAvailable(slots, nil, true, types.MinuteOfDay(870))
		assert.NotContains(t, available, types.MinuteOfDay(540))
		assert.Contains(t, available, types.MinuteOfDay(900))
		assert.Len(t, available, 2) // 15:00 и 16:00
	})

	t.Run("slot starting exactly now is excluded", func(t *testing.T) {
		available := FilterAvailable(slots, nil, true, types.MinuteOfDay(540))
		assert.NotContains(t, available, types.MinuteOfDay(540))
	})

	t.Run("filtering is idempotent", func(t *testing.T) {
		bookings := []*Booking{activeBooking(600, StatusConfirmed)}

		once := FilterAvailable(slots, bookings, false, 0)
		twice := FilterAvailable(once, bookings, false, 0)
		assert.Equal(t, once, twice)
	})
}

func TestComputeDayAvailability(t *testing.T) {
	rule := openDay(540, 1020) // 8 слотов по 60 минут

	t.Run("closed day", func(t *testing.T) {
		status := ComputeDayAvailability(DayRule{IsOpen: false}, nil, 60, false, 0)
		assert.False(t, status.Available)
		assert.Equal(t, TagClosed, status.StatusTag)
	})

	t.Run("fully free day", func(t *testing.T) {
		status := ComputeDayAvailability(rule, nil, 60, false, 0)
		assert.True(t, status.Available)
		assert.Equal(t, TagAvailable, status.StatusTag)
		assert.Equal(t, 8, status.AvailableSlotCount)
		assert.Equal(t, 0, status.BookedSlotCount)
		assert.Equal(t, 8, status.TotalSlotCount)
	})

	t.Run("all slots booked", func(t *testing.T) {
		bookings := make([]*Booking, 0, 8)
		for start := 540; start < 1020; start += 60 {
			bookings = append(bookings, activeBooking(start, StatusConfirmed))
		}

		status := ComputeDayAvailability(rule, bookings, 60, false, 0)
		assert.False(t, status.Available)
		assert.Equal(t, TagFullyBooked, status.StatusTag)
		assert.Equal(t, 0, status.AvailableSlotCount)
		assert.Equal(t, 8, status.BookedSlotCount)
	})

	t.Run("limited when under quarter free", func(t *testing.T) {
		// 7 из 8 заняты: свободно 12.5% < 25%
		bookings := make([]*Booking, 0, 7)
		for start := 540; start < 960; start += 60 {
			bookings = append(bookings, activeBooking(start, StatusConfirmed))
		}

		status := ComputeDayAvailability(rule, bookings, 60, false, 0)
		assert.True(t, status.Available)
		assert.Equal(t, TagLimited, status.StatusTag)
		assert.Equal(t, 1, status.AvailableSlotCount)
	})

	t.Run("moderate when under half free", func(t *testing.T) {
		// 5 из 8 заняты: свободно 37.5% (>= 25%, < 50%)
		bookings := make([]*Booking, 0, 5)
		for start := 540; start < 840; start += 60 {
			bookings = append(bookings, activeBooking(start, StatusConfirmed))
		}

		status := ComputeDayAvailability(rule, bookings, 60, false, 0)
		assert.True(t, status.Available)
		assert.Equal(t, TagModerate, status.StatusTag)
		assert.Equal(t, 3, status.AvailableSlotCount)
	})

	t.Run("booked count ignores duplicates", func(t *testing.T) {
		bookings := []*Booking{
			activeBooking(600, StatusConfirmed),
			activeBooking(600, StatusPending),
		}

		status := ComputeDayAvailability(rule, bookings, 60, false, 0)
		assert.Equal(t, 1, status.BookedSlotCount)
	})

	t.Run("open day with no slots is fully booked", func(t *testing.T) {
		status := ComputeDayAvailability(openDay(540, 570), nil, 60, false, 0)
		assert.False(t, status.Available)
		assert.Equal(t, TagFullyBooked, status.StatusTag)
		assert.Equal(t, 0, status.TotalSlotCount)
	})
}
