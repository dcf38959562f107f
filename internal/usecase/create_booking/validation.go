package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartMinute.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startMinute: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: duration must be between %d and %d minutes",
				ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата подходит для бронирования
func validateDate(bookingDate time.Time, now time.Time) error {
	if domain.IsDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlotInGrid проверяет, что запрошенное время лежит на сетке слотов дня:
// начало выровнено относительно открытия с шагом slotDuration и слот
// целиком помещается в рабочие часы
func validateSlotInGrid(rule domain.DayRule, startMinute types.MinuteOfDay, slotDuration int) error {
	if startMinute < rule.StartMinute {
		return fmt.Errorf("%w: slot starts before opening time %s", ErrInvalidTimeSlot, rule.StartMinute)
	}

	if (startMinute.Int()-rule.StartMinute.Int())%slotDuration != 0 {
		return fmt.Errorf("%w: slot is not aligned to %d-minute grid", ErrInvalidTimeSlot, slotDuration)
	}

	if startMinute.Add(slotDuration) > rule.EndMinute {
		return fmt.Errorf("%w: slot does not fit before closing time %s", ErrInvalidTimeSlot, rule.EndMinute)
	}

	return nil
}

// validateNotInPastToday проверяет, что слот на сегодня еще не начался
func validateNotInPastToday(bookingDate time.Time, startMinute types.MinuteOfDay, now time.Time) error {
	if !domain.IsSameDay(bookingDate, now) {
		return nil
	}

	if startMinute <= types.MinuteOfDayFromClock(now) {
		return ErrTooLateToBook
	}

	return nil
}

// findConflictingBooking ищет активное бронирование, занимающее указанный слот
func findConflictingBooking(startMinute types.MinuteOfDay, bookings []*domain.Booking) *domain.Booking {
	for _, booking := range bookings {
		if !booking.OccupiesSlot() {
			continue
		}
		if booking.StartMinute == startMinute {
			return booking
		}
	}
	return nil
}
