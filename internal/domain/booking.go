package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a customer booking of a provider time slot
type Booking struct {
	ID              int64
	CustomerID      int64
	ProviderID      int64
	ServiceID       int64
	BookingDate     time.Time // Дата бронирования без компонента времени
	StartMinute     types.MinuteOfDay
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OccupiesSlot returns true if the booking occupies its slot
// Только pending и confirmed бронирования занимают слот;
// rejected и completed не блокируют будущую запись
func (b *Booking) OccupiesSlot() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusRejected || b.Status == StatusCompleted
}

// CanTransitionTo проверяет допустимость перехода статуса
// Машина состояний: pending -> {confirmed, rejected}; confirmed -> {completed}
func (b *Booking) CanTransitionTo(target BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return target == StatusConfirmed || target == StatusRejected
	case StatusConfirmed:
		return target == StatusCompleted
	default:
		return false
	}
}

// ProviderBookingsFilter фильтр для получения бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID      int64          // Обязательный параметр
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли rejected и completed бронирования
}
