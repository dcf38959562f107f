package domain

import "errors"

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultHorizonDays         = 14
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 часов
	MinHorizonDays         = 1
	MaxHorizonDays         = 90
	MaxNotesLength         = 500
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Пороговые значения доли свободных слотов для статуса дня (в процентах)
const (
	LimitedAvailabilityPct  = 25
	ModerateAvailabilityPct = 50
)

var (
	// ErrInvalidSchedule возвращается при нарушении инвариантов недельного расписания
	ErrInvalidSchedule = errors.New("domain: invalid schedule template")
)

// ActiveStatuses список статусов, занимающих слот
// Используется для фильтрации при подсчёте доступных слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// InactiveStatuses список статусов, не занимающих слот
var InactiveStatuses = []BookingStatus{
	StatusRejected,
	StatusCompleted,
}
