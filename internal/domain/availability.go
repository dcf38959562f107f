package domain

import (
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AvailabilityTag дискретный статус доступности провайдера на дату
type AvailabilityTag string

const (
	TagAvailable   AvailabilityTag = "available"
	TagModerate    AvailabilityTag = "moderate"
	TagLimited     AvailabilityTag = "limited"
	TagFullyBooked AvailabilityTag = "fully-booked"
	TagClosed      AvailabilityTag = "closed"
)

// AvailabilityStatus агрегированная доступность провайдера на одну дату
// Производное значение: функция от расписания и набора бронирований, не хранится
type AvailabilityStatus struct {
	Available          bool
	StatusTag          AvailabilityTag
	AvailableSlotCount int
	BookedSlotCount    int
	TotalSlotCount     int
}

// GenerateSlots генерирует упорядоченный список стартовых минут слотов на день
// Слоты идут от начала рабочего окна с фиксированным шагом slotDuration;
// слот входит в результат, только если целиком помещается в рабочее окно.
// Для закрытого дня возвращается пустой список
func GenerateSlots(rule DayRule, slotDuration int) []types.MinuteOfDay {
	slots := make([]types.MinuteOfDay, 0)

	if !rule.IsOpen || slotDuration <= 0 {
		return slots
	}

	for start := rule.StartMinute; start.Add(slotDuration) <= rule.EndMinute; start = start.Add(slotDuration) {
		slots = append(slots, start)
	}

	return slots
}

// FilterAvailable убирает из списка слотов занятые и прошедшие
// Слот занят, если на его стартовую минуту есть хотя бы одно активное
// (pending/confirmed) бронирование; несколько бронирований на один слот
// считаются одним конфликтом, поэтому фильтрация идемпотентна.
// Если isToday=true, слоты с началом не позже nowMinute исключаются;
// для других дат фильтрация по времени не выполняется
func FilterAvailable(
	slots []types.MinuteOfDay,
	bookings []*Booking,
	isToday bool,
	nowMinute types.MinuteOfDay,
) []types.MinuteOfDay {
	occupied := OccupiedSlotMinutes(bookings)

	available := make([]types.MinuteOfDay, 0, len(slots))
	for _, slot := range slots {
		if isToday && slot <= nowMinute {
			continue
		}
		if occupied[slot] {
			continue
		}
		available = append(available, slot)
	}

	return available
}

// OccupiedSlotMinutes возвращает множество стартовых минут, занятых активными бронированиями
func OccupiedSlotMinutes(bookings []*Booking) map[types.MinuteOfDay]bool {
	occupied := make(map[types.MinuteOfDay]bool, len(bookings))
	for _, booking := range bookings {
		if booking.OccupiesSlot() {
			occupied[booking.StartMinute] = true
		}
	}
	return occupied
}

// ComputeDayAvailability вычисляет агрегированную доступность на дату
// Политика:
//   - день закрыт -> closed
//   - нет ни одного свободного слота -> fully-booked
//   - доля свободных слотов < 25% -> limited, < 50% -> moderate, иначе available
//
// Знаменатель - общее число возможных слотов дня, независимо от занятости
// и прошедшего времени
func ComputeDayAvailability(
	rule DayRule,
	bookings []*Booking,
	slotDuration int,
	isToday bool,
	nowMinute types.MinuteOfDay,
) AvailabilityStatus {
	if !rule.IsOpen {
		return AvailabilityStatus{Available: false, StatusTag: TagClosed}
	}

	allSlots := GenerateSlots(rule, slotDuration)
	availableSlots := FilterAvailable(allSlots, bookings, isToday, nowMinute)
	bookedCount := countBookedSlots(allSlots, bookings)

	status := AvailabilityStatus{
		AvailableSlotCount: len(availableSlots),
		BookedSlotCount:    bookedCount,
		TotalSlotCount:     len(allSlots),
	}

	if len(availableSlots) == 0 {
		status.StatusTag = TagFullyBooked
		return status
	}

	status.Available = true

	pct := float64(len(availableSlots)) / float64(len(allSlots)) * 100
	switch {
	case pct < LimitedAvailabilityPct:
		status.StatusTag = TagLimited
	case pct < ModerateAvailabilityPct:
		status.StatusTag = TagModerate
	default:
		status.StatusTag = TagAvailable
	}

	return status
}

// countBookedSlots считает, сколько слотов дневной сетки заняты активными бронированиями
// Считаются уникальные стартовые минуты, а не записи: дублирующиеся
// бронирования на один слот не завышают счётчик
func countBookedSlots(slots []types.MinuteOfDay, bookings []*Booking) int {
	occupied := OccupiedSlotMinutes(bookings)

	count := 0
	for _, slot := range slots {
		if occupied[slot] {
			count++
		}
	}
	return count
}
