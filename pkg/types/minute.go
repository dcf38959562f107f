package types

import (
	"errors"
	"fmt"
	"time"
)

// MinutesPerDay количество минут в сутках
const MinutesPerDay = 1440

var (
	// ErrMinuteOutOfRange возвращается, когда минута дня вне диапазона [0, 1440)
	ErrMinuteOutOfRange = errors.New("minute of day out of range [0, 1440)")
)

// MinuteOfDay минута дня в диапазоне [0, 1440)
// Используется как wire-формат для времени начала слотов (например, 540 = "09:00")
type MinuteOfDay int

// NewMinuteOfDay создает MinuteOfDay с валидацией диапазона
func NewMinuteOfDay(m int) (MinuteOfDay, error) {
	mod := MinuteOfDay(m)
	if err := mod.Validate(); err != nil {
		return 0, err
	}
	return mod, nil
}

// MinuteOfDayFromClock извлекает минуту дня из времени
func MinuteOfDayFromClock(t time.Time) MinuteOfDay {
	return MinuteOfDay(t.Hour()*60 + t.Minute())
}

// Validate проверяет, что минута дня в допустимом диапазоне
func (m MinuteOfDay) Validate() error {
	if m < 0 || m >= MinutesPerDay {
		return fmt.Errorf("%w: %d", ErrMinuteOutOfRange, int(m))
	}
	return nil
}

// Add возвращает минуту дня, сдвинутую на minutes минут
// Результат может выйти за границу суток - проверяется вызывающей стороной
func (m MinuteOfDay) Add(minutes int) MinuteOfDay {
	return m + MinuteOfDay(minutes)
}

// Int возвращает значение как int
func (m MinuteOfDay) Int() int {
	return int(m)
}

// String возвращает время в формате HH:MM (для логов и отображения)
func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}
