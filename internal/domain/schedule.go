package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Weekday indices, 0=Sunday .. 6=Saturday (wire format)
const (
	WeekdaySunday   = 0
	WeekdaySaturday = 6
	DaysPerWeek     = 7
)

// DayRule правило доступности провайдера на один день недели
type DayRule struct {
	IsOpen      bool
	StartMinute types.MinuteOfDay // Начало рабочего окна
	EndMinute   types.MinuteOfDay // Конец рабочего окна (не включается)
}

// ScheduleTemplate недельное расписание провайдера
// Ключи Days - дни недели 0 (воскресенье) .. 6 (суббота), все семь обязательны
type ScheduleTemplate struct {
	ProviderID int64
	Days       map[int]DayRule
	UpdatedAt  time.Time
}

// Validate проверяет инварианты расписания:
// все семь дней присутствуют, для открытых дней StartMinute < EndMinute,
// минуты в диапазоне [0, 1440)
func (t *ScheduleTemplate) Validate() error {
	for weekday := WeekdaySunday; weekday <= WeekdaySaturday; weekday++ {
		rule, ok := t.Days[weekday]
		if !ok {
			return fmt.Errorf("%w: missing weekday %d", ErrInvalidSchedule, weekday)
		}

		if !rule.IsOpen {
			continue
		}

		if err := rule.StartMinute.Validate(); err != nil {
			return fmt.Errorf("%w: weekday %d start: %v", ErrInvalidSchedule, weekday, err)
		}
		if err := rule.EndMinute.Validate(); err != nil {
			return fmt.Errorf("%w: weekday %d end: %v", ErrInvalidSchedule, weekday, err)
		}
		if rule.StartMinute >= rule.EndMinute {
			return fmt.Errorf("%w: weekday %d: start %s must be before end %s",
				ErrInvalidSchedule, weekday, rule.StartMinute, rule.EndMinute)
		}
	}

	if len(t.Days) != DaysPerWeek {
		return fmt.Errorf("%w: expected %d weekdays, got %d", ErrInvalidSchedule, DaysPerWeek, len(t.Days))
	}

	return nil
}

// RuleForDate возвращает правило дня для указанной даты
// Если расписание отсутствует или день не определен - возвращает закрытый день
func (t *ScheduleTemplate) RuleForDate(date time.Time) DayRule {
	if t == nil {
		return DayRule{IsOpen: false}
	}

	rule, ok := t.Days[int(date.Weekday())]
	if !ok {
		return DayRule{IsOpen: false}
	}
	return rule
}
