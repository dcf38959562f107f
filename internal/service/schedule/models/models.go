package models

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модели

// DayRuleInput правило одного дня недели в запросе
type DayRuleInput struct {
	Weekday     int  `json:"weekday"` // 0 = воскресенье .. 6 = суббота
	IsOpen      bool `json:"isOpen"`
	StartMinute int  `json:"startMinute"` // Минуты от полуночи
	EndMinute   int  `json:"endMinute"`   // Минуты от полуночи
}

// UpsertScheduleRequest запрос на полную замену расписания провайдера
type UpsertScheduleRequest struct {
	UserID     int64          `json:"userId"`
	ProviderID int64          `json:"providerId"`
	Days       []DayRuleInput `json:"days"`
}

// ToDomainTemplate конвертирует request в domain модель
// Валидация полноты и корректности остается за domain.ScheduleTemplate.Validate
func (r *UpsertScheduleRequest) ToDomainTemplate() *domain.ScheduleTemplate {
	template := &domain.ScheduleTemplate{
		ProviderID: r.ProviderID,
		Days:       make(map[int]domain.DayRule, len(r.Days)),
	}

	for _, day := range r.Days {
		template.Days[day.Weekday] = domain.DayRule{
			IsOpen:      day.IsOpen,
			StartMinute: types.MinuteOfDay(day.StartMinute),
			EndMinute:   types.MinuteOfDay(day.EndMinute),
		}
	}

	return template
}

// Response модели

// DayRuleResponse правило одного дня недели в ответе
type DayRuleResponse struct {
	Weekday     int    `json:"weekday"`
	IsOpen      bool   `json:"isOpen"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
	StartTime   string `json:"startTime,omitempty"` // "09:00"
	EndTime     string `json:"endTime,omitempty"`   // "17:00"
}

// ScheduleResponse ответ с расписанием провайдера
type ScheduleResponse struct {
	ProviderID int64             `json:"providerId"`
	Days       []DayRuleResponse `json:"days"`
	UpdatedAt  time.Time         `json:"updatedAt"`
}

// FromDomainTemplate конвертирует domain модель в DTO
// Дни сортируются по номеру дня недели
func FromDomainTemplate(t *domain.ScheduleTemplate) *ScheduleResponse {
	if t == nil {
		return nil
	}

	resp := &ScheduleResponse{
		ProviderID: t.ProviderID,
		Days:       make([]DayRuleResponse, 0, len(t.Days)),
		UpdatedAt:  t.UpdatedAt,
	}

	for weekday, rule := range t.Days {
		day := DayRuleResponse{
			Weekday:     weekday,
			IsOpen:      rule.IsOpen,
			StartMinute: rule.StartMinute.Int(),
			EndMinute:   rule.EndMinute.Int(),
		}
		if rule.IsOpen {
			day.StartTime = rule.StartMinute.String()
			day.EndTime = rule.EndMinute.String()
		}
		resp.Days = append(resp.Days, day)
	}

	sort.Slice(resp.Days, func(i, j int) bool {
		return resp.Days[i].Weekday < resp.Days[j].Weekday
	})

	return resp
}
