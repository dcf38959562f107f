package update_provider_schedule

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

// DayRuleRequest правило одного дня недели
type DayRuleRequest struct {
	Weekday     int  `json:"weekday"` // 0 = воскресенье .. 6 = суббота
	IsOpen      bool `json:"isOpen"`
	StartMinute int  `json:"startMinute,omitempty"`
	EndMinute   int  `json:"endMinute,omitempty"`
}

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Days []DayRuleRequest `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleRequest) ToServiceRequest(providerID, userID int64) *models.UpsertScheduleRequest {
	days := make([]models.DayRuleInput, len(r.Days))
	for i, day := range r.Days {
		days[i] = models.DayRuleInput{
			Weekday:     day.Weekday,
			IsOpen:      day.IsOpen,
			StartMinute: day.StartMinute,
			EndMinute:   day.EndMinute,
		}
	}

	return &models.UpsertScheduleRequest{
		UserID:     userID,
		ProviderID: providerID,
		Days:       days,
	}
}
