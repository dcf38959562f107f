package get_weekly_overview

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getWeeklyOverview "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_weekly_overview"
)

// DayOverviewResponse доступность одного дня обзора
type DayOverviewResponse struct {
	Date               string `json:"date"`
	Weekday            string `json:"weekday"`
	Available          bool   `json:"available"`
	Status             string `json:"status"`
	AvailableSlotCount int    `json:"availableSlotCount"`
	BookedSlotCount    int    `json:"bookedSlotCount"`
	TotalSlotCount     int    `json:"totalSlotCount"`
}

// WeeklyOverviewResponse HTTP response model
type WeeklyOverviewResponse struct {
	ProviderID      int64                 `json:"providerId"`
	WeekStart       string                `json:"weekStart"`
	DurationMinutes int                   `json:"durationMinutes"`
	Days            []DayOverviewResponse `json:"days"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(providerID int64, weekStartStr string, duration int) (*getWeeklyOverview.Request, error) {
	weekStart, err := time.Parse(domain.DateFormat, weekStartStr)
	if err != nil {
		return nil, err
	}

	return &getWeeklyOverview.Request{
		ProviderID:      providerID,
		WeekStart:       weekStart,
		DurationMinutes: duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getWeeklyOverview.Response) *WeeklyOverviewResponse {
	days := make([]DayOverviewResponse, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DayOverviewResponse{
			Date:               day.Date.Format(domain.DateFormat),
			Weekday:            day.Weekday,
			Available:          day.Status.Available,
			Status:             string(day.Status.StatusTag),
			AvailableSlotCount: day.Status.AvailableSlotCount,
			BookedSlotCount:    day.Status.BookedSlotCount,
			TotalSlotCount:     day.Status.TotalSlotCount,
		}
	}

	return &WeeklyOverviewResponse{
		ProviderID:      resp.ProviderID,
		WeekStart:       resp.WeekStart.Format(domain.DateFormat),
		DurationMinutes: resp.DurationMinutes,
		Days:            days,
	}
}
