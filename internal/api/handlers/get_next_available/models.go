package get_next_available

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getNextAvailable "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_next_available"
)

// NextAvailableResponse HTTP response model
// Если Available=false, поля слота отсутствуют в ответе
type NextAvailableResponse struct {
	ProviderID      int64   `json:"providerId"`
	HorizonDays     int     `json:"horizonDays"`
	DurationMinutes int     `json:"durationMinutes"`
	Available       bool    `json:"available"`
	Date            *string `json:"date,omitempty"`
	StartMinute     *int    `json:"startMinute,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getNextAvailable.Response) *NextAvailableResponse {
	out := &NextAvailableResponse{
		ProviderID:      resp.ProviderID,
		HorizonDays:     resp.HorizonDays,
		DurationMinutes: resp.DurationMinutes,
		Available:       resp.Available,
	}

	if resp.Available && resp.Date != nil && resp.StartMinute != nil {
		dateStr := resp.Date.Format(domain.DateFormat)
		startMinute := resp.StartMinute.Int()
		startTime := resp.StartMinute.String()
		out.Date = &dateStr
		out.StartMinute = &startMinute
		out.StartTime = &startTime
	}

	return out
}
