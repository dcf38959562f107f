package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	ProviderID         int64  `json:"providerId"`
	Date               string `json:"date"`
	DurationMinutes    int    `json:"durationMinutes"`
	Available          bool   `json:"available"`
	Status             string `json:"status"` // available | moderate | limited | fully-booked | closed
	AvailableSlotCount int    `json:"availableSlotCount"`
	BookedSlotCount    int    `json:"bookedSlotCount"`
	TotalSlotCount     int    `json:"totalSlotCount"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(providerID int64, dateStr string, duration int) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		ProviderID:      providerID,
		Date:            date,
		DurationMinutes: duration,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		ProviderID:         resp.ProviderID,
		Date:               resp.Date.Format(domain.DateFormat),
		DurationMinutes:    resp.DurationMinutes,
		Available:          resp.Status.Available,
		Status:             string(resp.Status.StatusTag),
		AvailableSlotCount: resp.Status.AvailableSlotCount,
		BookedSlotCount:    resp.Status.BookedSlotCount,
		TotalSlotCount:     resp.Status.TotalSlotCount,
	}
}
