package get_weekly_overview

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на недельный обзор доступности
type Request struct {
	ProviderID      int64     // ID провайдера
	WeekStart       time.Time // Первая из семи последовательных дат обзора
	DurationMinutes int       // Длительность слота в минутах (0 = значение по умолчанию)
}

// DayOverview доступность на один день обзора
type DayOverview struct {
	Date    time.Time
	Weekday string // Название дня недели ("Monday", ...)
	Status  domain.AvailabilityStatus
}

// Response модель ответа с обзором на семь последовательных дат
type Response struct {
	ProviderID      int64
	WeekStart       time.Time
	DurationMinutes int
	Days            []DayOverview // Семь дней начиная с WeekStart
}
