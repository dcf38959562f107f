package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение доступности на дату
type Request struct {
	ProviderID      int64     // ID провайдера
	Date            time.Time // Дата (без времени)
	DurationMinutes int       // Длительность слота в минутах (0 = значение по умолчанию)
}

// Response модель ответа с агрегированной доступностью
type Response struct {
	ProviderID      int64
	Date            time.Time
	DurationMinutes int
	Status          domain.AvailabilityStatus
}
