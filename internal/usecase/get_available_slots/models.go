package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProviderID      int64     // ID провайдера
	Date            time.Time // Дата для получения слотов (без времени)
	DurationMinutes int       // Длительность слота в минутах (0 = значение по умолчанию)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID      int64               // ID провайдера
	Date            time.Time           // Дата, на которую запрашивались слоты
	DurationMinutes int                 // Применённая длительность слота
	Slots           []types.MinuteOfDay // Стартовые минуты доступных слотов (по возрастанию)
}
