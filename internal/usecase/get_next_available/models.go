package get_next_available

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на поиск ближайшего доступного слота
type Request struct {
	ProviderID      int64 // ID провайдера
	HorizonDays     int   // Глубина поиска в днях от сегодня (0 = значение по умолчанию)
	DurationMinutes int   // Длительность слота в минутах (0 = значение по умолчанию)
}

// Response модель ответа с ближайшим доступным слотом
// Если в горизонте поиска нет ни одного свободного слота, Available=false
// и Date/StartMinute не заполнены
type Response struct {
	ProviderID      int64
	HorizonDays     int
	DurationMinutes int
	Available       bool
	Date            *time.Time         // Первая дата со свободным слотом
	StartMinute     *types.MinuteOfDay // Самый ранний свободный слот этой даты
}
