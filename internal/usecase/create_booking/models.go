package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID      int64             // ID клиента
	ProviderID      int64             // ID провайдера
	ServiceID       int64             // ID услуги
	Date            time.Time         // Дата бронирования (без времени)
	StartMinute     types.MinuteOfDay // Начало слота в минутах от полуночи
	DurationMinutes int               // Длительность слота (0 - дефолтная)
	Notes           *string           // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64             // ID созданного бронирования
	CustomerID      int64             // ID клиента
	ProviderID      int64             // ID провайдера
	ServiceID       int64             // ID услуги
	BookingDate     time.Time         // Дата бронирования
	StartMinute     types.MinuteOfDay // Начало слота
	DurationMinutes int               // Длительность в минутах
	Status          string            // Статус бронирования

	// Денормализованные данные услуги
	ServiceName  string  // Название услуги
	ServicePrice float64 // Цена услуги
	Notes        *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
