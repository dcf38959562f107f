package create_booking

import "errors"

var (
	// ErrProviderNotFound возвращается, когда провайдер не найден
	ErrProviderNotFound = errors.New("create_booking: provider not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена у провайдера
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrInvalidDate возвращается при некорректной дате бронирования (прошлое или нулевая)
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrProviderClosed возвращается, когда провайдер закрыт в указанную дату
	ErrProviderClosed = errors.New("create_booking: provider is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с сеткой слотов дня
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrTooLateToBook возвращается при попытке забронировать уже прошедший слот
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrSlotTaken возвращается, когда слот уже занят активным бронированием
	ErrSlotTaken = errors.New("create_booking: slot is already taken")

	// ErrContentionTimeout возвращается, когда транзакция не смогла завершиться
	// из-за конкурентных конфликтов даже после повторных попыток
	ErrContentionTimeout = errors.New("create_booking: could not acquire slot due to contention")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
