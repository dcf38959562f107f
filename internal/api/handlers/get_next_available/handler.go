package get_next_available

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getNextAvailable "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_next_available"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgInvalidDuration   = "некорректная длительность слота"
	msgInvalidHorizon    = "некорректный горизонт поиска"
	msgInvalidParams     = "некорректные параметры запроса"
	msgProviderNotFound  = "провайдер не найден"
)

type Handler struct {
	useCase GetNextAvailableUseCase
	logger  Logger
}

func NewHandler(useCase GetNextAvailableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/next-available
// Query params: duration, horizonDays (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем providerId из URL
	providerIDStr := vars["providerId"]
	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/next-available - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Извлекаем duration из query параметров (опционально)
	duration := 0
	if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/next-available - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Извлекаем horizonDays из query параметров (опционально)
	horizonDays := 0
	if horizonStr := r.URL.Query().Get("horizonDays"); horizonStr != "" {
		horizonDays, err = strconv.Atoi(horizonStr)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/next-available - Invalid horizon: %v", err)
			handlers.RespondBadRequest(w, msgInvalidHorizon)
			return
		}
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), &getNextAvailable.Request{
		ProviderID:      providerID,
		HorizonDays:     horizonDays,
		DurationMinutes: duration,
	})
	if err != nil {
		switch {
		case errors.Is(err, getNextAvailable.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/next-available - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getNextAvailable.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/next-available - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/next-available - Failed to find slot: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /providers/{id}/next-available - Search finished: provider_id=%d, available=%t",
		providerID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, response)
}
