package get_weekly_overview

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getWeeklyOverview "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_weekly_overview"
)

const (
	msgInvalidProviderID = "некорректный ID провайдера"
	msgMissingWeekStart  = "дата начала недели обязательна"
	msgInvalidWeekStart  = "некорректный формат даты начала недели, ожидается YYYY-MM-DD"
	msgInvalidDuration   = "некорректная длительность слота"
	msgInvalidParams     = "некорректные параметры запроса"
	msgProviderNotFound  = "провайдер не найден"
)

type Handler struct {
	useCase GetWeeklyOverviewUseCase
	logger  Logger
}

func NewHandler(useCase GetWeeklyOverviewUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/weekly-overview
// Query params: weekStart (required, YYYY-MM-DD), duration (опционально, минуты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем providerId из URL
	providerIDStr := vars["providerId"]
	providerID, err := strconv.ParseInt(providerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/weekly-overview - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	// Извлекаем weekStart из query параметров
	weekStartStr := r.URL.Query().Get("weekStart")
	if weekStartStr == "" {
		h.logger.Warn("GET /providers/{id}/weekly-overview - Missing week start")
		handlers.RespondBadRequest(w, msgMissingWeekStart)
		return
	}

	// Извлекаем duration из query параметров (опционально)
	duration := 0
	if durationStr := r.URL.Query().Get("duration"); durationStr != "" {
		duration, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /providers/{id}/weekly-overview - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(providerID, weekStartStr, duration)
	if err != nil {
		h.logger.Warn("GET /providers/{id}/weekly-overview - Invalid week start format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWeekStart)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getWeeklyOverview.ErrProviderNotFound):
			h.logger.Warn("GET /providers/{id}/weekly-overview - Provider not found: provider_id=%d", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, getWeeklyOverview.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/weekly-overview - Invalid input: provider_id=%d, error=%v", providerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /providers/{id}/weekly-overview - Failed to build overview: provider_id=%d, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /providers/{id}/weekly-overview - Overview built successfully: provider_id=%d, week_start=%s",
		providerID, weekStartStr)
	handlers.RespondJSON(w, http.StatusOK, response)
}
