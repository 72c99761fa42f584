package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sbmarket/SBM-SchedulingService/internal/api/handlers"
	getAvailability "github.com/sbmarket/SBM-SchedulingService/internal/usecase/get_availability"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidHour       = "некорректный час, ожидается целое число 0..23"
	msgInvalidInput      = "некорректные параметры запроса"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/services/{serviceId}/availability
// Query params: date (required, YYYY-MM-DD), openHour, closeHour (optional, 0..23)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем businessId из URL
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{id}/availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем serviceId из URL
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{id}/availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/services/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Опциональные границы рабочего дня
	openHour, err := parseHourParam(r, "openHour")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{id}/availability - Invalid openHour: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHour)
		return
	}

	closeHour, err := parseHourParam(r, "closeHour")
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{id}/availability - Invalid closeHour: %v", err)
		handlers.RespondBadRequest(w, msgInvalidHour)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(businessID, serviceID, dateStr, openHour, closeHour)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/services/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/services/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /businesses/{id}/services/{id}/availability - Service not found: business_id=%d, service_id=%d",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/services/{id}/availability - Failed to get slots: business_id=%d, service_id=%d, error=%v",
				businessID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/services/{id}/availability - Slots retrieved successfully: business_id=%d, service_id=%d, slots_count=%d",
		businessID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

// parseHourParam читает опциональный часовой query параметр.
// Отсутствующий параметр — nil, значение по умолчанию подставит use case.
func parseHourParam(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	hour, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &hour, nil
}
