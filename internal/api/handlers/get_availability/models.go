package get_availability

import (
	"time"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	getAvailability "github.com/sbmarket/SBM-SchedulingService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BusinessID int64    `json:"businessId"`
	ServiceID  int64    `json:"serviceId"`
	Date       string   `json:"date"`
	Slots      []string `json:"slots"` // Моменты начала свободных слотов, RFC 3339
}

// ToUseCaseRequest собирает запрос use case из параметров маршрута
func ToUseCaseRequest(businessID, serviceID int64, dateStr string, openHour, closeHour *int) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		BusinessID: businessID,
		ServiceID:  serviceID,
		Date:       date,
		OpenHour:   openHour,
		CloseHour:  closeHour,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]string, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, slot.Format(time.RFC3339))
	}

	return &AvailabilityResponse{
		BusinessID: resp.BusinessID,
		ServiceID:  resp.ServiceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
