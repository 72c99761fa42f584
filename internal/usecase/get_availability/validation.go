package get_availability

import (
	"fmt"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := validateHour(req.OpenHour, "openHour"); err != nil {
		return err
	}
	if err := validateHour(req.CloseHour, "closeHour"); err != nil {
		return err
	}

	return nil
}

func validateHour(hour *int, name string) error {
	if hour == nil {
		return nil
	}
	if *hour < domain.MinHour || *hour > domain.MaxHour {
		return fmt.Errorf("%w: %s must be in [%d..%d]", ErrInvalidInput, name, domain.MinHour, domain.MaxHour)
	}
	return nil
}

// resolveHours подставляет часы работы по умолчанию, если они не переданы
func resolveHours(req *Request) (int, int) {
	openHour := domain.DefaultOpenHour
	if req.OpenHour != nil {
		openHour = *req.OpenHour
	}

	closeHour := domain.DefaultCloseHour
	if req.CloseHour != nil {
		closeHour = *req.CloseHour
	}

	return openHour, closeHour
}
