package get_business_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	"github.com/sbmarket/SBM-SchedulingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос сервиса из параметров маршрута.
// from/to принимаются как даты (YYYY-MM-DD); to расширяется до конца дня,
// чтобы период был включительным по обеим границам.
func ToServiceRequest(r *http.Request, businessID, ownerID int64) (*models.ListBusinessBookingsRequest, error) {
	req := &models.ListBusinessBookingsRequest{
		BusinessID: businessID,
		OwnerID:    ownerID,
	}

	query := r.URL.Query()

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		endOfDay := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		req.To = &endOfDay
	}

	if raw := query.Get("includeCancelled"); raw != "" {
		includeCancelled, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
