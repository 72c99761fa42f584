package get_availability

import (
	"context"
	"time"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	availabilityCache "github.com/sbmarket/SBM-SchedulingService/internal/infra/cache/availability"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// FindOverlapping возвращает неотменённые бронирования бизнеса,
	// пересекающиеся с [start, end)
	FindOverlapping(ctx context.Context, businessID int64, start, end time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	FindActiveServiceInBusiness(ctx context.Context, serviceID, businessID int64) (*domain.Service, error)
	GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error)
}

// SlotsCache интерфейс кеша выдачи слотов (опционален)
type SlotsCache interface {
	Get(ctx context.Context, key availabilityCache.Key) ([]time.Time, bool, error)
	Set(ctx context.Context, key availabilityCache.Key, slots []time.Time) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
