package bookings

import (
	"context"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория каталога (бизнесы и услуги)
type CatalogRepository interface {
	// FindBusinessOwnedBy возвращает бизнес только если он принадлежит owner'у
	FindBusinessOwnedBy(ctx context.Context, businessID, ownerID int64) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
