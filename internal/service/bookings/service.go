package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	bookingRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/catalog"
	"github.com/sbmarket/SBM-SchedulingService/internal/service/bookings/models"
)

// Service сервис владельца бизнеса для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// ListByBusiness возвращает бронирования бизнеса с фильтрацией по периоду.
// Доступно только владельцу бизнеса: чужой или несуществующий бизнес
// неразличимы для вызывающего — в обоих случаях ErrBusinessNotFound.
func (s *Service) ListByBusiness(ctx context.Context, req *models.ListBusinessBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListByBusiness: fetching bookings for business=%d, owner=%d", req.BusinessID, req.OwnerID)

	if err := validateListRequest(req); err != nil {
		s.logger.Warn("ListByBusiness: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkOwnerAccess(ctx, req.BusinessID, req.OwnerID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListByBusiness: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: ListByBusiness - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByBusiness: successfully fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование от имени владельца бизнеса.
// Идемпотентна: повторная отмена уже отменённого бронирования не ошибка,
// возвращается текущая запись без записи в хранилище.
// Бронирование чужого бизнеса неотличимо от несуществующего.
func (s *Service) Cancel(ctx context.Context, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by owner=%d", req.BookingID, req.OwnerID)

	if err := validateCancelRequest(req); err != nil {
		s.logger.Warn("Cancel: validation failed: %v", err)
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	// Проверяем владение через бизнес бронирования
	if err := s.checkOwnerAccess(ctx, booking.BusinessID, req.OwnerID); err != nil {
		s.logger.Warn("Cancel: owner=%d has no access to booking id=%d", req.OwnerID, req.BookingID)
		return nil, ErrBookingNotFound
	}

	if booking.IsCancelled() {
		s.logger.Info("Cancel: booking id=%d already cancelled, returning as-is", req.BookingID)
		return models.FromDomainBooking(booking), nil
	}

	cancelled, err := s.bookingRepo.UpdateStatus(ctx, req.BookingID, domain.StatusCancelled)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d disappeared during cancellation", req.BookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", req.BookingID)
	return models.FromDomainBooking(cancelled), nil
}

// checkOwnerAccess проверяет, что бизнес принадлежит владельцу
func (s *Service) checkOwnerAccess(ctx context.Context, businessID, ownerID int64) error {
	if _, err := s.catalogRepo.FindBusinessOwnedBy(ctx, businessID, ownerID); err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			s.logger.Warn("checkOwnerAccess: business id=%d not owned by user=%d", businessID, ownerID)
			return ErrBusinessNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get business id=%d: %v", businessID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get business: %v", ErrInternal, err)
	}
	return nil
}

func validateListRequest(req *models.ListBusinessBookingsRequest) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		return fmt.Errorf("%w: to must not be before from", ErrInvalidInput)
	}
	return nil
}

func validateCancelRequest(req *models.CancelBookingRequest) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}
	return nil
}
