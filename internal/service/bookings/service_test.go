package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	bookingRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/catalog"
	"github.com/sbmarket/SBM-SchedulingService/internal/service/bookings/models"
	"github.com/sbmarket/SBM-SchedulingService/pkg/ptr"
)

const (
	ownerID      = int64(42)
	otherOwnerID = int64(99)
	businessID   = int64(1)
)

func at(day, hour int) time.Time {
	return time.Date(2025, 10, day, hour, 0, 0, 0, time.UTC)
}

// --- fakes ---

type fakeBookingRepo struct {
	bookings      map[int64]*domain.Booking
	updatedStatus map[int64]domain.BookingStatus // фиксирует фактические записи
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{
		bookings:      make(map[int64]*domain.Booking),
		updatedStatus: make(map[int64]domain.BookingStatus),
	}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID != filter.BusinessID {
			continue
		}
		if !filter.IncludeCancelled && b.IsCancelled() {
			continue
		}
		if filter.From != nil && b.StartAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && b.StartAt.After(*filter.To) {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	updated := *b
	updated.Status = status
	updated.UpdatedAt = updated.UpdatedAt.Add(time.Minute)
	f.bookings[id] = &updated
	f.updatedStatus[id] = status
	return &updated, nil
}

type fakeCatalogRepo struct {
	// businessID -> ownerID
	owners map[int64]int64
}

func (f *fakeCatalogRepo) FindBusinessOwnedBy(_ context.Context, businessID, ownerID int64) (*domain.Business, error) {
	owner, ok := f.owners[businessID]
	if !ok || owner != ownerID {
		return nil, catalogRepo.ErrBusinessNotFound
	}
	return &domain.Business{ID: businessID, OwnerID: ownerID, Status: domain.EntityActive}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- helpers ---

func newTestService(repo *fakeBookingRepo) *Service {
	catalog := &fakeCatalogRepo{owners: map[int64]int64{businessID: ownerID}}
	return NewService(repo, catalog, nopLogger{})
}

func pendingBooking(id int64, start time.Time) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		BusinessID:    businessID,
		ServiceID:     7,
		CustomerName:  "Ana García",
		CustomerEmail: "ana@example.com",
		CustomerPhone: ptr.Ptr("+34600111222"),
		StartAt:       start,
		EndAt:         start.Add(time.Hour),
		Status:        domain.StatusPending,
		CreatedAt:     at(1, 12),
		UpdatedAt:     at(1, 12),
	}
}

// --- ListByBusiness ---

func TestListByBusiness_ReturnsOwnBookings(t *testing.T) {
	repo := newFakeBookingRepo(
		pendingBooking(1, at(15, 10)),
		pendingBooking(2, at(16, 11)),
	)
	svc := newTestService(repo)

	resp, err := svc.ListByBusiness(context.Background(), &models.ListBusinessBookingsRequest{
		BusinessID: businessID,
		OwnerID:    ownerID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)
}

func TestListByBusiness_FiltersByPeriod(t *testing.T) {
	repo := newFakeBookingRepo(
		pendingBooking(1, at(14, 10)),
		pendingBooking(2, at(15, 10)),
		pendingBooking(3, at(16, 10)),
	)
	svc := newTestService(repo)

	resp, err := svc.ListByBusiness(context.Background(), &models.ListBusinessBookingsRequest{
		BusinessID: businessID,
		OwnerID:    ownerID,
		From:       ptr.Ptr(at(15, 0)),
		To:         ptr.Ptr(at(15, 23)),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)
}

func TestListByBusiness_ExcludesCancelledByDefault(t *testing.T) {
	cancelled := pendingBooking(2, at(16, 11))
	cancelled.Status = domain.StatusCancelled

	repo := newFakeBookingRepo(pendingBooking(1, at(15, 10)), cancelled)
	svc := newTestService(repo)

	resp, err := svc.ListByBusiness(context.Background(), &models.ListBusinessBookingsRequest{
		BusinessID: businessID,
		OwnerID:    ownerID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(1), resp.Bookings[0].ID)
}

func TestListByBusiness_ForeignBusinessLooksMissing(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, at(15, 10)))
	svc := newTestService(repo)

	_, err := svc.ListByBusiness(context.Background(), &models.ListBusinessBookingsRequest{
		BusinessID: businessID,
		OwnerID:    otherOwnerID,
	})
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestListByBusiness_InvalidPeriod(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())

	_, err := svc.ListByBusiness(context.Background(), &models.ListBusinessBookingsRequest{
		BusinessID: businessID,
		OwnerID:    ownerID,
		From:       ptr.Ptr(at(16, 0)),
		To:         ptr.Ptr(at(15, 0)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// --- Cancel ---

func TestCancel_MarksBookingCancelled(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking(1, at(15, 10)))
	svc := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 1, OwnerID: ownerID})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Equal(t, domain.StatusCancelled, repo.updatedStatus[1])
}

func TestCancel_IsIdempotent(t *testing.T) {
	cancelled := pendingBooking(1, at(15, 10))
	cancelled.Status = domain.StatusCancelled

	repo := newFakeBookingRepo(cancelled)
	svc := newTestService(repo)

	resp, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 1, OwnerID: ownerID})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	assert.Empty(t, repo.updatedStatus, "repeated cancel must not write to the store")
}

func TestCancel_BookingNotFound(t *testing.T) {
	svc := newTestService(newFakeBookingRepo())

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 404, OwnerID: ownerID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_ForeignBookingLooksMissing(t *testing.T) {
	// Чужое бронирование неотличимо от несуществующего
	repo := newFakeBookingRepo(pendingBooking(1, at(15, 10)))
	svc := newTestService(repo)

	_, err := svc.Cancel(context.Background(), &models.CancelBookingRequest{BookingID: 1, OwnerID: otherOwnerID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.Empty(t, repo.updatedStatus)
}
