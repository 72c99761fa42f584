package create_booking

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	bookingRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/catalog"
	"github.com/sbmarket/SBM-SchedulingService/pkg/ptr"
	"github.com/sbmarket/SBM-SchedulingService/pkg/txmanager"
)

var testNow = time.Date(2025, 10, 14, 12, 0, 0, 0, time.UTC)

func nextDayAt(hour, min int) time.Time {
	return time.Date(2025, 10, 15, hour, min, 0, 0, time.UTC)
}

// --- fakes ---

// fakeStore — in-memory хранилище бронирований.
// enforceConstraint=true моделирует exclusion constraint БД: вставка
// пересекающегося бронирования атомарно отклоняется.
type fakeStore struct {
	mu                sync.Mutex
	bookings          []*domain.Booking
	nextID            int64
	enforceConstraint bool
}

func (f *fakeStore) FindOverlapping(_ context.Context, businessID int64, start, end time.Time) ([]*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.overlappingLocked(businessID, start, end), nil
}

func (f *fakeStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.enforceConstraint && len(f.overlappingLocked(booking.BusinessID, booking.StartAt, booking.EndAt)) > 0 {
		return nil, bookingRepo.ErrSlotTaken
	}

	f.nextID++
	booking.ID = f.nextID
	booking.CreatedAt = testNow
	booking.UpdatedAt = testNow
	f.bookings = append(f.bookings, booking)
	return booking, nil
}

func (f *fakeStore) overlappingLocked(businessID int64, start, end time.Time) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.BusinessID == businessID && b.IsActive() && b.Overlaps(start, end) {
			result = append(result, b)
		}
	}
	return result
}

func (f *fakeStore) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bookings {
		if b.Status == domain.StatusPending {
			count++
		}
	}
	return count
}

// serializedTxManager моделирует сериализуемую транзакцию взаимным
// исключением: проверка пересечений и вставка не чередуются между
// конкурентными вызовами
type serializedTxManager struct {
	mu sync.Mutex
}

func (m *serializedTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// retryingTxManager повторяет fn при retryable ошибках тем же циклом,
// что и боевой менеджер
type retryingTxManager struct {
	attempts int
}

func (m *retryingTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	var err error
	for i := 0; i < 3; i++ {
		m.attempts++
		err = fn(ctx)
		if err == nil || !txmanager.IsRetryable(err) {
			return err
		}
	}
	return err
}

// flakyStore роняет первые failures вызовов FindOverlapping ошибкой
// сериализации, завёрнутой как в репозитории
type flakyStore struct {
	*fakeStore
	failures int
	calls    int
}

func (f *flakyStore) FindOverlapping(ctx context.Context, businessID int64, start, end time.Time) ([]*domain.Booking, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w",
			bookingRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	}
	return f.fakeStore.FindOverlapping(ctx, businessID, start, end)
}

// passthroughTxManager намеренно НЕ изолирует вызовы — моделирует
// чистый check-then-insert, от которого спасает только constraint
type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCatalog struct {
	service *domain.Service
}

func (f *fakeCatalog) FindActiveServiceInBusiness(_ context.Context, serviceID, businessID int64) (*domain.Service, error) {
	if f.service == nil || f.service.ID != serviceID || f.service.BusinessID != businessID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return f.service, nil
}

type stubTimeProvider struct{ now time.Time }

func (p stubTimeProvider) Now() time.Time { return p.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- helpers ---

func newTestUseCase(store *fakeStore, txm TransactionManager, durationMinutes int) *UseCase {
	catalog := &fakeCatalog{service: &domain.Service{
		ID:              7,
		BusinessID:      1,
		Name:            "Manicura",
		DurationMinutes: durationMinutes,
		Status:          domain.EntityActive,
	}}

	uc := NewUseCase(store, catalog, txm, nil, nopLogger{})
	uc.timeProvider = stubTimeProvider{now: testNow}
	return uc
}

func validRequest(start time.Time) *Request {
	return &Request{
		BusinessID:    1,
		ServiceID:     7,
		CustomerName:  "Ana García",
		CustomerEmail: "ana@example.com",
		CustomerPhone: ptr.Ptr("+34600111222"),
		StartAt:       start,
	}
}

// --- tests ---

func TestExecute_CreatesPendingBooking(t *testing.T) {
	store := &fakeStore{}
	uc := newTestUseCase(store, &serializedTxManager{}, 60)

	resp, err := uc.Execute(context.Background(), validRequest(nextDayAt(10, 0)))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, nextDayAt(10, 0), resp.StartAt)
	assert.Equal(t, nextDayAt(11, 0), resp.EndAt, "end must be start + service duration")
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 1, store.pendingCount())
}

func TestExecute_ConflictWhenOverlapExists(t *testing.T) {
	store := &fakeStore{bookings: []*domain.Booking{
		{ID: 1, BusinessID: 1, StartAt: nextDayAt(10, 0), EndAt: nextDayAt(11, 0), Status: domain.StatusPending},
	}}
	uc := newTestUseCase(store, &serializedTxManager{}, 60)

	_, err := uc.Execute(context.Background(), validRequest(nextDayAt(10, 30)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Equal(t, 1, store.pendingCount())
}

func TestExecute_BackToBackBookingsAllowed(t *testing.T) {
	// Полуоткрытые интервалы: бронь, начинающаяся ровно в момент конца
	// существующей, конфликтом не является
	store := &fakeStore{bookings: []*domain.Booking{
		{ID: 1, BusinessID: 1, StartAt: nextDayAt(10, 0), EndAt: nextDayAt(10, 30), Status: domain.StatusPending},
	}}
	uc := newTestUseCase(store, &serializedTxManager{}, 30)

	_, err := uc.Execute(context.Background(), validRequest(nextDayAt(10, 30)))
	assert.NoError(t, err)

	_, err = uc.Execute(context.Background(), validRequest(nextDayAt(10, 29)))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	store := &fakeStore{bookings: []*domain.Booking{
		{ID: 1, BusinessID: 1, StartAt: nextDayAt(10, 0), EndAt: nextDayAt(11, 0), Status: domain.StatusCancelled},
	}}
	uc := newTestUseCase(store, &serializedTxManager{}, 60)

	_, err := uc.Execute(context.Background(), validRequest(nextDayAt(10, 0)))
	assert.NoError(t, err)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	store := &fakeStore{}
	uc := NewUseCase(store, &fakeCatalog{}, &serializedTxManager{}, nil, nopLogger{})
	uc.timeProvider = stubTimeProvider{now: testNow}

	_, err := uc.Execute(context.Background(), validRequest(nextDayAt(10, 0)))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	store := &fakeStore{}
	uc := newTestUseCase(store, &serializedTxManager{}, 60)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing customer name", mutate: func(r *Request) { r.CustomerName = " " }},
		{name: "missing customer email", mutate: func(r *Request) { r.CustomerEmail = "" }},
		{name: "zero start", mutate: func(r *Request) { r.StartAt = time.Time{} }},
		{name: "bad business id", mutate: func(r *Request) { r.BusinessID = 0 }},
		{name: "start in the past", mutate: func(r *Request) { r.StartAt = testNow.Add(-time.Hour) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(nextDayAt(10, 0))
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}

	assert.Zero(t, store.pendingCount(), "validation errors must not reach the store")
}

func TestExecute_ConcurrentSameSlot_ExactlyOneWins(t *testing.T) {
	store := &fakeStore{}
	uc := newTestUseCase(store, &serializedTxManager{}, 60)

	const workers = 8
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest(nextDayAt(14, 0)))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes, conflicts := 0, 0
	for err := range errs {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrSlotNotAvailable):
			conflicts++
		}
	}

	assert.Equal(t, 1, successes, "exactly one concurrent create must win")
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, store.pendingCount(), "store must end with one pending booking")
}

func TestExecute_SerializationFailureRetriedToSuccess(t *testing.T) {
	// Ошибка сериализации из проверки пересечений должна доехать до
	// менеджера транзакций неразорванной цепочкой и быть повторена,
	// а не превратиться в 500 с первой попытки
	store := &flakyStore{fakeStore: &fakeStore{}, failures: 1}
	txm := &retryingTxManager{}

	catalog := &fakeCatalog{service: &domain.Service{
		ID:              7,
		BusinessID:      1,
		Name:            "Manicura",
		DurationMinutes: 60,
		Status:          domain.EntityActive,
	}}
	uc := NewUseCase(store, catalog, txm, nil, nopLogger{})
	uc.timeProvider = stubTimeProvider{now: testNow}

	resp, err := uc.Execute(context.Background(), validRequest(nextDayAt(10, 0)))
	require.NoError(t, err)

	assert.Equal(t, 2, txm.attempts, "first attempt loses serialization, second must win")
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, 1, store.pendingCount())
}

func TestExecute_SerializationFailureExhaustedIsInternal(t *testing.T) {
	store := &flakyStore{fakeStore: &fakeStore{}, failures: 10}
	txm := &retryingTxManager{}

	catalog := &fakeCatalog{service: &domain.Service{
		ID:              7,
		BusinessID:      1,
		Name:            "Manicura",
		DurationMinutes: 60,
		Status:          domain.EntityActive,
	}}
	uc := NewUseCase(store, catalog, txm, nil, nopLogger{})
	uc.timeProvider = stubTimeProvider{now: testNow}

	_, err := uc.Execute(context.Background(), validRequest(nextDayAt(10, 0)))
	require.Error(t, err)

	assert.Equal(t, 3, txm.attempts)
	assert.ErrorIs(t, err, ErrInternal, "exhausted retries are an internal error, not a conflict")
	assert.NotErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ExclusionConstraintBackstop(t *testing.T) {
	// Без изоляции транзакций оба вызова проходят проверку пересечений;
	// атомарная вставка хранилища (exclusion constraint) всё равно
	// пропускает только одного, второй получает Conflict
	store := &fakeStore{enforceConstraint: true}
	uc := newTestUseCase(store, passthroughTxManager{}, 60)

	const workers = 4
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), validRequest(nextDayAt(16, 0)))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	successes := 0
	for err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
		}
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, store.pendingCount())
}
