package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	bookingRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/booking"
	catalogRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/catalog"
)

// UseCase use case создания бронирования.
//
// Проверка пересечений и вставка выполняются в одной сериализуемой
// транзакции: "проверили — вставили" без транзакции — это гонка, при
// которой два клиента могут оба пройти проверку на один слот.
// Exclusion constraint в схеме БД страхует то же самое на коммите.
type UseCase struct {
	bookingRepo  BookingRepository
	catalogRepo  CatalogRepository
	txManager    TransactionManager
	metrics      Metrics // может быть nil, если метрики выключены
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case.
// metrics может быть nil.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalogRepo:  catalogRepo,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: business=%d, service=%d, start=%s",
		req.BusinessID, req.ServiceID, req.StartAt.Format("2006-01-02T15:04:05Z07:00"))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateStartInFuture(req.StartAt, now); err != nil {
		uc.logger.Warn("CreateBooking: start instant in the past: %v", err)
		return nil, err
	}

	// 2. Услуга должна быть активной, принадлежать бизнесу,
	// и бизнес должен быть активен
	service, err := uc.catalogRepo.FindActiveServiceInBusiness(ctx, req.ServiceID, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found in business id=%d",
				req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	// 3. Конец интервала фиксируется по текущей длительности услуги;
	// последующие изменения услуги бронирование не трогают
	endAt := req.StartAt.Add(service.Duration())

	var result *domain.Booking

	// 4-5. Проверка пересечений + вставка как одна атомарная единица
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		overlapping, err := uc.bookingRepo.FindOverlapping(txCtx, req.BusinessID, req.StartAt, endAt)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %w", ErrInternal, err)
		}

		if len(overlapping) > 0 {
			uc.logger.Warn("CreateBooking: slot [%s, %s) conflicts with booking id=%d",
				req.StartAt.Format("15:04"), endAt.Format("15:04"), overlapping[0].ID)
			return ErrSlotNotAvailable
		}

		booking := &domain.Booking{
			BusinessID:    req.BusinessID,
			ServiceID:     req.ServiceID,
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			StartAt:       req.StartAt,
			EndAt:         endAt,
			Status:        domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			// Exclusion constraint сработал раньше нашей проверки —
			// проигравший в гонке получает Conflict, не 500
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: lost insert race for business=%d, start=%s",
					req.BusinessID, req.StartAt.Format("15:04"))
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotNotAvailable) {
			uc.observe(resultConflict)
		} else {
			uc.observe(resultError)
		}
		return nil, err
	}

	uc.observe(resultCreated)
	uc.logger.Info("CreateBooking: successfully created booking id=%d for business=%d", result.ID, req.BusinessID)

	return &Response{
		ID:            result.ID,
		BusinessID:    result.BusinessID,
		ServiceID:     result.ServiceID,
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
		CustomerPhone: result.CustomerPhone,
		StartAt:       result.StartAt,
		EndAt:         result.EndAt,
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.IncBookingCreated(result)
	}
}
