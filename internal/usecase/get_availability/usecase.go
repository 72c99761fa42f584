package get_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	availabilityCache "github.com/sbmarket/SBM-SchedulingService/internal/infra/cache/availability"
	catalogRepo "github.com/sbmarket/SBM-SchedulingService/internal/infra/storage/catalog"
)

// UseCase use case получения свободных слотов услуги на день.
//
// Чтение не берёт блокировок: слегка устаревшая выдача допустима,
// потому что путь записи сам перепроверит пересечения на коммите.
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	cache       SlotsCache // nil, если кеш выключен
	logger      Logger
}

// NewUseCase создает новый экземпляр use case.
// cache может быть nil — тогда выдача всегда считается заново.
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	cache SlotsCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		cache:       cache,
		logger:      logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: business=%d, service=%d, date=%s",
		req.BusinessID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Услуга должна быть активной и принадлежать активному бизнесу.
	// Шаг сетки слотов равен длительности услуги.
	service, err := uc.catalogRepo.FindActiveServiceInBusiness(ctx, req.ServiceID, req.BusinessID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailability: service id=%d not found in business id=%d", req.ServiceID, req.BusinessID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailability: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %w", ErrInternal, err)
	}

	// 3. Таймзона бизнеса определяет границы дня и часы работы
	business, err := uc.catalogRepo.GetBusinessByID(ctx, req.BusinessID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %w", ErrInternal, err)
	}

	loc, err := business.Location()
	if err != nil {
		uc.logger.Error("GetAvailability: invalid timezone %q for business id=%d: %v",
			business.Timezone, req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid business timezone: %w", ErrInternal, err)
	}

	openHour, closeHour := resolveHours(req)

	// 4. Пробуем кеш
	cacheKey := availabilityCache.Key{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Day:        req.Date.Format(domain.DateFormat),
		OpenHour:   openHour,
		CloseHour:  closeHour,
	}

	if uc.cache != nil {
		slots, hit, err := uc.cache.Get(ctx, cacheKey)
		if err != nil {
			// Недоступность кеша не фатальна — считаем заново
			uc.logger.Warn("GetAvailability: cache get failed: %v", err)
		}
		if hit {
			uc.logger.Info("GetAvailability: cache hit, %d slots for business=%d, service=%d, date=%s",
				len(slots), req.BusinessID, req.ServiceID, cacheKey.Day)
			return uc.response(req, slots), nil
		}
	}

	// 5. Генерируем кандидатов. Пустая сетка (openHour >= closeHour) —
	// валидный результат, не ошибка.
	candidates := generateDailySlots(req.Date, loc, openHour, closeHour, service.DurationMinutes)
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailability: empty slot grid for business=%d (open=%d, close=%d)",
			req.BusinessID, openHour, closeHour)
		return uc.response(req, []time.Time{}), nil
	}

	// 6. Один range-запрос за всеми активными бронированиями суток —
	// не по запросу на каждый слот
	dayStart, dayEnd := dayWindow(req.Date, loc)
	bookings, err := uc.bookingRepo.FindOverlapping(ctx, req.BusinessID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %w", ErrInternal, err)
	}

	// 7. Отбрасываем занятых кандидатов
	free := filterFreeSlots(candidates, service.DurationMinutes, bookings)

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, cacheKey, free); err != nil {
			uc.logger.Warn("GetAvailability: cache set failed: %v", err)
		}
	}

	uc.logger.Info("GetAvailability: %d/%d slots free for business=%d, service=%d, date=%s",
		len(free), len(candidates), req.BusinessID, req.ServiceID, cacheKey.Day)

	return uc.response(req, free), nil
}

func (uc *UseCase) response(req *Request, slots []time.Time) *Response {
	return &Response{
		BusinessID: req.BusinessID,
		ServiceID:  req.ServiceID,
		Date:       req.Date,
		Slots:      slots,
	}
}
