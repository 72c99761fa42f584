// Package catalog — read-only доступ ядра планирования к каталогу
// (бизнесы и услуги). CRUD каталога живёт в соседнем сервисе; здесь
// только выборки, нужные для проверок при бронировании.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/sbmarket/SBM-SchedulingService/internal/domain"
	"github.com/sbmarket/SBM-SchedulingService/pkg/dbmetrics"
	"github.com/sbmarket/SBM-SchedulingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий каталога
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindActiveServiceInBusiness находит активную услугу указанного бизнеса.
// Услуга должна принадлежать бизнесу, быть активной, и сам бизнес должен
// быть активен — иначе ErrServiceNotFound, без уточнения причины.
func (r *Repository) FindActiveServiceInBusiness(ctx context.Context, serviceID, businessID int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.business_id",
		"s.name",
		"s.duration_minutes",
		"s.price",
		"s.status",
		"s.created_at",
		"s.updated_at",
	).
		From("services s").
		Join("businesses b ON b.id = s.business_id").
		Where(squirrel.Eq{
			"s.id":          serviceID,
			"s.business_id": businessID,
			"s.status":      domain.EntityActive,
			"b.status":      domain.EntityActive,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveServiceInBusiness - build select query: %w", ErrBuildQuery, err)
	}

	var service domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&service.DurationMinutes,
		&service.Price,
		&service.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindActiveServiceInBusiness - scan service: %w", ErrScanRow, err)
	}

	service.CreatedAt = createdAt.Time
	service.UpdatedAt = updatedAt.Time

	return &service, nil
}

// GetBusinessByID получает бизнес по ID независимо от статуса
// (нужен для таймзоны и для выдачи истории по неактивным бизнесам)
func (r *Repository) GetBusinessByID(ctx context.Context, id int64) (*domain.Business, error) {
	return r.getBusiness(ctx, squirrel.Eq{"id": id})
}

// FindBusinessOwnedBy находит бизнес, принадлежащий владельцу.
// Это авторизационный фильтр операций мерчанта: если бизнес существует,
// но принадлежит другому владельцу — ErrBusinessNotFound, запись не
// раскрывается.
func (r *Repository) FindBusinessOwnedBy(ctx context.Context, businessID, ownerID int64) (*domain.Business, error) {
	return r.getBusiness(ctx, squirrel.Eq{"id": businessID, "owner_id": ownerID})
}

func (r *Repository) getBusiness(ctx context.Context, where squirrel.Eq) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"owner_id",
		"status",
		"timezone",
		"created_at",
		"updated_at",
	).
		From("businesses").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getBusiness - build select query: %w", ErrBuildQuery, err)
	}

	var business domain.Business
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.OwnerID,
		&business.Status,
		&business.Timezone,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getBusiness - scan business: %w", ErrScanRow, err)
	}

	business.CreatedAt = createdAt.Time
	business.UpdatedAt = updatedAt.Time

	return &business, nil
}
