package market

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-StallCalendar/internal/domain"
	"github.com/m04kA/SMC-StallCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-StallCalendar/pkg/sqlbuilder"
)

const table = "markets"

type row struct {
	ID        string `db:"id"`
	City      string `db:"city"`
	Name      string `db:"name"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

func (r row) toDomain() *domain.Market {
	return &domain.Market{
		ID:        r.ID,
		City:      r.City,
		Name:      r.Name,
		CreatedAt: time.UnixMilli(r.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(r.UpdatedAt).UTC(),
	}
}

// Repository репозиторий рынков
type Repository struct {
	db        DBExecutor
	sb        *sqlbuilder.Builder
	namespace string
}

func NewRepository(db DBExecutor, sb *sqlbuilder.Builder, namespace string) *Repository {
	return &Repository{db: db, sb: sb, namespace: namespace}
}

// Create создает рынок
// Уникальность пары (город, название) не проверяется
func (r *Repository) Create(ctx context.Context, m *domain.Market) error {
	return r.insert(ctx, "Create", m, "")
}

// Upsert создает рынок или обновляет город и название существующего
func (r *Repository) Upsert(ctx context.Context, m *domain.Market) error {
	return r.insert(ctx, "Upsert", m,
		"ON CONFLICT (namespace, id) DO UPDATE SET city = excluded.city, name = excluded.name, updated_at = excluded.updated_at")
}

// GetByID получает рынок по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Market, error) {
	markets, err := r.list(ctx, "GetByID", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, ErrMarketNotFound
	}
	return markets[0], nil
}

// List возвращает все рынки, отсортированные по городу и названию
func (r *Repository) List(ctx context.Context) ([]*domain.Market, error) {
	return r.list(ctx, "List", nil)
}

// FindByName ищет рынки по названию и, если указан, по городу
func (r *Repository) FindByName(ctx context.Context, name, city string) ([]*domain.Market, error) {
	where := squirrel.Eq{"name": name}
	if city != "" {
		where["city"] = city
	}
	return r.list(ctx, "FindByName", where)
}

// Update обновляет город и название рынка
// Снимки в существующих бронированиях не меняются
func (r *Repository) Update(ctx context.Context, m *domain.Market) error {
	query, args, err := r.sb.Update(table).
		Set("city", m.City).
		Set("name", m.Name).
		Set("updated_at", m.UpdatedAt.UnixMilli()).
		Where(squirrel.Eq{"namespace": r.namespace, "id": m.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}
	return r.execAffecting(ctx, "Update", query, args)
}

// Delete удаляет рынок
func (r *Repository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"namespace": r.namespace, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}
	return r.execAffecting(ctx, "Delete", query, args)
}

func (r *Repository) insert(ctx context.Context, op string, m *domain.Market, suffix string) error {
	builder := r.sb.Insert(table).
		Columns("namespace", "id", "city", "name", "created_at", "updated_at").
		Values(r.namespace, m.ID, m.City, m.Name, m.CreatedAt.UnixMilli(), m.UpdatedAt.UnixMilli())
	if suffix != "" {
		builder = builder.Suffix(suffix)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build insert query: %v", ErrBuildQuery, op, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute insert: %v", ErrExecQuery, op, err)
	}
	return nil
}

func (r *Repository) execAffecting(ctx context.Context, op, query string, args []interface{}) error {
	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrMarketNotFound
	}
	return nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.Market, error) {
	builder := r.sb.Select("id", "city", "name", "created_at", "updated_at").
		From(table).
		Where(squirrel.Eq{"namespace": r.namespace}).
		OrderBy("city ASC", "name ASC", "id ASC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var scanned []row
	if err := sqlx.StructScan(rows, &scanned); err != nil {
		return nil, fmt.Errorf("%w: %s - scan markets: %v", ErrScanRow, op, err)
	}

	markets := make([]*domain.Market, 0, len(scanned))
	for _, rr := range scanned {
		markets = append(markets, rr.toDomain())
	}
	return markets, nil
}
