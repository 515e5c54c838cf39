package booking

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

const table = "bookings"

var columns = []string{
	"id",
	"date",
	"market_id",
	"market_city",
	"market_name",
	"vendor_id",
	"vendor_name",
	"remark",
	"sales_quantity",
	"created_at",
	"updated_at",
}

type row struct {
	ID            string `db:"id"`
	Date          string `db:"date"`
	MarketID      string `db:"market_id"`
	MarketCity    string `db:"market_city"`
	MarketName    string `db:"market_name"`
	VendorID      string `db:"vendor_id"`
	VendorName    string `db:"vendor_name"`
	Remark        string `db:"remark"`
	SalesQuantity int    `db:"sales_quantity"`
	CreatedAt     int64  `db:"created_at"`
	UpdatedAt     int64  `db:"updated_at"`
}

func (r row) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:   r.ID,
		Date: r.Date,
		Market: domain.MarketSnapshot{
			ID:   r.MarketID,
			City: r.MarketCity,
			Name: r.MarketName,
		},
		Vendor: domain.VendorSnapshot{
			ID:   r.VendorID,
			Name: r.VendorName,
		},
		Remark:        r.Remark,
		SalesQuantity: r.SalesQuantity,
		CreatedAt:     time.UnixMilli(r.CreatedAt).UTC(),
		UpdatedAt:     time.UnixMilli(r.UpdatedAt).UTC(),
	}
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db        DBExecutor
	sb        *sqlbuilder.Builder
	namespace string
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, sb *sqlbuilder.Builder, namespace string) *Repository {
	return &Repository{db: db, sb: sb, namespace: namespace}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, b *domain.Booking) error {
	query, args, err := r.sb.Insert(table).
		Columns(
			"namespace",
			"id",
			"date",
			"market_id",
			"market_city",
			"market_name",
			"vendor_id",
			"vendor_key",
			"vendor_name",
			"remark",
			"sales_quantity",
			"created_at",
			"updated_at",
		).
		Values(
			r.namespace,
			b.ID,
			b.Date,
			b.Market.ID,
			b.Market.City,
			b.Market.Name,
			b.Vendor.ID,
			domain.VendorKey(b.Vendor.ID),
			b.Vendor.Name,
			b.Remark,
			b.SalesQuantity,
			b.CreatedAt.UnixMilli(),
			b.UpdatedAt.UnixMilli(),
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	bookings, err := r.query(ctx, "GetByID", r.selectBuilder().Where(squirrel.Eq{"id": id}))
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}
	return bookings[0], nil
}

// ListByMarket получает все бронирования рынка
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка конфликтов
// и запись выполнялись атомарно
func (r *Repository) ListByMarket(ctx context.Context, marketID string) ([]*domain.Booking, error) {
	builder := r.selectBuilder().
		Where(squirrel.Eq{"market_id": marketID}).
		OrderBy("date ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = r.sb.ForUpdate(builder)
	}

	return r.query(ctx, "ListByMarket", builder)
}

// List получает бронирования с фильтрацией
// Сортировка: дата, название рынка, ID
//
// Примеры:
//
//	все бронирования:       domain.BookingFilter{}
//	бронирования на дату:   domain.BookingFilter{FromDate: &d, ToDate: &d}
//	бронирования продавца:  domain.BookingFilter{VendorID: &id}
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	builder := r.selectBuilder()

	if filter.VendorID != nil {
		builder = builder.Where(squirrel.Eq{"vendor_key": domain.VendorKey(*filter.VendorID)})
	}
	if filter.MarketID != nil {
		builder = builder.Where(squirrel.Eq{"market_id": *filter.MarketID})
	}
	// даты в формате YYYY-MM-DD сравниваются лексикографически
	if filter.FromDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"date": *filter.ToDate})
	}

	builder = builder.OrderBy("date ASC", "market_name ASC", "id ASC")

	return r.query(ctx, "List", builder)
}

// FindByDateVendorMarketName ищет бронирования по дате, продавцу и названию рынка
// Используется для поиска дубликатов при импорте
func (r *Repository) FindByDateVendorMarketName(ctx context.Context, date, vendorID, marketName string) ([]*domain.Booking, error) {
	builder := r.selectBuilder().
		Where(squirrel.Eq{
			"date":        date,
			"vendor_key":  domain.VendorKey(vendorID),
			"market_name": marketName,
		}).
		OrderBy("id ASC")

	return r.query(ctx, "FindByDateVendorMarketName", builder)
}

// Update перезаписывает изменяемые поля бронирования, включая снимки рынка и продавца
func (r *Repository) Update(ctx context.Context, b *domain.Booking) error {
	query, args, err := r.sb.Update(table).
		Set("date", b.Date).
		Set("market_id", b.Market.ID).
		Set("market_city", b.Market.City).
		Set("market_name", b.Market.Name).
		Set("vendor_id", b.Vendor.ID).
		Set("vendor_key", domain.VendorKey(b.Vendor.ID)).
		Set("vendor_name", b.Vendor.Name).
		Set("remark", b.Remark).
		Set("sales_quantity", b.SalesQuantity).
		Set("updated_at", b.UpdatedAt.UnixMilli()).
		Where(squirrel.Eq{"namespace": r.namespace, "id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, "Update", query, args)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"namespace": r.namespace, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, "Delete", query, args)
}

func (r *Repository) selectBuilder() squirrel.SelectBuilder {
	return r.sb.Select(columns...).
		From(table).
		Where(squirrel.Eq{"namespace": r.namespace})
}

func (r *Repository) execAffecting(ctx context.Context, op, query string, args []interface{}) error {
	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// query выполняет запрос и конвертирует строки в доменные модели
func (r *Repository) query(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	var scanned []row
	if err := sqlx.StructScan(rows, &scanned); err != nil {
		return nil, fmt.Errorf("%w: %s - scan bookings: %v", ErrScanRow, op, err)
	}

	bookings := make([]*domain.Booking, 0, len(scanned))
	for _, rr := range scanned {
		bookings = append(bookings, rr.toDomain())
	}
	return bookings, nil
}
