package announcement

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

const table = "announcements"

type row struct {
	ID        string `db:"id"`
	Content   string `db:"content"`
	CreatedAt int64  `db:"created_at"`
}

// Repository репозиторий объявлений
type Repository struct {
	db        DBExecutor
	sb        *sqlbuilder.Builder
	namespace string
}

func NewRepository(db DBExecutor, sb *sqlbuilder.Builder, namespace string) *Repository {
	return &Repository{db: db, sb: sb, namespace: namespace}
}

// Create сохраняет объявление
func (r *Repository) Create(ctx context.Context, a *domain.Announcement) error {
	query, args, err := r.sb.Insert(table).
		Columns("namespace", "id", "content", "created_at").
		Values(r.namespace, a.ID, a.Content, a.CreatedAt.UnixMilli()).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// Latest возвращает последние объявления, новые первыми
func (r *Repository) Latest(ctx context.Context, limit int) ([]*domain.Announcement, error) {
	query, args, err := r.sb.Select("id", "content", "created_at").
		From(table).
		Where(squirrel.Eq{"namespace": r.namespace}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Latest - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := dbmetrics.GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Latest - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var scanned []row
	if err := sqlx.StructScan(rows, &scanned); err != nil {
		return nil, fmt.Errorf("%w: Latest - scan announcements: %v", ErrScanRow, err)
	}

	result := make([]*domain.Announcement, 0, len(scanned))
	for _, rr := range scanned {
		result = append(result, &domain.Announcement{
			ID:        rr.ID,
			Content:   rr.Content,
			CreatedAt: time.UnixMilli(rr.CreatedAt).UTC(),
		})
	}
	return result, nil
}

// Delete удаляет объявление
func (r *Repository) Delete(ctx context.Context, id string) error {
	query, args, err := r.sb.Delete(table).
		Where(squirrel.Eq{"namespace": r.namespace, "id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := dbmetrics.GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
