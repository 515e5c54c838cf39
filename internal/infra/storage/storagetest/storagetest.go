// Package storagetest поднимает in-memory SQLite со схемой сервиса для тестов
package storagetest

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/m04kA/SMC-StallCalendar/internal/infra/storage/schema"
	"github.com/m04kA/SMC-StallCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-StallCalendar/pkg/sqlbuilder"
	"github.com/m04kA/SMC-StallCalendar/pkg/txmanager"
)

// Namespace пространство имен по умолчанию в тестах
const Namespace = "test"

// Env окружение для тестов репозиториев
type Env struct {
	DB      *dbmetrics.DB
	Builder *sqlbuilder.Builder
	Tx      *txmanager.TransactionManager
}

// New открывает новую пустую базу; закрывается автоматически по завершении теста
func New(t testing.TB) *Env {
	t.Helper()

	raw, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("storagetest: open: %v", err)
	}
	// :memory: живет в пределах одного соединения
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = raw.Close() })

	db := dbmetrics.Wrap(raw, nil)
	if err := schema.Ensure(context.Background(), db, sqlbuilder.SQLite); err != nil {
		t.Fatalf("storagetest: schema: %v", err)
	}

	return &Env{
		DB:      db,
		Builder: sqlbuilder.New(sqlbuilder.SQLite),
		Tx:      txmanager.NewTransactionManager(db, false),
	}
}
