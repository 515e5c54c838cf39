package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-StallCalendar/pkg/dbmetrics"
	"github.com/m04kA/SMC-StallCalendar/pkg/sqlbuilder"
)

// Временные метки хранятся в миллисекундах UTC (BIGINT) в обоих диалектах
const ddl = `
CREATE TABLE IF NOT EXISTS vendors (
	namespace     TEXT NOT NULL,
	id            TEXT NOT NULL,
	id_key        TEXT NOT NULL,
	name          TEXT NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	password_hash TEXT,
	created_at    BIGINT NOT NULL,
	updated_at    BIGINT NOT NULL,
	PRIMARY KEY (namespace, id_key)
);

CREATE TABLE IF NOT EXISTS markets (
	namespace  TEXT NOT NULL,
	id         TEXT NOT NULL,
	city       TEXT NOT NULL,
	name       TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	updated_at BIGINT NOT NULL,
	PRIMARY KEY (namespace, id)
);

CREATE TABLE IF NOT EXISTS bookings (
	namespace      TEXT NOT NULL,
	id             TEXT NOT NULL,
	date           TEXT NOT NULL,
	market_id      TEXT NOT NULL,
	market_city    TEXT NOT NULL,
	market_name    TEXT NOT NULL,
	vendor_id      TEXT NOT NULL,
	vendor_key     TEXT NOT NULL,
	vendor_name    TEXT NOT NULL,
	remark         TEXT NOT NULL DEFAULT '',
	sales_quantity INTEGER NOT NULL DEFAULT 0,
	created_at     BIGINT NOT NULL,
	updated_at     BIGINT NOT NULL,
	PRIMARY KEY (namespace, id)
);

CREATE INDEX IF NOT EXISTS idx_bookings_market ON bookings (namespace, market_id);
CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings (namespace, date);
CREATE INDEX IF NOT EXISTS idx_bookings_vendor ON bookings (namespace, vendor_key);

CREATE TABLE IF NOT EXISTS announcements (
	namespace  TEXT NOT NULL,
	id         TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	PRIMARY KEY (namespace, id)
);

CREATE INDEX IF NOT EXISTS idx_announcements_created ON announcements (namespace, created_at);
`

// Ensure создает таблицы и индексы, если их нет
func Ensure(ctx context.Context, db dbmetrics.DBExecutor, dialect sqlbuilder.Dialect) error {
	for _, stmt := range statements(dialect) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: %s: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func statements(dialect sqlbuilder.Dialect) []string {
	body := ddl
	if dialect == sqlbuilder.SQLite {
		body = strings.ReplaceAll(body, "DEFAULT FALSE", "DEFAULT 0")
	}

	var result []string
	for _, stmt := range strings.Split(body, ";") {
		if s := strings.TrimSpace(stmt); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i > 0 {
		return strings.TrimSpace(stmt[:i])
	}
	return stmt
}
