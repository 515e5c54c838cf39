package sqlbuilder

import (
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
)

// Dialect поддерживаемый SQL диалект
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect разбирает имя драйвера из конфигурации
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "postgres", "postgresql", "pg":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return "", fmt.Errorf("sqlbuilder: unsupported driver %q", driver)
	}
}

// DriverName имя драйвера database/sql для диалекта
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// Builder squirrel builder с плейсхолдерами выбранного диалекта
type Builder struct {
	dialect Dialect
	sb      squirrel.StatementBuilderType
}

// New создает builder для диалекта
func New(dialect Dialect) *Builder {
	var format squirrel.PlaceholderFormat = squirrel.Question
	if dialect == Postgres {
		format = squirrel.Dollar
	}
	return &Builder{
		dialect: dialect,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(format),
	}
}

// Dialect возвращает диалект builder'а
func (b *Builder) Dialect() Dialect {
	return b.dialect
}

func (b *Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b *Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b *Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b *Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}

// ForUpdate добавляет блокировку строк, если диалект её поддерживает
// SQLite блокирует всю базу на запись, отдельная блокировка строк не нужна
func (b *Builder) ForUpdate(q squirrel.SelectBuilder) squirrel.SelectBuilder {
	if b.dialect == Postgres {
		return q.Suffix("FOR UPDATE")
	}
	return q
}
