package store

import (
	"fmt"
	"strings"
)

// dialect abstracts backend-specific SQL so repositories stay backend-free.
// 업서트 문법은 백엔드마다 다르므로 여기서만 분기한다.
type dialect interface {
	// UpsertSQL builds an insert that overwrites the row sharing keyColumns
	UpsertSQL(table string, keyColumns, columns []string) string
	// SchemaDDL returns the bootstrap statements for this backend
	SchemaDDL() []string
}

type postgresDialect struct{}

// UpsertSQL uses INSERT ... ON CONFLICT DO UPDATE (insert-on-duplicate-key-update)
func (postgresDialect) UpsertSQL(table string, keyColumns, columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	var updates []string
	for _, col := range columns {
		if isKeyColumn(col, keyColumns) {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(keyColumns, ", "),
		strings.Join(updates, ", "),
	)
}

func (postgresDialect) SchemaDDL() []string {
	return postgresSchema
}

type sqliteDialect struct{}

// UpsertSQL uses INSERT OR REPLACE (insert-or-replace). All columns are
// written, so replacing the full row is equivalent to a keyed update.
func (sqliteDialect) UpsertSQL(table string, keyColumns, columns []string) string {
	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf(
		"INSERT OR REPLACE INTO %s (%s) VALUES (%s)",
		table,
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	)
}

func (sqliteDialect) SchemaDDL() []string {
	return sqliteSchema
}

func isKeyColumn(col string, keyColumns []string) bool {
	for _, key := range keyColumns {
		if col == key {
			return true
		}
	}
	return false
}
