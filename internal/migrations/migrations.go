package migrations

import (
	"database/sql"
	"embed"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed sql/*.sql
var SqlFiles embed.FS

// Migrate 将内嵌的 SQL 文件按版本顺序应用到 PostgreSQL
func Migrate(db *sql.DB) error {
	migrator := sqlmigrator.New(db, darwin.PostgresDialect{})

	return migrator.Migrate(SqlFiles, "sql")
}
