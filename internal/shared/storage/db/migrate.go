package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"

	"github.com/thesminc/POCkit-sub000/internal/shared/telemetry"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// gooseLogger routes goose output through the shared logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	telemetry.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func (gooseLogger) Fatalf(format string, v ...any) {
	telemetry.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

// RunMigrations applies the embedded schema migrations. A nil handle
// is a no-op so memory-backed deployments skip the schema entirely.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetLogger(gooseLogger{})
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, "migrations")
}
