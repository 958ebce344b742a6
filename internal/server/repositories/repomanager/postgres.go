// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/worldcovers/internal/dbx"
	"github.com/dmitrijs2005/worldcovers/internal/server/migrations"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/catalogrecords"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/loginrequests"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/submissions"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) CatalogRecords(db dbx.DBTX) catalogrecords.Repository {
	return catalogrecords.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Submissions(db dbx.DBTX) submissions.Repository {
	return submissions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) LoginRequests(db dbx.DBTX) loginrequests.Repository {
	return loginrequests.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
