package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/worldcovers/internal/dbx"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/catalogrecords"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/loginrequests"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/submissions"
	"github.com/dmitrijs2005/worldcovers/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	CatalogRecords(db dbx.DBTX) catalogrecords.Repository
	Submissions(db dbx.DBTX) submissions.Repository
	LoginRequests(db dbx.DBTX) loginrequests.Repository
}
