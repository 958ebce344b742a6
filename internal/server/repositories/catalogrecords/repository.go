// Package catalogrecords stores approved catalog records.
package catalogrecords

import (
	"context"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
)

type Repository interface {
	// SelectAll returns every record, oldest first.
	SelectAll(ctx context.Context) ([]catalog.Record, error)
	GetByID(ctx context.Context, id string) (*catalog.Record, error)
	// CreateIfAbsent inserts rec unless a record with the same name, state,
	// town, date range and type exists. It returns the stored record and
	// whether it was inserted.
	CreateIfAbsent(ctx context.Context, rec *catalog.Record) (*catalog.Record, bool, error)
	// Column returns the non-empty values of col, one per row.
	Column(ctx context.Context, col models.Column) ([]string, error)
	// Places returns the town and state of every row.
	Places(ctx context.Context) ([]options.Pair, error)
}
