package catalogrecords

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/dbx"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
)

// invalidTextRepresentation is raised by PostgreSQL for a malformed UUID.
const invalidTextRepresentation = "22P02"

const selectColumns = `id, name, town, state, date_range, type, color, image_url,
		description, citation_references, dimensions, manuscript, rarity, valuation, created_at`

var columns = map[models.Column]bool{
	models.ColumnColor:     true,
	models.ColumnType:      true,
	models.ColumnState:     true,
	models.ColumnValuation: true,
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SelectAll(ctx context.Context) ([]catalog.Record, error) {
	query := `SELECT ` + selectColumns + `
		FROM catalog_records
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	recs, err := dbx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return recs, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*catalog.Record, error) {
	query := `SELECT ` + selectColumns + `
		FROM catalog_records
		WHERE id = $1`

	return r.one(ctx, query, id)
}

// FindMatching returns the record with the same name, state, town, date
// range and type as m, or common.ErrorNotFound.
func (r *PostgresRepository) FindMatching(ctx context.Context, m catalog.Marking) (*catalog.Record, error) {
	query := `SELECT ` + selectColumns + `
		FROM catalog_records
		WHERE name = $1 AND state = $2 AND town = $3 AND date_range = $4 AND type = $5
		LIMIT 1`

	return r.one(ctx, query, m.Name, m.State, m.Town, m.DateRange, m.Type)
}

// CreateIfAbsent relies on catalog_records_match_idx, so concurrent
// publishes of the same marking insert one row.
func (r *PostgresRepository) CreateIfAbsent(ctx context.Context, rec *catalog.Record) (*catalog.Record, bool, error) {
	query := `
		INSERT INTO catalog_records (name, town, state, date_range, type, color, image_url,
			description, citation_references, dimensions, manuscript, rarity, valuation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (name, state, town, date_range, type) DO NOTHING
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		rec.Name, rec.Town, rec.State, rec.DateRange, rec.Type, rec.Color,
		dbx.NullString(rec.ImageURL),
		dbx.NullString(rec.Description),
		dbx.NullString(rec.CitationReferences),
		dbx.NullString(rec.Dimensions),
		dbx.NullString(rec.Manuscript),
		dbx.NullString(rec.Rarity),
		dbx.NullString(rec.Valuation),
	).Scan(&rec.ID, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		existing, err := r.FindMatching(ctx, rec.Marking)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("db error: %w", err)
	}
	return rec, true, nil
}

func (r *PostgresRepository) Column(ctx context.Context, col models.Column) ([]string, error) {
	if !columns[col] {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	query := fmt.Sprintf(`SELECT %[1]s FROM catalog_records WHERE %[1]s IS NOT NULL AND %[1]s <> ''`, col)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	values, err := dbx.CollectRows(rows, func(rows *sql.Rows) (string, error) {
		var v string
		err := rows.Scan(&v)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return values, nil
}

func (r *PostgresRepository) Places(ctx context.Context) ([]options.Pair, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT town, state FROM catalog_records`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	pairs, err := dbx.CollectRows(rows, func(rows *sql.Rows) (options.Pair, error) {
		var p options.Pair
		err := rows.Scan(&p.Town, &p.State)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return pairs, nil
}

func (r *PostgresRepository) one(ctx context.Context, query string, args ...any) (*catalog.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	recs, err := dbx.CollectRows(rows, scanRecord)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(recs) == 0 {
		return nil, common.ErrorNotFound
	}
	return &recs[0], nil
}

func scanRecord(rows *sql.Rows) (catalog.Record, error) {
	var rec catalog.Record
	var image, desc, refs, dims, manuscript, rarity, valuation sql.NullString
	err := rows.Scan(
		&rec.ID, &rec.Name, &rec.Town, &rec.State, &rec.DateRange, &rec.Type, &rec.Color,
		&image, &desc, &refs, &dims, &manuscript, &rarity, &valuation, &rec.CreatedAt,
	)
	if err != nil {
		return rec, err
	}
	rec.ImageURL = image.String
	rec.Description = desc.String
	rec.CitationReferences = refs.String
	rec.Dimensions = dims.String
	rec.Manuscript = manuscript.String
	rec.Rarity = rarity.String
	rec.Valuation = valuation.String
	return rec, nil
}
