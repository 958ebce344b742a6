package submissions

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

const invalidTextRepresentation = "22P02"

const selectColumns = `id, user_id, submitter_name, name, town, state, date_range, type, color, image_url,
		description, citation_references, dimensions, manuscript, rarity, status, created_at, reviewed_at`

// valuation is not a submission column.
var columns = map[models.Column]bool{
	models.ColumnColor: true,
	models.ColumnType:  true,
	models.ColumnState: true,
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *catalog.Submission) (*catalog.Submission, error) {
	query := `
		INSERT INTO submissions (user_id, submitter_name, name, town, state, date_range, type, color,
			image_url, description, citation_references, dimensions, manuscript, rarity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at`

	if s.Status == "" {
		s.Status = catalog.StatusPending
	}

	err := r.db.QueryRowContext(ctx, query,
		s.UserID, dbx.NullString(s.SubmitterName),
		s.Name, s.Town, s.State, s.DateRange, s.Type, s.Color,
		dbx.NullString(s.ImageURL),
		dbx.NullString(s.Description),
		dbx.NullString(s.CitationReferences),
		dbx.NullString(s.Dimensions),
		dbx.NullString(s.Manuscript),
		dbx.NullString(s.Rarity),
		string(s.Status),
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*catalog.Submission, error) {
	query := `SELECT ` + selectColumns + `
		FROM submissions
		WHERE id = $1`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	subs, err := dbx.CollectRows(rows, scanSubmission)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(subs) == 0 {
		return nil, common.ErrorNotFound
	}
	return &subs[0], nil
}

func (r *PostgresRepository) SelectByUser(ctx context.Context, userID string) ([]catalog.Submission, error) {
	query := `SELECT ` + selectColumns + `
		FROM submissions
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	subs, err := dbx.CollectRows(rows, scanSubmission)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return subs, nil
}

func (r *PostgresRepository) Column(ctx context.Context, col models.Column) ([]string, error) {
	if !columns[col] {
		return nil, fmt.Errorf("unknown column %q", col)
	}
	query := fmt.Sprintf(`SELECT %[1]s FROM submissions WHERE %[1]s IS NOT NULL AND %[1]s <> ''`, col)

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
	rows, err := r.db.QueryContext(ctx, `SELECT town, state FROM submissions`)
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

func scanSubmission(rows *sql.Rows) (catalog.Submission, error) {
	var s catalog.Submission
	var submitter, image, desc, refs, dims, manuscript, rarity, status sql.NullString
	var reviewed sql.NullTime
	err := rows.Scan(
		&s.ID, &s.UserID, &submitter, &s.Name, &s.Town, &s.State, &s.DateRange, &s.Type, &s.Color,
		&image, &desc, &refs, &dims, &manuscript, &rarity, &status, &s.CreatedAt, &reviewed,
	)
	if err != nil {
		return s, err
	}
	s.SubmitterName = submitter.String
	s.ImageURL = image.String
	s.Description = desc.String
	s.CitationReferences = refs.String
	s.Dimensions = dims.String
	s.Manuscript = manuscript.String
	s.Rarity = rarity.String
	s.Status = catalog.ParseStatus(status.String)
	if reviewed.Valid {
		t := reviewed.Time
		s.ReviewedAt = &t
	}
	return s, nil
}
