package loginrequests

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/worldcovers/internal/dbx"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, req *models.LoginRequest) (*models.LoginRequest, error) {
	query := `
		INSERT INTO login_requests (first_name, last_name, salutation, country, email,
			phone_number, organization, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	err := r.db.QueryRowContext(ctx, query,
		req.FirstName, req.LastName, dbx.NullString(req.Salutation), req.Country, req.Email,
		dbx.NullString(req.PhoneNumber), dbx.NullString(req.Organization), dbx.NullString(req.Comments),
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return req, nil
}
