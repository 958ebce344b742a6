// Package loginrequests stores requests for contributor accounts.
package loginrequests

import (
	"context"

	"github.com/dmitrijs2005/worldcovers/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, req *models.LoginRequest) (*models.LoginRequest, error)
}
