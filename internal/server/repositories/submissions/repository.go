// Package submissions stores contributor submissions.
package submissions

import (
	"context"

	"github.com/dmitrijs2005/worldcovers/internal/catalog"
	"github.com/dmitrijs2005/worldcovers/internal/options"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *catalog.Submission) (*catalog.Submission, error)
	GetByID(ctx context.Context, id string) (*catalog.Submission, error)
	// SelectByUser returns the submissions of userID, newest first.
	SelectByUser(ctx context.Context, userID string) ([]catalog.Submission, error)
	Column(ctx context.Context, col models.Column) ([]string, error)
	Places(ctx context.Context) ([]options.Pair, error)
}
