// Package refreshtokens stores the opaque refresh tokens issued at sign in.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, expiring at now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) error

	// Find returns the token row or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes one token. A missing token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteByUser revokes every token of userID (sign out everywhere).
	DeleteByUser(ctx context.Context, userID string) error
}
