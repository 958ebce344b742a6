package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_users.sql", "00002_catalog.sql", "00003_login_requests.sql"}, names)

	for _, name := range names {
		body, err := fs.ReadFile(Migrations, name)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(body), "-- +goose Up"), name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}
}
