package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/server/models"
)

func stdinWith(t *testing.T, content string) *os.File {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestRun_ReadsPasswordFromPipe(t *testing.T) {
	var gotEmail, gotName, gotPassword string
	register := func(ctx context.Context, email, fullName, password string) (*models.User, error) {
		gotEmail, gotName, gotPassword = email, fullName, password
		return &models.User{ID: "u1", Email: email}, nil
	}

	var out bytes.Buffer
	err := run(context.Background(), []string{"-email", "ann@example.com", "-name=Ann Smith", "-d", "dsn"},
		stdinWith(t, "s3cret-pass\n"), &out, register)
	require.NoError(t, err)

	assert.Equal(t, "ann@example.com", gotEmail)
	assert.Equal(t, "Ann Smith", gotName)
	assert.Equal(t, "s3cret-pass", gotPassword)
	assert.Contains(t, out.String(), "created user ann@example.com (u1)")
}

func TestRun_UsesTerminalPrompt(t *testing.T) {
	origIs, origRead := isTerminal, readPassword
	t.Cleanup(func() { isTerminal, readPassword = origIs, origRead })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte("from-terminal"), nil }

	var got string
	register := func(ctx context.Context, email, fullName, password string) (*models.User, error) {
		got = password
		return &models.User{ID: "u1", Email: email}, nil
	}

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"-email", "a@b.c"}, stdinWith(t, ""), &out, register))
	assert.Equal(t, "from-terminal", got)
	assert.Contains(t, out.String(), "Password: ")
}

func TestRun_RequiresEmail(t *testing.T) {
	err := run(context.Background(), nil, stdinWith(t, "x\n"), &bytes.Buffer{}, nil)
	assert.EqualError(t, err, "-email is required")
}

func TestRun_PropagatesConflict(t *testing.T) {
	register := func(ctx context.Context, email, fullName, password string) (*models.User, error) {
		return nil, common.ErrorConflict
	}
	err := run(context.Background(), []string{"-email", "a@b.c"}, stdinWith(t, "password1\n"), &bytes.Buffer{}, register)
	assert.ErrorIs(t, err, common.ErrorConflict)
}
