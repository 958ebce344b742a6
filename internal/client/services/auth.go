// Package services contains application services for the WorldCovers CLI.
// This file defines the authentication service: sign-in, sign-out, the
// current session and the server liveness probe.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/worldcovers/internal/client/client"
	"github.com/dmitrijs2005/worldcovers/internal/client/session"
	"github.com/dmitrijs2005/worldcovers/internal/common"
	"github.com/dmitrijs2005/worldcovers/internal/logging"
)

// Pinger checks server liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange credentials for tokens and publish the session.
//   - Logout: revoke server-side refresh tokens (best effort) and clear the
//     session.
//   - Current: the signed-in session, or nil.
//   - Ping: check server liveness.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*session.Session, error)
	Logout(ctx context.Context) error
	Current() *session.Session
	Ping(ctx context.Context) error
}

type authService struct {
	api      client.Client
	sessions *session.Store
	pinger   Pinger
	log      logging.Logger
	now      func() time.Time
}

// NewAuthService constructs an AuthService. pinger may be nil, in which
// case Ping always succeeds.
func NewAuthService(api client.Client, sessions *session.Store, pinger Pinger, log logging.Logger) AuthService {
	if log == nil {
		log = logging.Discard()
	}
	return &authService{api: api, sessions: sessions, pinger: pinger, log: log, now: time.Now}
}

// Login wipes password before returning. The session is published as soon
// as tokens are issued; the account details are filled in afterwards when
// the server returns them.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*session.Session, error) {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return nil, fmt.Errorf("email and password are required")
	}

	tokens, err := a.api.Login(ctx, email, string(password))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	sess := session.Session{
		Email:        email,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		SignedInAt:   a.now(),
	}
	a.sessions.Set(sess)

	acc, err := a.api.Account(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not load account", "error", err)
		return a.sessions.Get(), nil
	}
	if cur := a.sessions.Get(); cur != nil {
		sess.AccessToken, sess.RefreshToken = cur.AccessToken, cur.RefreshToken
	}
	sess.UserID = acc.UserID
	sess.FullName = acc.FullName
	a.sessions.Set(sess)
	return a.sessions.Get(), nil
}

func (a *authService) Logout(ctx context.Context) error {
	if !a.sessions.SignedIn() {
		return nil
	}
	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed", "error", err)
	}
	a.sessions.Clear()
	return nil
}

func (a *authService) Current() *session.Session {
	return a.sessions.Get()
}

func (a *authService) Ping(ctx context.Context) error {
	if a.pinger == nil {
		return nil
	}
	return a.pinger.Ping(ctx)
}
