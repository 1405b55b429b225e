// Package services contains the application services of the Magic Editor
// CLI: authentication and the session gate, theme persistence, the editing
// operations and video generation.
package services

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/auth"
	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/client/repositories/kv"
	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dmitrijs2005/magiceditor/internal/cryptox"
	"github.com/dmitrijs2005/magiceditor/internal/dbx"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
)

const sessionSecretSize = 32

// AuthService is the single point that checks credentials and issues
// session tokens.
//
// Contract:
//   - Authenticate: verify credentials and return a signed session.
//   - Validate: turn a persisted token back into a session, failing with
//     common.ErrInvalidToken or common.ErrTokenExpired.
type AuthService interface {
	Authenticate(ctx context.Context, username string, password []byte) (*models.Session, error)
	Validate(ctx context.Context, token string) (*models.Session, error)
}

// AuthConfig is the credential and token policy of an AuthService.
// PasswordHash, when set, takes precedence over the plaintext Password.
// An empty Secret makes the service generate one and persist it.
type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
	Secret       string
	TTL          time.Duration
	Delay        time.Duration
}

type authService struct {
	db  *sql.DB
	cfg AuthConfig
	log logging.Logger
}

func NewAuthService(db *sql.DB, cfg AuthConfig, log logging.Logger) AuthService {
	return &authService{db: db, cfg: cfg, log: log}
}

func (a *authService) Authenticate(ctx context.Context, username string, password []byte) (*models.Session, error) {
	if err := sleepCtx(ctx, a.cfg.Delay); err != nil {
		return nil, err
	}

	ok, err := a.checkCredentials(username, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		a.log.Info(ctx, "login rejected", "username", username)
		return nil, common.ErrInvalidCredentials
	}

	secret, err := a.signingSecret(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("session secret: %w", err)
	}

	token, claims, err := auth.GenerateToken(username, secret, a.cfg.TTL)
	if err != nil {
		return nil, fmt.Errorf("sign session: %w", err)
	}
	a.log.Debug(ctx, "session issued", "username", username, "session_id", claims.ID)

	return sessionFromClaims(token, claims), nil
}

func (a *authService) Validate(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, common.ErrInvalidToken
	}
	secret, err := a.signingSecret(ctx, false)
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("session secret: %w", err)
	}

	claims, err := auth.ParseToken(token, secret)
	if err != nil {
		return nil, err
	}
	return sessionFromClaims(token, claims), nil
}

func (a *authService) checkCredentials(username string, password []byte) (bool, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.Username)) == 1

	var passOK bool
	if a.cfg.PasswordHash != "" {
		ok, err := cryptox.VerifyPassword(a.cfg.PasswordHash, password)
		if err != nil {
			return false, fmt.Errorf("configured password hash: %w", err)
		}
		passOK = ok
	} else {
		passOK = subtle.ConstantTimeCompare(password, []byte(a.cfg.Password)) == 1
	}
	return userOK && passOK, nil
}

// signingSecret returns the configured secret or the persisted one. With
// create set, a missing persisted secret is generated and stored.
func (a *authService) signingSecret(ctx context.Context, create bool) ([]byte, error) {
	if a.cfg.Secret != "" {
		return []byte(a.cfg.Secret), nil
	}

	var secret []byte
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := kv.NewSQLiteRepository(tx)
		v, err := repo.Get(ctx, common.StorageKeySessionSecret)
		if err == nil {
			secret = v
			return nil
		}
		if !errors.Is(err, common.ErrNotFound) || !create {
			return err
		}
		s, err := common.MakeRandHexString(sessionSecretSize)
		if err != nil {
			return err
		}
		secret = []byte(s)
		return repo.Set(ctx, common.StorageKeySessionSecret, secret)
	})
	if err != nil {
		return nil, err
	}
	return secret, nil
}

func sessionFromClaims(token string, c *auth.Claims) *models.Session {
	s := &models.Session{
		ID:       c.ID,
		Username: c.Username,
		Token:    token,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
