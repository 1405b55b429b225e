package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/client/repositories/kv"
	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
)

// SessionGate decides whether the shell shows the login prompt or the main
// screen. It starts in GateChecking; Check resolves it from the persisted
// token, Login and Logout move between the two final states.
type SessionGate struct {
	auth  AuthService
	store kv.Repository
	hold  time.Duration
	log   logging.Logger

	mu      sync.RWMutex
	state   models.GateState
	session *models.Session
}

// NewSessionGate builds a gate. hold is the minimum time Check stays in
// GateChecking, so the splash screen is visible for at least that long.
func NewSessionGate(auth AuthService, store kv.Repository, hold time.Duration, log logging.Logger) *SessionGate {
	return &SessionGate{
		auth:  auth,
		store: store,
		hold:  hold,
		log:   log,
		state: models.GateChecking,
	}
}

func (g *SessionGate) State() models.GateState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

// Session returns the active session, or nil when not authenticated.
func (g *SessionGate) Session() *models.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}

func (g *SessionGate) set(state models.GateState, s *models.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = state
	g.session = s
}

// Check reads the persisted token once, then waits until hold has elapsed
// since the call started before leaving GateChecking. A stale or forged
// token is removed and counts as logged out. If ctx ends first the gate
// stays in GateChecking and ctx.Err() is returned.
func (g *SessionGate) Check(ctx context.Context) (models.GateState, error) {
	start := time.Now()

	next, sess, err := g.resolve(ctx)
	if err != nil {
		return models.GateChecking, err
	}

	if err := sleepCtx(ctx, g.hold-time.Since(start)); err != nil {
		return models.GateChecking, err
	}

	g.set(next, sess)
	g.log.Debug(ctx, "session checked", "state", next.String())
	return next, nil
}

func (g *SessionGate) resolve(ctx context.Context) (models.GateState, *models.Session, error) {
	token, err := g.store.Get(ctx, common.StorageKeyAuthToken)
	if errors.Is(err, common.ErrNotFound) {
		return models.GateUnauthenticated, nil, nil
	}
	if err != nil {
		return models.GateChecking, nil, fmt.Errorf("read session: %w", err)
	}

	sess, err := g.auth.Validate(ctx, string(token))
	switch {
	case err == nil:
		return models.GateAuthenticated, sess, nil
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		g.log.Info(ctx, "discarding stored session", "reason", err)
		if derr := g.store.Delete(ctx, common.StorageKeyAuthToken); derr != nil {
			g.log.Warn(ctx, "failed to discard stored session", "error", derr)
		}
		return models.GateUnauthenticated, nil, nil
	default:
		return models.GateChecking, nil, fmt.Errorf("validate session: %w", err)
	}
}

// Login authenticates and persists the new session. On failure the state
// is left unchanged.
func (g *SessionGate) Login(ctx context.Context, username string, password []byte) error {
	sess, err := g.auth.Authenticate(ctx, username, password)
	if err != nil {
		return err
	}
	if err := g.store.Set(ctx, common.StorageKeyAuthToken, []byte(sess.Token)); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	g.set(models.GateAuthenticated, sess)
	g.log.Info(ctx, "logged in", "username", sess.Username)
	return nil
}

// Logout drops the session immediately and removes the persisted token.
func (g *SessionGate) Logout(ctx context.Context) error {
	g.set(models.GateUnauthenticated, nil)
	if err := g.store.Delete(ctx, common.StorageKeyAuthToken); err != nil {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
