package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/client/repositories/kv"
	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
)

// PreferenceFunc reports the environment's preferred theme. ok is false
// when the preference cannot be determined.
type PreferenceFunc func() (theme models.Theme, ok bool)

// ThemeService owns the current theme and its persisted copy.
type ThemeService struct {
	store  kv.Repository
	prefer PreferenceFunc
	log    logging.Logger

	mu      sync.RWMutex
	current models.Theme
}

func NewThemeService(store kv.Repository, prefer PreferenceFunc, log logging.Logger) *ThemeService {
	return &ThemeService{
		store:   store,
		prefer:  prefer,
		log:     log,
		current: models.DefaultTheme,
	}
}

// Load picks the persisted theme, else the environment preference, else
// models.DefaultTheme. It does not persist anything.
func (s *ThemeService) Load(ctx context.Context) (models.Theme, error) {
	theme, err := s.initial(ctx)
	if err != nil {
		return s.Current(), err
	}
	s.mu.Lock()
	s.current = theme
	s.mu.Unlock()
	return theme, nil
}

func (s *ThemeService) initial(ctx context.Context) (models.Theme, error) {
	v, err := s.store.Get(ctx, common.StorageKeyTheme)
	switch {
	case err == nil:
		if t, perr := models.ParseTheme(string(v)); perr == nil {
			return t, nil
		}
		s.log.Warn(ctx, "ignoring stored theme", "value", string(v))
	case errors.Is(err, common.ErrNotFound):
	default:
		return "", fmt.Errorf("read theme: %w", err)
	}

	if s.prefer != nil {
		if t, ok := s.prefer(); ok {
			return t, nil
		}
	}
	return models.DefaultTheme, nil
}

func (s *ThemeService) Current() models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Toggle flips light and dark and persists the result.
func (s *ThemeService) Toggle(ctx context.Context) (models.Theme, error) {
	next := s.Current().Toggled()
	if err := s.Set(ctx, next); err != nil {
		return s.Current(), err
	}
	return next, nil
}

// Set persists theme and makes it current.
func (s *ThemeService) Set(ctx context.Context, theme models.Theme) error {
	if _, err := models.ParseTheme(string(theme)); err != nil {
		return err
	}
	if err := s.store.Set(ctx, common.StorageKeyTheme, []byte(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	s.mu.Lock()
	s.current = theme
	s.mu.Unlock()
	return nil
}
