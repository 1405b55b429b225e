package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/magiceditor/internal/client/client"
	"github.com/dmitrijs2005/magiceditor/internal/client/config"
	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/client/repositories/kv"
	"github.com/dmitrijs2005/magiceditor/internal/client/services"
	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dmitrijs2005/magiceditor/internal/filex"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
)

// App wires configuration, local storage and backend services for both the
// interactive shell and the one-shot commands.
type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	store  kv.Repository
	auth   services.AuthService
	gate   *services.SessionGate
	themes *services.ThemeService
	editor *services.EditorService
	video  *services.VideoService

	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
	format outputFormat

	activeTab   models.Tab
	chatHistory []models.ChatMessage
}

// NewApp opens the local state database under cfg.DataDir and builds the
// HTTP backend client.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}
	cfg.DataDir = dir

	db, err := client.InitDatabase(ctx, cfg.DatabasePath())
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DatabasePath(), "error", err)
		return nil, err
	}

	api := client.NewHTTPClient(cfg.APIURL,
		client.WithLogger(log),
		client.WithRequestTimeout(cfg.RequestTimeout),
	)

	return newApp(cfg, db, api, log, os.Stdin, os.Stdout, os.Stderr), nil
}

func newApp(cfg *config.Config, db *sql.DB, api client.Client, log logging.Logger, in io.Reader, out, errOut io.Writer) *App {
	store := kv.NewSQLiteRepository(db)
	as := services.NewAuthService(db, services.AuthConfig{
		Username:     cfg.AuthUsername,
		Password:     cfg.AuthPassword,
		PasswordHash: cfg.AuthPasswordHash,
		Secret:       cfg.SessionSecret,
		TTL:          cfg.SessionTTL,
		Delay:        cfg.LoginDelay,
	}, log)

	return &App{
		config:    cfg,
		log:       log,
		db:        db,
		store:     store,
		auth:      as,
		gate:      services.NewSessionGate(as, store, 0, log),
		themes:    services.NewThemeService(store, terminalPreference, log),
		editor:    services.NewEditorService(api, log),
		video:     services.NewVideoService(api, cfg.PollInterval, cfg.VideoMaxWait, log),
		reader:    bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		format:    formatJSON,
		activeTab: models.DefaultTab,
	}
}

func (a *App) Close() error {
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.gate.State() == models.GateAuthenticated
}

func (a *App) styles() styles {
	return newStyles(a.themes.Current())
}

// requireSession resolves the persisted session without the splash hold
// and fails with common.ErrNotAuthenticated when there is none.
func (a *App) requireSession(ctx context.Context) error {
	state, err := a.gate.Check(ctx)
	if err != nil {
		return err
	}
	if state != models.GateAuthenticated {
		return common.ErrNotAuthenticated
	}
	return nil
}
