package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/client/client"
	"github.com/dmitrijs2005/magiceditor/internal/client/config"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// output collects everything printed through the REPL seams.
type output struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.String()
}

func capturePrints(t *testing.T) *output {
	t.Helper()
	o := &output{}
	origLn, orig := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		return fmt.Fprintln(&o.buf, a...)
	}
	printFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		return fmt.Fprint(&o.buf, a...)
	}
	t.Cleanup(func() { printlnFn, printFn = origLn, orig })
	return o
}

// pipedInput makes password prompts read plain lines.
func pipedInput(t *testing.T) {
	t.Helper()
	orig := isTerminal
	isTerminal = func(int) bool { return false }
	t.Cleanup(func() { isTerminal = orig })
}

func testConfig(t *testing.T, apiURL string) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIURL = apiURL
	cfg.DataDir = t.TempDir()
	cfg.SplashDuration = 0
	cfg.PollInterval = 10 * time.Millisecond
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}

func newBackend(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"no route `+r.URL.Path+`"}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

type testApp struct {
	*App
	out    *bytes.Buffer
	errOut *bytes.Buffer
}

func newTestApp(t *testing.T, cfg *config.Config, input string) *testApp {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), cfg.DatabasePath())
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	api := client.NewHTTPClient(cfg.APIURL, client.WithRequestTimeout(cfg.RequestTimeout))
	a := newApp(cfg, db, api, logging.Discard(), strings.NewReader(input), &out, &errOut)
	t.Cleanup(func() { _ = a.Close() })
	return &testApp{App: a, out: &out, errOut: &errOut}
}

// useConfig points appFactory at cfg for the duration of the test.
func useConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	orig := appFactory
	appFactory = func(ctx context.Context, cmd *cobra.Command) (*App, error) {
		db, err := client.InitDatabase(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, err
		}
		api := client.NewHTTPClient(cfg.APIURL)
		return newApp(cfg, db, api, logging.Discard(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr()), nil
	}
	t.Cleanup(func() { appFactory = orig })
}

func runCommand(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(input))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeImage(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("fake image bytes"), 0o600))
	return p
}
