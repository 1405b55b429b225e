package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/client/services"
	"github.com/dmitrijs2005/magiceditor/internal/common"
)

func (a *App) prompt() string {
	return a.styles().muted.Render(fmt.Sprintf("magic [%s]> ", a.activeTab))
}

// Root runs the interactive shell: splash while the stored session is
// checked, the login prompt when there is none, then the main screen. A
// logout leads back to the login prompt. It returns nil when the user
// leaves or input ends.
func (a *App) Root(ctx context.Context) error {
	if _, err := a.themes.Load(ctx); err != nil {
		a.log.Warn(ctx, "theme not loaded", "error", err)
	}

	// the splash stays up for as long as the gate holds in checking
	a.gate = services.NewSessionGate(a.auth, a.store, a.config.SplashDuration, a.log)
	fmt.Fprintln(a.out, a.styles().splash())
	if _, err := a.gate.Check(ctx); err != nil {
		return err
	}

	for {
		if !a.isLoggedIn() {
			if err := a.loginLoop(ctx); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}

		a.activeTab = models.DefaultTab
		if err := a.Render(ctx); err != nil {
			return err
		}
		printlnFn("Type 'help' for commands.")

		if runREPL(ctx, a, a.prompt, a.reader) == replQuit {
			return nil
		}
	}
}

// loginLoop asks for credentials until they are accepted. Rejections are
// shown and the prompt repeats; input errors end the loop.
func (a *App) loginLoop(ctx context.Context) error {
	fmt.Fprintln(a.out, a.styles().loginBanner())
	for {
		err := a.Login(ctx)
		if err == nil {
			return nil
		}
		if !errors.Is(err, common.ErrInvalidCredentials) {
			return err
		}
		fmt.Fprintln(a.out, a.styles().errorText.Render(err.Error()))
	}
}
