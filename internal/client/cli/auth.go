package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dustin/go-humanize"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and hands them to the session gate. The
// password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.gate.Login(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, a.styles().success.Render("Welcome, "+userName+"!"))
	return nil
}

// Logout removes the persisted session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.gate.Logout(ctx); err != nil {
		return err
	}
	a.chatHistory = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	s := a.gate.Session()
	if s == nil {
		return common.ErrNotAuthenticated
	}
	fmt.Fprintf(a.out, "%s (session expires %s)\n", s.Username, humanize.Time(s.ExpiresAt))
	return nil
}
