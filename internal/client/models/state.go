package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/magiceditor/internal/common"
)

// Theme is the shell colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DefaultTheme applies when nothing is persisted and the terminal gives no hint.
const DefaultTheme = ThemeDark

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownTheme, s)
}

// Toggled flips light and dark.
func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// Tab is a top-level content panel of the shell.
type Tab string

const (
	TabEditor    Tab = "Editor"
	TabCombine   Tab = "Combine"
	TabVideo     Tab = "Video"
	TabTrending  Tab = "Trending"
	TabHistory   Tab = "History"
	TabCommunity Tab = "Community"
	TabBot       Tab = "Bot"
)

// Tabs lists the panels in tab-bar order.
var Tabs = []Tab{TabEditor, TabCombine, TabVideo, TabTrending, TabHistory, TabCommunity, TabBot}

// DefaultTab is selected whenever a shell starts.
const DefaultTab = TabEditor

var placeholders = map[Tab]string{
	TabEditor:    "Editor Functionality Here",
	TabCombine:   "Combine Functionality Here",
	TabVideo:     "Video Functionality Here",
	TabBot:       "Bot Functionality Here",
	TabTrending:  "Trending Prompts Here",
	TabCommunity: "Community Prompts Here",
	TabHistory:   "History of Edits Here",
}

// Placeholder is the panel body shown for t. Unknown tabs fall back to the
// editor panel.
func (t Tab) Placeholder() string {
	if p, ok := placeholders[t]; ok {
		return p
	}
	return placeholders[DefaultTab]
}

// ParseTab matches a tab by name, case-insensitively, also accepting a
// unique prefix ("comb" -> Combine).
func ParseTab(s string) (Tab, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return "", fmt.Errorf("%w: empty name", common.ErrUnknownTab)
	}
	var match []Tab
	for _, t := range Tabs {
		lower := strings.ToLower(string(t))
		if lower == name {
			return t, nil
		}
		if strings.HasPrefix(lower, name) {
			match = append(match, t)
		}
	}
	if len(match) == 1 {
		return match[0], nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownTab, s)
}

// Session is an authenticated login as restored from its token.
type Session struct {
	ID        string
	Username  string
	Token     string
	ExpiresAt time.Time
}

// GateState is the Session Gate's state.
type GateState int

const (
	GateChecking GateState = iota
	GateAuthenticated
	GateUnauthenticated
)

func (s GateState) String() string {
	switch s {
	case GateChecking:
		return "checking"
	case GateAuthenticated:
		return "authenticated"
	case GateUnauthenticated:
		return "unauthenticated"
	}
	return fmt.Sprintf("GateState(%d)", int(s))
}
