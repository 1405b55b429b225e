package cli

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"golang.org/x/term"
)

const appTitle = "Magic Editor"

const logo = `   .  *  .
 *  \ | /  *
  -- (✦) --
 *  / | \  *
   '  *  '`

// palette mirrors the colour variables of the web shell.
type palette struct {
	Text       lipgloss.Color
	TextStrong lipgloss.Color
	Accent     lipgloss.Color
	Border     lipgloss.Color
	CardBg     lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
}

var palettes = map[models.Theme]palette{
	models.ThemeLight: {
		Text:       lipgloss.Color("#475569"),
		TextStrong: lipgloss.Color("#0f172a"),
		Accent:     lipgloss.Color("#7c3aed"),
		Border:     lipgloss.Color("#e2e8f0"),
		CardBg:     lipgloss.Color("#f8fafc"),
		Muted:      lipgloss.Color("#94a3b8"),
		Error:      lipgloss.Color("#dc2626"),
		Success:    lipgloss.Color("#16a34a"),
	},
	models.ThemeDark: {
		Text:       lipgloss.Color("#cbd5e1"),
		TextStrong: lipgloss.Color("#f8fafc"),
		Accent:     lipgloss.Color("#a78bfa"),
		Border:     lipgloss.Color("#334155"),
		CardBg:     lipgloss.Color("#1e293b"),
		Muted:      lipgloss.Color("#64748b"),
		Error:      lipgloss.Color("#f87171"),
		Success:    lipgloss.Color("#4ade80"),
	},
}

type styles struct {
	theme     models.Theme
	logo      lipgloss.Style
	title     lipgloss.Style
	subtitle  lipgloss.Style
	tabActive lipgloss.Style
	tabIdle   lipgloss.Style
	panel     lipgloss.Style
	muted     lipgloss.Style
	errorText lipgloss.Style
	success   lipgloss.Style
}

func newStyles(theme models.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		theme = models.DefaultTheme
		p = palettes[theme]
	}
	return styles{
		theme:     theme,
		logo:      lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		title:     lipgloss.NewStyle().Foreground(p.TextStrong).Bold(true),
		subtitle:  lipgloss.NewStyle().Foreground(p.Text),
		tabActive: lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Underline(true).Padding(0, 1),
		tabIdle:   lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		panel: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.CardBg).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(1, 2),
		muted:     lipgloss.NewStyle().Foreground(p.Muted),
		errorText: lipgloss.NewStyle().Foreground(p.Error),
		success:   lipgloss.NewStyle().Foreground(p.Success),
	}
}

func (s styles) splash() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		s.logo.Render(logo),
		"",
		s.title.Render(appTitle),
	)
}

func (s styles) loginBanner() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		s.title.Render(appTitle),
		s.subtitle.Render("Please sign in to continue"),
	)
}

func (s styles) tabBar(active models.Tab) string {
	parts := make([]string, 0, len(models.Tabs))
	for _, t := range models.Tabs {
		if t == active {
			parts = append(parts, s.tabActive.Render(string(t)))
		} else {
			parts = append(parts, s.tabIdle.Render(string(t)))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (s styles) themeIcon() string {
	if s.theme == models.ThemeDark {
		return "☾ dark"
	}
	return "☀ light"
}

// header is the title row followed by the tab bar.
func (s styles) header(active models.Tab, username string) string {
	top := []string{s.title.Render("✦ " + appTitle), s.muted.Render(s.themeIcon())}
	if username != "" {
		top = append(top, s.muted.Render("@"+username))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(top, "  "),
		s.tabBar(active),
	)
}

func (s styles) content(tab models.Tab) string {
	return s.panel.Render(tab.Placeholder())
}

func (s styles) screen(active models.Tab, username string) string {
	return lipgloss.JoinVertical(lipgloss.Left, s.header(active, username), s.content(active))
}

// terminalPreference reports the theme suggested by the terminal
// background. It is unknown when stdout is not a terminal.
func terminalPreference() (models.Theme, bool) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return "", false
	}
	if lipgloss.HasDarkBackground() {
		return models.ThemeDark, true
	}
	return models.ThemeLight, true
}
