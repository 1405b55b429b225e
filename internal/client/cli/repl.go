package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/magiceditor/internal/client/models"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var printlnFn = fmt.Println
var printFn = fmt.Print

const feedbackMessage = "Thank you for your feedback!"

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Render(ctx context.Context) error
	ListTabs(ctx context.Context) error
	SelectTab(ctx context.Context, name string) error
	ToggleTheme(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
	Classify(ctx context.Context, args []string) error
	Improve(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Combine(ctx context.Context, args []string) error
	Video(ctx context.Context, args []string) error
	Community(ctx context.Context, args []string) error
	Chat(ctx context.Context, args []string) error
}

type replExit int

const (
	replQuit replExit = iota
	replLogout
)

const helpText = `Available commands:
  tabs                          list tabs
  tab <name>                    switch tab (prefix is enough)
  theme                         toggle light/dark
  feedback                      send feedback
  whoami                        show the current session
  classify <image>              classify an image
  improve <prompt...>           improve a prompt
  edit <image> <prompt...>      edit an image
  combine <img1> <img2> <prompt...>
  video [-i <image>] <prompt...>
  community [list|share]        browse or share prompts
  chat <message...>             talk to the bot
  logout                        sign out
  exit | quit                   leave the program`

// runREPL starts the read–eval–print loop of the main screen.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Handler errors are printed and the loop
// continues. It returns replLogout once the session is gone and replQuit on
// EOF, "exit" or "quit".
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) replExit {
	for {
		if !a.isLoggedIn() {
			return replLogout
		}
		printFn(promptFn())

		line, err := readLine(reader)
		if err != nil {
			printlnFn()
			return replQuit
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			printlnFn(helpText)

		case "tabs":
			err = a.ListTabs(ctx)

		case "tab":
			if len(args) == 0 {
				err = usageError("tab <name>")
				break
			}
			err = a.SelectTab(ctx, strings.Join(args, " "))

		case "theme":
			err = a.ToggleTheme(ctx)

		case "feedback":
			printlnFn(feedbackMessage)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "classify":
			err = a.Classify(ctx, args)

		case "improve":
			err = a.Improve(ctx, args)

		case "edit":
			err = a.Edit(ctx, args)

		case "combine":
			err = a.Combine(ctx, args)

		case "video":
			err = a.Video(ctx, args)

		case "community":
			err = a.Community(ctx, args)

		case "chat":
			err = a.Chat(ctx, args)

		case "clear", "render":
			err = a.Render(ctx)

		case "logout":
			if err = a.Logout(ctx); err == nil {
				return replLogout
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return replQuit

		default:
			printlnFn("Unknown command:", cmd, "(type 'help' for commands)")
		}

		if err != nil {
			if ctx.Err() != nil {
				return replQuit
			}
			printlnFn("Error:", err)
		}
	}
}

// REPL command handlers on App.

func (a *App) Render(ctx context.Context) error {
	user := ""
	if s := a.gate.Session(); s != nil {
		user = s.Username
	}
	_, err := fmt.Fprintln(a.out, a.styles().screen(a.activeTab, user))
	return err
}

func (a *App) ListTabs(ctx context.Context) error {
	for _, t := range models.Tabs {
		marker := " "
		if t == a.activeTab {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s\n", marker, t)
	}
	return nil
}

func (a *App) SelectTab(ctx context.Context, name string) error {
	t, err := models.ParseTab(name)
	if err != nil {
		return err
	}
	a.activeTab = t
	return a.Render(ctx)
}

func (a *App) ToggleTheme(ctx context.Context) error {
	t, err := a.themes.Toggle(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Theme: %s\n", t)
	return a.Render(ctx)
}

func (a *App) Classify(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("classify <image>")
	}
	return a.classify(ctx, args[0])
}

func (a *App) Improve(ctx context.Context, args []string) error {
	return a.improve(ctx, strings.Join(args, " "))
}

func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("edit <image> <prompt...>")
	}
	return a.edit(ctx, args[0], strings.Join(args[1:], " "))
}

func (a *App) Combine(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return usageError("combine <image1> <image2> <prompt...>")
	}
	return a.combine(ctx, args[0], args[1], strings.Join(args[2:], " "))
}

func (a *App) Video(ctx context.Context, args []string) error {
	image := ""
	if len(args) >= 2 && (args[0] == "-i" || args[0] == "--image") {
		image, args = args[1], args[2:]
	}
	if len(args) == 0 {
		return usageError("video [-i <image>] <prompt...>")
	}
	return a.generateVideo(ctx, strings.Join(args, " "), image)
}

func (a *App) Community(ctx context.Context, args []string) error {
	sub := "list"
	if len(args) > 0 {
		sub = strings.ToLower(args[0])
	}
	switch sub {
	case "list":
		return a.listCommunity(ctx)
	case "share":
		data, err := a.askShareData()
		if err != nil {
			return err
		}
		return a.share(ctx, data)
	}
	return usageError("community [list|share]")
}

func (a *App) askShareData() (models.SharePromptData, error) {
	var d models.SharePromptData
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Your name", &d.Name},
		{"Email", &d.Email},
		{"Phone", &d.Phone},
		{"Title", &d.Title},
		{"Prompt", &d.Prompt},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return d, err
		}
		*f.dst = v
	}
	return d, nil
}

func (a *App) Chat(ctx context.Context, args []string) error {
	msg := strings.TrimSpace(strings.Join(args, " "))
	if msg == "" {
		return usageError("chat <message...>")
	}
	return a.chat(ctx, msg)
}

var _ execIface = (*App)(nil)
