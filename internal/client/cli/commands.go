package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/magiceditor/internal/buildinfo"
	"github.com/dmitrijs2005/magiceditor/internal/client/config"
	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dmitrijs2005/magiceditor/internal/common"
	"github.com/dmitrijs2005/magiceditor/internal/cryptox"
	"github.com/dmitrijs2005/magiceditor/internal/logging"
	"github.com/spf13/cobra"
)

const flagOutput = "output"

// appFactory builds the App for a command. Tests replace it to inject a
// fake backend and a temporary database.
var appFactory = func(ctx context.Context, cmd *cobra.Command) (*App, error) {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app.reader.Reset(cmd.InOrStdin())
	app.out = cmd.OutOrStdout()
	app.errOut = cmd.ErrOrStderr()
	return app, nil
}

// withApp runs fn with a fully wired App. With session set, fn only runs
// when a valid stored session exists.
func withApp(session bool, fn func(ctx context.Context, a *App) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		format, err := outputFlag(cmd)
		if err != nil {
			return err
		}

		a, err := appFactory(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		a.format = format

		if session {
			if err := a.requireSession(ctx); err != nil {
				return err
			}
		}
		return fn(ctx, a)
	}
}

func outputFlag(cmd *cobra.Command) (outputFormat, error) {
	if cmd.Flags().Lookup(flagOutput) == nil {
		return formatJSON, nil
	}
	v, err := cmd.Flags().GetString(flagOutput)
	if err != nil {
		return "", err
	}
	return parseOutputFormat(v)
}

// NewRootCommand builds the magiceditor command tree. Without a
// subcommand it starts the interactive shell.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "magiceditor",
		Short: "AI image and video editing from the terminal",
		Long: `Magic Editor edits, combines and classifies images, generates videos
and chats with a helper bot, backed by a remote editing service.

Run without arguments for the interactive shell, or use one of the
commands below for scripting. Commands that talk to the backend need a
session; create one with 'magiceditor login'.`,
		Version:       buildinfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          withApp(false, func(ctx context.Context, a *App) error { return a.Root(ctx) }),
	}
	root.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	pf := root.PersistentFlags()
	config.RegisterFlags(pf)
	pf.StringP(flagOutput, "o", string(formatJSON), "result format: json or yaml")

	root.AddCommand(
		newShellCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newThemeCommand(),
		newClassifyCommand(),
		newImproveCommand(),
		newEditCommand(),
		newCombineCommand(),
		newVideoCommand(),
		newCommunityCommand(),
		newChatCommand(),
		newHashPasswordCommand(),
		newVersionCommand(),
	)
	return root
}

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive shell (default)",
		Args:  cobra.NoArgs,
		RunE:  withApp(false, func(ctx context.Context, a *App) error { return a.Root(ctx) }),
	}
}

func newLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign in and store a session",
		Args:  cobra.NoArgs,
		RunE: withApp(false, func(ctx context.Context, a *App) error {
			return a.Login(ctx)
		}),
	}
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: withApp(false, func(ctx context.Context, a *App) error {
			return a.Logout(ctx)
		}),
	}
}

func newThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [show|toggle|light|dark]",
		Short:     "Show or change the colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"show", "toggle", "light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			action := "show"
			if len(args) == 1 {
				action = strings.ToLower(args[0])
			}
			return withApp(false, func(ctx context.Context, a *App) error {
				if _, err := a.themes.Load(ctx); err != nil {
					return err
				}
				switch action {
				case "show":
				case "toggle":
					if _, err := a.themes.Toggle(ctx); err != nil {
						return err
					}
				default:
					t, err := models.ParseTheme(action)
					if err != nil {
						return err
					}
					if err := a.themes.Set(ctx, t); err != nil {
						return err
					}
				}
				fmt.Fprintln(a.out, a.themes.Current())
				return nil
			})(cmd, args)
		},
	}
}

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <image>",
		Short: "Classify an image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *App) error {
				return a.classify(ctx, args[0])
			})(cmd, args)
		},
	}
}

func newImproveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "improve <prompt...>",
		Short: "Rewrite a prompt for better results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *App) error {
				return a.improve(ctx, strings.Join(args, " "))
			})(cmd, args)
		},
	}
}

func newEditCommand() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "edit <image> -p <prompt>",
		Short: "Edit an image with a text prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *App) error {
				return a.edit(ctx, args[0], prompt)
			})(cmd, args)
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "what to change")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newCombineCommand() *cobra.Command {
	var prompt string
	cmd := &cobra.Command{
		Use:   "combine <image1> <image2> -p <prompt>",
		Short: "Combine two images with a text prompt",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *App) error {
				return a.combine(ctx, args[0], args[1], prompt)
			})(cmd, args)
		},
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "how to combine the images")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newVideoCommand() *cobra.Command {
	var prompt, image string
	cmd := &cobra.Command{
		Use:   "video -p <prompt> [--image <file>]",
		Short: "Generate a video and wait for it",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(ctx context.Context, a *App) error {
			return a.generateVideo(ctx, prompt, image)
		}),
	}
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "what the video should show")
	cmd.Flags().StringVarP(&image, "image", "i", "", "optional starting image")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func newCommunityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "community",
		Short: "Browse and share community prompts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List community prompts",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(ctx context.Context, a *App) error {
			return a.listCommunity(ctx)
		}),
	}

	var data models.SharePromptData
	share := &cobra.Command{
		Use:   "share --title <title> --prompt <prompt>",
		Short: "Share a prompt with the community",
		Args:  cobra.NoArgs,
		RunE: withApp(true, func(ctx context.Context, a *App) error {
			return a.share(ctx, data)
		}),
	}
	share.Flags().StringVar(&data.Name, "name", "", "your name")
	share.Flags().StringVar(&data.Email, "email", "", "your email")
	share.Flags().StringVar(&data.Phone, "phone", "", "your phone")
	share.Flags().StringVar(&data.Title, "title", "", "prompt title")
	share.Flags().StringVar(&data.Prompt, "prompt", "", "prompt text")

	cmd.AddCommand(list, share)
	return cmd
}

func newChatCommand() *cobra.Command {
	var historyFile string
	cmd := &cobra.Command{
		Use:   "chat <message...>",
		Short: "Send a message to the helper bot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(ctx context.Context, a *App) error {
				if historyFile != "" {
					h, err := readHistory(historyFile)
					if err != nil {
						return err
					}
					a.chatHistory = h
				}
				return a.chat(ctx, strings.Join(args, " "))
			})(cmd, args)
		},
	}
	cmd.Flags().StringVar(&historyFile, "history", "", "JSON file with earlier messages ([{\"role\":...,\"text\":...}])")
	return cmd
}

func readHistory(path string) ([]models.ChatMessage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	var h []models.ChatMessage
	if err := json.Unmarshal(b, &h); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	return h, nil
}

func newHashPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Print an auth_password_hash value for the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reader := bufio.NewReader(cmd.InOrStdin())
			pw, err := getPassword(reader, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)
			if len(pw) == 0 {
				return usageError("password must not be empty")
			}
			fmt.Fprintln(cmd.OutOrStdout(), cryptox.HashPassword(pw))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}

// Execute runs the command tree and reports errors the way the shell
// expects: "Error: <msg>" on stderr.
func Execute(ctx context.Context) int {
	root := NewRootCommand()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return 1
	}
	return 0
}
