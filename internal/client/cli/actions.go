package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/magiceditor/internal/client/models"
	"github.com/dustin/go-humanize"
)

var errUsage = errors.New("usage")

func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{errUsage}, args...)...)
}

// announceUpload tells the user which files are about to be sent.
func (a *App) announceUpload(paths ...string) error {
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return fmt.Errorf("%s is a directory", p)
		}
		fmt.Fprintf(a.errOut, "Uploading %s (%s)\n", filepath.Base(p), humanize.Bytes(uint64(fi.Size())))
	}
	return nil
}

func (a *App) classify(ctx context.Context, path string) error {
	if err := a.announceUpload(path); err != nil {
		return err
	}
	ok, err := a.editor.Classify(ctx, path)
	if err != nil {
		return err
	}
	answer := "no"
	if ok {
		answer = "yes"
	}
	fmt.Fprintln(a.out, "Classification:", answer)
	return nil
}

func (a *App) improve(ctx context.Context, prompt string) error {
	out, err := a.editor.ImprovePrompt(ctx, prompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, out)
	return nil
}

func (a *App) edit(ctx context.Context, path, prompt string) error {
	if err := a.announceUpload(path); err != nil {
		return err
	}
	res, err := a.editor.Edit(ctx, path, prompt)
	if err != nil {
		return err
	}
	return a.printResult(res)
}

func (a *App) combine(ctx context.Context, path1, path2, prompt string) error {
	if err := a.announceUpload(path1, path2); err != nil {
		return err
	}
	res, err := a.editor.Combine(ctx, path1, path2, prompt)
	if err != nil {
		return err
	}
	return a.printResult(res)
}

func (a *App) generateVideo(ctx context.Context, prompt, imagePath string) error {
	if imagePath != "" {
		if err := a.announceUpload(imagePath); err != nil {
			return err
		}
	}
	muted := a.styles().muted
	res, err := a.video.Generate(ctx, prompt, imagePath, func(msg string) {
		fmt.Fprintln(a.errOut, muted.Render(msg))
	})
	if err != nil {
		return err
	}
	return a.printResult(res)
}

func (a *App) listCommunity(ctx context.Context) error {
	prompts, err := a.editor.CommunityPrompts(ctx)
	if err != nil {
		return err
	}
	return writeValue(a.out, a.format, prompts)
}

func (a *App) share(ctx context.Context, data models.SharePromptData) error {
	if strings.TrimSpace(data.Title) == "" || strings.TrimSpace(data.Prompt) == "" {
		return usageError("title and prompt are required")
	}
	msg, err := a.editor.SharePrompt(ctx, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// chat sends message with the conversation so far and records both turns.
func (a *App) chat(ctx context.Context, message string) error {
	reply, err := a.editor.Chat(ctx, a.chatHistory, message)
	if err != nil {
		return err
	}
	a.chatHistory = append(a.chatHistory,
		models.ChatMessage{Role: "user", Text: message},
		models.ChatMessage{Role: "model", Text: reply},
	)
	fmt.Fprintln(a.out, reply)
	return nil
}

func (a *App) printResult(res models.EditedResult) error {
	return writeValue(a.out, a.format, res)
}
