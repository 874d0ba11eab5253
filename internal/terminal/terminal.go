// Package terminal implements the interactive command loop of the terminal
// client. Line editing is left to the caller.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wanderlust/backend/internal/export"
	"wanderlust/backend/internal/interfaces"
	"wanderlust/backend/internal/model"
	"wanderlust/backend/internal/render"
)

// ErrQuit is returned by Handle when the user asks to leave.
var ErrQuit = errors.New("quit")

const helpText = `Commands:
  /lang            switch between English and Urdu
  /clear           clear the conversation
  /export [file]   save the conversation as a text file
  /suggest         show suggested questions
  /1 ... /9        ask a suggested question
  /quit            leave
`

// Confirm asks the user a yes/no question.
type Confirm func(question string) (bool, error)

// Terminal routes input lines to a session and prints the results.
type Terminal struct {
	svc      interfaces.SessionService
	renderer *render.TerminalRenderer
	out      io.Writer
	confirm  Confirm
	loc      *time.Location
	now      func() time.Time
	dir      string
}

// New returns a Terminal. Exports without an explicit path are written to dir.
func New(svc interfaces.SessionService, renderer *render.TerminalRenderer, out io.Writer, confirm Confirm, loc *time.Location, dir string) *Terminal {
	if loc == nil {
		loc = time.Local
	}
	return &Terminal{
		svc:      svc,
		renderer: renderer,
		out:      out,
		confirm:  confirm,
		loc:      loc,
		now:      time.Now,
		dir:      dir,
	}
}

// Start prints the current conversation and the suggested questions.
func (t *Terminal) Start() error {
	view := t.svc.Snapshot()
	if err := t.printMessages(view.Messages); err != nil {
		return err
	}
	t.printSuggestions(view.QuickReplies)
	fmt.Fprintln(t.out, "Type /help for commands.")
	return nil
}

// Handle processes one input line. It returns ErrQuit when the loop should end.
func (t *Terminal) Handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		return t.send(ctx, line)
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "/quit", "/exit":
		return ErrQuit
	case "/help":
		fmt.Fprint(t.out, helpText)
	case "/lang":
		lang := t.svc.ToggleLanguage()
		fmt.Fprintf(t.out, "Language: %s\n", languageName(lang))
		t.printSuggestions(t.svc.Snapshot().QuickReplies)
	case "/suggest":
		t.printSuggestions(t.svc.Snapshot().QuickReplies)
	case "/clear":
		return t.clear(ctx)
	case "/export":
		return t.export(arg)
	default:
		n, err := strconv.Atoi(strings.TrimPrefix(cmd, "/"))
		if err != nil {
			fmt.Fprintf(t.out, "Unknown command %s. Type /help for commands.\n", cmd)
			return nil
		}
		replies := t.svc.Snapshot().QuickReplies
		if n < 1 || n > len(replies) {
			fmt.Fprintf(t.out, "No suggestion %d.\n", n)
			return nil
		}
		fmt.Fprintf(t.out, "> %s\n", replies[n-1])
		return t.send(ctx, replies[n-1])
	}
	return nil
}

func (t *Terminal) send(ctx context.Context, text string) error {
	before := len(t.svc.Messages())
	fmt.Fprintln(t.out, "…")
	if !t.svc.Send(ctx, text) {
		fmt.Fprintln(t.out, "Still waiting for the previous reply.")
		return nil
	}

	messages := t.svc.Messages()
	if before > len(messages) {
		before = len(messages)
	}
	var replies []model.Message
	for _, m := range messages[before:] {
		if m.Role == model.RoleModel {
			replies = append(replies, m)
		}
	}
	return t.printMessages(replies)
}

func (t *Terminal) clear(ctx context.Context) error {
	ok, err := t.confirm("Clear the whole conversation? [y/N] ")
	if err != nil {
		return err
	}
	if !t.svc.ClearConversation(ctx, ok) {
		fmt.Fprintln(t.out, "Conversation kept.")
		return nil
	}
	return t.printMessages(t.svc.Messages())
}

func (t *Terminal) export(path string) error {
	if path == "" {
		path = filepath.Join(t.dir, export.Filename(t.now().In(t.loc)))
	}
	transcript := export.Transcript(t.svc.Messages(), t.loc)
	if err := writeFileAtomic(path, []byte(transcript)); err != nil {
		fmt.Fprintf(t.out, "Export failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(t.out, "Saved %s\n", path)
	return nil
}

func (t *Terminal) printMessages(messages []model.Message) error {
	for _, m := range messages {
		out, err := t.renderer.RenderMessage(m)
		if err != nil {
			return err
		}
		fmt.Fprintln(t.out, out)
	}
	return nil
}

func (t *Terminal) printSuggestions(replies []string) {
	if len(replies) == 0 {
		return
	}
	fmt.Fprintln(t.out, "Suggestions:")
	fmt.Fprint(t.out, t.renderer.RenderQuickReplies(replies))
}

func languageName(lang model.Language) string {
	if lang == model.LanguageUrdu {
		return "اردو (Urdu)"
	}
	return "English"
}

// writeFileAtomic writes data next to path and renames it into place so a
// failed export never leaves a truncated file behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".wanderlust-export-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
