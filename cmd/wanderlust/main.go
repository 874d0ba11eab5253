package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"wanderlust/backend/internal/app"
	"wanderlust/backend/internal/config"
	"wanderlust/backend/internal/render"
	"wanderlust/backend/internal/terminal"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	// Informational logs would interleave with the conversation.
	level := cfg.LogLevel
	if !strings.EqualFold(level, "DEBUG") && !strings.EqualFold(level, "ERROR") {
		level = "WARN"
	}
	app.SetupLogger(level, os.Stderr)

	ctx := context.Background()
	session, err := app.NewSession(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open session", "error", err)
		return 1
	}
	defer func() {
		if err := session.Close(); err != nil {
			slog.Error("Failed to close storage backend", "error", err)
		}
	}()

	renderer, err := render.NewTerminalRenderer(100, "", session.Location)
	if err != nil {
		slog.Error("Failed to create renderer", "error", err)
		return 1
	}

	line := liner.NewLiner()
	defer func() { _ = line.Close() }()
	line.SetCtrlCAborts(true)

	confirm := func(question string) (bool, error) {
		answer, err := line.Prompt(question)
		if err != nil {
			return false, err
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes", nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	term := terminal.New(session.Service, renderer, os.Stdout, confirm, session.Location, cwd)
	if err := term.Start(); err != nil {
		slog.Error("Failed to draw conversation", "error", err)
		return 1
	}

	for {
		input, err := line.Prompt("› ")
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if err != nil {
			slog.Error("Failed to read input", "error", err)
			return 1
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
		}

		err = term.Handle(ctx, input)
		if errors.Is(err, terminal.ErrQuit) {
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			slog.Error("Command failed", "error", err)
		}
	}
}
