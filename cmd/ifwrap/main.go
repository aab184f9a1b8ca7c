package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Manto/llm-if-wrapper/internal/config"
	"github.com/Manto/llm-if-wrapper/internal/gateway"
	"github.com/Manto/llm-if-wrapper/internal/session"
	"github.com/Manto/llm-if-wrapper/internal/tui"
)

func parseConfig(args []string) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	flags := flag.NewFlagSet("ifwrap", flag.ContinueOnError)
	cfg.BindFlags(flags)
	if err := flags.Parse(args); err != nil {
		return config.Config{}, err
	}
	cfg.Normalize()
	return cfg, nil
}

// newLogger writes JSON logs to path. The terminal belongs to the UI, so with
// no path logs are dropped.
func newLogger(path string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f, nil
}

func run(args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}
	baseURL, err := cfg.BaseURL()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close() //nolint:errcheck

	logger.Info("starting", "base_url", baseURL, "poll_interval", cfg.LogPollInterval.String())
	model := tui.New(tui.Options{
		Gateway: gateway.New(baseURL, cfg.RequestTimeout, logger),
		Logger:  logger,
		Selection: session.Settings{
			GameID:   cfg.Game,
			Tone:     cfg.Tone,
			Provider: cfg.Provider,
		},
		PollInterval: cfg.LogPollInterval,
		Warm:         !cfg.NoWarm,
	})
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return fmt.Errorf("ifwrap fatal error: %w", err)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
