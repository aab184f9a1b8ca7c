package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	minPollInterval    = time.Second
	maxPollInterval    = time.Minute
	minRequestTimeout  = 5 * time.Second
	maxRequestTimeout  = 10 * time.Minute
	modalAppSlug       = "llm-text-adv-web"
	modalDomain        = "modal.run"
	defaultEnvFileName = ".env"
)

var ErrNoEndpoint = errors.New("no gateway endpoint: set IFWRAP_API_URL or MODAL_USERNAME")

type Config struct {
	APIURL          string        `env:"IFWRAP_API_URL"`
	ModalUsername   string        `env:"MODAL_USERNAME"`
	Dev             bool          `env:"IFWRAP_DEV" envDefault:"false"`
	Game            string        `env:"IFWRAP_GAME" envDefault:"905.z5"`
	Tone            string        `env:"IFWRAP_TONE" envDefault:"pratchett"`
	Provider        string        `env:"IFWRAP_PROVIDER" envDefault:"anthropic"`
	LogPollInterval time.Duration `env:"IFWRAP_LOG_POLL_INTERVAL" envDefault:"5s"`
	RequestTimeout  time.Duration `env:"IFWRAP_REQUEST_TIMEOUT" envDefault:"120s"`
	LogFile         string        `env:"IFWRAP_LOG_FILE"`
	AltScreen       bool          `env:"IFWRAP_ALT_SCREEN" envDefault:"true"`
	NoWarm          bool          `env:"IFWRAP_NO_WARM" envDefault:"false"`
}

// Load reads .env files (missing ones are skipped) into the process
// environment and parses it.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{defaultEnvFileName}
	}
	for _, name := range envFiles {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", name, err)
		}
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses an explicit environment, ignoring the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// BindFlags registers command-line overrides for every field, defaulting to
// the values already in cfg.
func (cfg *Config) BindFlags(flags *flag.FlagSet) {
	flags.StringVar(&cfg.APIURL, "url", cfg.APIURL, "Gateway base URL (overrides -modal-user)")
	flags.StringVar(&cfg.ModalUsername, "modal-user", cfg.ModalUsername, "Modal workspace that hosts the gateway")
	flags.BoolVar(&cfg.Dev, "dev", cfg.Dev, "Target the -dev deployment of the gateway")
	flags.StringVar(&cfg.Game, "game", cfg.Game, "Initially selected game id")
	flags.StringVar(&cfg.Tone, "tone", cfg.Tone, "Initially selected rewrite tone")
	flags.StringVar(&cfg.Provider, "provider", cfg.Provider, "Initially selected LLM provider")
	flags.DurationVar(&cfg.LogPollInterval, "log-poll-interval", cfg.LogPollInterval, "Debug log poll interval while a command is in flight")
	flags.DurationVar(&cfg.RequestTimeout, "request-timeout", cfg.RequestTimeout, "Per-request gateway timeout")
	flags.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write structured logs to this file")
	flags.BoolVar(&cfg.AltScreen, "alt-screen", cfg.AltScreen, "Use alternate screen buffer")
	flags.BoolVar(&cfg.NoWarm, "no-warm", cfg.NoWarm, "Skip warming the inference service at startup")
}

// Normalize clamps durations and falls back to catalog defaults for unknown
// selections.
func (cfg *Config) Normalize() {
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	cfg.ModalUsername = strings.TrimSpace(cfg.ModalUsername)
	cfg.LogPollInterval = clampDuration(cfg.LogPollInterval, minPollInterval, maxPollInterval)
	cfg.RequestTimeout = clampDuration(cfg.RequestTimeout, minRequestTimeout, maxRequestTimeout)
	if _, ok := Lookup(Games, cfg.Game); !ok {
		cfg.Game = Games[0].ID
	}
	if _, ok := Lookup(Tones, cfg.Tone); !ok {
		cfg.Tone = Tones[0].ID
	}
	if _, ok := Lookup(Providers, cfg.Provider); !ok {
		cfg.Provider = Providers[0].ID
	}
}

// BaseURL resolves the gateway address. An explicit URL wins; otherwise the
// address is derived from the Modal workspace name and the dev flag.
func (cfg Config) BaseURL() (string, error) {
	if url := strings.TrimRight(strings.TrimSpace(cfg.APIURL), "/"); url != "" {
		return url, nil
	}
	user := strings.TrimSpace(cfg.ModalUsername)
	if user == "" {
		return "", ErrNoEndpoint
	}
	suffix := ""
	if cfg.Dev {
		suffix = "-dev"
	}
	return fmt.Sprintf("https://%s--%s%s.%s", user, modalAppSlug, suffix, modalDomain), nil
}

func clampDuration(value, min, max time.Duration) time.Duration {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
