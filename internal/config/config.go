package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is read when DEBUGCONSOLE_CONFIG is unset.
const DefaultPath = "config/debugconsole.toml"

// EnvPath overrides DefaultPath.
const EnvPath = "DEBUGCONSOLE_CONFIG"

type Config struct {
	Host    HostConfig    `toml:"host"`
	Console ConsoleConfig `toml:"console"`
	Remote  RemoteConfig  `toml:"remote"`
	Logging LoggingConfig `toml:"logging"`
}

type HostConfig struct {
	Name        string        `toml:"name"`
	TickRate    time.Duration `toml:"tick_rate"`
	Scenario    string        `toml:"scenario"`    // YAML scenario file; empty runs an empty world
	ScriptsDir  string        `toml:"scripts_dir"` // *.lua simulation scripts; empty disables churn
	StartPaused bool          `toml:"start_paused"`
}

type ConsoleConfig struct {
	Prompt        string        `toml:"prompt"`
	Banner        string        `toml:"banner"`
	PauseWord     string        `toml:"pause_word"`
	PollInterval  time.Duration `toml:"poll_interval"` // recheck pause while paused
	Input         string        `toml:"input"`         // "stdin" or "none"
	InputEncoding string        `toml:"input_encoding"`
}

type RemoteConfig struct {
	Enabled      bool          `toml:"enabled"`
	BindAddress  string        `toml:"bind_address"`
	HostKey      string        `toml:"host_key"`
	User         string        `toml:"user"`
	PasswordHash string        `toml:"password_hash"` // bcrypt
	IdleTimeout  time.Duration `toml:"idle_timeout"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load decodes path over the defaults. A missing file at DefaultPath yields
// the defaults; a missing file anywhere else is an error.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

func (c *Config) Validate() error {
	if c.Host.TickRate <= 0 {
		return fmt.Errorf("host.tick_rate must be positive, got %s", c.Host.TickRate)
	}
	if c.Console.PollInterval < 0 {
		return fmt.Errorf("console.poll_interval must not be negative, got %s", c.Console.PollInterval)
	}
	switch c.Console.Input {
	case "stdin", "none":
	default:
		return fmt.Errorf("console.input must be \"stdin\" or \"none\", got %q", c.Console.Input)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be \"console\" or \"json\", got %q", c.Logging.Format)
	}
	if c.Remote.Enabled {
		if c.Remote.PasswordHash == "" {
			return errors.New("remote.enabled requires remote.password_hash")
		}
		if c.Remote.User == "" {
			return errors.New("remote.enabled requires remote.user")
		}
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Host: HostConfig{
			Name:     "debugconsole",
			TickRate: 200 * time.Millisecond,
		},
		Console: ConsoleConfig{
			Prompt:       ">>> ",
			Banner:       "Debug console. Type 'help' for list of commands.",
			PauseWord:    "pause",
			PollInterval: 20 * time.Millisecond,
			Input:        "stdin",
		},
		Remote: RemoteConfig{
			BindAddress: "127.0.0.1:2222",
			HostKey:     "config/debugconsole_host_key",
			User:        "operator",
			IdleTimeout: 10 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
