package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/xyzbattle/internal/locale"
)

// DefaultFile is read when no --config flag is given.
const DefaultFile = "xyzbattle.hcl"

// Config represents the complete configuration
type Config struct {
	Game   GameSettings
	UI     UISettings
	Server ServerSettings
}

// file mirrors Config with every block optional
type file struct {
	Game   *GameSettings   `hcl:"game,block"`
	UI     *UISettings     `hcl:"ui,block"`
	Server *ServerSettings `hcl:"server,block"`
}

// GameSettings controls dealing and presentation language
type GameSettings struct {
	// Seed replays a session when set; nil seeds from the clock.
	Seed     *int64 `hcl:"seed,optional"`
	Language string `hcl:"language,optional"`
}

// UISettings contains terminal interface settings
type UISettings struct {
	Color    *bool  `hcl:"color,optional"`
	LogFile  string `hcl:"log_file,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// ServerSettings contains websocket server settings
type ServerSettings struct {
	Address            string `hcl:"address,optional"`
	IdleTimeoutSeconds int    `hcl:"idle_timeout_seconds,optional"`
	MaxSessions        int    `hcl:"max_sessions,optional"`
	LogLevel           string `hcl:"log_level,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	color := true
	return &Config{
		Game: GameSettings{
			Language: "auto",
		},
		UI: UISettings{
			Color:    &color,
			LogFile:  "xyzbattle.log",
			LogLevel: "info",
		},
		Server: ServerSettings{
			Address:            "localhost:8080",
			IdleTimeoutSeconds: 600,
			MaxSessions:        100,
			LogLevel:           "info",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields Default.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(hclFile.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	var cfg Config
	if raw.Game != nil {
		cfg.Game = *raw.Game
	}
	if raw.UI != nil {
		cfg.UI = *raw.UI
	}
	if raw.Server != nil {
		cfg.Server = *raw.Server
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Game.Language == "" {
		c.Game.Language = defaults.Game.Language
	}
	if c.UI.Color == nil {
		c.UI.Color = defaults.UI.Color
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.Server.Address == "" {
		c.Server.Address = defaults.Server.Address
	}
	if c.Server.IdleTimeoutSeconds == 0 {
		c.Server.IdleTimeoutSeconds = defaults.Server.IdleTimeoutSeconds
	}
	if c.Server.MaxSessions == 0 {
		c.Server.MaxSessions = defaults.Server.MaxSessions
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = defaults.Server.LogLevel
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.Language != "auto" {
		if _, err := locale.Parse(c.Game.Language); err != nil {
			return fmt.Errorf("game: %w", err)
		}
	}
	if !validLogLevel(c.UI.LogLevel) {
		return fmt.Errorf("ui: invalid log level: %s", c.UI.LogLevel)
	}
	if !validLogLevel(c.Server.LogLevel) {
		return fmt.Errorf("server: invalid log level: %s", c.Server.LogLevel)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server: address is required")
	}
	if c.Server.IdleTimeoutSeconds <= 0 {
		return fmt.Errorf("server: idle timeout must be positive, got %d", c.Server.IdleTimeoutSeconds)
	}
	if c.Server.MaxSessions <= 0 {
		return fmt.Errorf("server: max sessions must be positive, got %d", c.Server.MaxSessions)
	}
	return nil
}

// Language resolves the configured language, consulting the environment
// when it is "auto".
func (c *Config) Language() locale.Language {
	if c.Game.Language != "auto" {
		if l, err := locale.Parse(c.Game.Language); err == nil {
			return l
		}
	}
	return locale.Match(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
}

// IdleTimeout returns the server idle timeout as a duration
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Server.IdleTimeoutSeconds) * time.Second
}

// ColorEnabled reports whether the UI may use colour
func (c *Config) ColorEnabled() bool {
	return c.UI.Color == nil || *c.UI.Color
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}
