package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int            `mapstructure:"config_version" yaml:"config_version"`
	Dialogue      DialogueConfig `mapstructure:"dialogue" yaml:"dialogue"`
	Host          HostConfig     `mapstructure:"host" yaml:"host"`
	Bridge        BridgeConfig   `mapstructure:"bridge" yaml:"bridge"`
	Logging       LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// DialogueConfig holds the defaults applied to every dialogue open.
type DialogueConfig struct {
	LockCamera        bool `mapstructure:"lock_camera" yaml:"lock_camera"`
	BusyRetriesCount  int  `mapstructure:"busy_retries_count" yaml:"busy_retries_count"`
	BusyRetriesTicks  int  `mapstructure:"busy_retries_ticks" yaml:"busy_retries_ticks"`
	UnlockMaxAttempts int  `mapstructure:"unlock_max_attempts" yaml:"unlock_max_attempts"`
}

// HostConfig configures the in-process tick scheduler.
type HostConfig struct {
	TickMillis int `mapstructure:"tick_millis" yaml:"tick_millis"`
}

// BridgeConfig configures the websocket host bridge.
type BridgeConfig struct {
	Addr                  string   `mapstructure:"addr" yaml:"addr"`
	Path                  string   `mapstructure:"path" yaml:"path"`
	CommandTimeoutSeconds int      `mapstructure:"command_timeout_seconds" yaml:"command_timeout_seconds"`
	FormTimeoutSeconds    int      `mapstructure:"form_timeout_seconds" yaml:"form_timeout_seconds"`
	AllowedOrigins        []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Structured bool   `mapstructure:"structured" yaml:"structured"`
}

// Options converts the logging section into pslog options.
func (c LoggingConfig) Options() (pslog.Options, error) {
	opts := pslog.Options{Mode: pslog.ModeConsole}
	if c.Structured {
		opts.Mode = pslog.ModeStructured
	}
	switch strings.ToLower(strings.TrimSpace(c.Level)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return pslog.Options{}, fmt.Errorf("unsupported logging.level %q", c.Level)
	}
	return opts, nil
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	dialogue := schema.DefaultDialogueConfig()
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Dialogue: DialogueConfig{
			LockCamera:        dialogue.LockCamera,
			BusyRetriesCount:  dialogue.BusyRetriesCount,
			BusyRetriesTicks:  dialogue.BusyRetriesTicks,
			UnlockMaxAttempts: dialogue.UnlockMaxAttempts,
		},
		Host: HostConfig{
			TickMillis: int(host.DefaultTick / time.Millisecond),
		},
		Bridge: BridgeConfig{
			Addr:                  "127.0.0.1:27490",
			Path:                  "/dialogue",
			CommandTimeoutSeconds: 5,
			FormTimeoutSeconds:    300,
			AllowedOrigins:        []string{},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Structured: false,
		},
	}, nil
}

// DialogueDefaults converts the dialogue section into runtime defaults.
func (c Config) DialogueDefaults() schema.DialogueConfig {
	return schema.DialogueConfig{
		LockCamera:        c.Dialogue.LockCamera,
		BusyRetriesCount:  c.Dialogue.BusyRetriesCount,
		BusyRetriesTicks:  c.Dialogue.BusyRetriesTicks,
		UnlockMaxAttempts: c.Dialogue.UnlockMaxAttempts,
	}
}

// Tick returns the scheduler tick duration.
func (c Config) Tick() time.Duration {
	if c.Host.TickMillis <= 0 {
		return host.DefaultTick
	}
	return time.Duration(c.Host.TickMillis) * time.Millisecond
}

// CommandTimeout returns the bridge command acknowledgement timeout.
func (c Config) CommandTimeout() time.Duration {
	return time.Duration(c.Bridge.CommandTimeoutSeconds) * time.Second
}

// FormTimeout returns how long the bridge waits for a form answer.
func (c Config) FormTimeout() time.Duration {
	return time.Duration(c.Bridge.FormTimeoutSeconds) * time.Second
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".scriptdialogue", "config.yaml"), nil
}
