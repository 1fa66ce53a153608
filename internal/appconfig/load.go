package appconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"pkt.systems/scriptdialogue/schema"
)

// Load reads configuration from the provided path. If path is empty, uses DefaultConfigPath.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("dialogue.lock_camera", cfg.Dialogue.LockCamera)
	v.SetDefault("dialogue.busy_retries_count", cfg.Dialogue.BusyRetriesCount)
	v.SetDefault("dialogue.busy_retries_ticks", cfg.Dialogue.BusyRetriesTicks)
	v.SetDefault("dialogue.unlock_max_attempts", cfg.Dialogue.UnlockMaxAttempts)
	v.SetDefault("host.tick_millis", cfg.Host.TickMillis)
	v.SetDefault("bridge.addr", cfg.Bridge.Addr)
	v.SetDefault("bridge.path", cfg.Bridge.Path)
	v.SetDefault("bridge.command_timeout_seconds", cfg.Bridge.CommandTimeoutSeconds)
	v.SetDefault("bridge.form_timeout_seconds", cfg.Bridge.FormTimeoutSeconds)
	v.SetDefault("bridge.allowed_origins", cfg.Bridge.AllowedOrigins)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.structured", cfg.Logging.Structured)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if _, err := schema.NormalizeDialogueConfig(cfg.DialogueDefaults()); err != nil {
		return fmt.Errorf("dialogue: %w", err)
	}
	if cfg.Host.TickMillis < 0 {
		return fmt.Errorf("host.tick_millis must not be negative")
	}
	if !strings.HasPrefix(cfg.Bridge.Path, "/") {
		return fmt.Errorf("bridge.path must start with /")
	}
	if cfg.Bridge.CommandTimeoutSeconds <= 0 {
		return fmt.Errorf("bridge.command_timeout_seconds must be positive")
	}
	if cfg.Bridge.FormTimeoutSeconds < 0 {
		return fmt.Errorf("bridge.form_timeout_seconds must not be negative")
	}
	if _, err := cfg.Logging.Options(); err != nil {
		return err
	}
	return nil
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	cfg, err := DefaultConfig()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
