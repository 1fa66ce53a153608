package schema

import "fmt"

const (
	// DefaultBusyRetriesCount is the number of re-shows after a busy cancellation.
	DefaultBusyRetriesCount = 5
	// DefaultBusyRetriesTicks is the wait between busy re-shows.
	DefaultBusyRetriesTicks = 5
	// DefaultUnlockMaxAttempts bounds unlock polling for players that stay valid.
	DefaultUnlockMaxAttempts = 100
)

// DialogueConfig holds the defaults applied to every open call.
type DialogueConfig struct {
	LockCamera       bool
	BusyRetriesCount int
	BusyRetriesTicks int
	// UnlockMaxAttempts caps unlock polls per command; 0 polls until the player is invalid.
	UnlockMaxAttempts int
}

// DefaultDialogueConfig returns the stock open defaults.
func DefaultDialogueConfig() DialogueConfig {
	return DialogueConfig{
		LockCamera:        true,
		BusyRetriesCount:  DefaultBusyRetriesCount,
		BusyRetriesTicks:  DefaultBusyRetriesTicks,
		UnlockMaxAttempts: DefaultUnlockMaxAttempts,
	}
}

// NormalizeDialogueConfig validates cfg.
func NormalizeDialogueConfig(cfg DialogueConfig) (DialogueConfig, error) {
	if cfg.BusyRetriesCount < 0 {
		return DialogueConfig{}, fmt.Errorf("%w: busy retries count %d", ErrInvalidConfig, cfg.BusyRetriesCount)
	}
	if cfg.BusyRetriesTicks < 0 {
		return DialogueConfig{}, fmt.Errorf("%w: busy retries ticks %d", ErrInvalidConfig, cfg.BusyRetriesTicks)
	}
	if cfg.UnlockMaxAttempts < 0 {
		return DialogueConfig{}, fmt.Errorf("%w: unlock max attempts %d", ErrInvalidConfig, cfg.UnlockMaxAttempts)
	}
	return cfg, nil
}
