package appconfig

import (
	"testing"
	"time"

	"pkt.systems/pslog"
)

func TestDefaultConfigDialogueDefaults(t *testing.T) {
	cfg, err := DefaultConfig()
	if err != nil {
		t.Fatalf("default config: %v", err)
	}
	d := cfg.DialogueDefaults()
	if !d.LockCamera || d.BusyRetriesCount != 5 || d.BusyRetriesTicks != 5 {
		t.Fatalf("unexpected dialogue defaults %+v", d)
	}
	if cfg.Tick() != 50*time.Millisecond {
		t.Fatalf("expected 50ms tick, got %s", cfg.Tick())
	}
}

func TestLoggingOptions(t *testing.T) {
	opts, err := LoggingConfig{Level: "debug", Structured: true}.Options()
	if err != nil {
		t.Fatalf("options: %v", err)
	}
	if opts.Mode != pslog.ModeStructured || opts.MinLevel != pslog.DebugLevel {
		t.Fatalf("unexpected options %+v", opts)
	}
	if _, err := (LoggingConfig{Level: "loud"}).Options(); err == nil {
		t.Fatalf("expected unsupported level error")
	}
}
