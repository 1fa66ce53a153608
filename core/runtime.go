package core

import (
	"errors"

	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// Runtime binds dialogue builders to a host. It is immutable after
// construction and safe to share between goroutines. Without a logger in
// RuntimeDeps the runtime logs through the logger carried on the open context.
type Runtime struct {
	cfg       schema.DialogueConfig
	forms     host.Forms
	scheduler host.Scheduler
	sink      EventSink
	logger    pslog.Logger
}

// NewRuntime constructs a Runtime. Forms and Scheduler are required.
func NewRuntime(cfg schema.DialogueConfig, deps RuntimeDeps) (*Runtime, error) {
	normalized, err := schema.NormalizeDialogueConfig(cfg)
	if err != nil {
		return nil, err
	}
	if deps.Forms == nil {
		return nil, errors.New("dialogue runtime: missing host forms")
	}
	if deps.Scheduler == nil {
		return nil, errors.New("dialogue runtime: missing scheduler")
	}
	return &Runtime{
		cfg:       normalized,
		forms:     deps.Forms,
		scheduler: deps.Scheduler,
		sink:      deps.EventSink,
		logger:    deps.Logger,
	}, nil
}

// Config returns the runtime defaults.
func (rt *Runtime) Config() schema.DialogueConfig {
	return rt.cfg
}

// ShowOptions is the resolved configuration of one open call.
type ShowOptions struct {
	Player            host.Player
	LockCamera        bool
	BusyRetriesCount  int
	BusyRetriesTicks  int
	UnlockMaxAttempts int
}

// ShowOption overrides a runtime default for one open call.
type ShowOption func(*ShowOptions)

// WithCameraLock toggles the camera and movement lock while the form is open.
func WithCameraLock(lock bool) ShowOption {
	return func(o *ShowOptions) { o.LockCamera = lock }
}

// WithBusyRetries sets how often and how far apart busy cancellations are retried.
func WithBusyRetries(count, ticks int) ShowOption {
	return func(o *ShowOptions) {
		o.BusyRetriesCount = count
		o.BusyRetriesTicks = ticks
	}
}

// WithUnlockMaxAttempts caps unlock polling; 0 polls until the player is invalid.
func WithUnlockMaxAttempts(attempts int) ShowOption {
	return func(o *ShowOptions) { o.UnlockMaxAttempts = attempts }
}

func (rt *Runtime) resolveShowOptions(player host.Player, opts []ShowOption) ShowOptions {
	resolved := ShowOptions{
		Player:            player,
		LockCamera:        rt.cfg.LockCamera,
		BusyRetriesCount:  rt.cfg.BusyRetriesCount,
		BusyRetriesTicks:  rt.cfg.BusyRetriesTicks,
		UnlockMaxAttempts: rt.cfg.UnlockMaxAttempts,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}
	resolved.BusyRetriesCount = max(resolved.BusyRetriesCount, 0)
	resolved.BusyRetriesTicks = max(resolved.BusyRetriesTicks, 0)
	resolved.UnlockMaxAttempts = max(resolved.UnlockMaxAttempts, 0)
	return resolved
}
