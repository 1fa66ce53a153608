package core

import (
	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/host"
)

// RuntimeDeps captures the host services and optional dependencies of a Runtime.
type RuntimeDeps struct {
	Forms     host.Forms
	Scheduler host.Scheduler
	EventSink EventSink
	Logger    pslog.Logger
}
