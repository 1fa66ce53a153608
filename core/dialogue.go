package core

import (
	"context"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// Request is a host form ready to be shown.
type Request interface {
	Show(ctx context.Context, player host.Player) (host.Response, error)
}

// RequestFunc adapts a function to Request.
type RequestFunc func(ctx context.Context, player host.Player) (host.Response, error)

// Show implements Request.
func (f RequestFunc) Show(ctx context.Context, player host.Player) (host.Response, error) {
	return f(ctx, player)
}

// Dialogue supplies the kind-specific halves of the open protocol: turning
// the builder into a host request and turning an answered response into a
// Result. Runtime.Open drives both.
type Dialogue interface {
	Kind() schema.DialogueKind
	BuildRequest(forms host.Forms, opts ShowOptions) (Request, error)
	Decode(ctx context.Context, resp host.Response, opts ShowOptions) (schema.Result, error)
}
