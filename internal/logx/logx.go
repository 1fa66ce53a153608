package logx

import (
	"context"

	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/schema"
)

type contextKey int

const (
	playerKey contextKey = iota
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return pslog.Ctx(ctx)
}

// WithPlayer annotates the logger with the player name if present.
func WithPlayer(ctx context.Context, player string) pslog.Logger {
	log := Ctx(ctx)
	if player != "" {
		if ctx != nil {
			if current, ok := ctx.Value(playerKey).(string); ok && current == player {
				return log
			}
		}
		log = log.With("player", player)
	}
	return log
}

// WithDialogue annotates the logger with dialogue id and kind.
func WithDialogue(log pslog.Logger, id schema.DialogueID, kind schema.DialogueKind) pslog.Logger {
	if id != "" {
		log = log.With("dialogue", id)
	}
	if kind != "" {
		log = log.With("dialogue_kind", kind)
	}
	return log
}

// ContextWithPlayer stores the player marker on the context for log de-duplication.
func ContextWithPlayer(ctx context.Context, player string) context.Context {
	if ctx == nil || player == "" {
		return ctx
	}
	return context.WithValue(ctx, playerKey, player)
}

// ContextWithPlayerLogger attaches the logger and player marker to the context.
func ContextWithPlayerLogger(ctx context.Context, log pslog.Logger, player string) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithPlayer(ctx, player)
}
