package core

import (
	"context"
	"errors"
	"time"

	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/internal/logx"
	"pkt.systems/scriptdialogue/schema"
)

var errMissingDialogue = errors.New("missing dialogue")

// Open shows d to player and returns its Result. Open never returns an
// error: host rejections, configuration mistakes and callback failures all
// come back as schema.Rejected. When the camera lock is enabled the unlock
// commands run before Open returns, whatever the outcome.
func (rt *Runtime) Open(ctx context.Context, d Dialogue, player host.Player, opts ...ShowOption) schema.Result {
	if rt == nil {
		return schema.Rejected{Err: schema.ErrMissingRuntime}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	resolved := rt.resolveShowOptions(player, opts)
	name := playerName(player)
	ev := rt.newLifecycle(d, name)
	base := rt.playerLogger(ctx, name)
	log := logx.WithDialogue(base, ev.id, ev.kind)
	ctx = logx.ContextWithPlayerLogger(ctx, base, name)

	if d == nil {
		return ev.finish(log, schema.Rejected{Err: errMissingDialogue})
	}
	if player == nil {
		return ev.finish(log, schema.Rejected{Err: schema.ErrMissingPlayer})
	}
	log.Debug("dialogue open", "lock_camera", resolved.LockCamera, "busy_retries", resolved.BusyRetriesCount, "busy_ticks", resolved.BusyRetriesTicks)

	var result schema.Result
	func() {
		if resolved.LockCamera {
			ev.emit(schema.PhaseLocking, 0)
			rt.lockCamera(log, player)
			defer func() {
				ev.emit(schema.PhaseUnlocking, 0)
				rt.unlockCamera(log, resolved)
			}()
		}
		result = rt.run(ctx, d, resolved, ev, log)
	}()
	return ev.finish(log, result)
}

func (rt *Runtime) run(ctx context.Context, d Dialogue, opts ShowOptions, ev *lifecycle, log pslog.Logger) schema.Result {
	req, err := d.BuildRequest(rt.forms, opts)
	if err != nil {
		return classify(err)
	}
	resp, err := rt.showWithRetry(ctx, req, opts, ev, log)
	if err != nil {
		return classify(err)
	}
	if resp.Canceled {
		reason := resp.CancelReason
		if reason == "" {
			reason = schema.CancelUserClosed
		}
		return schema.Canceled{Reason: reason}
	}
	result, err := d.Decode(ctx, resp, opts)
	if err != nil {
		return classify(err)
	}
	if result == nil {
		return schema.Rejected{Reason: schema.RejectMalformedResponse, Err: errors.New("dialogue decode produced no result")}
	}
	return result
}

// showWithRetry shows req until it is answered, fails, or the busy retry
// budget is spent. At most BusyRetriesCount+1 shows happen.
func (rt *Runtime) showWithRetry(ctx context.Context, req Request, opts ShowOptions, ev *lifecycle, log pslog.Logger) (host.Response, error) {
	retries := 0
	for {
		ev.emit(schema.PhaseShowing, retries+1)
		resp, err := req.Show(ctx, opts.Player)
		if err != nil {
			return host.Response{}, err
		}
		if !resp.Busy() || retries >= opts.BusyRetriesCount {
			return resp, nil
		}
		retries++
		ev.emit(schema.PhaseRetrying, retries)
		log.Debug("dialogue player busy", "retry", retries, "of", opts.BusyRetriesCount, "ticks", opts.BusyRetriesTicks)
		if err := rt.wait(ctx, opts.BusyRetriesTicks); err != nil {
			log.Debug("dialogue busy wait interrupted", "err", err)
			return resp, nil
		}
		if !opts.Player.IsValid() {
			log.Debug("dialogue player left while busy")
			return resp, nil
		}
	}
}

// wait suspends for ticks scheduler ticks or until ctx is done.
func (rt *Runtime) wait(ctx context.Context, ticks int) error {
	done := make(chan struct{})
	id := rt.scheduler.RunTimeout(func() { close(done) }, ticks)
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		rt.scheduler.ClearRun(id)
		return ctx.Err()
	}
}

func classify(err error) schema.Rejected {
	var reject *host.RejectError
	if errors.As(err, &reject) {
		return schema.Rejected{Reason: schema.ParseRejectReason(string(reject.Reason)), Err: err}
	}
	return schema.Rejected{Err: err}
}

func (rt *Runtime) playerLogger(ctx context.Context, player string) pslog.Logger {
	if rt.logger == nil {
		return logx.WithPlayer(ctx, player)
	}
	if player == "" {
		return rt.logger
	}
	return rt.logger.With("player", player)
}

func playerName(player host.Player) string {
	if player == nil {
		return ""
	}
	return player.Name()
}

type lifecycle struct {
	id     schema.DialogueID
	kind   schema.DialogueKind
	player string
	sink   EventSink
}

func (rt *Runtime) newLifecycle(d Dialogue, player string) *lifecycle {
	var kind schema.DialogueKind
	if d != nil {
		kind = d.Kind()
	}
	return &lifecycle{id: newDialogueID(), kind: kind, player: player, sink: rt.sink}
}

func (l *lifecycle) emit(phase schema.DialoguePhase, attempt int) {
	if l.sink == nil {
		return
	}
	l.sink.OnDialogueEvent(schema.DialogueEvent{
		DialogueID: l.id,
		Kind:       l.kind,
		Player:     l.player,
		Phase:      phase,
		Attempt:    attempt,
		At:         time.Now(),
	})
}

func (l *lifecycle) finish(log pslog.Logger, result schema.Result) schema.Result {
	event := schema.DialogueEvent{
		DialogueID: l.id,
		Kind:       l.kind,
		Player:     l.player,
		Outcome:    result.Outcome(),
		At:         time.Now(),
	}
	switch r := result.(type) {
	case schema.Canceled:
		event.Phase = schema.PhaseCanceled
		event.Reason = string(r.Reason)
		log.Debug("dialogue canceled", "reason", r.Reason)
	case schema.Rejected:
		event.Phase = schema.PhaseRejected
		event.Reason = string(r.Reason)
		if r.Err != nil {
			event.Err = r.Err.Error()
		}
		log.Warn("dialogue rejected", "reason", r.Reason, "err", r.Err)
	case schema.ButtonSelected:
		event.Phase = schema.PhaseSucceeded
		log.Debug("dialogue answered", "button", r.Name)
	default:
		event.Phase = schema.PhaseSucceeded
		log.Debug("dialogue answered", "outcome", result.Outcome())
	}
	if l.sink != nil {
		l.sink.OnDialogueEvent(event)
	}
	return result
}
