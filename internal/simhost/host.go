// Package simhost is a scripted in-process game host used by the simulate
// command and by tests. Forms are answered from a Scenario in order.
package simhost

import (
	"context"
	"fmt"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// Shown records one form show.
type Shown struct {
	Type    host.FormType
	Player  string
	Message host.MessageForm
	Action  host.ActionForm
	Modal   host.ModalForm
	Answer  host.Response
	Err     error
}

// Options configures a Host.
type Options struct {
	Logger pslog.Logger
	// OnShow is called after every show with the recorded form and its answer.
	OnShow func(Shown)
}

// Host answers forms from a scripted queue. It implements host.Forms.
type Host struct {
	mu      sync.Mutex
	answers []Step
	shown   []Shown
	players map[string]*Player
	log     pslog.Logger
	onShow  func(Shown)
}

// New constructs a Host answering with the scenario steps.
func New(sc Scenario, opts Options) *Host {
	log := opts.Logger
	if log == nil {
		log = pslog.Ctx(context.Background())
	}
	return &Host{
		answers: sc.answers(),
		players: make(map[string]*Player),
		log:     log,
		onShow:  opts.OnShow,
	}
}

// NewFromScenario constructs a Host and the scenario player.
func NewFromScenario(sc Scenario, opts Options) (*Host, *Player) {
	h := New(sc, opts)
	player := h.Player(sc.Player)
	player.FailUnlockAcks(sc.UnlockAckFailures)
	return h, player
}

// Player returns the named player, creating it on first use.
func (h *Host) Player(name string) *Player {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.players[name]
	if !ok {
		p = NewPlayer(name)
		h.players[name] = p
	}
	return p
}

// Remaining returns the number of unanswered scripted steps.
func (h *Host) Remaining() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.answers)
}

// Shown returns every form shown so far.
func (h *Host) Shown() []Shown {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Shown(nil), h.shown...)
}

// ShowMessageForm implements host.Forms.
func (h *Host) ShowMessageForm(ctx context.Context, player host.Player, form host.MessageForm) (host.Response, error) {
	return h.show(ctx, player, Shown{Type: host.FormMessage, Message: form}, 2)
}

// ShowActionForm implements host.Forms.
func (h *Host) ShowActionForm(ctx context.Context, player host.Player, form host.ActionForm) (host.Response, error) {
	buttons := 0
	for _, c := range form.Controls {
		if c.Kind == host.ControlButton {
			buttons++
		}
	}
	return h.show(ctx, player, Shown{Type: host.FormAction, Action: form}, buttons)
}

// ShowModalForm implements host.Forms.
func (h *Host) ShowModalForm(ctx context.Context, player host.Player, form host.ModalForm) (host.Response, error) {
	return h.show(ctx, player, Shown{Type: host.FormModal, Modal: form}, len(form.Controls))
}

func (h *Host) show(ctx context.Context, player host.Player, shown Shown, width int) (host.Response, error) {
	if err := ctx.Err(); err != nil {
		return host.Response{}, err
	}
	if player == nil || !player.IsValid() {
		return host.Response{}, host.NewRejectError(schema.RejectUserQuit, "player is not online")
	}
	shown.Player = player.Name()
	log := h.log.With("player", shown.Player)

	h.mu.Lock()
	var step Step
	exhausted := len(h.answers) == 0
	if !exhausted {
		step = h.answers[0]
		h.answers = h.answers[1:]
	}
	h.mu.Unlock()

	var resp host.Response
	var err error
	switch {
	case exhausted:
		err = host.NewRejectError(schema.RejectServerShutdown, "scenario exhausted")
	default:
		resp, err = h.answer(player, shown.Type, step, width)
	}
	shown.Answer = resp
	shown.Err = err
	log.Debug("simhost form shown", "form", shown.Type, "canceled", resp.Canceled, "err", err)

	h.mu.Lock()
	h.shown = append(h.shown, shown)
	onShow := h.onShow
	h.mu.Unlock()
	if onShow != nil {
		onShow(shown)
	}
	return resp, err
}

func (h *Host) answer(player host.Player, formType host.FormType, step Step, width int) (host.Response, error) {
	if step.Expect != "" && step.Expect != formType {
		return host.Response{}, host.NewRejectError(schema.RejectMalformedResponse,
			fmt.Sprintf("scenario expected a %s form, got %s", step.Expect, formType))
	}
	switch {
	case step.Busy > 0:
		return host.Canceled(schema.CancelUserBusy), nil
	case step.Close:
		return host.Canceled(schema.CancelUserClosed), nil
	case step.Invalidate:
		if p, ok := player.(*Player); ok {
			p.Invalidate()
		}
		return host.Canceled(schema.CancelUserBusy), nil
	case step.Reject != "":
		return host.Response{}, host.NewRejectError(schema.RejectReason(step.Reject), "scripted rejection")
	case step.Select != nil:
		if formType == host.FormModal {
			return host.Response{}, host.NewRejectError(schema.RejectMalformedResponse, "scenario selected a button on a modal form")
		}
		if *step.Select < 0 || *step.Select >= width {
			h.log.Warn("simhost selection outside form", "selection", *step.Select, "buttons", width)
		}
		return host.Selected(*step.Select), nil
	default:
		if formType != host.FormModal {
			return host.Response{}, host.NewRejectError(schema.RejectMalformedResponse, "scenario submitted values to a button form")
		}
		values := make([]schema.Value, len(step.Values))
		for i, raw := range step.Values {
			v, err := schema.ValueOf(raw)
			if err != nil {
				return host.Response{}, host.NewRejectError(schema.RejectMalformedResponse, err.Error())
			}
			values[i] = v
		}
		if len(values) > width {
			h.log.Warn("simhost more values than controls", "values", len(values), "controls", width)
		}
		return host.Submitted(values...), nil
	}
}
