package core

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

type fakePlayer struct {
	name    string
	invalid atomic.Bool
	// ack decides the SuccessCount of each command; nil acknowledges everything.
	ack func(command string) int

	mu       sync.Mutex
	commands []string
}

func newFakePlayer(name string) *fakePlayer {
	return &fakePlayer{name: name}
}

func (p *fakePlayer) Name() string  { return p.name }
func (p *fakePlayer) IsValid() bool { return !p.invalid.Load() }

func (p *fakePlayer) RunCommand(command string) (host.CommandResult, error) {
	p.mu.Lock()
	p.commands = append(p.commands, command)
	p.mu.Unlock()
	if p.ack == nil {
		return host.CommandResult{SuccessCount: 1}, nil
	}
	return host.CommandResult{SuccessCount: p.ack(command)}, nil
}

func (p *fakePlayer) Commands() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.commands...)
}

type shownForm struct {
	Type    host.FormType
	Message host.MessageForm
	Action  host.ActionForm
	Modal   host.ModalForm
}

type scriptedAnswer struct {
	resp host.Response
	err  error
}

// fakeForms answers shows from a queue; an empty queue answers with the fallback.
type fakeForms struct {
	mu       sync.Mutex
	answers  []scriptedAnswer
	fallback *scriptedAnswer
	shown    []shownForm
	// onShow runs before the answer is taken, outside the lock.
	onShow func(n int)
}

func (f *fakeForms) queue(resp host.Response) *fakeForms {
	f.answers = append(f.answers, scriptedAnswer{resp: resp})
	return f
}

func (f *fakeForms) queueErr(err error) *fakeForms {
	f.answers = append(f.answers, scriptedAnswer{err: err})
	return f
}

func (f *fakeForms) always(resp host.Response) *fakeForms {
	f.fallback = &scriptedAnswer{resp: resp}
	return f
}

func (f *fakeForms) next(form shownForm) (host.Response, error) {
	f.mu.Lock()
	f.shown = append(f.shown, form)
	n := len(f.shown)
	hook := f.onShow
	f.mu.Unlock()
	if hook != nil {
		hook(n)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.answers) > 0 {
		answer := f.answers[0]
		f.answers = f.answers[1:]
		return answer.resp, answer.err
	}
	if f.fallback != nil {
		return f.fallback.resp, f.fallback.err
	}
	return host.Response{}, errors.New("fake forms: no scripted answer")
}

func (f *fakeForms) Shown() []shownForm {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]shownForm(nil), f.shown...)
}

func (f *fakeForms) ShowMessageForm(_ context.Context, _ host.Player, form host.MessageForm) (host.Response, error) {
	return f.next(shownForm{Type: host.FormMessage, Message: form})
}

func (f *fakeForms) ShowActionForm(_ context.Context, _ host.Player, form host.ActionForm) (host.Response, error) {
	return f.next(shownForm{Type: host.FormAction, Action: form})
}

func (f *fakeForms) ShowModalForm(_ context.Context, _ host.Player, form host.ModalForm) (host.Response, error) {
	return f.next(shownForm{Type: host.FormModal, Modal: form})
}

type recordingSink struct {
	mu     sync.Mutex
	events []schema.DialogueEvent
}

func (s *recordingSink) OnDialogueEvent(event schema.DialogueEvent) {
	s.mu.Lock()
	s.events = append(s.events, event)
	s.mu.Unlock()
}

func (s *recordingSink) Phases() []schema.DialoguePhase {
	s.mu.Lock()
	defer s.mu.Unlock()
	phases := make([]schema.DialoguePhase, 0, len(s.events))
	for _, ev := range s.events {
		phases = append(phases, ev.Phase)
	}
	return phases
}

type testEnv struct {
	rt        *Runtime
	forms     *fakeForms
	player    *fakePlayer
	sink      *recordingSink
	scheduler *host.TickScheduler
}

func newTestEnv(t *testing.T, cfg schema.DialogueConfig) *testEnv {
	t.Helper()
	env := &testEnv{
		forms:     &fakeForms{},
		player:    newFakePlayer("Steve"),
		sink:      &recordingSink{},
		scheduler: host.NewTickScheduler(time.Millisecond),
	}
	t.Cleanup(env.scheduler.Stop)
	rt, err := NewRuntime(cfg, RuntimeDeps{
		Forms:     env.forms,
		Scheduler: env.scheduler,
		EventSink: env.sink,
	})
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	env.rt = rt
	return env
}

func defaultEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnv(t, schema.DefaultDialogueConfig())
}

func txt(s string) schema.Text { return schema.String(s) }
