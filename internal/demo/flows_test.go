package demo

import (
	"context"
	"slices"
	"strings"
	"testing"
	"time"

	"pkt.systems/scriptdialogue/core"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/internal/simhost"
	"pkt.systems/scriptdialogue/schema"
)

func runFlow(t *testing.T, name, doc string) (schema.Result, *simhost.Host, *simhost.Player) {
	t.Helper()
	sc, err := simhost.ParseScenario([]byte(doc))
	if err != nil {
		t.Fatalf("parse scenario: %v", err)
	}
	h, player := simhost.NewFromScenario(sc, simhost.Options{})
	sched := host.NewTickScheduler(time.Millisecond)
	t.Cleanup(sched.Stop)
	rt, err := core.NewRuntime(schema.DefaultDialogueConfig(), core.RuntimeDeps{Forms: h, Scheduler: sched})
	if err != nil {
		t.Fatalf("new runtime: %v", err)
	}
	flow, ok := Lookup(name)
	if !ok {
		t.Fatalf("unknown flow %s", name)
	}
	return flow(context.Background(), Env{Runtime: rt, Scheduler: sched, Player: player}), h, player
}

func TestMenuCallbackOpensNestedDialogue(t *testing.T) {
	result, h, _ := runFlow(t, FlowMenu, "steps:\n  - select: 0\n  - select: 0\n")
	selected, ok := result.(schema.ButtonSelected)
	if !ok || selected.Name != "one" {
		t.Fatalf("expected one, got %#v", result)
	}
	nested, ok := selected.CallbackResult.(schema.ButtonSelected)
	if !ok || nested.Name != "ok" {
		t.Fatalf("expected nested ok, got %#v", selected.CallbackResult)
	}
	shown := h.Shown()
	if len(shown) != 2 {
		t.Fatalf("expected 2 forms, got %d", len(shown))
	}
	if !strings.Contains(shown[1].Action.Body.String(), "one using the Callback") {
		t.Fatalf("unexpected nested body %q", shown[1].Action.Body)
	}
}

func TestMenuConfirmsWithoutCallback(t *testing.T) {
	result, h, _ := runFlow(t, FlowMenu, "steps:\n  - select: 2\n  - close: true\n")
	if selected, ok := result.(schema.ButtonSelected); !ok || selected.Name != "three" {
		t.Fatalf("expected three, got %#v", result)
	}
	if got := h.Shown()[1].Action.Body.String(); got != "You've selected: three" {
		t.Fatalf("unexpected confirmation body %q", got)
	}
}

func TestBusyMenuRetries(t *testing.T) {
	result, h, _ := runFlow(t, FlowBusyMenu, "steps:\n  - busy: 3\n  - select: 0\n")
	if selected, ok := result.(schema.ButtonSelected); !ok || selected.Name != "ok" {
		t.Fatalf("expected ok, got %#v", result)
	}
	if len(h.Shown()) != 4 {
		t.Fatalf("expected 4 shows, got %d", len(h.Shown()))
	}
}

func TestDualInputFlow(t *testing.T) {
	result, h, player := runFlow(t, FlowDualInput, `
steps:
  - select: 1
    expect: message
  - values: [0, 14, null, "hello"]
    expect: modal
  - select: 0
`)
	selected, ok := result.(schema.ButtonSelected)
	if !ok || selected.Name != "top" {
		t.Fatalf("expected top, got %#v", result)
	}
	values := selected.CallbackResult.(schema.InputValues)
	if values.Values["d1"] != schema.StringValue("label-1") || values.Values["s1"] != schema.NumberValue(14) ||
		values.Values["t1"] != schema.BoolValue(true) || values.Values["text1"] != schema.StringValue("hello") {
		t.Fatalf("unexpected values %v", values.Values)
	}
	if body := h.Shown()[2].Action.Body.String(); !strings.Contains(body, `"d1": "label-1"`) {
		t.Fatalf("expected json echo, got %q", body)
	}
	if got := len(player.Commands()); got != 12 {
		t.Fatalf("expected lock and unlock for 3 dialogues, got %d", got)
	}
}

func TestDualInputCancel(t *testing.T) {
	result, h, _ := runFlow(t, FlowDualInput, "steps:\n  - select: 0\n")
	if selected, ok := result.(schema.ButtonSelected); !ok || selected.Name != "bottom" {
		t.Fatalf("expected bottom, got %#v", result)
	}
	if len(h.Shown()) != 1 {
		t.Fatalf("expected a single form, got %d", len(h.Shown()))
	}
}

func TestNames(t *testing.T) {
	if got := Names(); !slices.Equal(got, []string{FlowBusyMenu, FlowDualInput, FlowMenu}) {
		t.Fatalf("unexpected names %v", got)
	}
}
