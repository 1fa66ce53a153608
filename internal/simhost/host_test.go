package simhost

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

func TestParseScenarioExpandsBusy(t *testing.T) {
	sc, err := ParseScenario([]byte(`
name: demo
steps:
  - busy: 2
    expect: action
  - select: 1
  - values: ["a", 3, true, null]
`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sc.Player != "Steve" {
		t.Fatalf("expected default player, got %q", sc.Player)
	}
	answers := sc.answers()
	if len(answers) != 4 {
		t.Fatalf("expected 4 answers, got %d", len(answers))
	}
	if answers[1].Expect != host.FormAction {
		t.Fatalf("expected expect to carry over, got %q", answers[1].Expect)
	}
}

func TestParseScenarioRejectsBadSteps(t *testing.T) {
	cases := map[string]string{
		"empty":      "name: x\n",
		"two fields": "steps:\n  - busy: 1\n    close: true\n",
		"no field":   "steps:\n  - expect: modal\n",
		"bad expect": "steps:\n  - close: true\n    expect: popup\n",
		"unknown":    "steps:\n  - nope: 1\n",
		"bad value":  "steps:\n  - values: [[1]]\n",
	}
	for name, doc := range cases {
		if _, err := ParseScenario([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
	if _, err := ParseScenario([]byte("name: x\n")); !errors.Is(err, ErrEmptyScenario) {
		t.Fatalf("expected empty scenario error, got %v", err)
	}
}

func TestLoadScenarioFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte("player: Alex\nsteps:\n  - close: true\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Player != "Alex" || len(sc.Steps) != 1 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	data, err := sc.Marshal()
	if err != nil || !strings.Contains(string(data), "player: Alex") {
		t.Fatalf("unexpected marshal %q (%v)", data, err)
	}
}

func TestHostAnswersInOrder(t *testing.T) {
	one := 1
	h, player := NewFromScenario(Scenario{Player: "Steve", Steps: []Step{
		{Busy: 1},
		{Select: &one},
		{Values: []any{"x", nil}},
		{Close: true},
		{Reject: "UserQuit"},
	}}, Options{})
	ctx := context.Background()

	resp, err := h.ShowActionForm(ctx, player, host.ActionForm{})
	if err != nil || !resp.Busy() {
		t.Fatalf("expected busy, got %+v %v", resp, err)
	}
	resp, err = h.ShowMessageForm(ctx, player, host.MessageForm{})
	if err != nil || resp.Selection == nil || *resp.Selection != 1 {
		t.Fatalf("expected selection 1, got %+v %v", resp, err)
	}
	resp, err = h.ShowModalForm(ctx, player, host.ModalForm{Controls: []host.Control{host.Label(nil), host.Toggle(nil, false, nil)}})
	if err != nil || len(resp.FormValues) != 2 || resp.FormValues[0] != schema.StringValue("x") || resp.FormValues[1].IsSet() {
		t.Fatalf("expected values, got %+v %v", resp, err)
	}
	resp, err = h.ShowActionForm(ctx, player, host.ActionForm{})
	if err != nil || !resp.Canceled || resp.CancelReason != schema.CancelUserClosed {
		t.Fatalf("expected closed, got %+v %v", resp, err)
	}
	_, err = h.ShowActionForm(ctx, player, host.ActionForm{})
	var reject *host.RejectError
	if !errors.As(err, &reject) || reject.Reason != schema.RejectUserQuit {
		t.Fatalf("expected user quit, got %v", err)
	}
	_, err = h.ShowActionForm(ctx, player, host.ActionForm{})
	if !errors.As(err, &reject) || reject.Reason != schema.RejectServerShutdown {
		t.Fatalf("expected exhausted scenario, got %v", err)
	}
	if len(h.Shown()) != 6 || h.Remaining() != 0 {
		t.Fatalf("expected 6 shows and no remaining steps, got %d %d", len(h.Shown()), h.Remaining())
	}
}

func TestHostExpectMismatchIsMalformed(t *testing.T) {
	h, player := NewFromScenario(Scenario{Steps: []Step{{Close: true, Expect: host.FormModal}}}, Options{})
	_, err := h.ShowActionForm(context.Background(), player, host.ActionForm{})
	var reject *host.RejectError
	if !errors.As(err, &reject) || reject.Reason != schema.RejectMalformedResponse {
		t.Fatalf("expected malformed response, got %v", err)
	}
}

func TestHostInvalidateStep(t *testing.T) {
	var seen []Shown
	h, player := NewFromScenario(Scenario{Player: "Steve", Steps: []Step{{Invalidate: true}, {Close: true}}}, Options{
		OnShow: func(s Shown) { seen = append(seen, s) },
	})
	resp, err := h.ShowActionForm(context.Background(), player, host.ActionForm{})
	if err != nil || !resp.Busy() {
		t.Fatalf("expected busy answer, got %+v %v", resp, err)
	}
	if player.IsValid() {
		t.Fatalf("expected player invalid")
	}
	_, err = h.ShowActionForm(context.Background(), player, host.ActionForm{})
	var reject *host.RejectError
	if !errors.As(err, &reject) || reject.Reason != schema.RejectUserQuit {
		t.Fatalf("expected user quit for invalid player, got %v", err)
	}
	if len(seen) != 1 || seen[0].Player != "Steve" {
		t.Fatalf("expected one recorded show, got %+v", seen)
	}
}

func TestPlayerUnlockAckFailures(t *testing.T) {
	p := NewPlayer("Steve")
	p.FailUnlockAcks(2)
	cmd := "inputpermission set Steve camera enabled"
	for i := range 2 {
		if res, _ := p.RunCommand(cmd); res.SuccessCount != 0 {
			t.Fatalf("attempt %d: expected failure", i)
		}
	}
	if res, _ := p.RunCommand(cmd); res.SuccessCount != 1 {
		t.Fatalf("expected ack after failures")
	}
	if res, _ := p.RunCommand("inputpermission set Steve camera disabled"); res.SuccessCount != 1 {
		t.Fatalf("expected lock commands to succeed")
	}
	if len(p.Commands()) != 4 {
		t.Fatalf("expected 4 commands, got %d", len(p.Commands()))
	}
}
