package schema

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTranslateEncodesHostRawMessage(t *testing.T) {
	cases := []struct {
		name string
		msg  RawMessage
		want string
	}{
		{"key only", Translate("menu.title"), `{"translate":"menu.title"}`},
		{"one arg", Translate("menu.greet", "Steve"), `{"translate":"menu.greet","with":["Steve"]}`},
		{"many args", Translate("menu.pair", "a", "b"), `{"translate":"menu.pair","with":["a","b"]}`},
		{"nested", TranslateMessage("menu.outer", Translate("menu.inner")), `{"translate":"menu.outer","with":{"translate":"menu.inner"}}`},
		{"rawtext", RawMessage{RawText: []RawMessage{{Text: "hi "}, Translate("x")}}, `{"rawtext":[{"text":"hi "},{"translate":"x"}]}`},
	}
	for _, tc := range cases {
		data, err := json.Marshal(tc.msg)
		if err != nil {
			t.Fatalf("%s: marshal: %v", tc.name, err)
		}
		if string(data) != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, data)
		}
		var back RawMessage
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("%s: unmarshal: %v", tc.name, err)
		}
		if back.String() != tc.msg.String() {
			t.Fatalf("%s: expected %q after decode, got %q", tc.name, tc.msg.String(), back.String())
		}
	}
}

func TestRawMessageRejectsScalarWith(t *testing.T) {
	var msg RawMessage
	if err := json.Unmarshal([]byte(`{"translate":"a","with":"b"}`), &msg); err == nil {
		t.Fatalf("expected error for scalar with")
	}
}

func TestTranslateCopiesArgs(t *testing.T) {
	args := []string{"a"}
	msg := Translate("k", args...)
	args[0] = "changed"
	if msg.With[0] != "a" {
		t.Fatalf("expected translate to copy its arguments, got %v", msg.With)
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty(nil) || !IsEmpty(String("")) || !IsEmpty(RawMessage{}) {
		t.Fatalf("expected empty texts")
	}
	if IsEmpty(String("x")) || IsEmpty(Translate("k")) {
		t.Fatalf("expected non-empty texts")
	}
}

func TestValueOfAndAccessors(t *testing.T) {
	v, err := ValueOf(3)
	if err != nil {
		t.Fatalf("value of: %v", err)
	}
	if n, ok := v.Number(); !ok || n != 3 {
		t.Fatalf("expected number 3, got %v %v", n, ok)
	}
	if i, ok := v.Index(); !ok || i != 3 {
		t.Fatalf("expected index 3, got %v %v", i, ok)
	}
	if _, ok := NumberValue(1.5).Index(); ok {
		t.Fatalf("expected fractional index to fail")
	}
	if _, ok := NumberValue(-1).Index(); ok {
		t.Fatalf("expected negative index to fail")
	}
	if _, ok := StringValue("1").Index(); ok {
		t.Fatalf("expected string index to fail")
	}
	if _, err := ValueOf([]int{1}); err == nil {
		t.Fatalf("expected unsupported type error")
	}
	if (Value{}).IsSet() {
		t.Fatalf("expected zero value unset")
	}
}

func TestValueJSON(t *testing.T) {
	values := []Value{StringValue("a"), NumberValue(2), BoolValue(true), {}}
	data, err := json.Marshal(values)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["a",2,true,null]` {
		t.Fatalf("unexpected json %s", data)
	}
	var back []Value
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i := range values {
		if back[i] != values[i] {
			t.Fatalf("index %d: expected %v, got %v", i, values[i], back[i])
		}
	}
}

func TestResultOutcomes(t *testing.T) {
	cases := map[Outcome]Result{
		OutcomeCanceled:  Canceled{Reason: CancelUserBusy},
		OutcomeRejected:  Rejected{Reason: RejectUserQuit},
		OutcomeSelected:  ButtonSelected{Name: "a"},
		OutcomeSubmitted: InputValues{},
	}
	for want, result := range cases {
		if result.Outcome() != want {
			t.Fatalf("expected %s, got %s", want, result.Outcome())
		}
	}
	values := InputValues{Values: map[string]Value{"n": NumberValue(1)}}
	if _, ok := values.Str("n"); ok {
		t.Fatalf("expected string lookup of a number to fail")
	}
	if _, ok := values.Get("missing"); ok {
		t.Fatalf("expected missing value")
	}
}

func TestParseReasons(t *testing.T) {
	if ParseRejectReason("UserQuit") != RejectUserQuit || ParseRejectReason("bogus") != RejectNone {
		t.Fatalf("unexpected reject reason parsing")
	}
	if ParseCancelReason("UserBusy") != CancelUserBusy || ParseCancelReason("") != CancelUserClosed {
		t.Fatalf("unexpected cancel reason parsing")
	}
}

func TestNormalizeDialogueConfig(t *testing.T) {
	cfg := DefaultDialogueConfig()
	if !cfg.LockCamera || cfg.BusyRetriesCount != 5 || cfg.BusyRetriesTicks != 5 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if _, err := NormalizeDialogueConfig(cfg); err != nil {
		t.Fatalf("normalize defaults: %v", err)
	}
	for _, mutate := range []func(*DialogueConfig){
		func(c *DialogueConfig) { c.BusyRetriesCount = -1 },
		func(c *DialogueConfig) { c.BusyRetriesTicks = -1 },
		func(c *DialogueConfig) { c.UnlockMaxAttempts = -1 },
	} {
		bad := DefaultDialogueConfig()
		mutate(&bad)
		if _, err := NormalizeDialogueConfig(bad); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("expected invalid config, got %v", err)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	if got := (&MissingDropdownOptionsError{Name: "color"}).Error(); got != "missing dropdown options for color" {
		t.Fatalf("unexpected message %q", got)
	}
	if ErrMissingElements.Error() != "missing input elements" {
		t.Fatalf("unexpected message %q", ErrMissingElements.Error())
	}
	inner := errors.New("inner")
	if err := (&CallbackError{Button: "b", Err: inner}); !errors.Is(err, inner) {
		t.Fatalf("expected callback error to unwrap")
	}
}
