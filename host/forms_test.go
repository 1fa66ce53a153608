package host

import (
	"encoding/json"
	"strings"
	"testing"

	"pkt.systems/scriptdialogue/schema"
)

func TestControlIsLayout(t *testing.T) {
	tests := []struct {
		control Control
		want    bool
	}{
		{control: Divider(), want: true},
		{control: Header(schema.String("h")), want: true},
		{control: Label(schema.String("l")), want: true},
		{control: Button(schema.String("b"), ""), want: false},
		{control: Toggle(schema.String("t"), true, nil), want: false},
	}
	for _, tc := range tests {
		if got := tc.control.IsLayout(); got != tc.want {
			t.Fatalf("%s: IsLayout = %v, want %v", tc.control.Kind, got, tc.want)
		}
	}
}

func TestControlJSONCarriesTranslatedText(t *testing.T) {
	control := Button(schema.Translate("menu.ok"), "textures/ui/ok")
	data, err := json.Marshal(control)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"text":{"translate":"menu.ok"}`) {
		t.Fatalf("expected translated text in %s", got)
	}
	if !strings.Contains(got, `"default":null`) {
		t.Fatalf("expected unset default in %s", got)
	}
}

func TestResponseBusy(t *testing.T) {
	if !Canceled(schema.CancelUserBusy).Busy() {
		t.Fatalf("expected busy cancellation")
	}
	if Canceled(schema.CancelUserClosed).Busy() {
		t.Fatalf("did not expect closed cancellation to be busy")
	}
	if Selected(0).Busy() {
		t.Fatalf("did not expect selection to be busy")
	}
}

func TestRejectErrorMessage(t *testing.T) {
	err := NewRejectError(schema.RejectUserQuit, "")
	if err.Error() != "form rejected: UserQuit" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
