package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/scriptdialogue/internal/demo"
	"pkt.systems/scriptdialogue/schema"
)

func fastConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "config_version: 1\nhost:\n  tick_millis: 1\nlogging:\n  level: error\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuiltinScenariosCoverEveryFlow(t *testing.T) {
	for _, name := range demo.Names() {
		sc, err := builtinScenario(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if sc.Flow != name {
			t.Fatalf("%s: scenario flow is %q", name, sc.Flow)
		}
	}
}

func TestSimulateMenu(t *testing.T) {
	out, err := execute(t, "simulate", "-c", fastConfig(t))
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for _, want := range []string{"flow menu as Steve", "multi_button showing (attempt 1)", "» selected one", "  » selected ok"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "unused") {
		t.Fatalf("expected every scenario answer to be used:\n%s", out)
	}
}

func TestSimulateDualInputWithCommands(t *testing.T) {
	out, err := execute(t, "simulate", "-c", fastConfig(t), "--flow", demo.FlowDualInput, "--commands")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for _, want := range []string{"answer: button 1", `answer: [0, 14, <unset>, "hello"]`, "» selected top", "$ inputpermission set Alex camera disabled"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSimulateScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.yaml")
	doc := "flow: busy-menu\nplayer: Alex\nsteps:\n  - busy: 2\n  - close: true\n  - select: 0\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	out, err := execute(t, "simulate", "-c", fastConfig(t), "--scenario", path, "--player", "Steve")
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	for _, want := range []string{"flow busy-menu as Steve", "player busy, retry 2", "» canceled: UserClosed", "1 scenario answers unused"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestSimulateUnknownFlow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.yaml")
	if err := os.WriteFile(path, []byte("flow: nope\nsteps:\n  - close: true\n"), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	_, err := execute(t, "simulate", "-c", fastConfig(t), "--scenario", path)
	if err == nil || !strings.Contains(err.Error(), `unknown flow "nope"`) {
		t.Fatalf("expected unknown flow error, got %v", err)
	}
	if _, err := execute(t, "simulate", "-c", fastConfig(t), "--flow", "nope"); err == nil {
		t.Fatalf("expected missing built-in scenario error")
	}
}

func TestConfigInitAndShow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	out, err := execute(t, "config", "init", "-c", path)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected path in output, got %q", out)
	}
	if _, err := execute(t, "config", "init", "-c", path); err == nil {
		t.Fatalf("expected existing config to be kept")
	}
	if _, err := execute(t, "config", "init", "-c", path, "--force"); err != nil {
		t.Fatalf("config init --force: %v", err)
	}
	out, err = execute(t, "config", "show", "-c", path)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "config_version: 1") || !strings.Contains(out, "addr: 127.0.0.1:27490") {
		t.Fatalf("unexpected config output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "pkt.systems/scriptdialogue ") {
		t.Fatalf("unexpected version output %q", out)
	}
}

func TestSummarize(t *testing.T) {
	got := summarize(schema.ButtonSelected{Name: "one", CallbackResult: schema.Canceled{Reason: schema.CancelUserClosed}})
	if got != "selected one; canceled: UserClosed" {
		t.Fatalf("unexpected summary %q", got)
	}
}
