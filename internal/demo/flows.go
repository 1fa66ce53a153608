// Package demo holds the example dialogue flows shipped with the CLI.
package demo

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"pkt.systems/scriptdialogue/core"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/internal/logx"
	"pkt.systems/scriptdialogue/schema"
)

// Env is what a flow runs against.
type Env struct {
	Runtime   *core.Runtime
	Scheduler host.Scheduler
	Player    host.Player
}

// Flow runs a scripted sequence of dialogues and returns the result of the
// first dialogue it opened.
type Flow func(ctx context.Context, env Env) schema.Result

const (
	// FlowMenu is a button menu whose first button opens a nested dialogue from its callback.
	FlowMenu = "menu"
	// FlowBusyMenu opens a menu after a delay, retrying while the player is busy.
	FlowBusyMenu = "busy-menu"
	// FlowDualInput is a dual button dialogue leading to an input form.
	FlowDualInput = "dual-input"
)

var flows = map[string]Flow{
	FlowMenu:      Menu,
	FlowBusyMenu:  BusyMenu,
	FlowDualInput: DualInput,
}

// Lookup returns the named flow.
func Lookup(name string) (Flow, bool) {
	f, ok := flows[name]
	return f, ok
}

// Names returns the flow names in sorted order.
func Names() []string {
	names := make([]string, 0, len(flows))
	for name := range flows {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Menu shows a three button menu. The first button confirms the choice from
// its callback; any other choice is confirmed after the menu closes.
func Menu(ctx context.Context, env Env) schema.Result {
	rt := env.Runtime
	confirm := func(ctx context.Context, body string) schema.Result {
		return rt.MultiButton(schema.String("You selected")).
			SetBody(schema.String(body)).
			AddButtons(core.Button{Name: "ok", Text: schema.String("OK")}).
			Open(ctx, env.Player)
	}
	result := rt.MultiButton(schema.Translate("scriptdialogue:example_01.title")).
		SetBody(schema.String("This is my content")).
		AddButton("one", schema.String("Button with callback"), core.WithCallback(func(ctx context.Context, selected string) (any, error) {
			return confirm(ctx, fmt.Sprintf("You've selected: %s using the Callback", selected)), nil
		})).
		AddButton("two", schema.String("Button two")).
		AddButton("three", schema.String("Button three")).
		Open(ctx, env.Player, core.WithCameraLock(true), core.WithBusyRetries(10, 40))

	if selected, ok := result.(schema.ButtonSelected); ok && selected.CallbackResult == nil {
		confirm(ctx, fmt.Sprintf("You've selected: %s", selected.Name))
	}
	return result
}

// BusyMenu waits 40 ticks, then insists on showing a single button menu.
func BusyMenu(ctx context.Context, env Env) schema.Result {
	if env.Scheduler != nil {
		done := make(chan struct{})
		id := env.Scheduler.RunTimeout(func() { close(done) }, 40)
		select {
		case <-done:
		case <-ctx.Done():
			env.Scheduler.ClearRun(id)
			logx.Ctx(ctx).Debug("demo busy menu delay interrupted", "err", ctx.Err())
		}
	}
	return env.Runtime.MultiButton(schema.String("I must open!")).
		SetBody(schema.String("I have been trying to contact you for a while!")).
		AddButton("ok", schema.String("Yeah... OK!")).
		Open(ctx, env.Player, core.WithCameraLock(true), core.WithBusyRetries(10, 20))
}

// DualInput asks whether to show an input form and echoes what was entered.
func DualInput(ctx context.Context, env Env) schema.Result {
	rt := env.Runtime
	result := rt.DualButton(schema.String("Dual button"),
		core.DualButton{Name: "top", Text: schema.String("Show input button")},
		core.DualButton{Name: "bottom", Text: schema.String("Cancel")},
	).Open(ctx, env.Player)

	selected, ok := result.(schema.ButtonSelected)
	if !ok || selected.Name != "top" {
		return result
	}
	input := rt.Input(schema.String("I am the input script dialogue")).
		AddElement(core.NewDropdown("d1", schema.String("My dropdown")).
			AddOption(schema.String("My first label"), schema.StringValue("label-1")).
			AddOption(schema.String("My second label"), schema.StringValue("other-label")).
			WithDefaultIndex(1)).
		AddElement(core.NewSlider("s1", schema.String("The slider"), 10, 20).WithStep(2).WithDefault(10)).
		AddElement(core.NewToggle("t1", schema.String("The toggle!")).WithDefault(true)).
		AddElement(core.NewTextField("text1", schema.String("What do you want to write???"), schema.String("I am the placeholder")).WithDefault("default value")).
		Open(ctx, env.Player)

	values, ok := input.(schema.InputValues)
	if !ok {
		return schema.ButtonSelected{Name: selected.Name, CallbackResult: input}
	}
	body, err := json.MarshalIndent(values.Values, "", "  ")
	if err != nil {
		body = []byte(err.Error())
	}
	rt.MultiButton(schema.String("You selected")).
		SetBody(schema.String("You've selected:\n " + string(body))).
		AddButtons(core.Button{Name: "ok", Text: schema.String("OK")}).
		Open(ctx, env.Player)
	return schema.ButtonSelected{Name: selected.Name, CallbackResult: values}
}
