package core

import (
	"context"
	"fmt"
	"slices"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// MultiButtonDialogue is an action form listing buttons and layout elements
// in insertion order. It is an immutable value; every setter returns a
// modified copy, so a partially built dialogue can be reused as a template.
type MultiButtonDialogue struct {
	rt      *Runtime
	title   schema.Text
	body    schema.Text
	entries []ListEntry
}

// MultiButton starts a button list dialogue.
func (rt *Runtime) MultiButton(title schema.Text) MultiButtonDialogue {
	return MultiButtonDialogue{rt: rt, title: title}
}

// SetBody sets the text shown above the list.
func (d MultiButtonDialogue) SetBody(body schema.Text) MultiButtonDialogue {
	d.body = body
	return d
}

// AddButton appends a button.
func (d MultiButtonDialogue) AddButton(name string, text schema.Text, opts ...ButtonOption) MultiButtonDialogue {
	button := Button{Name: name, Text: text}
	for _, opt := range opts {
		if opt != nil {
			opt(&button)
		}
	}
	return d.AddEntries(button)
}

// AddButtonWith appends a prepared button.
func (d MultiButtonDialogue) AddButtonWith(button Button) MultiButtonDialogue {
	return d.AddEntries(button)
}

// AddButtons appends several buttons.
func (d MultiButtonDialogue) AddButtons(buttons ...Button) MultiButtonDialogue {
	for _, b := range buttons {
		d = d.AddEntries(b)
	}
	return d
}

// AddDivider appends a divider.
func (d MultiButtonDialogue) AddDivider() MultiButtonDialogue {
	return d.AddEntries(Divider{})
}

// AddHeader appends a header.
func (d MultiButtonDialogue) AddHeader(text schema.Text) MultiButtonDialogue {
	return d.AddEntries(Header{Text: text})
}

// AddLabel appends a label.
func (d MultiButtonDialogue) AddLabel(text schema.Text) MultiButtonDialogue {
	return d.AddEntries(Label{Text: text})
}

// AddEntries appends buttons and layout elements. Nil entries are skipped.
func (d MultiButtonDialogue) AddEntries(entries ...ListEntry) MultiButtonDialogue {
	next := slices.Clip(d.entries)
	for _, e := range entries {
		if e != nil {
			next = append(next, e)
		}
	}
	d.entries = next
	return d
}

// Buttons returns the buttons in selection order.
func (d MultiButtonDialogue) Buttons() []Button {
	var buttons []Button
	for _, e := range d.entries {
		if b, ok := e.(Button); ok {
			buttons = append(buttons, b)
		}
	}
	return buttons
}

// Open shows the dialogue to player. See Runtime.Open.
func (d MultiButtonDialogue) Open(ctx context.Context, player host.Player, opts ...ShowOption) schema.Result {
	return d.rt.Open(ctx, d, player, opts...)
}

// Kind implements Dialogue.
func (MultiButtonDialogue) Kind() schema.DialogueKind { return schema.DialogueMultiButton }

// BuildRequest implements Dialogue.
func (d MultiButtonDialogue) BuildRequest(forms host.Forms, _ ShowOptions) (Request, error) {
	if len(d.Buttons()) == 0 {
		return nil, schema.ErrMissingButtons
	}
	controls := make([]host.Control, 0, len(d.entries))
	for _, e := range d.entries {
		switch e := e.(type) {
		case Button:
			controls = append(controls, host.Button(e.Text, e.IconPath))
		case LayoutElement:
			control, err := layoutControl(e)
			if err != nil {
				return nil, err
			}
			controls = append(controls, control)
		default:
			return nil, &schema.UnknownElementError{Element: e}
		}
	}
	form := host.ActionForm{Title: d.title, Body: d.body, Controls: controls}
	return RequestFunc(func(ctx context.Context, player host.Player) (host.Response, error) {
		return forms.ShowActionForm(ctx, player, form)
	}), nil
}

// Decode implements Dialogue. The selection indexes buttons only.
func (d MultiButtonDialogue) Decode(ctx context.Context, resp host.Response, _ ShowOptions) (schema.Result, error) {
	if resp.Selection == nil {
		return nil, host.NewRejectError(schema.RejectMalformedResponse, "action form answered without selection")
	}
	buttons := d.Buttons()
	index := *resp.Selection
	if index < 0 || index >= len(buttons) {
		return nil, host.NewRejectError(schema.RejectMalformedResponse,
			fmt.Sprintf("action form selection %d out of range [0,%d)", index, len(buttons)))
	}
	button := buttons[index]
	return selectButton(ctx, button.Name, button.Callback)
}
