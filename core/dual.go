package core

import (
	"context"
	"fmt"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// DualButton is one of the two buttons of a DualButtonDialogue.
type DualButton struct {
	Name     string
	Text     schema.Text
	Callback ButtonCallback
}

// DualButtonDialogue is a message form with two mutually exclusive buttons.
// It is an immutable value; every setter returns a modified copy.
type DualButtonDialogue struct {
	rt     *Runtime
	title  schema.Text
	body   schema.Text
	top    DualButton
	bottom DualButton
}

// DualButton starts a two button dialogue.
func (rt *Runtime) DualButton(title schema.Text, top, bottom DualButton) DualButtonDialogue {
	return DualButtonDialogue{rt: rt, title: title, top: top, bottom: bottom}
}

// SetBody sets the text shown above the buttons.
func (d DualButtonDialogue) SetBody(body schema.Text) DualButtonDialogue {
	d.body = body
	return d
}

// Open shows the dialogue to player. See Runtime.Open.
func (d DualButtonDialogue) Open(ctx context.Context, player host.Player, opts ...ShowOption) schema.Result {
	return d.rt.Open(ctx, d, player, opts...)
}

// Kind implements Dialogue.
func (DualButtonDialogue) Kind() schema.DialogueKind { return schema.DialogueDualButton }

// BuildRequest implements Dialogue. The bottom button takes host slot 1.
func (d DualButtonDialogue) BuildRequest(forms host.Forms, _ ShowOptions) (Request, error) {
	form := host.MessageForm{
		Title:   d.title,
		Body:    d.body,
		Button1: d.bottom.Text,
		Button2: d.top.Text,
	}
	return RequestFunc(func(ctx context.Context, player host.Player) (host.Response, error) {
		return forms.ShowMessageForm(ctx, player, form)
	}), nil
}

// Decode implements Dialogue. Selection 0 is the bottom button, 1 the top button.
func (d DualButtonDialogue) Decode(ctx context.Context, resp host.Response, _ ShowOptions) (schema.Result, error) {
	if resp.Selection == nil {
		return nil, host.NewRejectError(schema.RejectMalformedResponse, "message form answered without selection")
	}
	var button DualButton
	switch *resp.Selection {
	case 0:
		button = d.bottom
	case 1:
		button = d.top
	default:
		return nil, host.NewRejectError(schema.RejectMalformedResponse,
			fmt.Sprintf("message form selection %d out of range", *resp.Selection))
	}
	return selectButton(ctx, button.Name, button.Callback)
}
