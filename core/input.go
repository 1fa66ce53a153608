package core

import (
	"context"
	"fmt"
	"slices"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// InputDialogue is a modal form of input and layout elements. It is an
// immutable value; every setter returns a modified copy.
type InputDialogue struct {
	rt           *Runtime
	title        schema.Text
	submitButton schema.Text
	elements     []FormElement
}

// Input starts an input form dialogue.
func (rt *Runtime) Input(title schema.Text) InputDialogue {
	return InputDialogue{rt: rt, title: title}
}

// WithSubmitButton sets the submit button label.
func (d InputDialogue) WithSubmitButton(text schema.Text) InputDialogue {
	d.submitButton = text
	return d
}

// AddElement appends an input element.
func (d InputDialogue) AddElement(el InputElement) InputDialogue {
	return d.AddElements(el)
}

// AddElements appends input and layout elements. Nil elements are skipped.
func (d InputDialogue) AddElements(elements ...FormElement) InputDialogue {
	next := slices.Clip(d.elements)
	for _, el := range elements {
		if el != nil {
			next = append(next, el)
		}
	}
	d.elements = next
	return d
}

// AddDivider appends a divider.
func (d InputDialogue) AddDivider() InputDialogue {
	return d.AddElements(Divider{})
}

// AddHeader appends a header.
func (d InputDialogue) AddHeader(text schema.Text) InputDialogue {
	return d.AddElements(Header{Text: text})
}

// AddLabel appends a label.
func (d InputDialogue) AddLabel(text schema.Text) InputDialogue {
	return d.AddElements(Label{Text: text})
}

// Len returns the number of elements, layout elements included.
func (d InputDialogue) Len() int { return len(d.elements) }

// Open shows the dialogue to player. See Runtime.Open.
func (d InputDialogue) Open(ctx context.Context, player host.Player, opts ...ShowOption) schema.Result {
	return d.rt.Open(ctx, d, player, opts...)
}

// Kind implements Dialogue.
func (InputDialogue) Kind() schema.DialogueKind { return schema.DialogueInput }

// BuildRequest implements Dialogue.
func (d InputDialogue) BuildRequest(forms host.Forms, _ ShowOptions) (Request, error) {
	if len(d.elements) == 0 {
		return nil, schema.ErrMissingElements
	}
	seen := make(map[string]struct{}, len(d.elements))
	controls := make([]host.Control, 0, len(d.elements))
	for _, el := range d.elements {
		switch el := el.(type) {
		case InputElement:
			if dd, ok := el.(Dropdown); ok {
				if err := dd.validate(); err != nil {
					return nil, err
				}
			}
			if _, dup := seen[el.Name()]; dup {
				return nil, &schema.DuplicateElementError{Name: el.Name()}
			}
			seen[el.Name()] = struct{}{}
			controls = append(controls, el.control())
		case LayoutElement:
			control, err := layoutControl(el)
			if err != nil {
				return nil, err
			}
			controls = append(controls, control)
		default:
			return nil, &schema.UnknownElementError{Element: el}
		}
	}
	form := host.ModalForm{Title: d.title, SubmitButton: d.submitButton, Controls: controls}
	return RequestFunc(func(ctx context.Context, player host.Player) (host.Response, error) {
		return forms.ShowModalForm(ctx, player, form)
	}), nil
}

// Decode implements Dialogue. FormValues align with every element, layout
// elements included; positions the host left unset take the element default.
func (d InputDialogue) Decode(_ context.Context, resp host.Response, _ ShowOptions) (schema.Result, error) {
	if len(resp.FormValues) > len(d.elements) {
		return nil, host.NewRejectError(schema.RejectMalformedResponse,
			fmt.Sprintf("modal form returned %d values for %d elements", len(resp.FormValues), len(d.elements)))
	}
	values := make(map[string]schema.Value, len(d.elements))
	for i, el := range d.elements {
		input, ok := el.(InputElement)
		if !ok {
			continue
		}
		var raw schema.Value
		if i < len(resp.FormValues) {
			raw = resp.FormValues[i]
		}
		value, err := input.decode(raw)
		if err != nil {
			return nil, err
		}
		values[input.Name()] = value
	}
	return schema.InputValues{Values: values}, nil
}
