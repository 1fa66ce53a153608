package core

import (
	"context"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// ButtonCallback runs after its button is selected and before Open returns.
// It receives the selected button name; its value is attached to the result.
// Nested dialogues opened from a callback finish before the outer Open does.
type ButtonCallback func(ctx context.Context, selected string) (any, error)

// ListEntry is an entry of a multi button dialogue: a Button or a layout element.
type ListEntry interface {
	listEntry()
}

// FormElement is an entry of an input dialogue: an InputElement or a layout element.
type FormElement interface {
	formElement()
}

// LayoutElement is a passive element. It carries no name and no value.
type LayoutElement interface {
	ListEntry
	FormElement
	layoutElement()
}

// InputElement is a value-bearing input dialogue element.
type InputElement interface {
	FormElement
	Name() string
	control() host.Control
	defaultValue() schema.Value
	decode(raw schema.Value) (schema.Value, error)
}

// Button is a multi button dialogue button.
type Button struct {
	Name     string
	Text     schema.Text
	IconPath string
	Callback ButtonCallback
}

// ButtonOption configures a Button added through AddButton.
type ButtonOption func(*Button)

// WithIcon sets the button icon texture path.
func WithIcon(path string) ButtonOption {
	return func(b *Button) { b.IconPath = path }
}

// WithCallback sets the button callback.
func WithCallback(callback ButtonCallback) ButtonOption {
	return func(b *Button) { b.Callback = callback }
}

func (Button) listEntry() {}

// Divider is a horizontal separator.
type Divider struct{}

// Header is a section heading.
type Header struct {
	Text schema.Text
}

// Label is a line of body text.
type Label struct {
	Text schema.Text
}

func (Divider) listEntry()     {}
func (Divider) formElement()   {}
func (Divider) layoutElement() {}

func (Header) listEntry()     {}
func (Header) formElement()   {}
func (Header) layoutElement() {}

func (Label) listEntry()     {}
func (Label) formElement()   {}
func (Label) layoutElement() {}

func layoutControl(el LayoutElement) (host.Control, error) {
	switch el := el.(type) {
	case Divider:
		return host.Divider(), nil
	case Header:
		return host.Header(el.Text), nil
	case Label:
		return host.Label(el.Text), nil
	default:
		return host.Control{}, &schema.UnknownElementError{Element: el}
	}
}

func selectButton(ctx context.Context, name string, callback ButtonCallback) (schema.Result, error) {
	result := schema.ButtonSelected{Name: name}
	if callback == nil {
		return result, nil
	}
	value, err := callback(ctx, name)
	if err != nil {
		return nil, &schema.CallbackError{Button: name, Err: err}
	}
	result.CallbackResult = value
	return result, nil
}
