package host

import (
	"context"

	"pkt.systems/scriptdialogue/schema"
)

// Forms is the host's native form API.
type Forms interface {
	ShowMessageForm(ctx context.Context, player Player, form MessageForm) (Response, error)
	ShowActionForm(ctx context.Context, player Player, form ActionForm) (Response, error)
	ShowModalForm(ctx context.Context, player Player, form ModalForm) (Response, error)
}

// FormType names the host form primitive.
type FormType string

const (
	// FormMessage is a two button message form.
	FormMessage FormType = "message"
	// FormAction is a button list form.
	FormAction FormType = "action"
	// FormModal is an input form.
	FormModal FormType = "modal"
)

// MessageForm is a body with two buttons. Selection 0 is Button1, 1 is Button2.
type MessageForm struct {
	Title   schema.Text `json:"title"`
	Body    schema.Text `json:"body,omitempty"`
	Button1 schema.Text `json:"button1"`
	Button2 schema.Text `json:"button2"`
}

// ActionForm is a body with a list of buttons and layout controls.
// Selection indexes the button controls only.
type ActionForm struct {
	Title    schema.Text `json:"title"`
	Body     schema.Text `json:"body,omitempty"`
	Controls []Control   `json:"controls"`
}

// ModalForm is a list of input and layout controls. FormValues in the
// response align with Controls, layout controls included.
type ModalForm struct {
	Title        schema.Text `json:"title"`
	SubmitButton schema.Text `json:"submit_button,omitempty"`
	Controls     []Control   `json:"controls"`
}

// ControlKind tags a Control.
type ControlKind string

const (
	ControlButton    ControlKind = "button"
	ControlDivider   ControlKind = "divider"
	ControlHeader    ControlKind = "header"
	ControlLabel     ControlKind = "label"
	ControlDropdown  ControlKind = "dropdown"
	ControlSlider    ControlKind = "slider"
	ControlTextField ControlKind = "text_field"
	ControlToggle    ControlKind = "toggle"
)

// Control is one host form entry. Text holds the button text, the layout
// text or the input label depending on Kind.
type Control struct {
	Kind         ControlKind   `json:"kind"`
	Text         schema.Text   `json:"text,omitempty"`
	IconPath     string        `json:"icon_path,omitempty"`
	Options      []schema.Text `json:"options,omitempty"`
	DefaultIndex int           `json:"default_index,omitempty"`
	Min          float64       `json:"min,omitempty"`
	Max          float64       `json:"max,omitempty"`
	Step         *float64      `json:"step,omitempty"`
	Placeholder  schema.Text   `json:"placeholder,omitempty"`
	Default      schema.Value  `json:"default"`
	Tooltip      schema.Text   `json:"tooltip,omitempty"`
}

// Button returns a button control.
func Button(text schema.Text, iconPath string) Control {
	return Control{Kind: ControlButton, Text: text, IconPath: iconPath}
}

// Divider returns a divider control.
func Divider() Control {
	return Control{Kind: ControlDivider}
}

// Header returns a header control.
func Header(text schema.Text) Control {
	return Control{Kind: ControlHeader, Text: text}
}

// Label returns a label control.
func Label(text schema.Text) Control {
	return Control{Kind: ControlLabel, Text: text}
}

// Dropdown returns a dropdown control.
func Dropdown(label schema.Text, options []schema.Text, defaultIndex int, tooltip schema.Text) Control {
	return Control{
		Kind:         ControlDropdown,
		Text:         label,
		Options:      options,
		DefaultIndex: defaultIndex,
		Default:      schema.NumberValue(float64(defaultIndex)),
		Tooltip:      tooltip,
	}
}

// Slider returns a slider control. step may be nil.
func Slider(label schema.Text, min, max float64, step *float64, defaultValue float64, tooltip schema.Text) Control {
	return Control{
		Kind:    ControlSlider,
		Text:    label,
		Min:     min,
		Max:     max,
		Step:    step,
		Default: schema.NumberValue(defaultValue),
		Tooltip: tooltip,
	}
}

// TextField returns a text field control.
func TextField(label, placeholder schema.Text, defaultValue string, tooltip schema.Text) Control {
	return Control{
		Kind:        ControlTextField,
		Text:        label,
		Placeholder: placeholder,
		Default:     schema.StringValue(defaultValue),
		Tooltip:     tooltip,
	}
}

// Toggle returns a toggle control.
func Toggle(label schema.Text, defaultValue bool, tooltip schema.Text) Control {
	return Control{
		Kind:    ControlToggle,
		Text:    label,
		Default: schema.BoolValue(defaultValue),
		Tooltip: tooltip,
	}
}

// IsLayout reports whether the control carries no value.
func (c Control) IsLayout() bool {
	switch c.Kind {
	case ControlDivider, ControlHeader, ControlLabel:
		return true
	default:
		return false
	}
}
