package core

import (
	"fmt"
	"slices"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// DropdownOption is one dropdown entry: the shown label and the value it decodes to.
type DropdownOption struct {
	Label schema.Text
	Value schema.Value
}

// Dropdown selects one of its options. It needs at least one option by the
// time the dialogue is opened.
type Dropdown struct {
	name         string
	label        schema.Text
	options      []DropdownOption
	defaultIndex int
	tooltip      schema.Text
}

// NewDropdown returns a dropdown without options.
func NewDropdown(name string, label schema.Text) Dropdown {
	return Dropdown{name: name, label: label}
}

// AddOption appends an option.
func (d Dropdown) AddOption(label schema.Text, value schema.Value) Dropdown {
	d.options = append(slices.Clip(d.options), DropdownOption{Label: label, Value: value})
	return d
}

// WithDefaultIndex selects the option used when the player leaves the dropdown untouched.
func (d Dropdown) WithDefaultIndex(index int) Dropdown {
	d.defaultIndex = index
	return d
}

// WithTooltip sets the tooltip.
func (d Dropdown) WithTooltip(tooltip schema.Text) Dropdown {
	d.tooltip = tooltip
	return d
}

// Name implements InputElement.
func (d Dropdown) Name() string { return d.name }

// Options returns a copy of the options.
func (d Dropdown) Options() []DropdownOption { return slices.Clone(d.options) }

func (Dropdown) formElement() {}

func (d Dropdown) validate() error {
	if len(d.options) == 0 {
		return &schema.MissingDropdownOptionsError{Name: d.name}
	}
	if d.defaultIndex < 0 || d.defaultIndex >= len(d.options) {
		return &schema.DropdownDefaultError{Name: d.name, Index: d.defaultIndex, Options: len(d.options)}
	}
	return nil
}

func (d Dropdown) control() host.Control {
	labels := make([]schema.Text, len(d.options))
	for i, opt := range d.options {
		labels[i] = opt.Label
	}
	return host.Dropdown(d.label, labels, d.defaultIndex, d.tooltip)
}

func (d Dropdown) defaultValue() schema.Value {
	if d.defaultIndex < 0 || d.defaultIndex >= len(d.options) {
		return schema.Value{}
	}
	return d.options[d.defaultIndex].Value
}

func (d Dropdown) decode(raw schema.Value) (schema.Value, error) {
	if !raw.IsSet() {
		return d.defaultValue(), nil
	}
	index, ok := raw.Index()
	if !ok || index >= len(d.options) {
		return schema.Value{}, host.NewRejectError(schema.RejectMalformedResponse,
			fmt.Sprintf("dropdown %s: option index %s out of range", d.name, raw))
	}
	return d.options[index].Value, nil
}

// Slider picks a number between min and max. Its default is min unless set.
type Slider struct {
	name    string
	label   schema.Text
	min     float64
	max     float64
	step    *float64
	def     *float64
	tooltip schema.Text
}

// NewSlider returns a slider over [min, max].
func NewSlider(name string, label schema.Text, min, max float64) Slider {
	return Slider{name: name, label: label, min: min, max: max}
}

// WithStep sets the value step.
func (s Slider) WithStep(step float64) Slider {
	s.step = &step
	return s
}

// WithDefault sets the initial value.
func (s Slider) WithDefault(value float64) Slider {
	s.def = &value
	return s
}

// WithTooltip sets the tooltip.
func (s Slider) WithTooltip(tooltip schema.Text) Slider {
	s.tooltip = tooltip
	return s
}

// Name implements InputElement.
func (s Slider) Name() string { return s.name }

func (Slider) formElement() {}

func (s Slider) initial() float64 {
	if s.def == nil {
		return s.min
	}
	return *s.def
}

func (s Slider) control() host.Control {
	var step *float64
	if s.step != nil {
		v := *s.step
		step = &v
	}
	return host.Slider(s.label, s.min, s.max, step, s.initial(), s.tooltip)
}

func (s Slider) defaultValue() schema.Value { return schema.NumberValue(s.initial()) }

func (s Slider) decode(raw schema.Value) (schema.Value, error) {
	if !raw.IsSet() {
		return s.defaultValue(), nil
	}
	return raw, nil
}

// TextField collects free text. Its default is the empty string unless set.
type TextField struct {
	name        string
	label       schema.Text
	placeholder schema.Text
	def         string
	tooltip     schema.Text
}

// NewTextField returns a text field.
func NewTextField(name string, label, placeholder schema.Text) TextField {
	return TextField{name: name, label: label, placeholder: placeholder}
}

// WithDefault sets the initial text.
func (t TextField) WithDefault(value string) TextField {
	t.def = value
	return t
}

// WithTooltip sets the tooltip.
func (t TextField) WithTooltip(tooltip schema.Text) TextField {
	t.tooltip = tooltip
	return t
}

// Name implements InputElement.
func (t TextField) Name() string { return t.name }

func (TextField) formElement() {}

func (t TextField) control() host.Control {
	return host.TextField(t.label, t.placeholder, t.def, t.tooltip)
}

func (t TextField) defaultValue() schema.Value { return schema.StringValue(t.def) }

func (t TextField) decode(raw schema.Value) (schema.Value, error) {
	if !raw.IsSet() {
		return t.defaultValue(), nil
	}
	return raw, nil
}

// Toggle is an on/off switch. Its default is off unless set.
type Toggle struct {
	name    string
	label   schema.Text
	def     bool
	tooltip schema.Text
}

// NewToggle returns a toggle.
func NewToggle(name string, label schema.Text) Toggle {
	return Toggle{name: name, label: label}
}

// WithDefault sets the initial state.
func (t Toggle) WithDefault(value bool) Toggle {
	t.def = value
	return t
}

// WithTooltip sets the tooltip.
func (t Toggle) WithTooltip(tooltip schema.Text) Toggle {
	t.tooltip = tooltip
	return t
}

// Name implements InputElement.
func (t Toggle) Name() string { return t.name }

func (Toggle) formElement() {}

func (t Toggle) control() host.Control {
	return host.Toggle(t.label, t.def, t.tooltip)
}

func (t Toggle) defaultValue() schema.Value { return schema.BoolValue(t.def) }

func (t Toggle) decode(raw schema.Value) (schema.Value, error) {
	if !raw.IsSet() {
		return t.defaultValue(), nil
	}
	return raw, nil
}
