package format

import (
	"fmt"
	"sort"
	"strings"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

const (
	// EventMarker prefixes lifecycle event lines.
	EventMarker = "· "
	// FormMarker prefixes form body lines.
	FormMarker = "│ "
	// ResultMarker prefixes result lines.
	ResultMarker = "» "
)

// PlainRenderer formats dialogue events, forms and results as plain text lines.
type PlainRenderer struct{}

// NewPlainRenderer returns a default plain-text renderer.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// FormatEvent converts a lifecycle event into user-facing lines.
func (p *PlainRenderer) FormatEvent(event schema.DialogueEvent) []string {
	label := fmt.Sprintf("%s %s", event.Kind, event.Phase)
	if event.Kind == "" {
		label = string(event.Phase)
	}
	switch event.Phase {
	case schema.PhaseShowing:
		return []string{EventMarker + fmt.Sprintf("%s (attempt %d)", label, event.Attempt)}
	case schema.PhaseRetrying:
		return []string{EventMarker + fmt.Sprintf("%s: player busy, retry %d", label, event.Attempt)}
	case schema.PhaseCanceled, schema.PhaseRejected:
		line := label
		if event.Reason != "" {
			line += ": " + event.Reason
		}
		if event.Err != "" {
			line += " (" + event.Err + ")"
		}
		return []string{EventMarker + line}
	default:
		return []string{EventMarker + label}
	}
}

// FormatResult converts an open result into user-facing lines.
func (p *PlainRenderer) FormatResult(result schema.Result) []string {
	switch r := result.(type) {
	case nil:
		return []string{ResultMarker + "no result"}
	case schema.Canceled:
		return []string{ResultMarker + fmt.Sprintf("canceled: %s", r.Reason)}
	case schema.Rejected:
		reason := string(r.Reason)
		if reason == "" {
			reason = "unclassified"
		}
		if r.Err != nil {
			return []string{ResultMarker + fmt.Sprintf("rejected: %s: %v", reason, r.Err)}
		}
		return []string{ResultMarker + fmt.Sprintf("rejected: %s", reason)}
	case schema.ButtonSelected:
		lines := []string{ResultMarker + fmt.Sprintf("selected %s", r.Name)}
		if r.CallbackResult != nil {
			if nested, ok := r.CallbackResult.(schema.Result); ok {
				for _, line := range p.FormatResult(nested) {
					lines = append(lines, "  "+line)
				}
			} else {
				lines = append(lines, fmt.Sprintf("  callback: %v", r.CallbackResult))
			}
		}
		return lines
	case schema.InputValues:
		lines := []string{ResultMarker + "submitted"}
		names := make([]string, 0, len(r.Values))
		for name := range r.Values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("  %s = %s", name, r.Values[name]))
		}
		return lines
	default:
		return []string{ResultMarker + string(result.Outcome())}
	}
}

// FormatMessageForm renders a two button form.
func (p *PlainRenderer) FormatMessageForm(form host.MessageForm) []string {
	lines := []string{text(form.Title)}
	lines = append(lines, markLines(FormMarker, splitLines(text(form.Body)))...)
	lines = append(lines,
		FormMarker+fmt.Sprintf("[0] %s", text(form.Button1)),
		FormMarker+fmt.Sprintf("[1] %s", text(form.Button2)),
	)
	return lines
}

// FormatActionForm renders a button list form. Buttons are numbered by selection index.
func (p *PlainRenderer) FormatActionForm(form host.ActionForm) []string {
	lines := []string{text(form.Title)}
	lines = append(lines, markLines(FormMarker, splitLines(text(form.Body)))...)
	return append(lines, markLines(FormMarker, formatControls(form.Controls, true))...)
}

// FormatModalForm renders an input form. Controls are numbered by value position.
func (p *PlainRenderer) FormatModalForm(form host.ModalForm) []string {
	lines := []string{text(form.Title)}
	lines = append(lines, markLines(FormMarker, formatControls(form.Controls, false))...)
	if !schema.IsEmpty(form.SubmitButton) {
		lines = append(lines, FormMarker+fmt.Sprintf("(%s)", text(form.SubmitButton)))
	}
	return lines
}

func formatControls(controls []host.Control, buttonsOnly bool) []string {
	lines := make([]string, 0, len(controls))
	button := 0
	for i, c := range controls {
		switch c.Kind {
		case host.ControlDivider:
			lines = append(lines, "----")
		case host.ControlHeader:
			lines = append(lines, "# "+text(c.Text))
		case host.ControlLabel:
			lines = append(lines, text(c.Text))
		case host.ControlButton:
			line := fmt.Sprintf("[%d] %s", button, text(c.Text))
			if c.IconPath != "" {
				line += " <" + c.IconPath + ">"
			}
			lines = append(lines, line)
			button++
		default:
			index := i
			if buttonsOnly {
				index = button
			}
			lines = append(lines, fmt.Sprintf("%d. %s", index, formatInput(c)))
		}
	}
	return lines
}

func formatInput(c host.Control) string {
	switch c.Kind {
	case host.ControlDropdown:
		options := make([]string, len(c.Options))
		for i, opt := range c.Options {
			options[i] = text(opt)
		}
		return fmt.Sprintf("%s: {%s} default %d", text(c.Text), strings.Join(options, "|"), c.DefaultIndex)
	case host.ControlSlider:
		step := ""
		if c.Step != nil {
			step = fmt.Sprintf(" step %g", *c.Step)
		}
		return fmt.Sprintf("%s: %g..%g%s default %s", text(c.Text), c.Min, c.Max, step, c.Default)
	case host.ControlTextField:
		return fmt.Sprintf("%s: [%s] default %s", text(c.Text), text(c.Placeholder), c.Default)
	case host.ControlToggle:
		return fmt.Sprintf("%s: toggle default %s", text(c.Text), c.Default)
	default:
		return fmt.Sprintf("%s control", c.Kind)
	}
}

func text(t schema.Text) string {
	if t == nil {
		return ""
	}
	return t.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func markLines(marker string, lines []string) []string {
	if marker == "" || len(lines) == 0 {
		return lines
	}
	marked := make([]string, 0, len(lines))
	for _, line := range lines {
		marked = append(marked, marker+line)
	}
	return marked
}
