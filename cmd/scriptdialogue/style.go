package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/internal/format"
	"pkt.systems/scriptdialogue/internal/simhost"
	"pkt.systems/scriptdialogue/schema"
)

var (
	colorEvent   = lipgloss.Color("#6B7280")
	colorForm    = lipgloss.Color("#06B6D4")
	colorAnswer  = lipgloss.Color("#F59E0B")
	colorResult  = lipgloss.Color("#22C55E")
	colorCommand = lipgloss.Color("#7C3AED")
)

type traceStyles struct {
	title   lipgloss.Style
	event   lipgloss.Style
	form    lipgloss.Style
	answer  lipgloss.Style
	result  lipgloss.Style
	command lipgloss.Style
}

func newTraceStyles(r *lipgloss.Renderer) traceStyles {
	return traceStyles{
		title:   r.NewStyle().Bold(true),
		event:   r.NewStyle().Foreground(colorEvent),
		form:    r.NewStyle().Foreground(colorForm),
		answer:  r.NewStyle().Foreground(colorAnswer),
		result:  r.NewStyle().Foreground(colorResult).Bold(true),
		command: r.NewStyle().Foreground(colorCommand),
	}
}

// tracePrinter writes the simulate trace. It is an event sink and the
// simulated host's show hook, so events and forms interleave in the order
// they happen.
type tracePrinter struct {
	mu     sync.Mutex
	out    io.Writer
	plain  *format.PlainRenderer
	styles traceStyles
}

func newTracePrinter(out io.Writer) *tracePrinter {
	return &tracePrinter{
		out:    out,
		plain:  format.NewPlainRenderer(),
		styles: newTraceStyles(lipgloss.NewRenderer(out)),
	}
}

func (p *tracePrinter) write(style lipgloss.Style, lines []string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, line := range lines {
		_, _ = fmt.Fprintln(p.out, style.Render(line))
	}
}

func (p *tracePrinter) Title(title string) {
	p.write(p.styles.title, []string{title})
}

func (p *tracePrinter) OnDialogueEvent(event schema.DialogueEvent) {
	p.write(p.styles.event, p.plain.FormatEvent(event))
}

func (p *tracePrinter) Shown(s simhost.Shown) {
	var lines []string
	switch s.Type {
	case host.FormMessage:
		lines = p.plain.FormatMessageForm(s.Message)
	case host.FormAction:
		lines = p.plain.FormatActionForm(s.Action)
	case host.FormModal:
		lines = p.plain.FormatModalForm(s.Modal)
	}
	p.write(p.styles.form, lines)
	p.write(p.styles.answer, []string{describeAnswer(s)})
}

func (p *tracePrinter) Result(result schema.Result) {
	p.write(p.styles.result, p.plain.FormatResult(result))
}

func (p *tracePrinter) Commands(commands []string) {
	lines := make([]string, 0, len(commands))
	for _, c := range commands {
		lines = append(lines, "$ "+c)
	}
	p.write(p.styles.command, lines)
}

func describeAnswer(s simhost.Shown) string {
	switch {
	case s.Err != nil:
		return "  answer: " + s.Err.Error()
	case s.Answer.Canceled:
		return "  answer: closed (" + string(s.Answer.CancelReason) + ")"
	case s.Answer.Selection != nil:
		return fmt.Sprintf("  answer: button %d", *s.Answer.Selection)
	default:
		values := make([]string, 0, len(s.Answer.FormValues))
		for _, v := range s.Answer.FormValues {
			values = append(values, v.String())
		}
		return "  answer: [" + strings.Join(values, ", ") + "]"
	}
}
