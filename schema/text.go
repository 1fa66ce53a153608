package schema

import (
	"encoding/json"
	"errors"
	"strings"
)

// Text is a dialogue string: either literal text or a localizable raw message.
type Text interface {
	String() string
	isText()
}

// String is literal dialogue text.
type String string

func (s String) String() string { return string(s) }

func (String) isText() {}

// RawMessage is the host's localizable message shape. Translation keys are
// passed through untouched; the host resolves them on the client.
type RawMessage struct {
	Text        string       `json:"text,omitempty"`
	Translate   string       `json:"translate,omitempty"`
	With        []string     `json:"-"`
	WithMessage *RawMessage  `json:"-"`
	RawText     []RawMessage `json:"rawtext,omitempty"`
}

func (RawMessage) isText() {}

// Translate builds a translated raw message with positional string arguments.
func Translate(key string, with ...string) RawMessage {
	msg := RawMessage{Translate: key}
	if len(with) > 0 {
		msg.With = append([]string(nil), with...)
	}
	return msg
}

// TranslateMessage builds a translated raw message whose arguments are
// themselves a raw message.
func TranslateMessage(key string, with RawMessage) RawMessage {
	nested := with
	return RawMessage{Translate: key, WithMessage: &nested}
}

// String renders a debug form of the message; it does not resolve translations.
func (m RawMessage) String() string {
	var b strings.Builder
	if m.Text != "" {
		b.WriteString(m.Text)
	}
	if m.Translate != "" {
		b.WriteString("%")
		b.WriteString(m.Translate)
		switch {
		case m.WithMessage != nil:
			b.WriteString("(")
			b.WriteString(m.WithMessage.String())
			b.WriteString(")")
		case len(m.With) > 0:
			b.WriteString("(")
			b.WriteString(strings.Join(m.With, ", "))
			b.WriteString(")")
		}
	}
	for _, part := range m.RawText {
		b.WriteString(part.String())
	}
	return b.String()
}

type rawMessageJSON struct {
	Text      string          `json:"text,omitempty"`
	Translate string          `json:"translate,omitempty"`
	With      json.RawMessage `json:"with,omitempty"`
	RawText   []RawMessage    `json:"rawtext,omitempty"`
}

// MarshalJSON encodes "with" as a string list or a nested message, matching the host format.
func (m RawMessage) MarshalJSON() ([]byte, error) {
	out := rawMessageJSON{Text: m.Text, Translate: m.Translate, RawText: m.RawText}
	switch {
	case m.WithMessage != nil:
		data, err := json.Marshal(m.WithMessage)
		if err != nil {
			return nil, err
		}
		out.With = data
	case len(m.With) > 0:
		data, err := json.Marshal(m.With)
		if err != nil {
			return nil, err
		}
		out.With = data
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts both forms of "with".
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	var in rawMessageJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*m = RawMessage{Text: in.Text, Translate: in.Translate, RawText: in.RawText}
	with := strings.TrimSpace(string(in.With))
	if with == "" || with == "null" {
		return nil
	}
	switch with[0] {
	case '[':
		return json.Unmarshal(in.With, &m.With)
	case '{':
		var nested RawMessage
		if err := json.Unmarshal(in.With, &nested); err != nil {
			return err
		}
		m.WithMessage = &nested
		return nil
	default:
		return errors.New("raw message: with must be a list or an object")
	}
}

// IsEmpty reports whether t carries no text at all.
func IsEmpty(t Text) bool {
	if t == nil {
		return true
	}
	switch v := t.(type) {
	case String:
		return v == ""
	case RawMessage:
		return v.Text == "" && v.Translate == "" && len(v.RawText) == 0
	case *RawMessage:
		return v == nil || IsEmpty(*v)
	default:
		return false
	}
}
