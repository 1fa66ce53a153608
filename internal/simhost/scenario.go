package simhost

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
	"pkt.systems/scriptdialogue/host"
	"pkt.systems/scriptdialogue/schema"
)

// Scenario scripts how a simulated player answers the forms shown to them.
//
//	name: busy menu
//	flow: busy-menu
//	player: Steve
//	unlock_ack_failures: 2
//	steps:
//	  - busy: 3
//	  - select: 0
//	  - values: ["x", 12, true, null]
//	  - close: true
//	  - reject: UserQuit
//	  - invalidate: true
type Scenario struct {
	Name              string `yaml:"name"`
	Flow              string `yaml:"flow"`
	Player            string `yaml:"player"`
	UnlockAckFailures int    `yaml:"unlock_ack_failures"`
	Steps             []Step `yaml:"steps"`
}

// Step is one scripted answer. Exactly one answer field must be set; Expect
// optionally pins the form type the answer is meant for.
type Step struct {
	Busy       int           `yaml:"busy,omitempty"`
	Close      bool          `yaml:"close,omitempty"`
	Select     *int          `yaml:"select,omitempty"`
	Values     []any         `yaml:"values,omitempty"`
	Reject     string        `yaml:"reject,omitempty"`
	Invalidate bool          `yaml:"invalidate,omitempty"`
	Expect     host.FormType `yaml:"expect,omitempty"`
}

// ErrEmptyScenario indicates a scenario without steps.
var ErrEmptyScenario = errors.New("scenario has no steps")

// LoadScenario reads a yaml scenario file.
func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	sc, err := ParseScenario(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// ParseScenario decodes a yaml scenario. Unknown keys are rejected.
func ParseScenario(data []byte) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return Scenario{}, err
	}
	if sc.Player == "" {
		sc.Player = "Steve"
	}
	if len(sc.Steps) == 0 {
		return Scenario{}, ErrEmptyScenario
	}
	for i, step := range sc.Steps {
		if err := step.validate(); err != nil {
			return Scenario{}, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return sc, nil
}

// Marshal encodes the scenario as yaml.
func (sc Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(sc)
}

func (s Step) validate() error {
	set := 0
	if s.Busy != 0 {
		if s.Busy < 0 {
			return fmt.Errorf("busy must be positive")
		}
		set++
	}
	if s.Close {
		set++
	}
	if s.Select != nil {
		set++
	}
	if s.Values != nil {
		set++
		for i, raw := range s.Values {
			if _, err := schema.ValueOf(raw); err != nil {
				return fmt.Errorf("values[%d]: %w", i, err)
			}
		}
	}
	if s.Reject != "" {
		set++
	}
	if s.Invalidate {
		set++
	}
	if set != 1 {
		return fmt.Errorf("expected exactly one of busy, close, select, values, reject, invalidate")
	}
	switch s.Expect {
	case "", host.FormMessage, host.FormAction, host.FormModal:
	default:
		return fmt.Errorf("unknown form type %q", s.Expect)
	}
	return nil
}

// answers expands busy counts into one answer per show.
func (sc Scenario) answers() []Step {
	out := make([]Step, 0, len(sc.Steps))
	for _, step := range sc.Steps {
		if step.Busy > 0 {
			for range step.Busy {
				out = append(out, Step{Busy: 1, Expect: step.Expect})
			}
			continue
		}
		out = append(out, step)
	}
	return out
}
