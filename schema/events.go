package schema

import "time"

// DialoguePhase is a step of the open protocol.
type DialoguePhase string

const (
	// PhaseLocking is emitted before the camera lock commands.
	PhaseLocking DialoguePhase = "locking"
	// PhaseShowing is emitted before every show attempt.
	PhaseShowing DialoguePhase = "showing"
	// PhaseRetrying is emitted when a busy cancellation is retried.
	PhaseRetrying DialoguePhase = "retrying"
	// PhaseUnlocking is emitted before the camera unlock commands.
	PhaseUnlocking DialoguePhase = "unlocking"
	// PhaseSucceeded is the terminal phase for answered dialogues.
	PhaseSucceeded DialoguePhase = "succeeded"
	// PhaseCanceled is the terminal phase for canceled dialogues.
	PhaseCanceled DialoguePhase = "canceled"
	// PhaseRejected is the terminal phase for rejected dialogues.
	PhaseRejected DialoguePhase = "rejected"
)

// Terminal reports whether p ends an open call.
func (p DialoguePhase) Terminal() bool {
	switch p {
	case PhaseSucceeded, PhaseCanceled, PhaseRejected:
		return true
	default:
		return false
	}
}

// DialogueEvent describes one lifecycle transition of an open call.
type DialogueEvent struct {
	DialogueID DialogueID
	Kind       DialogueKind
	Player     string
	Phase      DialoguePhase
	// Attempt is the show attempt number (1-based) for showing and retrying phases.
	Attempt int
	// Outcome and Reason are set on terminal phases.
	Outcome Outcome
	Reason  string
	Err     string
	At      time.Time
}
