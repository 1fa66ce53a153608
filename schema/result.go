package schema

// Outcome tags a Result variant.
type Outcome string

const (
	// OutcomeSelected is a button dialogue answer.
	OutcomeSelected Outcome = "selected"
	// OutcomeSubmitted is an input dialogue answer.
	OutcomeSubmitted Outcome = "submitted"
	// OutcomeCanceled is a host cancellation.
	OutcomeCanceled Outcome = "canceled"
	// OutcomeRejected is a host rejection or a failure while building or decoding.
	OutcomeRejected Outcome = "rejected"
)

// Result is the terminal value of an open call. It is one of Canceled,
// Rejected, ButtonSelected or InputValues; switch on the concrete type.
type Result interface {
	Outcome() Outcome
	result()
}

// Canceled is returned when the host closed the form without an answer.
type Canceled struct {
	Reason CancelReason
}

// Rejected is returned when the form could not be shown or its answer could not be used.
type Rejected struct {
	Reason RejectReason
	Err    error
}

// ButtonSelected is returned by dual and multi button dialogues.
type ButtonSelected struct {
	Name           string
	CallbackResult any
}

// InputValues is returned by input dialogues, keyed by element name.
type InputValues struct {
	Values map[string]Value
}

func (Canceled) Outcome() Outcome       { return OutcomeCanceled }
func (Rejected) Outcome() Outcome       { return OutcomeRejected }
func (ButtonSelected) Outcome() Outcome { return OutcomeSelected }
func (InputValues) Outcome() Outcome    { return OutcomeSubmitted }

func (Canceled) result()       {}
func (Rejected) result()       {}
func (ButtonSelected) result() {}
func (InputValues) result()    {}

// Get returns the named value.
func (v InputValues) Get(name string) (Value, bool) {
	value, ok := v.Values[name]
	return value, ok
}

// Str returns the named string value.
func (v InputValues) Str(name string) (string, bool) {
	return v.Values[name].Str()
}

// Number returns the named numeric value.
func (v InputValues) Number(name string) (float64, bool) {
	return v.Values[name].Number()
}

// Bool returns the named boolean value.
func (v InputValues) Bool(name string) (bool, bool) {
	return v.Values[name].Bool()
}
