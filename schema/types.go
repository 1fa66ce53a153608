package schema

// DialogueID identifies one open call.
type DialogueID string

// DialogueKind names the dialogue variant.
type DialogueKind string

const (
	// DialogueDualButton is a two button message form.
	DialogueDualButton DialogueKind = "dual_button"
	// DialogueMultiButton is a button list (action) form.
	DialogueMultiButton DialogueKind = "multi_button"
	// DialogueInput is a modal input form.
	DialogueInput DialogueKind = "input"
)

// CancelReason is the host-reported reason a form closed without an answer.
type CancelReason string

const (
	// CancelUserBusy means the player could not be shown a form right now.
	CancelUserBusy CancelReason = "UserBusy"
	// CancelUserClosed means the player closed the form.
	CancelUserClosed CancelReason = "UserClosed"
)

// RejectReason classifies a host rejection. The empty value means unclassified.
type RejectReason string

const (
	// RejectNone marks an unclassified rejection.
	RejectNone RejectReason = ""
	// RejectMalformedResponse means the host produced an unusable response.
	RejectMalformedResponse RejectReason = "MalformedResponse"
	// RejectUserQuit means the player left while the form was open.
	RejectUserQuit RejectReason = "UserQuit"
	// RejectServerShutdown means the server stopped while the form was open.
	RejectServerShutdown RejectReason = "ServerShutdown"
)

// ParseRejectReason maps a host reason code to a RejectReason; unknown codes are unclassified.
func ParseRejectReason(value string) RejectReason {
	switch RejectReason(value) {
	case RejectMalformedResponse, RejectUserQuit, RejectServerShutdown:
		return RejectReason(value)
	default:
		return RejectNone
	}
}

// ParseCancelReason maps a host cancel code; unknown codes read as UserClosed.
func ParseCancelReason(value string) CancelReason {
	if CancelReason(value) == CancelUserBusy {
		return CancelUserBusy
	}
	return CancelUserClosed
}
