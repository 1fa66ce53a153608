package host

import "pkt.systems/scriptdialogue/schema"

// Response is a settled form show. A canceled response carries only the
// reason; otherwise Selection (message and action forms) or FormValues
// (modal forms) is set.
type Response struct {
	Canceled     bool                `json:"canceled"`
	CancelReason schema.CancelReason `json:"cancel_reason,omitempty"`
	Selection    *int                `json:"selection,omitempty"`
	FormValues   []schema.Value      `json:"form_values,omitempty"`
}

// Selected returns an answered button form response.
func Selected(index int) Response {
	return Response{Selection: &index}
}

// Submitted returns an answered modal form response.
func Submitted(values ...schema.Value) Response {
	return Response{FormValues: values}
}

// Canceled returns a canceled response.
func Canceled(reason schema.CancelReason) Response {
	return Response{Canceled: true, CancelReason: reason}
}

// Busy reports whether the response is a busy cancellation.
func (r Response) Busy() bool {
	return r.Canceled && r.CancelReason == schema.CancelUserBusy
}
