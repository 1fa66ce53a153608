// Package wshost bridges dialogue forms to remote game clients over websockets.
//
// A client connects, sends a hello frame naming its player and then answers
// frames sent by the server:
//
//	-> {"type":"hello","payload":{"player":"Steve"}}
//	<- {"type":"form","id":"f1","payload":{"form":"action","action":{...}}}
//	-> {"type":"form_response","id":"f1","payload":{"canceled":false,"selection":0}}
//	<- {"type":"command","id":"c2","payload":{"command":"inputpermission set Steve camera disabled"}}
//	-> {"type":"command_result","id":"c2","payload":{"success_count":1}}
//
// A form may also be answered with form_rejected carrying a reason code.
package wshost

import (
	"encoding/json"

	"pkt.systems/scriptdialogue/host"
)

// FrameType tags a websocket frame.
type FrameType string

const (
	FrameHello         FrameType = "hello"
	FrameForm          FrameType = "form"
	FrameFormResponse  FrameType = "form_response"
	FrameFormRejected  FrameType = "form_rejected"
	FrameCommand       FrameType = "command"
	FrameCommandResult FrameType = "command_result"
	FrameError         FrameType = "error"
)

// Frame is the envelope of every message in both directions.
type Frame struct {
	Type    FrameType       `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Hello is the first client frame.
type Hello struct {
	Player string `json:"player"`
}

// FormRequest is the payload of a form frame. Exactly one form is set.
type FormRequest struct {
	Form    host.FormType     `json:"form"`
	Message *host.MessageForm `json:"message,omitempty"`
	Action  *host.ActionForm  `json:"action,omitempty"`
	Modal   *host.ModalForm   `json:"modal,omitempty"`
}

// FormRejection is the payload of a form_rejected frame.
type FormRejection struct {
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// CommandRequest is the payload of a command frame.
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResult is the payload of a command_result frame.
type CommandResult struct {
	SuccessCount int    `json:"success_count"`
	Error        string `json:"error,omitempty"`
}

// ErrorPayload is sent before the server closes a connection it refuses.
type ErrorPayload struct {
	Message string `json:"message"`
}

func newFrame(frameType FrameType, id string, payload any) (Frame, error) {
	frame := Frame{Type: frameType, ID: id}
	if payload == nil {
		return frame, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return Frame{}, err
	}
	frame.Payload = data
	return frame, nil
}
