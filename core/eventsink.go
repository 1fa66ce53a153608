package core

import "pkt.systems/scriptdialogue/schema"

// EventSink receives dialogue lifecycle events from the runtime.
type EventSink interface {
	OnDialogueEvent(event schema.DialogueEvent)
}

// FanoutSink forwards events to every non-nil sink in order.
type FanoutSink []EventSink

// OnDialogueEvent implements EventSink.
func (f FanoutSink) OnDialogueEvent(event schema.DialogueEvent) {
	for _, sink := range f {
		if sink == nil {
			continue
		}
		sink.OnDialogueEvent(event)
	}
}
