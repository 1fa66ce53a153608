package eventbus

import (
	"context"
	"sync"
	"sync/atomic"

	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/schema"
)

// allPlayers is the subscription key that receives every player's events.
const allPlayers = "\x00all"

// Bus fanouts dialogue lifecycle events to per-player subscribers.
// Publishing never blocks; events for full subscribers are dropped.
type Bus struct {
	mu      sync.Mutex
	subs    map[string]map[chan schema.DialogueEvent]struct{}
	log     pslog.Logger
	depth   int
	dropped atomic.Uint64
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[string]map[chan schema.DialogueEvent]struct{}),
		log:   logger,
		depth: 256,
	}
}

// Subscribe registers a subscriber for the player and returns a channel + cancel.
func (b *Bus) Subscribe(player string) (<-chan schema.DialogueEvent, func()) {
	return b.subscribe(player)
}

// SubscribeAll registers a subscriber for every player.
func (b *Bus) SubscribeAll() (<-chan schema.DialogueEvent, func()) {
	return b.subscribe(allPlayers)
}

func (b *Bus) subscribe(key string) (<-chan schema.DialogueEvent, func()) {
	if b == nil {
		return nil, func() {}
	}
	ch := make(chan schema.DialogueEvent, b.depth)
	b.mu.Lock()
	keySubs := b.subs[key]
	if keySubs == nil {
		keySubs = make(map[chan schema.DialogueEvent]struct{})
		b.subs[key] = keySubs
	}
	keySubs[ch] = struct{}{}
	count := len(keySubs)
	b.mu.Unlock()
	b.log.With("player", displayKey(key)).Debug("eventbus subscribe", "subs", count)
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			if subs := b.subs[key]; subs != nil {
				delete(subs, ch)
				if len(subs) == 0 {
					delete(b.subs, key)
				}
			}
			b.mu.Unlock()
			close(ch)
			b.log.With("player", displayKey(key)).Debug("eventbus unsubscribe")
		})
	}
}

// OnDialogueEvent publishes a lifecycle event. It satisfies core.EventSink.
func (b *Bus) OnDialogueEvent(event schema.DialogueEvent) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := make([]chan schema.DialogueEvent, 0, len(b.subs[event.Player])+len(b.subs[allPlayers]))
	for sub := range b.subs[event.Player] {
		subs = append(subs, sub)
	}
	for sub := range b.subs[allPlayers] {
		subs = append(subs, sub)
	}
	// Sends happen under the lock so a concurrent cancel cannot close a channel mid-send.
	dropped := 0
	for _, sub := range subs {
		select {
		case sub <- event:
		default:
			dropped++
		}
	}
	b.mu.Unlock()
	if dropped > 0 {
		b.dropped.Add(uint64(dropped))
		b.log.With("player", event.Player).Trace("eventbus dropped", "count", dropped, "phase", event.Phase)
	}
}

// Dropped returns the number of events dropped for full subscribers.
func (b *Bus) Dropped() uint64 {
	if b == nil {
		return 0
	}
	return b.dropped.Load()
}

func displayKey(key string) string {
	if key == allPlayers {
		return "*"
	}
	return key
}
