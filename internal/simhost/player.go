package simhost

import (
	"strings"
	"sync"
	"sync/atomic"

	"pkt.systems/scriptdialogue/host"
)

// Player is an in-process host.Player that records the commands it runs.
type Player struct {
	name    string
	invalid atomic.Bool

	mu            sync.Mutex
	commands      []string
	unlockFailure int
	failures      map[string]int
}

// NewPlayer returns a valid player.
func NewPlayer(name string) *Player {
	return &Player{name: name, failures: make(map[string]int)}
}

// Name implements host.Player.
func (p *Player) Name() string { return p.name }

// IsValid implements host.Player.
func (p *Player) IsValid() bool { return !p.invalid.Load() }

// Invalidate marks the player as gone.
func (p *Player) Invalidate() { p.invalid.Store(true) }

// FailUnlockAcks makes every enable command report zero successes n times
// before it is acknowledged.
func (p *Player) FailUnlockAcks(n int) {
	p.mu.Lock()
	p.unlockFailure = n
	p.mu.Unlock()
}

// RunCommand implements host.Player.
func (p *Player) RunCommand(command string) (host.CommandResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.commands = append(p.commands, command)
	if strings.HasSuffix(command, " enabled") && p.failures[command] < p.unlockFailure {
		p.failures[command]++
		return host.CommandResult{SuccessCount: 0}, nil
	}
	return host.CommandResult{SuccessCount: 1}, nil
}

// Commands returns the commands run so far.
func (p *Player) Commands() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.commands...)
}
