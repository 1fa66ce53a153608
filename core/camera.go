package core

import (
	"fmt"
	"strings"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/scriptdialogue/host"
)

var lockedInputs = []string{"camera", "movement"}

func inputPermissionCommand(player, permission string, enabled bool) string {
	state := "disabled"
	if enabled {
		state = "enabled"
	}
	return fmt.Sprintf("inputpermission set %s %s %s", commandTarget(player), permission, state)
}

// commandTarget renders a player name as a command target selector. Names
// outside [A-Za-z0-9_.-] are double quoted with backslash escapes.
func commandTarget(name string) string {
	if isPlainTarget(name) {
		return name
	}
	var b strings.Builder
	b.Grow(len(name) + 2)
	b.WriteByte('"')
	for _, r := range name {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func isPlainTarget(name string) bool {
	if name == "" || name[0] == '@' {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.':
		default:
			return false
		}
	}
	return true
}

// lockCamera fires the lock commands without waiting for acknowledgment.
func (rt *Runtime) lockCamera(log pslog.Logger, player host.Player) {
	for _, input := range lockedInputs {
		command := inputPermissionCommand(player.Name(), input, false)
		if _, err := player.RunCommand(command); err != nil {
			log.Debug("dialogue lock command failed", "command", command, "err", err)
		}
	}
}

// unlockCamera polls each unlock command until the host acknowledges it,
// the player is gone, or the attempt budget runs out.
func (rt *Runtime) unlockCamera(log pslog.Logger, opts ShowOptions) {
	for _, input := range lockedInputs {
		command := inputPermissionCommand(opts.Player.Name(), input, true)
		rt.runUntilAck(log, opts.Player, command, opts.UnlockMaxAttempts)
	}
}

func (rt *Runtime) runUntilAck(log pslog.Logger, player host.Player, command string, maxAttempts int) {
	done := make(chan struct{})
	var once sync.Once
	finish := func() { once.Do(func() { close(done) }) }
	attempts := 0
	id := rt.scheduler.RunInterval(func() {
		select {
		case <-done:
			return
		default:
		}
		if !player.IsValid() {
			log.Debug("dialogue unlock skipped, player invalid", "command", command)
			finish()
			return
		}
		attempts++
		result, err := player.RunCommand(command)
		if err == nil && result.SuccessCount == 1 {
			finish()
			return
		}
		if err != nil {
			log.Trace("dialogue unlock command failed", "command", command, "attempt", attempts, "err", err)
		}
		if maxAttempts > 0 && attempts >= maxAttempts {
			log.Warn("dialogue unlock gave up", "command", command, "attempts", attempts)
			finish()
		}
	}, 1)
	<-done
	rt.scheduler.ClearRun(id)
}
