// Package host declares the game host services the dialogue runtime drives:
// players with a command channel, a tick scheduler and the native form API.
package host

// CommandResult is the host's acknowledgment of a command.
type CommandResult struct {
	SuccessCount int
}

// Player is a connected player that forms are shown to.
type Player interface {
	// Name is the display name used in command strings.
	Name() string
	// IsValid reports whether the player is still connected.
	IsValid() bool
	// RunCommand executes a slash-less command as the player.
	RunCommand(command string) (CommandResult, error)
}
