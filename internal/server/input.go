package server

import "unicode/utf8"

// Action is a viewer key command.
type Action int

const (
	ActionNone Action = iota
	ActionToggleTheme
	ActionToggleMotion
	ActionQuit
)

// parseInput converts raw bytes into viewer actions.
// Handles T, M, Q and Ctrl-C. Escape sequences are skipped.
func parseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		// Skip CSI sequences (arrow keys and friends)
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 't', 'T':
			actions = append(actions, ActionToggleTheme)
		case 'm', 'M':
			actions = append(actions, ActionToggleMotion)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}
