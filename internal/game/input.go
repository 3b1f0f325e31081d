package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/tunnelnet/internal/entity"
)

// humanCommand maps a key press to a command for a human agent. Terminals
// report no key releases, so walking continues until the agent is stopped.
func humanCommand(key tcell.Key, r rune, action entity.Action) (Command, bool) {
	digging := action == entity.ActionDigging
	switch key {
	case tcell.KeyLeft:
		if digging {
			return CmdDigLeft, true
		}
		return CmdWalkLeft, true
	case tcell.KeyRight:
		if digging {
			return CmdDigRight, true
		}
		return CmdWalkRight, true
	case tcell.KeyUp:
		if digging {
			return CmdDigUp, true
		}
		return CmdJump, true
	case tcell.KeyDown:
		if digging {
			return CmdDigDown, true
		}
	case tcell.KeyRune:
		switch r {
		case 'd', 'D':
			return CmdToggleDigging, true
		case ' ':
			if digging {
				return CmdHaltDig, true
			}
			return CmdStop, true
		case 'r', 'R':
			return CmdReset, true
		}
	}
	return 0, false
}
