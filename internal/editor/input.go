package editor

import "github.com/gdamore/tcell/v2"

// Action represents a keyboard command.
type Action uint8

const (
	ActionNone Action = iota
	ActionScrollN
	ActionScrollS
	ActionScrollE
	ActionScrollW
	ActionPrevTile
	ActionNextTile
	ActionSave
	ActionQuit
)

// keyToAction maps a tcell key event to an editor action.
func keyToAction(ev *tcell.EventKey) Action {
	switch ev.Key() {
	case tcell.KeyUp:
		return ActionScrollN
	case tcell.KeyDown:
		return ActionScrollS
	case tcell.KeyRight:
		return ActionScrollE
	case tcell.KeyLeft:
		return ActionScrollW
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	}

	switch ev.Rune() {
	case 'k', 'K':
		return ActionScrollN
	case 'j', 'J':
		return ActionScrollS
	case 'l', 'L':
		return ActionScrollE
	case 'h', 'H':
		return ActionScrollW
	case '[':
		return ActionPrevTile
	case ']':
		return ActionNextTile
	case 's', 'S':
		return ActionSave
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a scroll action to a room delta.
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionScrollN:
		return 0, -1
	case ActionScrollS:
		return 0, 1
	case ActionScrollE:
		return 1, 0
	case ActionScrollW:
		return -1, 0
	}
	return 0, 0
}

// MouseKind distinguishes the discrete mouse events the editor reacts to.
type MouseKind uint8

const (
	MousePress MouseKind = iota
	MouseRelease
	MouseMove
)

// Button identifies a mouse button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
)

// MouseEvent is one press, release or move at terminal position (X, Y).
type MouseEvent struct {
	Kind   MouseKind
	Button Button
	X, Y   int
}

var trackedButtons = []struct {
	mask tcell.ButtonMask
	btn  Button
}{
	{tcell.Button1, ButtonLeft},
	{tcell.Button2, ButtonRight},
}

// pointer turns tcell's button-state snapshots into press/release edges.
type pointer struct {
	held tcell.ButtonMask
}

// translate returns the events implied by ev. A snapshot that changes no
// tracked button is a move.
func (p *pointer) translate(ev *tcell.EventMouse) []MouseEvent {
	x, y := ev.Position()
	now := ev.Buttons() & (tcell.Button1 | tcell.Button2)

	var out []MouseEvent
	for _, tb := range trackedButtons {
		was, is := p.held&tb.mask != 0, now&tb.mask != 0
		switch {
		case is && !was:
			out = append(out, MouseEvent{Kind: MousePress, Button: tb.btn, X: x, Y: y})
		case was && !is:
			out = append(out, MouseEvent{Kind: MouseRelease, Button: tb.btn, X: x, Y: y})
		}
	}
	p.held = now
	if len(out) == 0 {
		out = append(out, MouseEvent{Kind: MouseMove, X: x, Y: y})
	}
	return out
}
