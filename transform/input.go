package transform

// Action names a held-key control. The keyboard layer maps keys to actions.
type Action int

const (
	RotateX Action = iota
	RotateY
	RotateZ
	MoveLeft
	MoveRight
	MoveUp
	MoveDown
	MoveFront
	MoveBack
	ScaleUp
	ScaleDown

	numActions
)

var actionNames = [numActions]string{
	"rotate-x", "rotate-y", "rotate-z",
	"move-left", "move-right", "move-up", "move-down", "move-front", "move-back",
	"scale-up", "scale-down",
}

func (a Action) String() string {
	if a < 0 || a >= numActions {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) (Action, bool) {
	for i, n := range actionNames {
		if n == s {
			return Action(i), true
		}
	}
	return 0, false
}

// Input is the set of currently held actions. It is written by the key
// callback and read by Accumulator.Update on the same goroutine.
type Input struct {
	held [numActions]bool
}

func (in *Input) Set(a Action, held bool) {
	if a < 0 || a >= numActions {
		return
	}
	in.held[a] = held
}

func (in *Input) Held(a Action) bool {
	if in == nil || a < 0 || a >= numActions {
		return false
	}
	return in.held[a]
}

// Clear releases every action, e.g. when the window loses focus.
func (in *Input) Clear() {
	in.held = [numActions]bool{}
}
