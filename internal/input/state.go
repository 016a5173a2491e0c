package input

// State is the set of movement keys currently held. Flags are level-triggered:
// a flag is true iff its key is down.
type State struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
}

func (s State) Any() bool {
	return s.Forward || s.Backward || s.Left || s.Right
}

func (s *State) set(action Action, held bool) {
	switch action {
	case Forward:
		s.Forward = held
	case Backward:
		s.Backward = held
	case Left:
		s.Left = held
	case Right:
		s.Right = held
	}
}

// Held reports the flag for action.
func (s State) Held(action Action) bool {
	switch action {
	case Forward:
		return s.Forward
	case Backward:
		return s.Backward
	case Left:
		return s.Left
	case Right:
		return s.Right
	default:
		return false
	}
}

// Keyboard applies raw key events to a State through a KeyMap. It never moves
// the camera itself.
type Keyboard struct {
	keys  KeyMap
	state State
}

func NewKeyboard(keys KeyMap) *Keyboard {
	if keys == nil {
		keys = DefaultKeyMap()
	}
	return &Keyboard{keys: keys}
}

// OnKeyDown sets the flag mapped from code. Unmapped codes are ignored and
// reported as unhandled.
func (k *Keyboard) OnKeyDown(code string) bool {
	action, ok := k.keys[code]
	if !ok {
		return false
	}
	k.state.set(action, true)
	return true
}

func (k *Keyboard) OnKeyUp(code string) bool {
	action, ok := k.keys[code]
	if !ok {
		return false
	}
	k.state.set(action, false)
	return true
}

// Release clears every flag, e.g. when the window loses focus.
func (k *Keyboard) Release() {
	k.state = State{}
}

func (k *Keyboard) State() State {
	return k.state
}

func (k *Keyboard) KeyMap() KeyMap {
	return k.keys
}
