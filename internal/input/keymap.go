package input

import (
	"fmt"
	"sort"
	"strings"
)

type Action int

const (
	Forward Action = iota + 1
	Backward
	Left
	Right
)

var actionNames = map[Action]string{
	Forward:  "forward",
	Backward: "backward",
	Left:     "left",
	Right:    "right",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// Opposite returns the action on the same axis pointing the other way.
func (a Action) Opposite() Action {
	switch a {
	case Forward:
		return Backward
	case Backward:
		return Forward
	case Left:
		return Right
	case Right:
		return Left
	default:
		return 0
	}
}

func ParseAction(name string) (Action, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for action, n := range actionNames {
		if n == name {
			return action, nil
		}
	}
	return 0, fmt.Errorf("unknown input action %q", name)
}

// KeyMap maps physical key codes to logical actions. Several codes may map to
// the same action (QWERTY and AZERTY layouts both bind forward).
type KeyMap map[string]Action

func DefaultKeyMap() KeyMap {
	return KeyMap{
		"KeyW": Forward,
		"KeyZ": Forward,
		"KeyS": Backward,
		"KeyA": Left,
		"KeyQ": Left,
		"KeyD": Right,
	}
}

// ParseKeyMap builds a KeyMap from code -> action name pairs.
func ParseKeyMap(raw map[string]string) (KeyMap, error) {
	keys := make(KeyMap, len(raw))
	for code, name := range raw {
		if strings.TrimSpace(code) == "" {
			return nil, fmt.Errorf("empty key code for action %q", name)
		}
		action, err := ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("key %s: %w", code, err)
		}
		keys[code] = action
	}
	return keys, nil
}

// Codes returns the sorted key codes bound to action.
func (m KeyMap) Codes(action Action) []string {
	var codes []string
	for code, a := range m {
		if a == action {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	return codes
}

// CodeForRune maps a typed character to its DOM-style key code ("w" -> "KeyW").
// Characters outside a-z have no code.
func CodeForRune(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(r-'a'+'A'), true
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r), true
	default:
		return "", false
	}
}
