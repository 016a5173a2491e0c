package input

import "time"

// Pulser drives a Keyboard from devices that only report key presses, such as
// a terminal. Each press holds its key for a fixed window, extended by
// auto-repeat, and then releases it.
type Pulser struct {
	keyboard *Keyboard
	window   time.Duration
	pending  map[Action]release
}

type release struct {
	code string
	at   time.Time
}

func NewPulser(keyboard *Keyboard, window time.Duration) *Pulser {
	return &Pulser{
		keyboard: keyboard,
		window:   window,
		pending:  make(map[Action]release),
	}
}

// Press holds code until now+window. A press on the opposite direction of the
// same axis releases the other key immediately.
func (p *Pulser) Press(code string, now time.Time) bool {
	action, ok := p.keyboard.keys[code]
	if !ok {
		return false
	}
	if opp, ok := p.pending[action.Opposite()]; ok {
		p.keyboard.OnKeyUp(opp.code)
		delete(p.pending, action.Opposite())
	}
	p.keyboard.OnKeyDown(code)
	p.pending[action] = release{code: code, at: now.Add(p.window)}
	return true
}

// Expire releases every key whose window has elapsed at now.
func (p *Pulser) Expire(now time.Time) {
	for action, r := range p.pending {
		if !now.Before(r.at) {
			p.keyboard.OnKeyUp(r.code)
			delete(p.pending, action)
		}
	}
}

// Clear releases all keys immediately.
func (p *Pulser) Clear() {
	p.keyboard.Release()
	clear(p.pending)
}

func (p *Pulser) Window() time.Duration {
	return p.window
}
