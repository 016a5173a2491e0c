package hud

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Versifine/galleria/internal/input"
	"github.com/Versifine/galleria/internal/motion"
	"github.com/Versifine/galleria/internal/session"
	"github.com/Versifine/galleria/internal/zone"
)

func TestStatusLine(t *testing.T) {
	snap := session.Snapshot{
		Pose: motion.Pose{
			Position:    motion.Vec3{X: 1, Y: 2, Z: 3.5},
			Orientation: motion.Orientation{Yaw: math.Pi / 2},
		},
		Velocity: motion.Vec2{X: 3, Z: 4},
		Input:    input.State{Forward: true},
		Hover:    zone.Hover{ZoneID: "malta", Distance: 4.25},
		Engaged:  true,
	}
	line := StatusLine(snap)
	assert.Equal(t,
		"[FWD:on BCK:off LFT:off RGT:off | YAW:90.0 PIT:0.0 | X:1.00 Y:2.00 Z:3.50 | SPD:5.00 | LOOK:on | ZONE:malta 4.25]",
		line)

	assert.Contains(t, StatusLine(session.Snapshot{}), "ZONE:-]")
}

func TestInfoPanel(t *testing.T) {
	z := zone.Zone{ID: "malta", Title: "Malta", Glyph: "🏝️", Description: "one two three four five"}
	lines := InfoPanel(z, 9)

	assert.Equal(t, "🏝️  Malta", lines[0])
	assert.Equal(t, []string{"one two", "three", "four five"}, lines[2:5])
	assert.Equal(t, ExploreFooter, lines[len(lines)-1])

	plain := InfoPanel(zone.Zone{Title: "Bare"}, 20)
	assert.Equal(t, "Bare", plain[0])
}

func TestMenu(t *testing.T) {
	reg, err := zone.DefaultGallery(0)
	require.NoError(t, err)

	entries := Menu(reg.Zones())
	require.Len(t, entries, 4)
	assert.Equal(t, '1', entries[0].Key)
	assert.Equal(t, "R", entries[0].Badge)
	assert.Equal(t, "ricard", entries[0].ID)
	assert.Equal(t, "3", entries[2].Badge)
	assert.True(t, strings.HasPrefix(entries[3].String(), "4 [M] "))

	many := make([]zone.Zone, 11)
	for i := range many {
		many[i] = zone.Zone{ID: string(rune('a' + i))}
	}
	entries = Menu(many)
	assert.Equal(t, '9', entries[8].Key)
	assert.Equal(t, rune(0), entries[9].Key)
	assert.Equal(t, "  [J] j", entries[9].String())
}

func TestMenuIndex(t *testing.T) {
	i, ok := MenuIndex('1')
	assert.True(t, ok)
	assert.Equal(t, 0, i)

	i, ok = MenuIndex('9')
	assert.True(t, ok)
	assert.Equal(t, 8, i)

	_, ok = MenuIndex('0')
	assert.False(t, ok)
	_, ok = MenuIndex('x')
	assert.False(t, ok)
}

func TestMenuToggleLabel(t *testing.T) {
	assert.Equal(t, MenuOpen, MenuToggleLabel(false))
	assert.Equal(t, MenuClose, MenuToggleLabel(true))
}

func TestControlsFollowKeyMap(t *testing.T) {
	lines := Controls(input.DefaultKeyMap())
	assert.Equal(t, "W/Z: Forward | S: Back | A/Q: Left | D: Right", lines[1])

	custom := Controls(input.KeyMap{"ArrowUp": input.Forward})
	assert.Equal(t, "ArrowUp: Forward | -: Back | -: Left | -: Right", custom[1])
}

func TestWelcome(t *testing.T) {
	lines := Welcome(input.DefaultKeyMap())
	assert.Equal(t, "MUSEUM", lines[0])
	assert.Contains(t, lines, "W/Z Forward • S Back • A/Q Left • D Right")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap("   ", 10))
	assert.Equal(t, []string{"a b c"}, Wrap("a  b\tc", 0))
	assert.Equal(t, []string{"supercalifragilistic", "x"}, Wrap("supercalifragilistic x", 5))
	assert.Equal(t, []string{"été à", "Paris"}, Wrap("été à Paris", 5))
}
