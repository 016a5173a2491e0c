package zone

import (
	"fmt"
	"math"
	"strings"

	"github.com/Versifine/galleria/internal/motion"
)

// TieBreak decides which zone is reported when the camera is inside several.
type TieBreak int

const (
	// Nearest reports the zone with the smallest planar distance; equal
	// distances go to the earlier registered zone.
	Nearest TieBreak = iota
	// LastRegistered reports the active zone registered last, as if hover
	// were overwritten by each zone in turn.
	LastRegistered
)

func (t TieBreak) String() string {
	switch t {
	case Nearest:
		return "nearest"
	case LastRegistered:
		return "last_registered"
	default:
		return fmt.Sprintf("tiebreak(%d)", int(t))
	}
}

func ParseTieBreak(s string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return Nearest, nil
	case "last_registered", "last":
		return LastRegistered, nil
	default:
		return 0, fmt.Errorf("unknown tie-break policy %q", s)
	}
}

// Hover is the zone the camera currently stands in, if any. It is a value
// snapshot recomputed every frame.
type Hover struct {
	ZoneID   string
	Distance float64
}

func (h Hover) Active() bool {
	return h.ZoneID != ""
}

// Evaluate reports the active zone for a camera at pos. A zone is active when
// the planar distance to its center is strictly less than its radius.
func Evaluate(pos motion.Vec3, zones []Zone, policy TieBreak) Hover {
	var hover Hover
	best := math.Inf(1)
	for _, z := range zones {
		d := pos.PlanarDistance(z.Position)
		if !(d < z.Radius) {
			continue
		}
		switch policy {
		case LastRegistered:
			hover = Hover{ZoneID: z.ID, Distance: d}
		default:
			if d < best {
				best = d
				hover = Hover{ZoneID: z.ID, Distance: d}
			}
		}
	}
	return hover
}

// LightIntensity is the pulsing brightness of a zone light at elapsed seconds.
// It is decorative and independent of hover state.
func LightIntensity(elapsed float64) float64 {
	return 1.5 + math.Sin(elapsed*2)*0.5
}
