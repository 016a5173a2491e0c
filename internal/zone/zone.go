package zone

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Versifine/galleria/internal/motion"
)

// DefaultRadius is the trigger radius used when a zone does not set one.
const DefaultRadius = 5.0

var ErrInvalidZone = errors.New("invalid zone")

// Zone is a circular region of interest around one art piece. Position is the
// single source of truth for both detection and the visual placement of the
// piece; Y is ignored for detection.
type Zone struct {
	ID          string
	Title       string
	Description string
	Color       string
	Glyph       string
	Position    motion.Vec3
	Radius      float64
	Scale       motion.Vec3
	RotationDeg motion.Vec3
}

// Initial is the uppercase first letter of the id, used as a menu badge.
func (z Zone) Initial() string {
	for _, r := range z.ID {
		return strings.ToUpper(string(r))
	}
	return "?"
}

// Registry is an ordered, immutable set of zones.
type Registry struct {
	zones []Zone
	index map[string]int
}

func NewRegistry(zones []Zone) (*Registry, error) {
	r := &Registry{
		zones: make([]Zone, 0, len(zones)),
		index: make(map[string]int, len(zones)),
	}
	for i, z := range zones {
		if strings.TrimSpace(z.ID) == "" {
			return nil, fmt.Errorf("zone #%d: empty id", i)
		}
		if _, dup := r.index[z.ID]; dup {
			return nil, fmt.Errorf("zone %q: duplicate id", z.ID)
		}
		if !(z.Radius > 0) {
			return nil, fmt.Errorf("zone %q: radius %v must be positive", z.ID, z.Radius)
		}
		if z.Color != "" {
			if _, _, _, err := ParseColor(z.Color); err != nil {
				return nil, fmt.Errorf("zone %q: %w", z.ID, err)
			}
		}
		r.index[z.ID] = len(r.zones)
		r.zones = append(r.zones, z)
	}
	return r, nil
}

func (r *Registry) Lookup(id string) (Zone, bool) {
	i, ok := r.index[id]
	if !ok {
		return Zone{}, false
	}
	return r.zones[i], true
}

// MustLookup returns the zone or an error wrapping ErrInvalidZone.
func (r *Registry) MustLookup(id string) (Zone, error) {
	z, ok := r.Lookup(id)
	if !ok {
		return Zone{}, fmt.Errorf("%w: %q is not registered", ErrInvalidZone, id)
	}
	return z, nil
}

// Zones returns a copy in registration order.
func (r *Registry) Zones() []Zone {
	out := make([]Zone, len(r.zones))
	copy(out, r.zones)
	return out
}

func (r *Registry) Len() int {
	return len(r.zones)
}

// At returns the zone at registration index i.
func (r *Registry) At(i int) (Zone, bool) {
	if i < 0 || i >= len(r.zones) {
		return Zone{}, false
	}
	return r.zones[i], true
}

func (r *Registry) Evaluate(pos motion.Vec3, policy TieBreak) Hover {
	return Evaluate(pos, r.zones, policy)
}

// ParseColor accepts #rrggbb and #rrggbbaa; alpha is dropped.
func ParseColor(s string) (uint8, uint8, uint8, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, 0, 0, fmt.Errorf("color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("color %q: %w", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
