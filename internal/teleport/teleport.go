// Package teleport relocates the camera next to a registered zone.
package teleport

import (
	"github.com/Versifine/galleria/internal/motion"
	"github.com/Versifine/galleria/internal/zone"
)

const (
	DefaultEyeHeight      = 2.0
	DefaultApproachOffset = 5.0
)

// ErrInvalidZone is returned for teleports to ids that are not registered.
var ErrInvalidZone = zone.ErrInvalidZone

type Service struct {
	registry       *zone.Registry
	eyeHeight      float64
	approachOffset float64
}

func NewService(registry *zone.Registry, eyeHeight, approachOffset float64) *Service {
	return &Service{
		registry:       registry,
		eyeHeight:      eyeHeight,
		approachOffset: approachOffset,
	}
}

// Destination is the standoff point for z: at eye height, approachOffset
// units toward world -Z from the zone center.
func (s *Service) Destination(z zone.Zone) motion.Vec3 {
	return motion.Vec3{
		X: z.Position.X,
		Y: s.eyeHeight,
		Z: z.Position.Z - s.approachOffset,
	}
}

// Teleport moves st to the standoff point of zone id. Orientation and velocity
// are left as they are, so carried momentum keeps decaying after the jump. An
// unknown id fails with ErrInvalidZone and leaves st untouched.
func (s *Service) Teleport(st *motion.State, id string) (zone.Zone, error) {
	z, err := s.registry.MustLookup(id)
	if err != nil {
		return zone.Zone{}, err
	}
	st.Pose.Position = s.Destination(z)
	return z, nil
}
