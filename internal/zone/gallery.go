package zone

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Versifine/galleria/internal/motion"
	"gopkg.in/yaml.v3"
)

//go:embed default_gallery.yaml
var defaultGallery []byte

type galleryFile struct {
	Zones []zoneEntry `yaml:"zones"`
}

type zoneEntry struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Color       string    `yaml:"color"`
	Glyph       string    `yaml:"glyph"`
	Position    []float64 `yaml:"position"`
	Radius      float64   `yaml:"radius"`
	Scale       []float64 `yaml:"scale"`
	Rotation    []float64 `yaml:"rotation"`
}

// DefaultGallery returns the built-in gallery layout.
func DefaultGallery(radius float64) (*Registry, error) {
	return ParseGallery(defaultGallery, radius)
}

// DefaultGalleryYAML returns the built-in gallery file contents.
func DefaultGalleryYAML() []byte {
	out := make([]byte, len(defaultGallery))
	copy(out, defaultGallery)
	return out
}

// LoadGallery reads a gallery file. Zones without a radius get radius.
func LoadGallery(path string, radius float64) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	reg, err := ParseGallery(data, radius)
	if err != nil {
		return nil, fmt.Errorf("gallery %s: %w", path, err)
	}
	return reg, nil
}

func ParseGallery(data []byte, radius float64) (*Registry, error) {
	if radius <= 0 {
		radius = DefaultRadius
	}
	var file galleryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if len(file.Zones) == 0 {
		return nil, fmt.Errorf("no zones defined")
	}

	zones := make([]Zone, 0, len(file.Zones))
	for _, e := range file.Zones {
		pos, err := vec3(e.Position, motion.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("zone %q position: %w", e.ID, err)
		}
		scale, err := vec3(e.Scale, motion.Vec3{X: 1, Y: 1, Z: 1})
		if err != nil {
			return nil, fmt.Errorf("zone %q scale: %w", e.ID, err)
		}
		rot, err := vec3(e.Rotation, motion.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("zone %q rotation: %w", e.ID, err)
		}
		r := e.Radius
		if r == 0 {
			r = radius
		}
		zones = append(zones, Zone{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Color:       e.Color,
			Glyph:       e.Glyph,
			Position:    pos,
			Radius:      r,
			Scale:       scale,
			RotationDeg: rot,
		})
	}
	return NewRegistry(zones)
}

func vec3(v []float64, fallback motion.Vec3) (motion.Vec3, error) {
	switch len(v) {
	case 0:
		return fallback, nil
	case 3:
		return motion.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return motion.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
	}
}
