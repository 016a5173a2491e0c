package event

const (
	EventHoverChanged = "hover.changed"
	EventTeleported   = "camera.teleported"
	EventLookChanged  = "look.changed"
	EventFrameSkipped = "frame.skipped"
)

// HoverChangedEvent is published when the hovered zone changes. Empty ids mean
// no zone.
type HoverChangedEvent struct {
	Previous string
	Current  string
	Distance float64
}

type TeleportedEvent struct {
	ZoneID string
	X      float64
	Y      float64
	Z      float64
}

type LookChangedEvent struct {
	Engaged bool
}

type FrameSkippedEvent struct {
	Delta float64
}
