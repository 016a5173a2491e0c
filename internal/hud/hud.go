// Package hud builds the text shown around the gallery view: the status
// readout, the zone info panel, the teleport menu, the controls legend and
// the welcome panel. Frontends only lay the lines out.
package hud

import (
	"fmt"
	"math"
	"strings"

	"github.com/Versifine/galleria/internal/input"
	"github.com/Versifine/galleria/internal/session"
	"github.com/Versifine/galleria/internal/zone"
)

const (
	Title         = "3D_MUSEUM"
	Tagline       = "// VIRTUAL GALLERY"
	ExploreFooter = "Approchez-vous pour explorer →"
	MenuOpen      = "► Teleport"
	MenuClose     = "▼ Close"
)

// StatusLine is the one-line readout of the camera state.
func StatusLine(snap session.Snapshot) string {
	in := snap.Input
	pos := snap.Pose.Position
	zoneLabel := "-"
	if snap.Hover.Active() {
		zoneLabel = fmt.Sprintf("%s %.2f", snap.Hover.ZoneID, snap.Hover.Distance)
	}
	return fmt.Sprintf(
		"[FWD:%s BCK:%s LFT:%s RGT:%s | YAW:%.1f PIT:%.1f | X:%.2f Y:%.2f Z:%.2f | SPD:%.2f | LOOK:%s | ZONE:%s]",
		onOff(in.Forward),
		onOff(in.Backward),
		onOff(in.Left),
		onOff(in.Right),
		degrees(snap.Pose.Orientation.Yaw),
		degrees(snap.Pose.Orientation.Pitch),
		pos.X, pos.Y, pos.Z,
		snap.Velocity.Length(),
		onOff(snap.Engaged),
		zoneLabel,
	)
}

// InfoPanel renders the popup for z, wrapping the description to width.
func InfoPanel(z zone.Zone, width int) []string {
	head := z.Title
	if z.Glyph != "" {
		head = z.Glyph + "  " + z.Title
	}
	lines := []string{head, ""}
	lines = append(lines, Wrap(z.Description, width)...)
	lines = append(lines, "", ExploreFooter)
	return lines
}

// MenuEntry is one teleport target. Key is the digit that selects it, or 0
// past the ninth zone.
type MenuEntry struct {
	Key   rune
	Badge string
	Title string
	ID    string
	Color string
}

func (e MenuEntry) String() string {
	key := " "
	if e.Key != 0 {
		key = string(e.Key)
	}
	return fmt.Sprintf("%s [%s] %s", key, e.Badge, e.Title)
}

func Menu(zones []zone.Zone) []MenuEntry {
	entries := make([]MenuEntry, 0, len(zones))
	for i, z := range zones {
		var key rune
		if i < 9 {
			key = rune('1' + i)
		}
		title := z.Title
		if title == "" {
			title = z.ID
		}
		entries = append(entries, MenuEntry{Key: key, Badge: z.Initial(), Title: title, ID: z.ID, Color: z.Color})
	}
	return entries
}

// MenuIndex maps a digit key to a registration index.
func MenuIndex(r rune) (int, bool) {
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '1'), true
}

func MenuToggleLabel(open bool) string {
	if open {
		return MenuClose
	}
	return MenuOpen
}

// Controls is the navigation legend for the bound keys.
func Controls(keys input.KeyMap) []string {
	return []string{
		"[NAVIGATION]",
		fmt.Sprintf("%s: Forward | %s: Back | %s: Left | %s: Right",
			keyLabel(keys, input.Forward),
			keyLabel(keys, input.Backward),
			keyLabel(keys, input.Left),
			keyLabel(keys, input.Right),
		),
		"MOUSE: Look | ESC: Unlock",
	}
}

func Welcome(keys input.KeyMap) []string {
	return []string{
		"MUSEUM",
		"Enter the gallery",
		"",
		fmt.Sprintf("%s Forward • %s Back • %s Left • %s Right",
			keyLabel(keys, input.Forward),
			keyLabel(keys, input.Backward),
			keyLabel(keys, input.Left),
			keyLabel(keys, input.Right),
		),
		"Mouse to look • ESC to unlock",
		"",
		"Glowing zones appear near artworks • Teleport using HUD menu",
		"",
		"[ Enter ]",
	}
}

func keyLabel(keys input.KeyMap, a input.Action) string {
	codes := keys.Codes(a)
	if len(codes) == 0 {
		return "-"
	}
	labels := make([]string, len(codes))
	for i, c := range codes {
		labels[i] = strings.TrimPrefix(c, "Key")
	}
	return strings.Join(labels, "/")
}

// Wrap splits text into lines of at most width runes on word boundaries.
// Words longer than width are kept whole.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var lines []string
	var cur strings.Builder
	curLen := 0
	for _, w := range words {
		wl := len([]rune(w))
		if curLen > 0 && curLen+1+wl > width {
			lines = append(lines, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteByte(' ')
			curLen++
		}
		cur.WriteString(w)
		curLen += wl
	}
	lines = append(lines, cur.String())
	return lines
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
