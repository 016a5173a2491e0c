package viewer

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/Versifine/galleria/internal/hud"
	"github.com/Versifine/galleria/internal/motion"
	"github.com/Versifine/galleria/internal/zone"
)

var (
	styleHUD    = tcell.StyleDefault.Foreground(tcell.ColorDarkCyan)
	styleAccent = tcell.StyleDefault.Foreground(tcell.ColorPlum)
	styleCamera = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	stylePanel  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
)

// arrows by heading octant, starting at screen-up and turning clockwise.
var arrows = []rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

type menuRow struct {
	x, y int
	text string
}

func (v *Viewer) draw() {
	v.screen.Clear()
	snap := v.sess.Snapshot()
	w, h := v.screen.Size()
	cx, cy := w/2, h/2

	light := zone.LightIntensity(snap.Elapsed)
	for _, z := range v.sess.Registry().Zones() {
		v.drawZone(z, snap.Pose.Position, cx, cy, light, z.ID == snap.Hover.ZoneID)
	}
	v.screen.SetContent(cx, cy, arrowFor(snap.Pose.Orientation.Yaw), nil, styleCamera)

	v.drawText(2, 1, hud.Tagline, styleAccent)
	v.drawText(2, 2, hud.Title, styleHUD)

	controls := hud.Controls(v.sess.Keyboard().KeyMap())
	for i, line := range controls {
		v.drawText(2, h-len(controls)-2+i, line, styleHUD)
	}
	status := hud.StatusLine(snap)
	v.drawText(max(0, w-len([]rune(status))-1), h-1, status, styleHUD)

	label := hud.MenuToggleLabel(v.menuOpen) + " (t)"
	v.drawText(cx-len([]rune(label))/2, h-2, label, styleAccent)
	if v.menuOpen {
		for _, r := range v.menuRows() {
			v.drawText(r.x, r.y, r.text, stylePanel)
		}
	}

	if snap.Hover.Active() {
		panel := hud.InfoPanel(snap.Zone, 36)
		v.drawBox(w-42, 1, panel, zoneStyle(snap.Zone, 2))
	}
	if !snap.Entered {
		welcome := hud.Welcome(v.sess.Keyboard().KeyMap())
		v.drawBox(cx-32, cy-len(welcome)/2-1, welcome, stylePanel)
	}
	v.screen.Show()
}

func (v *Viewer) menuRows() []menuRow {
	w, h := v.screen.Size()
	entries := hud.Menu(v.sess.Registry().Zones())
	rows := make([]menuRow, len(entries))
	top := h - 3 - len(entries)
	for i, e := range entries {
		rows[i] = menuRow{x: w/2 - 10, y: top + i, text: e.String()}
	}
	return rows
}

func (v *Viewer) drawZone(z zone.Zone, cam motion.Vec3, cx, cy int, light float64, hovered bool) {
	style := zoneStyle(z, light)
	steps := int(math.Max(16, z.Radius*mapScale*4))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		px := z.Position.X + z.Radius*math.Cos(a)
		pz := z.Position.Z + z.Radius*math.Sin(a)
		x, y := project(px, pz, cam, cx, cy)
		ring := '·'
		if hovered {
			ring = '•'
		}
		v.screen.SetContent(x, y, ring, nil, style)
	}
	x, y := project(z.Position.X, z.Position.Z, cam, cx, cy)
	v.screen.SetContent(x, y, []rune(z.Initial())[0], nil, style.Bold(true).Reverse(hovered))
}

// project maps a world (x, z) to a cell, with the camera at (cx, cy) and
// world -Z toward the top of the screen.
func project(x, z float64, cam motion.Vec3, cx, cy int) (int, int) {
	col := cx + int(math.Round((x-cam.X)*mapScale))
	row := cy + int(math.Round((z-cam.Z)*mapScale/cellAspect))
	return col, row
}

// arrowFor picks the glyph for a camera facing yaw. Zero yaw faces world -Z
// (screen up) and positive yaw turns toward world -X (screen left).
func arrowFor(yaw float64) rune {
	turn := math.Mod(-yaw, 2*math.Pi)
	if turn < 0 {
		turn += 2 * math.Pi
	}
	octant := int(math.Round(turn/(math.Pi/4))) % len(arrows)
	return arrows[octant]
}

// zoneStyle scales the zone color by light, where 2 is full brightness.
func zoneStyle(z zone.Zone, light float64) tcell.Style {
	r, g, b, err := zone.ParseColor(z.Color)
	if err != nil || z.Color == "" {
		r, g, b = 0, 255, 255
	}
	k := math.Min(math.Max(light/2, 0), 1)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(
		int32(float64(r)*k),
		int32(float64(g)*k),
		int32(float64(b)*k),
	))
}

func (v *Viewer) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (v *Viewer) drawBox(x, y int, lines []string, style tcell.Style) {
	width := 0
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}
	for row := 0; row < len(lines)+2; row++ {
		for col := 0; col < width+4; col++ {
			v.screen.SetContent(x+col, y+row, ' ', nil, style)
		}
	}
	for i, l := range lines {
		v.drawText(x+2, y+1+i, l, style)
	}
}
