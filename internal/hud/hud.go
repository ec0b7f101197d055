// Package hud draws the configurator's on-screen controls: the current pick for every
// selector with its options, and the runtime counters.
package hud

import (
	"fmt"
	"runtime"
	"strings"

	"car-viewer/internal/app"
	"car-viewer/internal/parts"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 6
	// updateInterval: only refresh FPS/Mem text every N frames to reduce allocations.
	updateInterval = 30
)

var panelColor = rl.NewColor(16, 16, 16, 180)

// HUD holds overlay state. The counters are off by default.
type HUD struct {
	ShowFPS      bool
	ShowMemAlloc bool
	// VoiceAvailable shows the push-to-talk key.
	VoiceAvailable bool

	font         rl.Font // optional; when set, Draw uses DrawTextEx instead of default font
	frameCount   uint32
	lastFpsText  string
	lastMemText  string
	lastMemStats runtime.MemStats
}

// New returns a HUD with the counters hidden.
func New(voiceAvailable bool) *HUD {
	return &HUD{VoiceAvailable: voiceAvailable}
}

// SetFont sets the font used by the overlay. Zero texture ID = use raylib default.
func (h *HUD) SetFont(font rl.Font) {
	h.font = font
}

// Status returns the panel text for the current state.
func (h *HUD) Status(a *app.App) []string {
	lines := make([]string, 0, 10)
	if a.Ready() {
		lines = append(lines, fmt.Sprintf("Model: %s  (%s)", a.ModelPath(), a.Groups()))
	} else {
		lines = append(lines, "Model: loading...")
	}

	lib := a.Library()
	sel := a.Selection()
	keys := map[parts.Tag]string{parts.Body: "1", parts.Rims: "2", parts.Glass: "3"}
	for _, t := range []parts.Tag{parts.Body, parts.Rims, parts.Glass} {
		cur := "-"
		if m := sel.Get(t); m != nil {
			cur = m.Name
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s  (%s)", keys[t], title(t), cur, strings.Join(lib.Names(app.CategoryFor(t)), ", ")))
	}

	lights := a.Lighting()
	lines = append(lines, fmt.Sprintf("[L] Lighting: %s  (%s)", lights.Active(), strings.Join(lights.Options(), ", ")))
	lines = append(lines, fmt.Sprintf("[F] Follow camera: %s", onOff(a.Follow())))

	doors := "closed"
	switch {
	case len(a.Groups().Get(parts.Doors)) == 0:
		doors = "none"
	case a.DoorsOpen():
		doors = "open"
	}
	lines = append(lines, "[O] Doors: "+doors)

	if h.VoiceAvailable {
		state := "ready"
		if a.Listening() {
			state = "listening..."
		}
		lines = append(lines, "[V] Voice: "+state)
	}
	return lines
}

// Draw renders the status panel top-left and any enabled counters top-right.
func (h *HUD) Draw(a *app.App) {
	lines := h.Status(a)
	width := int32(0)
	for _, l := range lines {
		width = max(width, h.measure(l))
	}
	rl.DrawRectangle(padding/2, padding/2, width+padding*2, int32(len(lines))*lineHeight+padding, panelColor)
	for i, l := range lines {
		h.drawText(l, padding, padding+int32(i)*lineHeight, rl.RayWhite)
	}
	h.drawCounters()
}

func (h *HUD) drawCounters() {
	h.frameCount++
	update := h.frameCount%updateInterval == 0
	if (h.ShowFPS && h.lastFpsText == "") || (h.ShowMemAlloc && h.lastMemText == "") {
		update = true
	}

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	if h.ShowFPS {
		if update {
			h.lastFpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		h.drawText(h.lastFpsText, screenW-h.measure(h.lastFpsText)-padding, y, rl.Green)
		y += lineHeight
	}
	if h.ShowMemAlloc {
		if update {
			runtime.ReadMemStats(&h.lastMemStats)
			h.lastMemText = fmt.Sprintf("Mem: %.2f MiB", float64(h.lastMemStats.Alloc)/(1024*1024))
		}
		h.drawText(h.lastMemText, screenW-h.measure(h.lastMemText)-padding, y, rl.Green)
	}
}

func (h *HUD) measure(text string) int32 {
	if h.font.Texture.ID != 0 {
		return int32(rl.MeasureTextEx(h.font, text, fontSize, 1).X)
	}
	return rl.MeasureText(text, fontSize)
}

func (h *HUD) drawText(text string, x, y int32, c rl.Color) {
	if h.font.Texture.ID != 0 {
		rl.DrawTextEx(h.font, text, rl.NewVector2(float32(x), float32(y)), fontSize, 1, c)
		return
	}
	rl.DrawText(text, x, y, fontSize, c)
}

func title(t parts.Tag) string {
	switch t {
	case parts.Body:
		return "Body"
	case parts.Rims:
		return "Rims"
	case parts.Glass:
		return "Glass"
	}
	return string(t)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Cycle returns the option after current, wrapping around. An unknown current starts
// from the first option.
func Cycle(options []string, current string) string {
	if len(options) == 0 {
		return current
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Controls maps keys to configurator events. Call it only while the terminal is closed.
func Controls(a *app.App) {
	sel := a.Selection()
	for key, t := range map[int32]parts.Tag{rl.KeyOne: parts.Body, rl.KeyTwo: parts.Rims, rl.KeyThree: parts.Glass} {
		if !rl.IsKeyPressed(key) {
			continue
		}
		cur := ""
		if m := sel.Get(t); m != nil {
			cur = m.Name
		}
		a.Post(app.Select{Part: t, Name: Cycle(a.Library().Names(app.CategoryFor(t)), cur)})
	}
	if rl.IsKeyPressed(rl.KeyL) {
		a.Post(app.SetLighting{Preset: Cycle(a.Lighting().Options(), a.Lighting().Active())})
	}
	if rl.IsKeyPressed(rl.KeyF) {
		a.Post(app.ToggleFollow{})
	}
	if rl.IsKeyPressed(rl.KeyO) {
		a.Post(app.ToggleDoors{})
	}
}
