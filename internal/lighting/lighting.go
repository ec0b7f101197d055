// Package lighting holds named light presets and keeps at most one of them switched on.
package lighting

import (
	"fmt"
	"strings"

	"car-viewer/internal/material"
)

// None is the selector value that switches every preset off.
const None = "none"

// Kind is the type of a light source.
type Kind string

const (
	Ambient     Kind = "ambient"
	Directional Kind = "directional"
	Point       Kind = "point"
	Spot        Kind = "spot"
	Hemisphere  Kind = "hemisphere"
)

// Light is one light source. Position is a direction for directional lights.
type Light struct {
	Kind      Kind           `yaml:"kind"`
	Color     material.Color `yaml:"color"`
	Intensity float32        `yaml:"intensity"`
	Position  [3]float32     `yaml:"position,omitempty"`
	Visible   bool           `yaml:"-"`
}

// Preset is a named group of lights toggled as a unit.
type Preset struct {
	Name   string   `yaml:"name"`
	Lights []*Light `yaml:"lights"`
}

// Selector owns the presets and switches between them.
type Selector struct {
	presets []Preset
	active  string
}

// NewSelector returns a selector with every light off. Names are lower-cased; they must
// be non-empty, unique and not "none".
func NewSelector(presets []Preset) (*Selector, error) {
	seen := make(map[string]bool, len(presets))
	out := make([]Preset, 0, len(presets))
	for i, p := range presets {
		p.Name = strings.ToLower(strings.TrimSpace(p.Name))
		switch {
		case p.Name == "":
			return nil, fmt.Errorf("lighting: preset %d: missing name", i)
		case p.Name == None:
			return nil, fmt.Errorf("lighting: %q is reserved", None)
		case seen[p.Name]:
			return nil, fmt.Errorf("lighting: duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		for _, l := range p.Lights {
			l.Visible = false
		}
		out = append(out, p)
	}
	return &Selector{presets: out, active: None}, nil
}

// SetActive hides every light, then shows the lights of the preset called name. It
// returns false for unknown names and for None; in both cases everything stays off.
func (s *Selector) SetActive(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range s.presets {
		for _, l := range p.Lights {
			l.Visible = false
		}
	}
	s.active = None
	for _, p := range s.presets {
		if p.Name != name {
			continue
		}
		for _, l := range p.Lights {
			l.Visible = true
		}
		s.active = p.Name
		return true
	}
	return false
}

// Active returns the active preset name, or None.
func (s *Selector) Active() string {
	return s.active
}

// Has reports whether name is a known preset.
func (s *Selector) Has(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range s.presets {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Names returns preset names in declaration order.
func (s *Selector) Names() []string {
	out := make([]string, 0, len(s.presets))
	for _, p := range s.presets {
		out = append(out, p.Name)
	}
	return out
}

// Options returns the choices for a preset picker: every preset followed by None.
func (s *Selector) Options() []string {
	return append(s.Names(), None)
}

// VisibleLights returns every light currently switched on.
func (s *Selector) VisibleLights() []*Light {
	var out []*Light
	for _, p := range s.presets {
		for _, l := range p.Lights {
			if l.Visible {
				out = append(out, l)
			}
		}
	}
	return out
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: "studio", Lights: []*Light{
			{Kind: Hemisphere, Color: material.MustHex("#ffffff"), Intensity: 0.6},
			{Kind: Directional, Color: material.MustHex("#ffffff"), Intensity: 0.9, Position: [3]float32{5, 10, 7}},
			{Kind: Directional, Color: material.MustHex("#dde8ff"), Intensity: 0.4, Position: [3]float32{-6, 4, -5}},
		}},
		{Name: "ambient", Lights: []*Light{
			{Kind: Ambient, Color: material.MustHex("#ffffff"), Intensity: 1},
		}},
		{Name: "sunset", Lights: []*Light{
			{Kind: Ambient, Color: material.MustHex("#402020"), Intensity: 0.4},
			{Kind: Directional, Color: material.MustHex("#ff9a50"), Intensity: 1.1, Position: [3]float32{-10, 2, 3}},
		}},
		{Name: "night", Lights: []*Light{
			{Kind: Ambient, Color: material.MustHex("#101830"), Intensity: 0.3},
			{Kind: Point, Color: material.MustHex("#88aaff"), Intensity: 0.8, Position: [3]float32{0, 4, 0}},
			{Kind: Spot, Color: material.MustHex("#ffffff"), Intensity: 1.2, Position: [3]float32{3, 6, 3}},
		}},
	}
}
