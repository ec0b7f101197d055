// Package material holds the predefined paint and glass materials a user can pick from.
// A Library is built once and never mutated; groups of scene nodes hold references to
// its entries, so swapping a part's material is a pointer assignment.
package material

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category names a selectable list of materials.
type Category string

const (
	// Main is used for body paint and rims.
	Main Category = "main"
	// Glass is used for windows and windshields.
	Glass Category = "glass"
)

// Categories lists every category in display order.
var Categories = []Category{Main, Glass}

// Material is a named set of surface parameters.
type Material struct {
	Name         string  `yaml:"name"`
	Color        Color   `yaml:"color"`
	Metalness    float32 `yaml:"metalness"`
	Roughness    float32 `yaml:"roughness"`
	Opacity      float32 `yaml:"opacity"`
	Transmission float32 `yaml:"transmission,omitempty"`
	Clearcoat    float32 `yaml:"clearcoat,omitempty"`
}

// Transparent reports whether the material needs alpha blending.
func (m *Material) Transparent() bool {
	return m.Opacity < 1 || m.Transmission > 0
}

// File is the on-disk shape of a material library (see Load).
type File struct {
	Main  []Material `yaml:"main"`
	Glass []Material `yaml:"glass"`
}

// Library maps each category to its materials in declaration order.
type Library struct {
	cats map[Category][]*Material
}

// New builds a library from f. Names must be non-empty and unique within a category;
// they are stored lower-cased so text commands can match them. Opacity 0 means opaque.
func New(f File) (*Library, error) {
	lib := &Library{cats: make(map[Category][]*Material, len(Categories))}
	for _, c := range Categories {
		var src []Material
		switch c {
		case Main:
			src = f.Main
		case Glass:
			src = f.Glass
		}
		seen := make(map[string]bool, len(src))
		list := make([]*Material, 0, len(src))
		for i := range src {
			m := src[i]
			m.Name = strings.ToLower(strings.TrimSpace(m.Name))
			if m.Name == "" {
				return nil, fmt.Errorf("material: %s[%d]: missing name", c, i)
			}
			if seen[m.Name] {
				return nil, fmt.Errorf("material: %s: duplicate name %q", c, m.Name)
			}
			seen[m.Name] = true
			if m.Opacity <= 0 {
				m.Opacity = 1
			}
			list = append(list, &m)
		}
		lib.cats[c] = list
	}
	return lib, nil
}

// Parse decodes a YAML library.
func Parse(data []byte) (*Library, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("material: parse: %w", err)
	}
	return New(f)
}

// Load reads a YAML library from path.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("material: read %s: %w", path, err)
	}
	return Parse(data)
}

// Category returns the materials of c in declaration order. The slice must not be modified.
func (l *Library) Category(c Category) []*Material {
	return l.cats[c]
}

// Lookup returns the material named name in category c.
func (l *Library) Lookup(c Category, name string) (*Material, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range l.cats[c] {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Names returns the material names of c in declaration order.
func (l *Library) Names(c Category) []string {
	out := make([]string, 0, len(l.cats[c]))
	for _, m := range l.cats[c] {
		out = append(out, m.Name)
	}
	return out
}

// DefaultFile is the built-in palette used when no materials file is configured.
func DefaultFile() File {
	return File{
		Main: []Material{
			{Name: "red", Color: MustHex("#b01010"), Metalness: 0.6, Roughness: 0.25, Clearcoat: 1},
			{Name: "black", Color: MustHex("#111111"), Metalness: 0.7, Roughness: 0.2, Clearcoat: 1},
			{Name: "white", Color: MustHex("#f2f2f2"), Metalness: 0.3, Roughness: 0.3, Clearcoat: 1},
			{Name: "silver", Color: MustHex("#c0c0c8"), Metalness: 1, Roughness: 0.2},
			{Name: "blue", Color: MustHex("#1d3f9c"), Metalness: 0.6, Roughness: 0.25, Clearcoat: 1},
			{Name: "gold", Color: MustHex("#d4a437"), Metalness: 1, Roughness: 0.15},
			{Name: "matte", Color: MustHex("#3a3a3a"), Metalness: 0, Roughness: 0.9},
		},
		Glass: []Material{
			{Name: "clear", Color: MustHex("#ffffff"), Roughness: 0, Opacity: 0.25, Transmission: 1},
			{Name: "tinted", Color: MustHex("#304050"), Roughness: 0, Opacity: 0.6, Transmission: 0.6},
			{Name: "smoked", Color: MustHex("#101010"), Roughness: 0.05, Opacity: 0.85, Transmission: 0.3},
			{Name: "blue", Color: MustHex("#6688cc"), Roughness: 0, Opacity: 0.4, Transmission: 0.8},
		},
	}
}

// Default returns a library built from DefaultFile.
func Default() *Library {
	lib, err := New(DefaultFile())
	if err != nil {
		panic(err)
	}
	return lib
}
