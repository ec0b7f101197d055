// Package paint assigns library materials to classified car parts.
package paint

import (
	"car-viewer/internal/material"
	"car-viewer/internal/model"
	"car-viewer/internal/parts"
)

// Selection is the material chosen for each paintable group. A nil entry leaves that
// group as it is.
type Selection struct {
	Body  *material.Material
	Rims  *material.Material
	Glass *material.Material
}

// Get returns the selected material for t.
func (s Selection) Get(t parts.Tag) *material.Material {
	switch t {
	case parts.Body:
		return s.Body
	case parts.Rims:
		return s.Rims
	case parts.Glass:
		return s.Glass
	}
	return nil
}

// Apply points every node of each group at its selected material and returns how many
// nodes changed. Applying the same selection again changes nothing.
func Apply(g *parts.Groups, sel Selection) int {
	if g == nil {
		return 0
	}
	changed := 0
	for _, t := range []parts.Tag{parts.Body, parts.Rims, parts.Glass} {
		changed += Assign(g.Get(t), sel.Get(t))
	}
	return changed
}

// Assign sets m on every node in nodes. Nil m is a no-op.
func Assign(nodes []*model.Node, m *material.Material) int {
	if m == nil {
		return 0
	}
	changed := 0
	for _, n := range nodes {
		if n.Material == m {
			continue
		}
		n.Material = m
		changed++
	}
	return changed
}

// Tint sets c on every tintable surface of n and flags it for re-upload. Surfaces
// already showing c are left clean. It returns the number of surfaces updated.
func Tint(n *model.Node, c material.Color) int {
	updated := 0
	for _, s := range n.Surfaces {
		if !s.Tintable || s.Color == c {
			continue
		}
		s.Color = c
		s.NeedsUpdate = true
		updated++
	}
	return updated
}

// TintAll tints every node in nodes.
func TintAll(nodes []*model.Node, c material.Color) int {
	updated := 0
	for _, n := range nodes {
		updated += Tint(n, c)
	}
	return updated
}
