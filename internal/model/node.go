// Package model is the scene graph of a loaded car: named nodes, some of which carry
// renderable meshes. The graph is built once by the loader; after that only material
// references and surface colors change.
package model

import (
	"errors"

	"car-viewer/internal/material"
)

// ErrNoScene is returned when an asset has no scene to show.
var ErrNoScene = errors.New("model: asset contains no scene")

// Kind distinguishes plain transform nodes from renderable meshes. It is fixed when the
// node is created.
type Kind int

const (
	KindGroup Kind = iota
	KindMesh
)

func (k Kind) String() string {
	if k == KindMesh {
		return "mesh"
	}
	return "group"
}

// Surface is one sub-material of a mesh (one per glTF primitive).
type Surface struct {
	Name        string
	Color       material.Color
	Tintable    bool
	NeedsUpdate bool
}

// Node is a scene graph node.
type Node struct {
	Name     string
	Kind     Kind
	Children []*Node

	// Material is the shared library material assigned to the whole node. Nil means the
	// node still shows the materials it was loaded with.
	Material *material.Material
	// Surfaces are the per-primitive materials, in primitive order. Empty for groups.
	Surfaces []*Surface

	// SourceIndex is the node's index in the source asset, -1 for synthetic nodes.
	SourceIndex int
}

// NewGroup returns a non-renderable node.
func NewGroup(name string, children ...*Node) *Node {
	return &Node{Name: name, Kind: KindGroup, Children: children, SourceIndex: -1}
}

// NewMesh returns a renderable node. A mesh with no surfaces gets one tintable default surface.
func NewMesh(name string, surfaces ...*Surface) *Node {
	if len(surfaces) == 0 {
		surfaces = []*Surface{{Name: name, Color: material.RGB(255, 255, 255), Tintable: true}}
	}
	return &Node{Name: name, Kind: KindMesh, Surfaces: surfaces, SourceIndex: -1}
}

// IsRenderable reports whether the node draws geometry.
func (n *Node) IsRenderable() bool {
	return n != nil && n.Kind == KindMesh
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Child returns the first direct child named exactly name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find returns the first node in traversal order named exactly name, including n itself.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.Name == name {
			found = c
		}
	})
	return found
}

// Meshes returns every renderable node under n (inclusive) in traversal order.
func (n *Node) Meshes() []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.IsRenderable() {
			out = append(out, c)
		}
	})
	return out
}

// Count returns the number of nodes under n, inclusive.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) { count++ })
	return count
}
