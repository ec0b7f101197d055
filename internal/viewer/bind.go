package viewer

import (
	"slices"

	"car-viewer/internal/model"
)

// Door sides. A left door swings open with a positive angle, a right door negative.
const (
	NoDoor    = 0
	LeftDoor  = 1
	RightDoor = -1
)

// Binding ties one GPU mesh to the node and surface it was built from.
type Binding struct {
	Node    *model.Node
	Surface int
	Door    int
}

// Bind lists the surfaces of root's meshes in the order the GPU loader emits meshes:
// source node order, then primitive order. doors are the left and right door nodes;
// surfaces under either get a door side.
func Bind(root *model.Node, left, right *model.Node) []Binding {
	side := make(map[*model.Node]int)
	for _, d := range []struct {
		node *model.Node
		side int
	}{{left, LeftDoor}, {right, RightDoor}} {
		if d.node == nil {
			continue
		}
		d.node.Walk(func(n *model.Node) { side[n] = d.side })
	}

	var meshes []*model.Node
	seen := make(map[*model.Node]bool)
	root.Walk(func(n *model.Node) {
		if n.IsRenderable() && n.SourceIndex >= 0 && !seen[n] {
			seen[n] = true
			meshes = append(meshes, n)
		}
	})
	slices.SortStableFunc(meshes, func(a, b *model.Node) int { return a.SourceIndex - b.SourceIndex })

	var out []Binding
	for _, n := range meshes {
		for i := range n.Surfaces {
			out = append(out, Binding{Node: n, Surface: i, Door: side[n]})
		}
	}
	return out
}
