// Package parts sorts the meshes of a loaded car into the groups a user can restyle:
// body, rims, glass, and the doors that open.
package parts

import (
	"fmt"
	"regexp"
	"strings"

	"car-viewer/internal/model"
)

// Tag names a part group.
type Tag string

const (
	Body  Tag = "body"
	Rims  Tag = "rims"
	Glass Tag = "glass"
	Doors Tag = "doors"
)

// Tags lists every group in classification order.
var Tags = []Tag{Body, Rims, Glass, Doors}

// Groups is the result of a classification. Each group is ordered by discovery and holds
// a node at most once. A mesh belongs to at most one of Body, Rims and Glass.
type Groups struct {
	Body  []*model.Node
	Rims  []*model.Node
	Glass []*model.Node
	Doors []*model.Node
}

// Get returns the nodes of group t. A nil Groups has no nodes.
func (g *Groups) Get(t Tag) []*model.Node {
	if g == nil {
		return nil
	}
	switch t {
	case Body:
		return g.Body
	case Rims:
		return g.Rims
	case Glass:
		return g.Glass
	case Doors:
		return g.Doors
	}
	return nil
}

// Ready reports whether classification found a body. An empty body means the model
// cannot be configured.
func (g *Groups) Ready() bool {
	return g != nil && len(g.Body) > 0
}

// String summarizes group sizes, e.g. "body=3 rims=4 glass=1 doors=2".
func (g *Groups) String() string {
	parts := make([]string, 0, len(Tags))
	for _, t := range Tags {
		parts = append(parts, fmt.Sprintf("%s=%d", t, len(g.Get(t))))
	}
	return strings.Join(parts, " ")
}

// Rules are the name tests the classifier applies. Patterns are matched against
// lower-cased node names; exact names are matched as written.
type Rules struct {
	BodyName     string
	BodyPattern  *regexp.Regexp
	Exclude      *regexp.Regexp
	RimNames     []string
	GlassPattern *regexp.Regexp
	GlassName    string
	DoorNames    []string
}

// DefaultRules returns the naming conventions of common car model exports.
func DefaultRules() Rules {
	return Rules{
		BodyName:     "body",
		BodyPattern:  regexp.MustCompile(`body|paint|carpaint|bodywork|car_body`),
		Exclude:      regexp.MustCompile(`glass|rim|tire|wheel|trim|logo|emblem|interior|seat|light|lamp`),
		RimNames:     []string{"rim_fl", "rim_fr", "rim_rr", "rim_rl", "trim"},
		GlassPattern: regexp.MustCompile(`glass|windshield|window`),
		GlassName:    "glass",
		DoorNames:    []string{"door_left", "door_right"},
	}
}

// Classify partitions root with DefaultRules.
func Classify(root *model.Node) *Groups {
	return DefaultRules().Classify(root)
}

// Classify partitions the meshes under root. Steps run in a fixed order and a mesh
// claimed by an earlier step is never reconsidered:
//
//  1. a direct child of root named BodyName
//  2. meshes whose name matches BodyPattern
//  3. only if 1 and 2 found nothing: meshes whose name does not match Exclude
//  4. nodes named in RimNames
//  5. meshes matching GlassPattern, then the node named GlassName
//  6. nodes named in DoorNames
//
// A named group node in steps 1, 4 and 5 contributes its mesh descendants. Doors keep
// the named node itself, since a door is moved as a whole and is never repainted.
func (r Rules) Classify(root *model.Node) *Groups {
	g := &Groups{}
	if root == nil {
		return g
	}
	claimed := make(map[*model.Node]Tag)
	claim := func(dst *[]*model.Node, tag Tag, nodes ...*model.Node) {
		for _, n := range nodes {
			if !n.IsRenderable() {
				continue
			}
			if _, taken := claimed[n]; taken {
				continue
			}
			claimed[n] = tag
			*dst = append(*dst, n)
		}
	}
	meshes := root.Meshes()

	if c := root.Child(r.BodyName); c != nil {
		claim(&g.Body, Body, c.Meshes()...)
	}
	if r.BodyPattern != nil {
		for _, m := range meshes {
			if r.BodyPattern.MatchString(strings.ToLower(m.Name)) {
				claim(&g.Body, Body, m)
			}
		}
	}
	if len(g.Body) == 0 && r.Exclude != nil {
		for _, m := range meshes {
			if !r.Exclude.MatchString(strings.ToLower(m.Name)) {
				claim(&g.Body, Body, m)
			}
		}
	}

	for _, name := range r.RimNames {
		if n := root.Find(name); n != nil {
			claim(&g.Rims, Rims, n.Meshes()...)
		}
	}

	if r.GlassPattern != nil {
		for _, m := range meshes {
			if r.GlassPattern.MatchString(strings.ToLower(m.Name)) {
				claim(&g.Glass, Glass, m)
			}
		}
	}
	if r.GlassName != "" {
		if n := root.Find(r.GlassName); n != nil {
			claim(&g.Glass, Glass, n.Meshes()...)
		}
	}

	seen := make(map[*model.Node]bool)
	for _, name := range r.DoorNames {
		if n := root.Find(name); n != nil && !seen[n] {
			seen[n] = true
			g.Doors = append(g.Doors, n)
		}
	}
	return g
}
