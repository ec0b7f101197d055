package paint

import (
	"testing"

	"car-viewer/internal/material"
	"car-viewer/internal/model"
	"car-viewer/internal/parts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classified(t *testing.T) (*model.Node, *parts.Groups) {
	t.Helper()
	root := model.NewGroup("scene",
		model.NewMesh("body"),
		model.NewMesh("rim_fl"), model.NewMesh("rim_fr"),
		model.NewMesh("glass"),
		model.NewMesh("tire_fl"),
	)
	g := parts.Classify(root)
	require.True(t, g.Ready())
	return root, g
}

func TestApply(t *testing.T) {
	root, g := classified(t)
	lib := material.Default()
	red, _ := lib.Lookup(material.Main, "red")
	black, _ := lib.Lookup(material.Main, "black")
	tinted, _ := lib.Lookup(material.Glass, "tinted")

	n := Apply(g, Selection{Body: red, Rims: black, Glass: tinted})
	assert.Equal(t, 4, n)

	assert.Same(t, red, root.Find("body").Material)
	assert.Same(t, black, root.Find("rim_fl").Material)
	assert.Same(t, black, root.Find("rim_fr").Material)
	assert.Same(t, tinted, root.Find("glass").Material)
	assert.Nil(t, root.Find("tire_fl").Material, "unclassified meshes keep their own materials")
}

func TestApplyIsIdempotent(t *testing.T) {
	root, g := classified(t)
	lib := material.Default()
	red, _ := lib.Lookup(material.Main, "red")
	sel := Selection{Body: red}

	require.Equal(t, 1, Apply(g, sel))
	assert.Equal(t, 0, Apply(g, sel))
	assert.Same(t, red, root.Find("body").Material)
}

func TestApplyNilSelectionLeavesGroup(t *testing.T) {
	root, g := classified(t)
	lib := material.Default()
	white, _ := lib.Lookup(material.Main, "white")
	silver, _ := lib.Lookup(material.Main, "silver")

	Apply(g, Selection{Body: white, Rims: silver})
	Apply(g, Selection{Body: silver})

	assert.Same(t, silver, root.Find("body").Material)
	assert.Same(t, silver, root.Find("rim_fl").Material)
	assert.Nil(t, root.Find("glass").Material)
	assert.Equal(t, 0, Apply(nil, Selection{Body: white}))
}

func TestTintMultiMaterial(t *testing.T) {
	decal := &model.Surface{Name: "decal", Tintable: false, Color: material.RGB(1, 2, 3)}
	n := model.NewMesh("body",
		&model.Surface{Name: "paint", Tintable: true},
		decal,
		&model.Surface{Name: "paint2", Tintable: true},
	)
	blue := material.RGB(0, 0, 255)

	assert.Equal(t, 2, Tint(n, blue))
	assert.Equal(t, blue, n.Surfaces[0].Color)
	assert.True(t, n.Surfaces[0].NeedsUpdate)
	assert.Equal(t, blue, n.Surfaces[2].Color)
	assert.Equal(t, material.RGB(1, 2, 3), decal.Color)
	assert.False(t, decal.NeedsUpdate)

	for _, s := range n.Surfaces {
		s.NeedsUpdate = false
	}
	assert.Equal(t, 0, Tint(n, blue), "same color twice is a no-op")
	assert.False(t, n.Surfaces[0].NeedsUpdate)
}

func TestTintAll(t *testing.T) {
	_, g := classified(t)
	assert.Equal(t, 2, TintAll(g.Rims, material.RGB(10, 10, 10)))
}
