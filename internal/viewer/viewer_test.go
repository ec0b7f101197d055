package viewer

import (
	"testing"

	"car-viewer/internal/lighting"
	"car-viewer/internal/material"
	"car-viewer/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexed(n *model.Node, idx int) *model.Node {
	n.SourceIndex = idx
	return n
}

func TestBindFollowsSourceOrder(t *testing.T) {
	twoTone := indexed(model.NewMesh("body", &model.Surface{Name: "paint"}, &model.Surface{Name: "chrome"}), 3)
	panel := indexed(model.NewMesh("door_left_panel"), 5)
	left := indexed(model.NewGroup("door_left", panel), 4)
	rightMesh := indexed(model.NewMesh("door_right"), 1)
	root := model.NewGroup("scene",
		indexed(model.NewGroup("car",
			twoTone,
			left,
		), 0),
		rightMesh,
		model.NewMesh("synthetic"),
	)

	b := Bind(root, left, rightMesh)
	require.Len(t, b, 4)
	assert.Same(t, rightMesh, b[0].Node)
	assert.Equal(t, RightDoor, b[0].Door)
	assert.Same(t, twoTone, b[1].Node)
	assert.Equal(t, 0, b[1].Surface)
	assert.Equal(t, 1, b[2].Surface)
	assert.Equal(t, NoDoor, b[2].Door)
	assert.Same(t, panel, b[3].Node)
	assert.Equal(t, LeftDoor, b[3].Door)
}

func TestBindWithoutDoors(t *testing.T) {
	root := model.NewGroup("scene", indexed(model.NewMesh("body"), 0))
	b := Bind(root, nil, nil)
	require.Len(t, b, 1)
	assert.Equal(t, NoDoor, b[0].Door)
}

func TestPackLights(t *testing.T) {
	lights := []*lighting.Light{
		{Kind: lighting.Ambient, Color: material.RGB(255, 255, 255), Intensity: 0.5},
		{Kind: lighting.Hemisphere, Color: material.RGB(255, 0, 0), Intensity: 1},
		{Kind: lighting.Directional, Color: material.RGB(255, 255, 255), Intensity: 1, Position: [3]float32{0, 10, 0}},
		{Kind: lighting.Point, Color: material.RGB(0, 255, 0), Intensity: 2, Position: [3]float32{1, 2, 3}},
	}
	u := PackLights(lights)

	assert.Equal(t, int32(2), u.Count)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, u.Ambient)
	assert.Equal(t, [3]float32{1, 0, 0}, u.SkyColor)
	assert.Equal(t, int32(shaderDirectional), u.Kinds[0])
	assert.Equal(t, []float32{0, 1, 0}, u.Vectors[0:3])
	assert.Equal(t, int32(shaderPoint), u.Kinds[1])
	assert.Equal(t, []float32{1, 2, 3}, u.Vectors[3:6])
	assert.Equal(t, []float32{0, 2, 0}, u.Colors[3:6])
}

func TestPackLightsCapsCount(t *testing.T) {
	var lights []*lighting.Light
	for i := 0; i < MaxLights+2; i++ {
		lights = append(lights, &lighting.Light{Kind: lighting.Spot, Intensity: 1})
	}
	assert.Equal(t, int32(MaxLights), PackLights(lights).Count)
	assert.Equal(t, int32(0), PackLights(nil).Count)
}

func TestSpecular(t *testing.T) {
	matteP, matteS := Specular(0, 1, 0)
	glossP, glossS := Specular(1, 0, 1)
	assert.Less(t, matteP, glossP)
	assert.Less(t, matteS, glossS)
	assert.InDelta(t, 4, matteP, 1e-6)
	assert.InDelta(t, 1, glossS, 1e-6)

	p, _ := Specular(0, 7, 0)
	assert.Equal(t, matteP, p, "out of range roughness is clamped")
}
