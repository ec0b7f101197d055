package model

import (
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Node {
	return NewGroup("scene",
		NewGroup("car",
			NewMesh("body"),
			NewGroup("wheels", NewMesh("rim_fl"), NewMesh("tire_fl")),
		),
		NewMesh("glass"),
	)
}

func TestWalkOrder(t *testing.T) {
	var names []string
	sampleTree().Walk(func(n *Node) { names = append(names, n.Name) })
	assert.Equal(t, []string{"scene", "car", "body", "wheels", "rim_fl", "tire_fl", "glass"}, names)
}

func TestChildFindMeshes(t *testing.T) {
	root := sampleTree()

	assert.Nil(t, root.Child("body"), "body is a grandchild, not a direct child")
	assert.NotNil(t, root.Child("glass"))
	assert.Equal(t, "body", root.Find("body").Name)
	assert.Nil(t, root.Find("missing"))

	var meshes []string
	for _, m := range root.Meshes() {
		meshes = append(meshes, m.Name)
	}
	assert.Equal(t, []string{"body", "rim_fl", "tire_fl", "glass"}, meshes)
	assert.Equal(t, 7, root.Count())
}

func TestKind(t *testing.T) {
	assert.True(t, NewMesh("m").IsRenderable())
	assert.False(t, NewGroup("g").IsRenderable())
	var nilNode *Node
	assert.False(t, nilNode.IsRenderable())
	assert.Equal(t, "mesh", KindMesh.String())

	m := NewMesh("m")
	require.Len(t, m.Surfaces, 1)
	assert.True(t, m.Surfaces[0].Tintable)
}

func TestFromDocument(t *testing.T) {
	doc := &gltf.Document{
		Materials: []*gltf.Material{
			{Name: "paint", PBRMetallicRoughness: &gltf.PBRMetallicRoughness{}},
			{Name: "decal"},
		},
		Meshes: []*gltf.Mesh{
			{Name: "body_mesh", Primitives: []*gltf.Primitive{
				{Material: gltf.Index(0)},
				{Material: gltf.Index(1)},
			}},
			{Name: "rim_mesh", Primitives: []*gltf.Primitive{{}}},
		},
		Nodes: []*gltf.Node{
			{Name: "car", Children: []int{1, 2}},
			{Name: "body", Mesh: gltf.Index(0)},
			{Name: "rim_fl", Mesh: gltf.Index(1)},
		},
		Scenes: []*gltf.Scene{{Name: "Car Scene", Nodes: []int{0}}},
	}

	root, err := FromDocument(doc)
	require.NoError(t, err)
	assert.Equal(t, "Car Scene", root.Name)
	assert.Equal(t, -1, root.SourceIndex)
	require.Len(t, root.Children, 1)

	car := root.Child("car")
	require.NotNil(t, car)
	assert.False(t, car.IsRenderable())

	body := root.Find("body")
	require.NotNil(t, body)
	assert.True(t, body.IsRenderable())
	assert.Equal(t, 1, body.SourceIndex)
	require.Len(t, body.Surfaces, 2)
	assert.Equal(t, "paint", body.Surfaces[0].Name)
	assert.True(t, body.Surfaces[0].Tintable)
	assert.Equal(t, uint8(255), body.Surfaces[0].Color.R)
	assert.False(t, body.Surfaces[1].Tintable, "material without a PBR block exposes no color")

	rim := root.Find("rim_fl")
	require.Len(t, rim.Surfaces, 1)
	assert.True(t, rim.Surfaces[0].Tintable)
}

func TestFromDocumentErrors(t *testing.T) {
	_, err := FromDocument(&gltf.Document{})
	assert.ErrorIs(t, err, ErrNoScene)

	cyclic := &gltf.Document{
		Nodes:  []*gltf.Node{{Name: "a", Children: []int{1}}, {Name: "b", Children: []int{0}}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
	}
	_, err = FromDocument(cyclic)
	assert.ErrorContains(t, err, "own ancestor")

	dangling := &gltf.Document{
		Nodes:  []*gltf.Node{{Name: "a", Children: []int{5}}},
		Scenes: []*gltf.Scene{{Nodes: []int{0}}},
	}
	_, err = FromDocument(dangling)
	assert.ErrorContains(t, err, "out of range")
}
