package model

import (
	"fmt"
	"math"

	"car-viewer/internal/material"

	"github.com/qmuntal/gltf"
)

// LoadGLTF reads a .gltf or .glb file and returns its default scene as a node tree.
func LoadGLTF(path string) (*Node, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", path, err)
	}
	root, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("model: %s: %w", path, err)
	}
	return root, nil
}

// FromDocument converts the document's default scene (or its first scene) into a tree
// rooted at a synthetic group named after the scene. The scene's root nodes become the
// direct children of that group.
func FromDocument(doc *gltf.Document) (*Node, error) {
	if len(doc.Scenes) == 0 {
		return nil, ErrNoScene
	}
	sceneIdx := 0
	if doc.Scene != nil {
		sceneIdx = int(*doc.Scene)
	}
	if sceneIdx < 0 || sceneIdx >= len(doc.Scenes) {
		return nil, fmt.Errorf("model: scene index %d out of range", sceneIdx)
	}
	scene := doc.Scenes[sceneIdx]
	name := scene.Name
	if name == "" {
		name = "scene"
	}
	root := NewGroup(name)
	visiting := make(map[int]bool)
	for _, idx := range scene.Nodes {
		child, err := convertNode(doc, int(idx), visiting)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

func convertNode(doc *gltf.Document, idx int, visiting map[int]bool) (*Node, error) {
	if idx < 0 || idx >= len(doc.Nodes) {
		return nil, fmt.Errorf("model: node index %d out of range", idx)
	}
	if visiting[idx] {
		return nil, fmt.Errorf("model: node %d is its own ancestor", idx)
	}
	visiting[idx] = true
	defer delete(visiting, idx)

	src := doc.Nodes[idx]
	var n *Node
	if src.Mesh != nil && int(*src.Mesh) < len(doc.Meshes) {
		n = &Node{Name: src.Name, Kind: KindMesh, Surfaces: surfaces(doc, doc.Meshes[int(*src.Mesh)])}
	} else {
		n = &Node{Name: src.Name, Kind: KindGroup}
	}
	n.SourceIndex = idx
	for _, c := range src.Children {
		child, err := convertNode(doc, int(c), visiting)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func surfaces(doc *gltf.Document, mesh *gltf.Mesh) []*Surface {
	out := make([]*Surface, 0, len(mesh.Primitives))
	for _, prim := range mesh.Primitives {
		s := &Surface{Name: mesh.Name, Color: material.RGB(255, 255, 255), Tintable: true}
		if prim.Material != nil && int(*prim.Material) < len(doc.Materials) {
			m := doc.Materials[int(*prim.Material)]
			s.Name = m.Name
			if m.PBRMetallicRoughness == nil {
				s.Tintable = false
			} else {
				f := m.PBRMetallicRoughness.BaseColorFactorOrDefault()
				s.Color = material.Color{
					R: unit8(float64(f[0])),
					G: unit8(float64(f[1])),
					B: unit8(float64(f[2])),
					A: unit8(float64(f[3])),
				}
			}
		}
		out = append(out, s)
	}
	return out
}

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
