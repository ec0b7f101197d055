// Package viewer draws the car with raylib. The GPU model comes from raylib's own glTF
// loader; the node tree decoded by package model decides which material each mesh
// shows, so selections apply without reloading GPU data.
package viewer

import (
	"fmt"
	"log/slog"
	"unsafe"

	"car-viewer/internal/app"
	"car-viewer/internal/lighting"
	"car-viewer/internal/material"
	"car-viewer/internal/model"
	"car-viewer/internal/parts"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 20
	gridMajorStep  = 5
	gridMinorAlpha = 40
	gridMajorAlpha = 100
	// orbitDistance is the free camera's distance from the car when follow is off.
	orbitDistance = 8
)

// boundMesh is a GPU mesh with the material drawn in place of the loaded one once the
// node has a library material.
type boundMesh struct {
	Binding
	mtl   rl.Material
	base  rl.Shader
	hinge rl.Vector3
	// shown is the library material the GPU material was last synced from.
	shown *material.Material
}

// Viewer owns the GPU resources of the current model and the 3D camera.
type Viewer struct {
	Camera      rl.Camera3D
	GridVisible bool

	logger *slog.Logger
	shader rl.Shader
	locs   map[string]int32

	model  rl.Model
	loaded bool
	meshes []boundMesh
}

// New returns a viewer with a perspective camera looking at the origin. Call it after
// the window exists.
func New(logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	v := &Viewer{GridVisible: true, logger: logger, locs: make(map[string]int32)}
	v.Camera.Position = rl.NewVector3(orbitDistance, 3, orbitDistance)
	v.Camera.Target = rl.NewVector3(0, 0.6, 0)
	v.Camera.Up = rl.NewVector3(0, 1, 0)
	v.Camera.Fovy = 45
	v.Camera.Projection = rl.CameraPerspective

	v.shader = rl.LoadShaderFromMemory(litVS, litFS)
	if rl.IsShaderValid(v.shader) {
		for _, name := range uniformNames {
			v.locs[name] = rl.GetShaderLocation(v.shader, name)
		}
	} else {
		logger.Warn("Lit shader failed to compile, using raylib default shading")
	}
	return v
}

// Load replaces the GPU model with the file at path. root is the node tree decoded from
// the same file and groups its classification.
func (v *Viewer) Load(path string, root *model.Node, groups *parts.Groups) error {
	v.Unload()
	m := rl.LoadModel(path)
	if m.MeshCount == 0 {
		rl.UnloadModel(m)
		return fmt.Errorf("viewer: %s: no meshes", path)
	}
	v.model = m
	v.loaded = true

	left, right := doorNodes(groups)
	bindings := Bind(root, left, right)
	gpu := unsafe.Slice(m.Meshes, m.MeshCount)
	if len(bindings) != len(gpu) {
		v.logger.Warn("Mesh layout does not match the node tree, materials will not be swapped",
			slog.String("path", path),
			slog.Int("gpu_meshes", len(gpu)),
			slog.Int("surfaces", len(bindings)))
		return nil
	}

	v.meshes = make([]boundMesh, len(bindings))
	for i, b := range bindings {
		bm := boundMesh{Binding: b}
		if b.Door != NoDoor {
			box := rl.GetMeshBoundingBox(gpu[i])
			// Doors hinge on their front edge, at the vertical center line.
			bm.hinge = rl.NewVector3((box.Min.X+box.Max.X)/2, 0, box.Max.Z)
		}
		bm.mtl = rl.LoadMaterialDefault()
		bm.base = bm.mtl.Shader
		if rl.IsShaderValid(v.shader) {
			bm.mtl.Shader = v.shader
		}
		v.meshes[i] = bm
	}
	v.logger.Info("Model uploaded", slog.String("path", path), slog.Int("meshes", len(gpu)))
	return nil
}

func doorNodes(g *parts.Groups) (left, right *model.Node) {
	for _, d := range g.Get(parts.Doors) {
		switch d.Name {
		case "door_left":
			left = d
		case "door_right":
			right = d
		}
	}
	return left, right
}

// Unload releases the current model.
func (v *Viewer) Unload() {
	if !v.loaded {
		return
	}
	// The lit shader outlives the model, so each material gets its default shader back
	// before it is released.
	for i := range v.meshes {
		bm := &v.meshes[i]
		bm.mtl.Shader = bm.base
		rl.UnloadMaterial(bm.mtl)
	}
	v.meshes = nil
	rl.UnloadModel(v.model)
	v.loaded = false
}

// Close releases every GPU resource.
func (v *Viewer) Close() {
	v.Unload()
	if rl.IsShaderValid(v.shader) {
		rl.UnloadShader(v.shader)
	}
}

// Update moves the camera: it trails the car while follow is on and orbits the car
// otherwise.
func (v *Viewer) Update(a *app.App) {
	if a.Follow() {
		cam := a.Camera()
		v.Camera.Position = rl.NewVector3(cam.Position[0], cam.Position[1], cam.Position[2])
		v.Camera.Target = rl.NewVector3(cam.Target[0], cam.Target[1], cam.Target[2])
		return
	}
	p := a.Vehicle().Position
	v.Camera.Target = rl.NewVector3(p[0], p[1]+0.6, p[2])
	rl.UpdateCamera(&v.Camera, rl.CameraOrbital)
}

// Draw renders the grid and the car. Call between BeginDrawing and EndDrawing.
func (v *Viewer) Draw(a *app.App) {
	rl.BeginMode3D(v.Camera)
	if v.GridVisible {
		drawGround()
	}
	if v.loaded {
		v.drawCar(a)
	}
	rl.EndMode3D()
}

func (v *Viewer) drawCar(a *app.App) {
	veh := a.Vehicle()
	carM := rl.MatrixMultiply(rl.MatrixRotateY(veh.Heading), rl.MatrixTranslate(veh.Position[0], veh.Position[1], veh.Position[2]))

	if v.meshes == nil {
		v.model.Transform = carM
		rl.DrawModel(v.model, rl.NewVector3(0, 0, 0), 1, rl.White)
		return
	}

	v.setLightUniforms(a.Lighting())
	gpu := unsafe.Slice(v.model.Meshes, v.model.MeshCount)
	loadedMtls := unsafe.Slice(v.model.Materials, v.model.MaterialCount)
	meshMtl := unsafe.Slice(v.model.MeshMaterial, v.model.MeshCount)
	angle := a.DoorFraction() * app.DoorAngle

	// Opaque first, then transparent surfaces over them.
	for pass := 0; pass < 2; pass++ {
		transparentPass := pass == 1
		if transparentPass {
			rl.BeginBlendMode(rl.BlendAlpha)
		}
		for i := range v.meshes {
			bm := &v.meshes[i]
			lib := bm.Node.Material
			transparent := lib != nil && lib.Transparent()
			if transparent != transparentPass {
				continue
			}
			transform := carM
			if bm.Door != NoDoor && angle > 0 {
				h := bm.hinge
				door := rl.MatrixMultiply(rl.MatrixMultiply(rl.MatrixTranslate(-h.X, -h.Y, -h.Z), rl.MatrixRotateY(angle*float32(bm.Door))), rl.MatrixTranslate(h.X, h.Y, h.Z))
				transform = rl.MatrixMultiply(door, carM)
			}
			surf := bm.Node.Surfaces[bm.Surface]
			if lib == nil || !surf.Tintable {
				rl.DrawMesh(gpu[i], loadedMtls[meshMtl[i]], transform)
				continue
			}
			v.syncMaterial(bm)
			rl.DrawMesh(gpu[i], bm.mtl, transform)
		}
		if transparentPass {
			rl.EndBlendMode()
		}
	}
}

// syncMaterial copies the surface tint and library parameters into the GPU material
// when the surface changed.
func (v *Viewer) syncMaterial(bm *boundMesh) {
	surf := bm.Node.Surfaces[bm.Surface]
	lib := bm.Node.Material
	if !surf.NeedsUpdate && bm.shown == lib {
		v.setSurfaceUniforms(lib.Metalness, lib.Roughness, lib.Clearcoat)
		return
	}
	c := surf.Color
	alpha := uint8(float32(c.A) * lib.Opacity)
	if albedo := bm.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.NewColor(c.R, c.G, c.B, alpha)
	}
	surf.NeedsUpdate = false
	bm.shown = lib
	v.setSurfaceUniforms(lib.Metalness, lib.Roughness, lib.Clearcoat)
}

func (v *Viewer) setSurfaceUniforms(metalness, roughness, clearcoat float32) {
	if !rl.IsShaderValid(v.shader) {
		return
	}
	power, strength := Specular(metalness, roughness, clearcoat)
	if loc := v.locs["specularPower"]; loc >= 0 {
		rl.SetShaderValue(v.shader, loc, []float32{power}, rl.ShaderUniformFloat)
	}
	if loc := v.locs["specularStrength"]; loc >= 0 {
		rl.SetShaderValue(v.shader, loc, []float32{strength}, rl.ShaderUniformFloat)
	}
}

// setLightUniforms uploads the visible lights of the active preset (cgo-safe: local arrays).
func (v *Viewer) setLightUniforms(sel *lighting.Selector) {
	if !rl.IsShaderValid(v.shader) {
		return
	}
	u := PackLights(sel.VisibleLights())
	viewPos := [3]float32{v.Camera.Position.X, v.Camera.Position.Y, v.Camera.Position.Z}
	if loc := v.locs["viewPos"]; loc >= 0 {
		rl.SetShaderValueV(v.shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := v.locs["ambient"]; loc >= 0 {
		rl.SetShaderValueV(v.shader, loc, u.Ambient[:], rl.ShaderUniformVec3, 1)
	}
	if loc := v.locs["skyColor"]; loc >= 0 {
		rl.SetShaderValueV(v.shader, loc, u.SkyColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := v.locs["lightCount"]; loc >= 0 {
		rl.SetShaderValue(v.shader, loc, []float32{float32(u.Count)}, rl.ShaderUniformFloat)
	}
	kinds := make([]float32, MaxLights)
	for i, k := range u.Kinds {
		kinds[i] = float32(k)
	}
	if loc := v.locs["lightKind"]; loc >= 0 {
		rl.SetShaderValueV(v.shader, loc, kinds, rl.ShaderUniformFloat, MaxLights)
	}
	if loc := v.locs["lightVector"]; loc >= 0 {
		rl.SetShaderValueV(v.shader, loc, u.Vectors[:], rl.ShaderUniformVec3, MaxLights)
	}
	if loc := v.locs["lightColor"]; loc >= 0 {
		rl.SetShaderValueV(v.shader, loc, u.Colors[:], rl.ShaderUniformVec3, MaxLights)
	}
}

// drawGround draws a grid on the XZ plane under the car.
func drawGround() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i++ {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}
}

var uniformNames = []string{
	"viewPos", "ambient", "skyColor", "lightCount", "lightKind", "lightVector", "lightColor",
	"specularPower", "specularStrength",
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 mvp;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec3 fragNormal;
void main() {
  fragPosition = vec3(matModel * vec4(vertexPosition, 1.0));
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	litFS = `#version 330
#define MAX_LIGHTS 4
in vec3 fragPosition;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform vec3 skyColor;
uniform float lightCount;
uniform float lightKind[MAX_LIGHTS];
uniform vec3 lightVector[MAX_LIGHTS];
uniform vec3 lightColor[MAX_LIGHTS];
uniform float specularPower;
uniform float specularStrength;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  float up = N.y * 0.5 + 0.5;
  vec3 color = tint.rgb * (ambient + skyColor * up + skyColor * 0.25 * (1.0 - up));
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (float(i) >= lightCount) break;
    vec3 L;
    float atten = 1.0;
    if (lightKind[i] < 0.5) {
      L = normalize(lightVector[i]);
    } else {
      vec3 d = lightVector[i] - fragPosition;
      float dist = length(d);
      L = d / max(dist, 0.0001);
      atten = 1.0 / (1.0 + 0.09 * dist + 0.032 * dist * dist);
    }
    float NdotL = max(dot(N, L), 0.0);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), specularPower) * specularStrength;
    color += (tint.rgb * NdotL + spec * (NdotL > 0.0 ? 1.0 : 0.0)) * lightColor[i] * atten;
  }
  finalColor = vec4(color, tint.a);
}
`
)
