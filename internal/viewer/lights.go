package viewer

import (
	"car-viewer/internal/lighting"

	"github.com/chewxy/math32"
)

// MaxLights is the number of non-ambient lights the shader evaluates.
const MaxLights = 4

// Light kinds as the shader sees them.
const (
	shaderDirectional = 0
	shaderPoint       = 1
)

// LightUniforms is the shader input built from the visible lights.
type LightUniforms struct {
	Count    int32
	Kinds    [MaxLights]int32
	Vectors  [MaxLights * 3]float32
	Colors   [MaxLights * 3]float32
	Ambient  [3]float32
	SkyColor [3]float32
}

// PackLights folds ambient and hemisphere lights into the ambient terms and keeps the
// first MaxLights others. Colors are pre-multiplied by intensity. Directional vectors
// are normalized directions toward the light; point and spot lights keep their position.
func PackLights(lights []*lighting.Light) LightUniforms {
	var u LightUniforms
	for _, l := range lights {
		c := l.Color.Floats()
		r, g, b := c[0]*l.Intensity, c[1]*l.Intensity, c[2]*l.Intensity
		switch l.Kind {
		case lighting.Ambient:
			u.Ambient[0] += r
			u.Ambient[1] += g
			u.Ambient[2] += b
		case lighting.Hemisphere:
			u.SkyColor[0] += r
			u.SkyColor[1] += g
			u.SkyColor[2] += b
		default:
			if u.Count == MaxLights {
				continue
			}
			i := u.Count
			v := l.Position
			if l.Kind == lighting.Directional {
				u.Kinds[i] = shaderDirectional
				v = normalize(v)
			} else {
				u.Kinds[i] = shaderPoint
			}
			copy(u.Vectors[i*3:], v[:])
			u.Colors[i*3], u.Colors[i*3+1], u.Colors[i*3+2] = r, g, b
			u.Count++
		}
	}
	return u
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// Specular maps a material's surface parameters to the shader's highlight terms.
func Specular(metalness, roughness, clearcoat float32) (power, strength float32) {
	smooth := 1 - clamp01(roughness)
	power = 4 + smooth*smooth*124
	strength = 0.15 + 0.5*clamp01(metalness)*smooth + 0.35*clamp01(clearcoat)
	return power, strength
}

func clamp01(v float32) float32 {
	return math32.Max(0, math32.Min(1, v))
}
