package raster

import (
	"image/color"
	"math"

	"github.com/Carmen-Shannon/oxy-sentinel/common"
	"github.com/Carmen-Shannon/oxy-sentinel/engine/model"
	"github.com/go-gl/mathgl/mgl64"
)

// LightConfig holds the scene lighting used for flat shading. Positions are in world space.
type LightConfig struct {
	KeyPos   mgl64.Vec3
	KeyColor [3]float64 // linear
	RimPos   mgl64.Vec3
	RimColor [3]float64 // linear

	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
	SpecInt  float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns the showroom rig: a white key spot above and in front of the
// figure, a cyan rim light behind it and a strong ambient fill.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		KeyPos:   mgl64.Vec3{2, 5, 5},
		KeyColor: LinearColor(common.HexColor(0xffffff)),
		RimPos:   mgl64.Vec3{-2, 2, -2},
		RimColor: LinearColor(common.HexColor(0x00d4ff)),
		Ambient:  0.45,
		Hemi:     0.35,
		Direct:   1.30,
		Rim:      0.90,
		SpecInt:  0.60,
		SpecPow:  24.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// Shade returns the flat color of a face.
//
// Parameters:
//   - mat: the face material
//   - normal: unit face normal in world space
//   - center: face centroid in world space
//   - eye: camera position in world space
//
// Returns:
//   - color.NRGBA: the tone mapped sRGB color
func (lc *LightConfig) Shade(mat model.Material, normal, center, eye mgl64.Vec3) color.NRGBA {
	if mat.Unlit {
		return mat.Color
	}

	keyDir := safeNormalize(lc.KeyPos.Sub(center))
	rimDir := safeNormalize(lc.RimPos.Sub(center))
	viewDir := safeNormalize(eye.Sub(center))

	// Lambertian (abs for double-sided)
	ndlKey := math.Abs(normal.Dot(keyDir))
	ndlRim := math.Abs(normal.Dot(rimDir))

	// Hemisphere fill
	hemi := (1.0-math.Abs(normal[1]))*0.5 + 0.5

	// Blinn-Phong specular, sharper and brighter for smooth metals
	half := safeNormalize(keyDir.Add(viewDir))
	ndh := math.Abs(normal.Dot(half))
	gloss := 1 - common.Clamp(mat.Roughness, 0, 1)
	metal := common.Clamp(mat.Metalness, 0, 1)
	spec := math.Pow(ndh, lc.SpecPow*(0.25+gloss)) * lc.SpecInt * (0.3 + 0.7*metal) * gloss

	base := LinearColor(mat.Color)
	diffuse := lc.Ambient + hemi*lc.Hemi

	var out [3]uint8
	for i := range 3 {
		lin := base[i]*(diffuse+ndlKey*lc.Direct*lc.KeyColor[i]) +
			base[i]*ndlRim*lc.Rim*lc.RimColor[i] +
			spec*lc.KeyColor[i]
		out[i] = clamp255(math.Pow(ACESTonemap(lin*lc.Exposure), lc.InvGamma) * 255)
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: mat.Color.A}
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// LinearColor decodes an sRGB color into linear RGB.
func LinearColor(c color.NRGBA) [3]float64 {
	return [3]float64{srgbToLinear[c.R], srgbToLinear[c.G], srgbToLinear[c.B]}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-12 {
		return mgl64.Vec3{0, 1, 0}
	}
	return v.Mul(1 / l)
}
