package emath

import "math"

// The sRGB transfer curve, both directions.

// https://www.sjbrown.co.uk/posts/gamma-correct-rendering/ - "linear RGB to sRGB"
// Each channel in `v` is assumed to be in the range [0,1]
func GammaExpand_sRGB(v Vec3) Vec3 {
	return Vec3{
		GammaExpand_F64(v[0]),
		GammaExpand_F64(v[1]),
		GammaExpand_F64(v[2]),
	}
}

func GammaExpand_F64(f float64) float64 {
	if f <= 0.0031308 {
		return 12.92 * f
	}
	return 1.055 * math.Pow(f, 1.0/2.4) - 0.055
}

// GammaContract_sRGB is the inverse of GammaExpand_sRGB: sRGB encoded
// channels back to linear light.
func GammaContract_sRGB(v Vec3) Vec3 {
	return Vec3{
		GammaContract_F64(v[0]),
		GammaContract_F64(v[1]),
		GammaContract_F64(v[2]),
	}
}

func GammaContract_F64(f float64) float64 {
	if f <= 0.04045 {
		return f / 12.92
	}
	return math.Pow((f + 0.055) / 1.055, 2.4)
}
