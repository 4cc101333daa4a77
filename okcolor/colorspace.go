// based on:
// https://bottosson.github.io/posts/oklab/

package okcolor

import (
	"math"

	"picdither/rgb"
)

type Lab struct {
	L float64 // perceived lightness
	A float64 // how green/red the color is
	B float64 // how blue/yellow the color is
}

// FromRGB converts an 8-bit sRGB color to Oklab.
func FromRGB(c rgb.RGB) Lab {
	r, g, b := linear[c.R], linear[c.G], linear[c.B]

	l := math.Cbrt(0.4122214708*r + 0.5363325363*g + 0.0514459929*b)
	m := math.Cbrt(0.2119034982*r + 0.6806995451*g + 0.1073969566*b)
	s := math.Cbrt(0.0883024619*r + 0.2817188376*g + 0.6299787005*b)

	return Lab{
		L: 0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A: 1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B: 0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
	}
}

// DistanceSq returns the squared euclidean distance between two colors.
func (lc Lab) DistanceSq(o Lab) float64 {
	dL := lc.L - o.L
	da := lc.A - o.A
	db := lc.B - o.B
	return dL*dL + da*da + db*db
}

// linear maps an 8-bit sRGB channel to linear light in [0, 1].
var linear = func() (t [256]float64) {
	for i := range t {
		x := float64(i) / 255
		if x >= 0.04045 {
			t[i] = math.Pow((x+0.055)/1.055, 2.4)
		} else {
			t[i] = x / 12.92
		}
	}
	return t
}()
