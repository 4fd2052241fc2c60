/*package geom provides 2D vectors and periodic square-box geometry for
trajectory analysis.
*/
package geom

import (
	"math"
)

// Vec is a 2D position or displacement.
type Vec [2]float64

func (v Vec) Add(u Vec) Vec { return Vec{v[0] + u[0], v[1] + u[1]} }

func (v Vec) Sub(u Vec) Vec { return Vec{v[0] - u[0], v[1] - u[1]} }

func (v Vec) Scale(s float64) Vec { return Vec{v[0] * s, v[1] * s} }

func (v Vec) Dot(u Vec) float64 { return v[0]*u[0] + v[1]*u[1] }

func (v Vec) Norm() float64 { return math.Hypot(v[0], v[1]) }

// Wrap reduces x to the primary box [0, box).
func Wrap(x, box float64) float64 {
	m := math.Mod(x, box)
	if m < 0 {
		m += box
	}
	return m
}

// Wrap reduces both components of v to the primary box [0, box).
func (v Vec) Wrap(box float64) Vec {
	return Vec{Wrap(v[0], box), Wrap(v[1], box)}
}

// MinImage returns the minimum-image representative of the 1D separation x,
// the value congruent to x modulo box lying in [-box/2, box/2).
func MinImage(x, box float64) float64 {
	return Wrap(x+box/2, box) - box/2
}

// Rel returns the minimum-image separation a - b.
func Rel(a, b Vec, box float64) Vec {
	return Vec{MinImage(a[0]-b[0], box), MinImage(a[1]-b[1], box)}
}

// Dist returns the periodic distance between a and b.
func Dist(a, b Vec, box float64) float64 {
	return Rel(a, b, box).Norm()
}

// Lattice returns the n x n lattice of query points tiling a square of side
// size centred on centre, reduced to minimum-image coordinates in a periodic
// box of side box. Points are listed in x-major order: index i*n + j holds
// (x_i, y_j) with both axes increasing.
func Lattice(box, size float64, n int, centre Vec) []Vec {
	lo := -size * (1 - 1/float64(n)) / 2
	step := size / float64(n)

	pts := make([]Vec, 0, n*n)
	for i := 0; i < n; i++ {
		x := MinImage(lo+float64(i)*step+centre[0], box)
		for j := 0; j < n; j++ {
			y := MinImage(lo+float64(j)*step+centre[1], box)
			pts = append(pts, Vec{x, y})
		}
	}
	return pts
}
