/*package cg implements kernel-weighted coarse graining of per-particle
samples into smooth field values.
*/
package cg

import (
	"fmt"
	"math"

	"github.com/yketa/gocg/geom"
)

// Kernel weighs a neighbour by its separation from the reference point.
// Separations are expected to be minimum-image reduced before they get here.
type Kernel interface {
	Weight(rel geom.Vec) float64
}

// Gaussian is a smooth radial kernel with length scale Sigma, truncated to
// exactly zero beyond RCut.
type Gaussian struct {
	Sigma, RCut float64
}

func (k Gaussian) Weight(rel geom.Vec) float64 {
	r2 := rel[0]*rel[0] + rel[1]*rel[1]
	if r2 > k.RCut*k.RCut {
		return 0
	}
	return math.Exp(-r2 / (2 * k.Sigma * k.Sigma))
}

// Square weighs neighbours uniformly inside an axis-aligned square of side
// Side centred on the reference point, and not at all outside it. It makes
// the deposit look like nearest-cell binning rather than smooth decay.
type Square struct {
	Side float64
}

func (k Square) Weight(rel geom.Vec) float64 {
	h := k.Side / 2
	if math.Abs(rel[0]) <= h && math.Abs(rel[1]) <= h {
		return 1
	}
	return 0
}

// Averager holds kernel weights evaluated at a fixed set of neighbour
// separations and computes weight-normalized averages of samples over them.
type Averager struct {
	w    []float64
	wsum float64
}

// NewAverager evaluates k at every separation in rel.
func NewAverager(k Kernel, rel []geom.Vec) *Averager {
	a := &Averager{w: make([]float64, len(rel))}
	for i, d := range rel {
		a.w[i] = k.Weight(d)
		a.wsum += a.w[i]
	}
	return a
}

// Average returns sum_i w_i sample_i / sum_i w_i. A zero weight sum is a
// data condition, not an error: it yields the 0 sentinel.
func (a *Averager) Average(samples []float64) float64 {
	if len(samples) != len(a.w) {
		panic(fmt.Sprintf(
			"cg: %d samples for %d neighbours", len(samples), len(a.w),
		))
	}

	s := 0.0
	for i, x := range samples {
		s += a.w[i] * x
	}
	return Div(s, a.wsum)
}

// AverageVec is Average broadcast over vector-valued samples. A zero weight
// sum yields the zero vector.
func (a *Averager) AverageVec(samples []geom.Vec) geom.Vec {
	if len(samples) != len(a.w) {
		panic(fmt.Sprintf(
			"cg: %d samples for %d neighbours", len(samples), len(a.w),
		))
	}

	var s geom.Vec
	for i, x := range samples {
		s[0] += a.w[i] * x[0]
		s[1] += a.w[i] * x[1]
	}
	return geom.Vec{Div(s[0], a.wsum), Div(s[1], a.wsum)}
}

// Div returns num/den, or 0 when den is 0. Every coarse-grained quantity
// that can meet an empty neighbourhood funnels its division through here so
// the sentinel policy lives in one place.
func Div(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
