/*package cells implements a periodic cell list over wrapped particle
positions, answering fixed-radius neighbour queries in better than linear
time.
*/
package cells

import (
	"fmt"

	"github.com/yketa/gocg/geom"
)

// Grid bins particle positions into square cells of side at least the build
// cutoff, so that every particle within the cutoff of a point lies in the
// point's cell or one of its 8 periodic neighbours.
type Grid struct {
	box    float64
	cutoff float64
	n      int     // cells per axis
	side   float64 // cell side

	buckets [][]int
	pos     []geom.Vec // wrapped copy of the indexed positions
}

// New builds a cell list for positions in a periodic square box of side box,
// able to answer neighbour queries up to radius cutoff.
func New(positions []geom.Vec, box, cutoff float64) *Grid {
	n := int(box / cutoff)
	if n < 1 {
		n = 1
	}

	g := &Grid{
		box: box, cutoff: cutoff,
		n: n, side: box / float64(n),
		buckets: make([][]int, n*n),
		pos:     make([]geom.Vec, len(positions)),
	}

	for i, p := range positions {
		w := p.Wrap(box)
		g.pos[i] = w
		c := g.cell(w)
		g.buckets[c] = append(g.buckets[c], i)
	}
	return g
}

func (g *Grid) cell(p geom.Vec) int {
	cx, cy := g.coords(p)
	return cy*g.n + cx
}

func (g *Grid) coords(p geom.Vec) (cx, cy int) {
	cx = int(p[0] / g.side)
	cy = int(p[1] / g.side)
	// Positions exactly at the upper box edge land one cell out.
	if cx >= g.n {
		cx = g.n - 1
	}
	if cy >= g.n {
		cy = g.n - 1
	}
	return cx, cy
}

// Neighbors returns the indices of every particle within periodic distance r
// of point. r must not exceed the cutoff the grid was built with; a larger
// radius is a contract violation and panics. An empty neighbourhood returns
// an empty slice, not an error.
func (g *Grid) Neighbors(point geom.Vec, r float64) []int {
	if r > g.cutoff {
		panic(fmt.Sprintf(
			"cells: query radius %g exceeds build cutoff %g", r, g.cutoff,
		))
	}

	p := point.Wrap(g.box)
	r2 := r * r
	out := []int{}

	// With fewer than 3 cells per axis the 3x3 stencil would wrap onto
	// itself, so scan every bucket once instead.
	if g.n < 3 {
		for i, q := range g.pos {
			if distSq(p, q, g.box) <= r2 {
				out = append(out, i)
			}
		}
		return out
	}

	cx, cy := g.coords(p)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c := pMod(cy+dy, g.n)*g.n + pMod(cx+dx, g.n)
			for _, i := range g.buckets[c] {
				if distSq(p, g.pos[i], g.box) <= r2 {
					out = append(out, i)
				}
			}
		}
	}
	return out
}

func distSq(a, b geom.Vec, box float64) float64 {
	d := geom.Rel(a, b, box)
	return d[0]*d[0] + d[1]*d[1]
}

// pMod computes the positive modulo x % y.
func pMod(x, y int) int {
	m := x % y
	if m < 0 {
		m += y
	}
	return m
}
