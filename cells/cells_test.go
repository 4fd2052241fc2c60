package cells

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yketa/gocg/geom"
)

func randomPositions(gen *rand.Rand, n int, box float64) []geom.Vec {
	pos := make([]geom.Vec, n)
	for i := range pos {
		pos[i] = geom.Vec{gen.Float64() * box, gen.Float64() * box}
	}
	return pos
}

func bruteForce(pos []geom.Vec, p geom.Vec, r, box float64) []int {
	out := []int{}
	for i, q := range pos {
		if geom.Dist(p, q, box) <= r {
			out = append(out, i)
		}
	}
	return out
}

func assertSameSet(t *testing.T, want, got []int, msg string) {
	sort.Ints(got)
	assert.Equal(t, want, got, msg)
}

func TestNeighborsAgainstBruteForce(t *testing.T) {
	gen := rand.New(rand.NewSource(0))
	box, cutoff := 10.0, 1.0
	pos := randomPositions(gen, 200, box)
	g := New(pos, box, cutoff)

	for k := 0; k < 100; k++ {
		p := geom.Vec{gen.Float64() * box, gen.Float64() * box}
		assertSameSet(
			t, bruteForce(pos, p, cutoff, box), g.Neighbors(p, cutoff),
			"random point",
		)
	}
}

func TestNeighborsSmallerRadius(t *testing.T) {
	gen := rand.New(rand.NewSource(1))
	box, cutoff := 10.0, 2.0
	pos := randomPositions(gen, 200, box)
	g := New(pos, box, cutoff)

	for k := 0; k < 50; k++ {
		p := geom.Vec{gen.Float64() * box, gen.Float64() * box}
		assertSameSet(
			t, bruteForce(pos, p, 0.5, box), g.Neighbors(p, 0.5),
			"query below cutoff",
		)
	}
}

func TestNeighborsCoarseCells(t *testing.T) {
	// A cutoff above box/3 leaves fewer than 3 cells per axis, where the
	// 3x3 stencil would wrap onto itself.
	gen := rand.New(rand.NewSource(2))
	box := 10.0
	pos := randomPositions(gen, 100, box)

	for _, cutoff := range []float64{4.0, 6.0, 11.0} {
		g := New(pos, box, cutoff)
		for k := 0; k < 20; k++ {
			p := geom.Vec{gen.Float64() * box, gen.Float64() * box}
			got := g.Neighbors(p, cutoff)
			assertSameSet(
				t, bruteForce(pos, p, cutoff, box), got, "coarse cells",
			)
		}
	}
}

func TestNeighborsCellBoundary(t *testing.T) {
	box, cutoff := 10.0, 1.0
	pos := []geom.Vec{{0, 0}, {1, 0}, {0, 1}, {2, 2}, {5, 5}, {10, 10}}
	g := New(pos, box, cutoff)

	// Distance exactly equal to the radius is included.
	assertSameSet(t, []int{0, 1, 2, 5}, g.Neighbors(geom.Vec{0, 0}, 1),
		"exact radius and coincident point")
	// Positions at the upper box edge wrap onto the origin.
	assertSameSet(t, []int{0, 5}, g.Neighbors(geom.Vec{0, 0}, 0.5),
		"wrapped edge position")
}

func TestNeighborsAcrossBoundary(t *testing.T) {
	box, cutoff := 10.0, 1.0
	pos := []geom.Vec{{9.9, 5}, {0.1, 5}, {5, 9.9}, {5, 0.1}}
	g := New(pos, box, cutoff)

	assertSameSet(t, []int{0, 1}, g.Neighbors(geom.Vec{0, 5}, 0.5), "x wrap")
	assertSameSet(t, []int{2, 3}, g.Neighbors(geom.Vec{5, 0}, 0.5), "y wrap")
}

func TestNeighborsEmpty(t *testing.T) {
	pos := []geom.Vec{{5, 5}}
	g := New(pos, 10, 1)

	got := g.Neighbors(geom.Vec{0, 0}, 1)
	assert.NotNil(t, got, "empty result is a set, not an error")
	assert.Len(t, got, 0)
}

func TestNeighborsRadiusAboveCutoffPanics(t *testing.T) {
	g := New([]geom.Vec{{5, 5}}, 10, 1)
	assert.Panics(t, func() { g.Neighbors(geom.Vec{0, 0}, 2) })
}

func BenchmarkNeighbors(b *testing.B) {
	gen := rand.New(rand.NewSource(3))
	box, cutoff := 100.0, 1.0
	pos := randomPositions(gen, 10000, box)
	g := New(pos, box, cutoff)

	pts := make([]geom.Vec, 64)
	for i := range pts {
		pts[i] = geom.Vec{gen.Float64() * box, gen.Float64() * box}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Neighbors(pts[i%len(pts)], cutoff)
	}
}
