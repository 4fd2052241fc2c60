package corr

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yketa/gocg/field"
	"github.com/yketa/gocg/geom"
)

func randGrid(n int, rng *rand.Rand) field.Grid {
	g := field.NewGrid(n)
	for i := range g {
		for j := range g[i] {
			g[i][j] = rng.Float64()*2 - 1
		}
	}
	return g
}

func uniformVecGrid(n int, v geom.Vec) field.VecGrid {
	g := field.NewVecGrid(n)
	for i := range g {
		for j := range g[i] {
			g[i][j] = v
		}
	}
	return g
}

func onesGrid(n int) field.Grid {
	g := field.NewGrid(n)
	for i := range g {
		for j := range g[i] {
			g[i][j] = 1
		}
	}
	return g
}

func TestScalarAverageMatchesDirect(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	stack := []field.Grid{randGrid(8, rng), randGrid(8, rng), randGrid(8, rng)}

	fast := ScalarAverage(stack)
	slow := ScalarAverageDirect(stack)

	for i := range fast {
		for j := range fast[i] {
			assert.InDelta(t, slow[i][j], fast[i][j], 1e-9,
				"lag (%d, %d)", i, j)
		}
	}
}

func TestScalarAverageZeroLag(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := randGrid(6, rng)

	msq := 0.0
	for i := range g {
		for j := range g[i] {
			msq += g[i][j] * g[i][j]
		}
	}
	msq /= 36

	c := ScalarAverage([]field.Grid{g})
	assert.InDelta(t, msq, c[0][0], 1e-9, "zero lag is the mean square")
}

func TestScalarAverageStackInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g := randGrid(4, rng)

	one := ScalarAverage([]field.Grid{g})
	five := ScalarAverage([]field.Grid{g, g, g, g, g})

	for i := range one {
		for j := range one[i] {
			assert.InDelta(t, one[i][j], five[i][j], 1e-9)
		}
	}
}

func TestScalarAveragePanics(t *testing.T) {
	assert.Panics(t, func() { ScalarAverage(nil) }, "empty stack")
	assert.Panics(t, func() {
		ScalarAverage([]field.Grid{field.NewGrid(4), field.NewGrid(5)})
	}, "mismatched sides")
}

func TestVectorAverageCnnUniformField(t *testing.T) {
	n := 4
	stack := []field.VecGrid{
		uniformVecGrid(n, geom.Vec{0.3, -0.4}),
		uniformVecGrid(n, geom.Vec{0.3, -0.4}),
	}

	c, long, trans := VectorAverageCnn(stack, onesGrid(n))

	// A uniform field correlates with itself at every lag.
	msq := 0.3*0.3 + 0.4*0.4
	for i := range c {
		for j := range c[i] {
			assert.InDelta(t, msq, c[i][j], 1e-9)
		}
	}
	assert.InDelta(t, msq/2, long, 1e-9, "longitudinal at unit lag")
	assert.InDelta(t, msq/2, trans, 1e-9, "transverse at unit lag")
}

func TestRadialSmallGrid(t *testing.T) {
	c := field.Grid{{1, 2}, {3, 4}}
	pts := Radial(c, 10)

	require.Len(t, pts, 3)
	assert.Equal(t, 0.0, pts[0].R)
	assert.Equal(t, 1.0, pts[0].C)
	assert.InDelta(t, 5.0, pts[1].R, 1e-12)
	assert.InDelta(t, 2.5, pts[1].C, 1e-12, "degenerate lags averaged")
	assert.InDelta(t, 7.0710678118654755, pts[2].R, 1e-12)
	assert.InDelta(t, 4.0, pts[2].C, 1e-12)
}

func TestRadialSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c := ScalarAverage([]field.Grid{randGrid(8, rng)})

	pts := Radial(c, 21)
	require.NotEmpty(t, pts)
	assert.Equal(t, 0.0, pts[0].R)
	assert.InDelta(t, c[0][0], pts[0].C, 1e-12)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].R, pts[i-1].R)
	}
}

func TestRadialReflectionInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	c := ScalarAverage([]field.Grid{randGrid(8, rng)})
	n := len(c)

	rows := field.NewGrid(n)
	cols := field.NewGrid(n)
	for i := range c {
		for j := range c[i] {
			rows[(n-i)%n][j] = c[i][j]
			cols[i][(n-j)%n] = c[i][j]
		}
	}

	// A lag and its mirror sit at the same physical radius, so reflecting
	// the grid about either axis must leave the profile unchanged.
	want := Radial(c, 21)
	for name, g := range map[string]field.Grid{"rows": rows, "cols": cols} {
		got := Radial(g, 21)
		require.Len(t, got, len(want), name)
		for i := range want {
			assert.InDelta(t, want[i].R, got[i].R, 1e-12, name)
			assert.InDelta(t, want[i].C, got[i].C, 1e-12, name)
		}
	}
}

func TestDivideBy(t *testing.T) {
	profile := []Point{{R: 0, C: 6}, {R: 1, C: 2}, {R: 2, C: 5}}
	ref := []Point{{R: 0, C: 3}, {R: 1, C: 0}, {R: 2, C: 2}}

	out := DivideBy(profile, ref)
	assert.Equal(t, 2.0, out[0].C)
	assert.Equal(t, 0.0, out[1].C, "zero reference guarded")
	assert.Equal(t, 2.5, out[2].C)

	assert.Panics(t, func() { DivideBy(profile, ref[:2]) })
}
