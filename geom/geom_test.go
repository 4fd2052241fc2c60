package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testEps = 1e-12

func TestWrap(t *testing.T) {
	assert.InDelta(t, 3.0, Wrap(3, 10), testEps, "inside")
	assert.InDelta(t, 3.0, Wrap(13, 10), testEps, "above")
	assert.InDelta(t, 7.0, Wrap(-3, 10), testEps, "below")
	assert.InDelta(t, 0.0, Wrap(0, 10), testEps, "origin")
	assert.InDelta(t, 0.0, Wrap(10, 10), testEps, "upper edge")
}

func TestMinImage(t *testing.T) {
	assert.InDelta(t, 3.0, MinImage(3, 10), testEps, "short way")
	assert.InDelta(t, -4.0, MinImage(6, 10), testEps, "long way")
	assert.InDelta(t, -3.0, MinImage(-3, 10), testEps, "negative short way")
	assert.InDelta(t, 4.0, MinImage(-6, 10), testEps, "negative long way")
	// box/2 maps to the lower edge of [-box/2, box/2)
	assert.InDelta(t, -5.0, MinImage(5, 10), testEps, "half box")
}

func TestRel(t *testing.T) {
	d := Rel(Vec{1, 1}, Vec{9, 9}, 10)
	assert.InDelta(t, 2.0, d[0], testEps, "x across boundary")
	assert.InDelta(t, 2.0, d[1], testEps, "y across boundary")

	assert.InDelta(t, 0.0, Dist(Vec{2, 3}, Vec{2, 3}, 10), testEps, "self")
	assert.InDelta(
		t, 1.0, Dist(Vec{0.5, 4}, Vec{9.5, 4}, 10), testEps, "wrapped dist",
	)
}

func TestLattice(t *testing.T) {
	pts := Lattice(10, 10, 2, Vec{})
	assert.Len(t, pts, 4)
	// x-major order, both axes increasing
	assert.Equal(t, Vec{-2.5, -2.5}, pts[0])
	assert.Equal(t, Vec{-2.5, 2.5}, pts[1])
	assert.Equal(t, Vec{2.5, -2.5}, pts[2])
	assert.Equal(t, Vec{2.5, 2.5}, pts[3])
}

func TestLatticeSinglePoint(t *testing.T) {
	pts := Lattice(10, 10, 1, Vec{})
	assert.Len(t, pts, 1)
	assert.Equal(t, Vec{0, 0}, pts[0])

	pts = Lattice(10, 10, 1, Vec{5, 5})
	assert.Equal(t, Vec{-5, -5}, pts[0], "centre wraps to minimum image")
}

func TestLatticeOffCentre(t *testing.T) {
	pts := Lattice(10, 10, 2, Vec{4, 0})
	assert.InDelta(t, 1.5, pts[0][0], testEps, "shifted x")
	assert.InDelta(t, -3.5, pts[3][0], testEps, "shifted x wraps")
}

func TestLatticeSubBox(t *testing.T) {
	pts := Lattice(100, 10, 2, Vec{})
	assert.Equal(t, Vec{-2.5, -2.5}, pts[0], "sub-box ignores full box side")
}
