/*package corr computes spatial autocorrelations of 2D periodic field grids,
their density-normalized vector analogues and their radial reductions.
*/
package corr

import (
	"fmt"
	"math"
	"sort"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/yketa/gocg/cg"
	"github.com/yketa/gocg/field"
	"github.com/yketa/gocg/geom"
)

// ScalarAverage computes, for each sample of the stack, the periodic spatial
// autocorrelation of the grid, and averages the results over the stack.
// Entry [dy][dx] holds the spatially averaged product of the field with
// itself shifted by dy rows and dx columns under periodic wraparound; entry
// [0][0] is therefore the spatial mean square. No mean is subtracted: the
// density correlation computed this way serves as the normalizer of the
// vector correlations and must not degenerate for uniform fields. The
// transform is FFT-based; ScalarAverageDirect is the equivalent direct sum.
func ScalarAverage(stack []field.Grid) field.Grid {
	return stackAverage(stack, rawFFT)
}

// ScalarAverageDirect computes the same quantity as ScalarAverage by direct
// circular convolution. It is quadratically slower in the number of grid
// points and exists as an independent cross-check of the transform path.
func ScalarAverageDirect(stack []field.Grid) field.Grid {
	return stackAverage(stack, scalarDirect)
}

func stackAverage(stack []field.Grid, one func(field.Grid) field.Grid) field.Grid {
	if len(stack) == 0 {
		panic("corr: empty field stack")
	}

	n := len(stack[0])
	out := field.NewGrid(n)
	for _, g := range stack {
		if len(g) != n {
			panic(fmt.Sprintf("corr: stacked grids of side %d and %d", n, len(g)))
		}
		c := one(g)
		for i := range out {
			floats.Add(out[i], c[i])
		}
	}
	for i := range out {
		floats.Scale(1/float64(len(stack)), out[i])
	}
	return out
}

func scalarDirect(g field.Grid) field.Grid {
	n := len(g)

	c := field.NewGrid(n)
	for dy := 0; dy < n; dy++ {
		for dx := 0; dx < n; dx++ {
			s := 0.0
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					s += g[i][j] * g[(i+dy)%n][(j+dx)%n]
				}
			}
			c[dy][dx] = s / float64(n*n)
		}
	}
	return c
}

// VectorAverageCnn computes the autocorrelation of a stack of vector field
// grids: the component autocorrelations are summed to one scalar correlation
// field and averaged over the stack. It also reports
// the longitudinal and transverse correlations at unit grid lag along the
// principal axes, each normalized by the density correlation cnn at the same
// lag with the usual guarded division.
func VectorAverageCnn(stack []field.VecGrid, cnn field.Grid) (
	c field.Grid, long, trans float64,
) {
	if len(stack) == 0 {
		panic("corr: empty field stack")
	}

	n := len(stack[0])
	c = field.NewGrid(n)
	cxx, cyy := field.NewGrid(n), field.NewGrid(n)
	for _, g := range stack {
		x := rawFFT(g.Component(0))
		y := rawFFT(g.Component(1))
		for i := range c {
			floats.Add(cxx[i], x[i])
			floats.Add(cyy[i], y[i])
		}
	}
	k := 1 / float64(len(stack))
	for i := range c {
		floats.Scale(k, cxx[i])
		floats.Scale(k, cyy[i])
		floats.AddTo(c[i], cxx[i], cyy[i])
	}

	// At lag (dx=1, dy=0) the x component is longitudinal and the y
	// component transverse; at (dx=0, dy=1) the roles swap.
	long = (cg.Div(cxx[0][1], cnn[0][1]) + cg.Div(cyy[1][0], cnn[1][0])) / 2
	trans = (cg.Div(cyy[0][1], cnn[0][1]) + cg.Div(cxx[1][0], cnn[1][0])) / 2
	return c, long, trans
}

// rawFFT is the periodic autocorrelation of one grid, computed in the
// transform domain.
func rawFFT(g field.Grid) field.Grid {
	n := len(g)

	in := make([][]complex128, n)
	for i := range in {
		in[i] = make([]complex128, n)
		for j := range in[i] {
			in[i][j] = complex(g[i][j], 0)
		}
	}

	f := fft.FFT2(in)
	for i := range f {
		for j := range f[i] {
			v := f[i][j]
			f[i][j] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
		}
	}

	inv := fft.IFFT2(f)
	c := field.NewGrid(n)
	for i := range c {
		for j := range c[i] {
			c[i][j] = real(inv[i][j]) / float64(n*n)
		}
	}
	return c
}

// Point is one (radius, value) sample of a radial correlation profile.
type Point struct {
	R float64 `csv:"r"`
	C float64 `csv:"c"`
}

// Radial azimuthally averages a periodic correlation grid defined over a box
// of side box. Every grid offset maps to its minimum-image physical radius;
// values sharing the exact same radius are averaged. The returned profile is
// ordered by strictly increasing radius.
func Radial(c field.Grid, box float64) []Point {
	n := len(c)
	dl := box / float64(n)

	sums := map[float64]*Point{}
	counts := map[float64]int{}
	for i := range c {
		ry := geom.MinImage(float64(i)*dl, box)
		for j := range c[i] {
			rx := geom.MinImage(float64(j)*dl, box)
			r := math.Hypot(rx, ry)

			p, ok := sums[r]
			if !ok {
				p = &Point{R: r}
				sums[r] = p
			}
			p.C += c[i][j]
			counts[r]++
		}
	}

	out := make([]Point, 0, len(sums))
	for r, p := range sums {
		out = append(out, Point{R: r, C: p.C / float64(counts[r])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].R < out[j].R })
	return out
}

// DivideBy returns profile divided elementwise by the reference profile ref,
// emitting 0 where the reference is 0. Both profiles must share the same
// radius sequence.
func DivideBy(profile, ref []Point) []Point {
	if len(profile) != len(ref) {
		panic(fmt.Sprintf(
			"corr: profile of %d radii against reference of %d",
			len(profile), len(ref),
		))
	}

	out := make([]Point, len(profile))
	for i := range profile {
		out[i] = Point{R: profile[i].R, C: cg.Div(profile[i].C, ref[i].C)}
	}
	return out
}
