/*package field assembles coarse-grained field grids from particle
trajectories: linearised shear strain and displacement vorticity on one hand,
and density, displacement, relative displacement, displacement norm and
displacement direction on the other.
*/
package field

import (
	"fmt"
	"runtime"

	"github.com/yketa/gocg/cells"
	"github.com/yketa/gocg/cg"
	"github.com/yketa/gocg/geom"
	"github.com/yketa/gocg/traj"
)

// Grid is an Ncases x Ncases scalar field. Row 0 corresponds to the highest
// y coordinate so that the grid has the same orientation as the particle
// coordinate system when rendered row by row.
type Grid [][]float64

// VecGrid is an Ncases x Ncases 2-vector field with the same orientation
// convention as Grid.
type VecGrid [][]geom.Vec

func NewGrid(n int) Grid {
	g := make(Grid, n)
	for i := range g {
		g[i] = make([]float64, n)
	}
	return g
}

func NewVecGrid(n int) VecGrid {
	g := make(VecGrid, n)
	for i := range g {
		g[i] = make([]geom.Vec, n)
	}
	return g
}

// Component extracts one cartesian component of a vector field.
func (g VecGrid) Component(k int) Grid {
	out := make(Grid, len(g))
	for i := range g {
		out[i] = make([]float64, len(g[i]))
		for j := range g[i] {
			out[i][j] = g[i][j][k]
		}
	}
	return out
}

// Config selects the resolution and kernel scales of a sampling run. All
// values are validated upstream; the sampler treats them as trusted inputs.
type Config struct {
	Ncases int     // query points per axis
	RCut   float64 // neighbour cutoff and Gaussian truncation radius
	Sigma  float64 // Gaussian length scale

	// Displacement mode samples a sub-box of side Size centred on Centre;
	// a zero Size means the full box.
	Size   float64
	Centre geom.Vec

	// Endpoint samples the wrapped neighbour geometry at t+dt instead of t.
	Endpoint bool
}

// Sampler evaluates coarse-grained fields on a fixed query lattice. It holds
// no mutable state across calls; one Sampler may serve every frame of a run.
type Sampler struct {
	store traj.Store
	box   float64
	cfg   Config

	dL  float64 // query lattice spacing
	pts []geom.Vec
}

// NewSampler builds a sampler over store for a periodic box of side box.
func NewSampler(store traj.Store, box float64, cfg Config) *Sampler {
	if cfg.Size == 0 {
		cfg.Size = box
	}

	s := &Sampler{
		store: store, box: box, cfg: cfg,
		dL:  cfg.Size / float64(cfg.Ncases),
		pts: geom.Lattice(box, cfg.Size, cfg.Ncases, cfg.Centre),
	}
	return s
}

// Points returns the query lattice in x-major order.
func (s *Sampler) Points() []geom.Vec { return s.pts }

// strainVorticity computes the linearised shear strain and the displacement
// vorticity of the coarse-grained displacement field at one point, for the
// frame pair (t, t+dt). An empty neighbourhood or zero coarse-grained
// density yields (0, 0).
func (s *Sampler) strainVorticity(
	point geom.Vec, t, dt int, pos []geom.Vec, grid *cells.Grid,
) (strain, vorticity float64) {
	nbr := grid.Neighbors(point, s.cfg.RCut)
	if len(nbr) == 0 {
		return 0, 0
	}

	rel := make([]geom.Vec, len(nbr))
	for i, j := range nbr {
		rel[i] = geom.Rel(pos[j], point, s.box)
	}

	avg := cg.NewAverager(cg.Gaussian{Sigma: s.cfg.Sigma, RCut: s.cfg.RCut}, rel)

	ones := make([]float64, len(nbr))
	for i := range ones {
		ones[i] = 1
	}
	rho := avg.Average(ones)
	if rho == 0 {
		return 0, 0
	}

	p0 := s.store.Unwrapped(t, nbr)
	p1 := s.store.Unwrapped(t+dt, nbr)

	x := make([]float64, len(nbr))
	y := make([]float64, len(nbr))
	ux := make([]float64, len(nbr))
	uy := make([]float64, len(nbr))
	uxy := make([]float64, len(nbr))
	uyx := make([]float64, len(nbr))
	for i := range nbr {
		u := p1[i].Sub(p0[i])
		x[i], y[i] = rel[i][0], rel[i][1]
		ux[i], uy[i] = u[0], u[1]
		uxy[i], uyx[i] = u[0]*rel[i][1], u[1]*rel[i][0]
	}

	ax, ay := avg.Average(x), avg.Average(y)
	aux, auy := avg.Average(ux), avg.Average(uy)
	auxy, auyx := avg.Average(uxy), avg.Average(uyx)

	sig2 := s.cfg.Sigma * s.cfg.Sigma
	strain = 0.5 * ((ay*aux+ax*auy)/(rho*rho*sig2) - (auxy+auyx)/(rho*sig2))
	vorticity = (ax*auy-ay*aux)/(rho*rho*sig2) - (auyx-auxy)/(rho*sig2)
	return strain, vorticity
}

// StrainVorticityGrid evaluates strain and vorticity on the full query
// lattice for the frame pair (t, t+dt).
func (s *Sampler) StrainVorticityGrid(t, dt int) (strain, vorticity Grid) {
	pos, grid := s.geometry(t, dt, s.cfg.RCut)

	n := s.cfg.Ncases
	strain, vorticity = NewGrid(n), NewGrid(n)

	s.each(func(k int) {
		e, w := s.strainVorticity(s.pts[k], t, dt, pos, grid)
		row, col := place(k, n)
		strain[row][col], vorticity[row][col] = e, w
	})
	return strain, vorticity
}

// displacement computes the coarse-grained density, displacement, relative
// displacement, displacement norm and displacement direction at one point,
// using the uniform square-cell kernel. drift is the mean displacement of
// every particle over the frame pair, subtracted to form the relative
// displacement. An empty neighbourhood yields all-zero sentinels.
func (s *Sampler) displacement(
	point geom.Vec, t, dt int, pos []geom.Vec, drift geom.Vec,
	grid *cells.Grid,
) (density float64, u, w geom.Vec, norm float64, dir geom.Vec) {
	nbr := grid.Neighbors(point, s.dL/2)
	if len(nbr) == 0 {
		return 0, geom.Vec{}, geom.Vec{}, 0, geom.Vec{}
	}

	rel := make([]geom.Vec, len(nbr))
	for i, j := range nbr {
		rel[i] = geom.Rel(pos[j], point, s.box)
	}

	avg := cg.NewAverager(cg.Square{Side: s.dL}, rel)

	p0 := s.store.Unwrapped(t, nbr)
	p1 := s.store.Unwrapped(t+dt, nbr)
	us := make([]geom.Vec, len(nbr))
	ws := make([]geom.Vec, len(nbr))
	for i := range nbr {
		us[i] = p1[i].Sub(p0[i])
		ws[i] = us[i].Sub(drift)
	}

	u = avg.AverageVec(us)
	w = avg.AverageVec(ws)
	density = 1
	norm = u.Norm()
	dir = geom.Vec{cg.Div(u[0], norm), cg.Div(u[1], norm)}
	return density, u, w, norm, dir
}

// DisplacementGrid evaluates the displacement-mode quantities on the full
// query lattice for the frame pair (t, t+dt).
func (s *Sampler) DisplacementGrid(t, dt int) (
	density Grid, u, w VecGrid, norm Grid, dir VecGrid,
) {
	pos, grid := s.geometry(t, dt, s.dL/2)
	drift := s.drift(t, dt)

	n := s.cfg.Ncases
	density, norm = NewGrid(n), NewGrid(n)
	u, w, dir = NewVecGrid(n), NewVecGrid(n), NewVecGrid(n)

	s.each(func(k int) {
		d, uk, wk, nk, ek := s.displacement(s.pts[k], t, dt, pos, drift, grid)
		row, col := place(k, n)
		density[row][col], norm[row][col] = d, nk
		u[row][col], w[row][col], dir[row][col] = uk, wk, ek
	})
	return density, u, w, norm, dir
}

// geometry fetches the wrapped positions carrying the neighbour geometry of
// the frame pair and builds their cell list for the given cutoff.
func (s *Sampler) geometry(t, dt int, cutoff float64) ([]geom.Vec, *cells.Grid) {
	tw := t
	if s.cfg.Endpoint {
		tw = t + dt
	}

	pos := s.store.Wrapped(tw)
	if len(pos) != s.store.Particles() {
		panic(fmt.Sprintf(
			"field: frame %d holds %d positions, want %d",
			tw, len(pos), s.store.Particles(),
		))
	}
	return pos, cells.New(pos, s.box, cutoff)
}

// drift returns the mean displacement of all particles between t and t+dt.
func (s *Sampler) drift(t, dt int) geom.Vec {
	idx := make([]int, s.store.Particles())
	for i := range idx {
		idx[i] = i
	}

	p0 := s.store.Unwrapped(t, idx)
	p1 := s.store.Unwrapped(t+dt, idx)

	var sum geom.Vec
	for i := range idx {
		sum = sum.Add(p1[i].Sub(p0[i]))
	}
	return sum.Scale(1 / float64(len(idx)))
}

// each runs f over every lattice index on NumCPU workers. Lattice points are
// mutually independent, so workers share nothing but read-only state.
func (s *Sampler) each(f func(k int)) {
	workers := runtime.NumCPU()
	out := make(chan int, workers)

	work := func(id int) {
		for k := id; k < len(s.pts); k += workers {
			f(k)
		}
		out <- id
	}

	for id := 0; id < workers-1; id++ {
		go work(id)
	}
	work(workers - 1)

	for i := 0; i < workers; i++ {
		<-out
	}
}

// place maps an x-major lattice index to its (row, col) grid position: the
// value list is reshaped, transposed and row-reversed so that row 0 holds
// the highest y coordinate.
func place(k, n int) (row, col int) {
	return n - 1 - k%n, k / n
}
