/*package traj provides access to wrapped and unwrapped particle trajectories
and the immutable simulation parameter record attached to a run.
*/
package traj

import (
	"fmt"
	"math"

	"github.com/yketa/gocg/geom"
)

// Store gives frame-indexed access to a trajectory. Wrapped positions are
// always inside the periodic box and carry the neighbour geometry; unwrapped
// positions are monotonic and carry true displacements across periodic
// boundaries.
type Store interface {
	Frames() int
	Particles() int

	// Wrapped returns the wrapped positions of every particle at frame t.
	Wrapped(t int) []geom.Vec

	// Unwrapped returns the unwrapped positions of the given particles at
	// frame t, in the order of idx.
	Unwrapped(t int, idx []int) []geom.Vec
}

// ArrayStore is an in-memory Store over [frame][particle] position arrays.
type ArrayStore struct {
	wrapped, unwrapped [][]geom.Vec
}

// NewArrayStore wraps two parallel trajectories into a Store. Both must have
// the same number of frames and the same particle count in every frame; a
// mismatch is reported immediately rather than silently truncated.
func NewArrayStore(wrapped, unwrapped [][]geom.Vec) (*ArrayStore, error) {
	if len(wrapped) != len(unwrapped) {
		return nil, fmt.Errorf(
			"traj: %d wrapped frames, but %d unwrapped frames",
			len(wrapped), len(unwrapped),
		)
	}
	if len(wrapped) == 0 {
		return nil, fmt.Errorf("traj: empty trajectory")
	}

	n := len(wrapped[0])
	for t := range wrapped {
		if len(wrapped[t]) != n || len(unwrapped[t]) != n {
			return nil, fmt.Errorf(
				"traj: frame %d has %d wrapped and %d unwrapped particles, "+
					"want %d", t, len(wrapped[t]), len(unwrapped[t]), n,
			)
		}
	}

	return &ArrayStore{wrapped, unwrapped}, nil
}

func (s *ArrayStore) Frames() int { return len(s.wrapped) }

func (s *ArrayStore) Particles() int { return len(s.wrapped[0]) }

func (s *ArrayStore) Wrapped(t int) []geom.Vec { return s.wrapped[t] }

func (s *ArrayStore) Unwrapped(t int, idx []int) []geom.Vec {
	frame := s.unwrapped[t]
	out := make([]geom.Vec, len(idx))
	for i, j := range idx {
		out[i] = frame[j]
	}
	return out
}

// Params is the per-run simulation parameter record. It is read once and
// never mutated; every downstream computation is a pure function of it plus
// the chosen lag, cutoff and resolution.
type Params struct {
	A       float64 // mean particle diameter
	Box     float64 // side of the square periodic box
	N       int     // particle count
	Density float64
	Vzero   float64 // self-propulsion velocity
	Dr      float64 // rotational diffusion rate

	TimeStep   float64
	PeriodDump int // simulation steps between dumped frames
	PrepSteps  int
	NSteps     int
}

// Frames returns the number of trajectory frames the run dumps after
// preparation.
func (p *Params) Frames() int { return p.NSteps / p.PeriodDump }

// PrepFrames returns the number of preparation frames preceding the dumped
// trajectory.
func (p *Params) PrepFrames() int {
	return int(math.Ceil(float64(p.PrepSteps) / float64(p.PeriodDump)))
}
