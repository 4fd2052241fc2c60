package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/yketa/gocg/traj"
)

// Parameter files are single-row ASCII tables with these columns:
//
//	a box_size N density vzero dr time_step period_dump prep_steps N_steps
//
// ReadParams reads one into an immutable parameter record.
func ReadParams(fname string) (*traj.Params, error) {
	cols, err := table.ReadTable(
		fname, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, nil,
	)
	if err != nil {
		return nil, err
	}
	if len(cols[0]) == 0 {
		return nil, fmt.Errorf("Parameter file %s is empty.", fname)
	}

	p := &traj.Params{
		A:       cols[0][0],
		Box:     cols[1][0],
		N:       int(cols[2][0]),
		Density: cols[3][0],
		Vzero:   cols[4][0],
		Dr:      cols[5][0],

		TimeStep:   cols[6][0],
		PeriodDump: int(cols[7][0]),
		PrepSteps:  int(cols[8][0]),
		NSteps:     int(cols[9][0]),
	}

	if p.Box <= 0 {
		return nil, fmt.Errorf(
			"Box size in %s must be positive, but is %g.", fname, p.Box,
		)
	}
	if p.N <= 0 {
		return nil, fmt.Errorf(
			"Particle count in %s must be positive, but is %d.", fname, p.N,
		)
	}
	if p.PeriodDump <= 0 {
		return nil, fmt.Errorf(
			"Dump period in %s must be positive, but is %d.",
			fname, p.PeriodDump,
		)
	}

	return p, nil
}
