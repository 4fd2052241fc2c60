/*package io reads run configuration files and simulation parameter records,
and writes analysis results. The engine packages never touch the filesystem;
everything file-shaped lives here.
*/
package io

import (
	"fmt"
	"math"
	"path"

	"gopkg.in/gcfg.v1"

	"github.com/yketa/gocg/field"
	"github.com/yketa/gocg/geom"
	"github.com/yketa/gocg/traj"
)

// Conventional file names inside a run's data directory.
const (
	ParametersFile = "param.dat"
	WrappedFile    = "wrapped.dat"
	UnwrappedFile  = "unwrapped.dat"
)

// RunConfig is one section of an analysis configuration file. Zero or
// negative marker values are resolved against the run's parameter record by
// Resolve, mirroring the conventional defaults: the initial frame defaults
// to the middle of the run, a non-positive lag counts back from the last
// frame, Ncases defaults to ceil(sqrt(N)) and Sigma defaults to the cutoff.
type RunConfig struct {
	// Required
	DataDir string

	// Optional paths
	ParametersFile string
	WrappedFile    string
	UnwrappedFile  string
	OutputDir      string

	// Optional
	InitFrame int
	Lag       int
	IntMax    int
	Ncases    int
	RCut      float64 // in units of the mean particle diameter
	Sigma     float64
	BoxSize   float64 // sub-box side, displacement mode only
	XZero     float64
	YZero     float64
	Endpoint  bool
	Plot      bool
}

type StrainWrapper struct {
	Strain RunConfig
}

type DisplacementWrapper struct {
	Displacement RunConfig
}

func defaultRunConfig() RunConfig {
	return RunConfig{
		InitFrame: -1,
		Lag:       -1,
		IntMax:    1,
		RCut:      2,
	}
}

func DefaultStrainWrapper() *StrainWrapper {
	return &StrainWrapper{Strain: defaultRunConfig()}
}

func DefaultDisplacementWrapper() *DisplacementWrapper {
	return &DisplacementWrapper{Displacement: defaultRunConfig()}
}

// ReadStrainConfig reads a [Strain] section config file.
func ReadStrainConfig(fname string) (*RunConfig, error) {
	wrap := DefaultStrainWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return &wrap.Strain, nil
}

// ReadDisplacementConfig reads a [Displacement] section config file.
func ReadDisplacementConfig(fname string) (*RunConfig, error) {
	wrap := DefaultDisplacementWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	return &wrap.Displacement, nil
}

// Mode selects which sampler the driver runs.
type Mode int

const (
	Strain Mode = iota
	Displacement
)

// Run is a fully resolved analysis run: validated engine inputs plus the
// file locations the driver reads from and writes to.
type Run struct {
	Params *traj.Params
	Cfg    field.Config

	InitFrame, Lag, IntMax int
	LastOrigin             int // last frame admitting the lag

	ParametersFile, WrappedFile, UnwrappedFile string
	OutputDir                                  string
	Plot                                       bool
}

// Resolve checks the configuration against the parameter record and fills
// every default, returning an immutable run description.
func (c *RunConfig) Resolve(p *traj.Params, mode Mode) (*Run, error) {
	if c.DataDir == "" {
		return nil, fmt.Errorf("Need to specify a 'DataDir' value.")
	}

	run := &Run{
		Params:         p,
		ParametersFile: c.ParametersFile,
		WrappedFile:    c.WrappedFile,
		UnwrappedFile:  c.UnwrappedFile,
		OutputDir:      c.OutputDir,
		Plot:           c.Plot,
	}
	if run.ParametersFile == "" {
		run.ParametersFile = path.Join(c.DataDir, ParametersFile)
	}
	if run.WrappedFile == "" {
		run.WrappedFile = path.Join(c.DataDir, WrappedFile)
	}
	if run.UnwrappedFile == "" {
		run.UnwrappedFile = path.Join(c.DataDir, UnwrappedFile)
	}
	if run.OutputDir == "" {
		run.OutputDir = c.DataDir
	}

	frames := p.Frames()
	run.InitFrame = c.InitFrame
	if run.InitFrame < 0 {
		run.InitFrame = frames / 2
	}
	if run.InitFrame >= frames {
		return nil, fmt.Errorf(
			"'InitFrame' is %d, but the run only has %d frames.",
			run.InitFrame, frames,
		)
	}

	run.Lag = c.Lag
	if run.Lag <= 0 {
		run.Lag = frames - run.InitFrame + c.Lag
	}
	if run.Lag < 1 {
		return nil, fmt.Errorf("Resolved lag is %d, want at least 1.", run.Lag)
	}

	run.LastOrigin = frames - run.Lag - 1
	if run.LastOrigin < run.InitFrame {
		return nil, fmt.Errorf(
			"Lag %d leaves no time origin at or after frame %d.",
			run.Lag, run.InitFrame,
		)
	}

	run.IntMax = c.IntMax
	if run.IntMax < 1 {
		return nil, fmt.Errorf("'IntMax' is %d, want at least 1.", c.IntMax)
	}

	run.Cfg.Ncases = c.Ncases
	if run.Cfg.Ncases == 0 {
		run.Cfg.Ncases = int(math.Ceil(math.Sqrt(float64(p.N))))
	}
	if run.Cfg.Ncases < 1 {
		return nil, fmt.Errorf("'Ncases' is %d, want at least 1.", c.Ncases)
	}

	run.Cfg.Endpoint = c.Endpoint

	switch mode {
	case Strain:
		if c.RCut <= 0 {
			return nil, fmt.Errorf("Need a positive 'RCut' value.")
		}
		run.Cfg.RCut = c.RCut * p.A
		run.Cfg.Sigma = c.Sigma
		if run.Cfg.Sigma == 0 {
			run.Cfg.Sigma = run.Cfg.RCut
		}
		if run.Cfg.Sigma <= 0 {
			return nil, fmt.Errorf("Need a positive 'Sigma' value.")
		}

	case Displacement:
		run.Cfg.Size = c.BoxSize
		if run.Cfg.Size == 0 {
			run.Cfg.Size = p.Box
		}
		if run.Cfg.Size <= 0 || run.Cfg.Size > p.Box {
			return nil, fmt.Errorf(
				"'BoxSize' must be in (0, %g], but is %g.",
				p.Box, c.BoxSize,
			)
		}
		run.Cfg.Centre = geom.Vec{c.XZero, c.YZero}
	}

	return run, nil
}

// Example configuration files, printed by the driver's -ExampleConfig mode.
const (
	ExampleStrainConfig = `[Strain]
DataDir = path/to/run
# InitFrame = -1
# Lag = -1
# IntMax = 1
# Ncases = 0
# RCut = 2
# Sigma = 0
# Endpoint = false
# Plot = false
`

	ExampleDisplacementConfig = `[Displacement]
DataDir = path/to/run
# InitFrame = -1
# Lag = -1
# IntMax = 1
# Ncases = 0
# BoxSize = 0
# XZero = 0
# YZero = 0
# Endpoint = false
# Plot = false
`
)
