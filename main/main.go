package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"time"

	"github.com/yketa/gocg/corr"
	"github.com/yketa/gocg/field"
	"github.com/yketa/gocg/io"
	"github.com/yketa/gocg/plot"
	"github.com/yketa/gocg/traj"
)

func main() {
	var strain, displacement, exampleConfig string

	flag.StringVar(
		&strain, "Strain", "",
		"Configuration file for [Strain] mode.",
	)
	flag.StringVar(
		&displacement, "Displacement", "",
		"Configuration file for [Displacement] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'Strain' and 'Displacement'.",
	)

	flag.Parse()

	switch {
	case exampleConfig != "":
		switch exampleConfig {
		case "Strain":
			fmt.Print(io.ExampleStrainConfig)
		case "Displacement":
			fmt.Print(io.ExampleDisplacementConfig)
		default:
			log.Fatalf("Unrecognized config type '%s'.", exampleConfig)
		}
	case strain != "":
		strainMain(strain)
	case displacement != "":
		displacementMain(displacement)
	default:
		fmt.Fprintln(os.Stderr, "Need to select a mode:")
		flag.PrintDefaults()
		os.Exit(1)
	}
}

// setup resolves a run config against its parameter record and loads the
// trajectory store.
func setup(cfg *io.RunConfig, mode io.Mode) (*io.Run, *field.Sampler) {
	p, err := io.ReadParams(paramsFile(cfg))
	if err != nil {
		log.Fatal(err.Error())
	}

	r, err := cfg.Resolve(p, mode)
	if err != nil {
		log.Fatal(err.Error())
	}

	start := time.Now()
	store, err := traj.ReadStore(r.WrappedFile, r.UnwrappedFile, p.PrepFrames())
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf(
		"Read %d frames of %d particles in %v",
		store.Frames(), store.Particles(), time.Since(start),
	)

	if store.Particles() != p.N {
		log.Fatalf(
			"Trajectory holds %d particles, parameter file says %d.",
			store.Particles(), p.N,
		)
	}
	if store.Frames() < r.LastOrigin+r.Lag+1 {
		log.Fatalf(
			"Trajectory holds %d frames, but lag %d from origin %d needs %d.",
			store.Frames(), r.Lag, r.LastOrigin, r.LastOrigin+r.Lag+1,
		)
	}

	return r, field.NewSampler(store, p.Box, r.Cfg)
}

func paramsFile(cfg *io.RunConfig) string {
	if cfg.ParametersFile != "" {
		return cfg.ParametersFile
	}
	return path.Join(cfg.DataDir, io.ParametersFile)
}

func strainMain(fname string) {
	cfg, err := io.ReadStrainConfig(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	r, sampler := setup(cfg, io.Strain)

	origins := field.Origins(r.InitFrame, r.LastOrigin, r.IntMax)
	log.Printf("Sampling %d time origins at lag %d", len(origins), r.Lag)

	start := time.Now()
	sStack, cStack := sampler.StrainVorticityStacks(origins, r.Lag)
	log.Printf("Field grids computed in %v", time.Since(start))

	start = time.Now()
	css := corr.ScalarAverage(sStack)
	ccc := corr.ScalarAverage(cStack)
	log.Printf("Correlations computed in %v", time.Since(start))

	box := r.Params.Box
	hd := io.GridHeader{
		Ncases: int64(r.Cfg.Ncases), Samples: int64(len(origins)), Box: box,
	}

	css1D := corr.Radial(css, box)
	ccc1D := corr.Radial(ccc, box)

	write := func(name string, g field.Grid, pts []corr.Point) {
		if err := io.WriteGrid(out(r, name+".grid"), hd, g); err != nil {
			log.Fatal(err.Error())
		}
		if err := io.WriteProfile(out(r, name+".csv"), pts); err != nil {
			log.Fatal(err.Error())
		}
	}
	write("Css", css, css1D)
	write("Ccc", ccc, ccc1D)

	if r.Plot {
		plot.Profile(out(r, "Css.png"), `C_{\epsilon\epsilon}`, css1D)
		plot.Profile(out(r, "Ccc.png"), `C_{\omega\omega}`, ccc1D)
		plot.Execute()
	}
}

func displacementMain(fname string) {
	cfg, err := io.ReadDisplacementConfig(fname)
	if err != nil {
		log.Fatal(err.Error())
	}
	r, sampler := setup(cfg, io.Displacement)

	origins := field.Origins(r.InitFrame, r.LastOrigin, r.IntMax)
	log.Printf("Sampling %d time origins at lag %d", len(origins), r.Lag)

	start := time.Now()
	nStack, uStack, wStack, dStack, eStack :=
		sampler.DisplacementStacks(origins, r.Lag)
	log.Printf("Field grids computed in %v", time.Since(start))

	start = time.Now()
	cnn := corr.ScalarAverage(nStack)
	cdd := corr.ScalarAverage(dStack)
	cuu, cuuL, cuuT := corr.VectorAverageCnn(uStack, cnn)
	cww, cwwL, cwwT := corr.VectorAverageCnn(wStack, cnn)
	cee, ceeL, ceeT := corr.VectorAverageCnn(eStack, cnn)
	log.Printf("Correlations computed in %v", time.Since(start))

	log.Printf("Cuu unit-lag L/T: %g %g", cuuL, cuuT)
	log.Printf("Cww unit-lag L/T: %g %g", cwwL, cwwT)
	log.Printf("Cee unit-lag L/T: %g %g", ceeL, ceeT)

	// Radial reductions use the sampled sub-box, not the full box.
	size := r.Cfg.Size
	hd := io.GridHeader{
		Ncases: int64(r.Cfg.Ncases), Samples: int64(len(origins)), Box: size,
	}

	cnn1D := corr.Radial(cnn, size)

	write := func(name string, g field.Grid) []corr.Point {
		pts := corr.Radial(g, size)
		if err := io.WriteGrid(out(r, name+".grid"), hd, g); err != nil {
			log.Fatal(err.Error())
		}
		if err := io.WriteProfile(out(r, name+".csv"), pts); err != nil {
			log.Fatal(err.Error())
		}
		return pts
	}
	writeCor := func(name string, pts []corr.Point) {
		cor := corr.DivideBy(pts, cnn1D)
		if err := io.WriteProfile(out(r, name+"_cnn.csv"), cor); err != nil {
			log.Fatal(err.Error())
		}
	}

	if err := io.WriteGrid(out(r, "Cnn.grid"), hd, cnn); err != nil {
		log.Fatal(err.Error())
	}
	if err := io.WriteProfile(out(r, "Cnn.csv"), cnn1D); err != nil {
		log.Fatal(err.Error())
	}

	cuu1D := write("Cuu", cuu)
	cww1D := write("Cww", cww)
	cdd1D := write("Cdd", cdd)
	cee1D := write("Cee", cee)
	writeCor("Cuu", cuu1D)
	writeCor("Cww", cww1D)
	writeCor("Cdd", cdd1D)
	writeCor("Cee", cee1D)

	if r.Plot {
		plot.Profile(out(r, "Cnn.png"), `C_{\rho\rho}`, cnn1D)
		plot.Profile(out(r, "Cuu.png"), `C_{uu}`, cuu1D)
		plot.Profile(out(r, "Cww.png"), `C_{\delta u\delta u}`, cww1D)
		plot.Profile(out(r, "Cdd.png"), `C_{|u||u|}`, cdd1D)
		plot.Profile(out(r, "Cee.png"), `C_{\hat{u}\hat{u}}`, cee1D)
		plot.Execute()
	}
}

func out(r *io.Run, name string) string {
	return path.Join(r.OutputDir, name)
}
