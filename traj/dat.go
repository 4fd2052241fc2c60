package traj

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/yketa/gocg/geom"
)

var end = binary.LittleEndian

// datHeader opens a trajectory file: particle count then frame count, both
// little-endian int64, followed by Frames*Particles (x, y) float64 pairs.
type datHeader struct {
	Particles int64
	Frames    int64
}

// WriteDat writes a [frame][particle] position trajectory in dat format.
func WriteDat(w io.Writer, frames [][]geom.Vec) error {
	if len(frames) == 0 {
		return fmt.Errorf("traj: refusing to write an empty trajectory")
	}

	n := len(frames[0])
	hd := datHeader{Particles: int64(n), Frames: int64(len(frames))}
	if err := binary.Write(w, end, &hd); err != nil {
		return err
	}

	for t, frame := range frames {
		if len(frame) != n {
			return fmt.Errorf(
				"traj: frame %d has %d particles, want %d", t, len(frame), n,
			)
		}
		if err := binary.Write(w, end, frame); err != nil {
			return err
		}
	}
	return nil
}

// ReadDat reads a dat-format trajectory into a [frame][particle] array.
func ReadDat(r io.Reader) ([][]geom.Vec, error) {
	hd := datHeader{}
	if err := binary.Read(r, end, &hd); err != nil {
		return nil, err
	}
	if hd.Particles <= 0 || hd.Frames <= 0 {
		return nil, fmt.Errorf(
			"traj: invalid dat header: %d particles, %d frames",
			hd.Particles, hd.Frames,
		)
	}

	frames := make([][]geom.Vec, hd.Frames)
	for t := range frames {
		frames[t] = make([]geom.Vec, hd.Particles)
		if err := binary.Read(r, end, frames[t]); err != nil {
			return nil, err
		}
	}
	return frames, nil
}

// ReadStore reads a wrapped and an unwrapped dat trajectory file into an
// in-memory Store. The wrapped file opens with prepFrames preparation frames
// dumped before the unwrapped trajectory starts; they are dropped here so
// that frame t addresses the same instant in both trajectories.
func ReadStore(wrappedFile, unwrappedFile string, prepFrames int) (*ArrayStore, error) {
	wrapped, err := readDatFile(wrappedFile)
	if err != nil {
		return nil, err
	}
	if prepFrames < 0 || prepFrames >= len(wrapped) {
		return nil, fmt.Errorf(
			"traj: %s holds %d frames, cannot drop %d preparation frames",
			wrappedFile, len(wrapped), prepFrames,
		)
	}
	unwrapped, err := readDatFile(unwrappedFile)
	if err != nil {
		return nil, err
	}
	return NewArrayStore(wrapped[prepFrames:], unwrapped)
}

func readDatFile(fname string) ([][]geom.Vec, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	frames, err := ReadDat(f)
	if err != nil {
		return nil, fmt.Errorf("traj: reading %s: %v", fname, err)
	}
	return frames, nil
}

// WriteDatFile writes a dat trajectory to fname.
func WriteDatFile(fname string, frames [][]geom.Vec) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteDat(f, frames)
}
