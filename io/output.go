package io

import (
	"encoding/binary"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/yketa/gocg/corr"
	"github.com/yketa/gocg/field"
)

var end = binary.LittleEndian

// GridHeader opens a binary correlation grid file.
type GridHeader struct {
	Ncases  int64
	Samples int64 // effective time origins folded into the grid
	Box     float64
}

// WriteGrid writes a correlation grid with its header, rows in order,
// little-endian float64.
func WriteGrid(fname string, hd GridHeader, g field.Grid) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := binary.Write(f, end, &hd); err != nil {
		return err
	}
	for _, row := range g {
		if err := binary.Write(f, end, row); err != nil {
			return err
		}
	}
	return nil
}

// ReadGrid reads a grid written by WriteGrid.
func ReadGrid(fname string) (GridHeader, field.Grid, error) {
	hd := GridHeader{}

	f, err := os.Open(fname)
	if err != nil {
		return hd, nil, err
	}
	defer f.Close()

	if err := binary.Read(f, end, &hd); err != nil {
		return hd, nil, err
	}
	g := field.NewGrid(int(hd.Ncases))
	for i := range g {
		if err := binary.Read(f, end, g[i]); err != nil {
			return hd, nil, err
		}
	}
	return hd, g, nil
}

// WriteProfile writes a radial correlation profile as CSV.
func WriteProfile(fname string, pts []corr.Point) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	return gocsv.MarshalFile(&pts, f)
}
