package main

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/steer/steer"
)

// flowSlice holds a square XZ sampling of a flow field, row-major in Z.
type flowSlice struct {
	Size           int
	Flow           []r3.Vec
	Min, Max, Mean float64 // of |flow|
}

// sampleSlice samples field on a size x size lattice covering
// [-extent, extent] in X and Z at height y, at cell centers.
func sampleSlice(field steer.FlowField, size int, extent, y float64) flowSlice {
	s := flowSlice{Size: size, Flow: make([]r3.Vec, size*size)}
	if size == 0 {
		return s
	}
	cell := 2 * extent / float64(size)
	s.Min = math.Inf(1)
	var sum float64
	for j := 0; j < size; j++ {
		z := -extent + (float64(j)+0.5)*cell
		for i := 0; i < size; i++ {
			x := -extent + (float64(i)+0.5)*cell
			f := field.Sample(r3.Vec{X: x, Y: y, Z: z})
			s.Flow[j*size+i] = f

			m := r3.Norm(f)
			sum += m
			s.Min = math.Min(s.Min, m)
			s.Max = math.Max(s.Max, m)
		}
	}
	s.Mean = sum / float64(size*size)
	return s
}

// colors maps each sample's magnitude, relative to the slice maximum, onto a
// dark blue to cyan to yellow to white ramp.
func (s flowSlice) colors() []color.RGBA {
	pixels := make([]color.RGBA, len(s.Flow))
	for i, f := range s.Flow {
		v := 0.0
		if s.Max > 0 {
			v = r3.Norm(f) / s.Max
		}
		pixels[i] = ramp(v)
	}
	return pixels
}

func ramp(v float64) color.RGBA {
	stops := [...]struct{ at, r, g, b float64 }{
		{0, 10, 20, 60},
		{0.33, 60, 200, 200},
		{0.66, 200, 160, 50},
		{1, 255, 255, 255},
	}
	v = math.Max(0, math.Min(v, 1))
	for k := 1; k < len(stops); k++ {
		lo, hi := stops[k-1], stops[k]
		if v <= hi.at {
			t := (v - lo.at) / (hi.at - lo.at)
			return color.RGBA{
				R: uint8(lo.r + t*(hi.r-lo.r)),
				G: uint8(lo.g + t*(hi.g-lo.g)),
				B: uint8(lo.b + t*(hi.b-lo.b)),
				A: 255,
			}
		}
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
