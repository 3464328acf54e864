package rawclean

import "math"

// PlaneStats holds basic per-channel statistics, mostly useful for judging
// how much noise a pipeline pass removed.
type PlaneStats struct {
	Min    uint16
	Max    uint16
	Mean   float64
	StdDev float64
}

// Stats computes statistics for channel c of the view.
func Stats(v View, c int) PlaneStats {
	s := PlaneStats{Min: 65535}
	n := v.Rows * v.Cols

	var sum float64
	for y := 0; y < v.Rows; y++ {
		for x := 0; x < v.Cols; x++ {
			val := v.At(y, x, c)
			if val < s.Min {
				s.Min = val
			}
			if val > s.Max {
				s.Max = val
			}
			sum += float64(val)
		}
	}
	s.Mean = sum / float64(n)

	var sse float64
	for y := 0; y < v.Rows; y++ {
		for x := 0; x < v.Cols; x++ {
			d := float64(v.At(y, x, c)) - s.Mean
			sse += d * d
		}
	}
	s.StdDev = math.Sqrt(sse / float64(n))
	return s
}
