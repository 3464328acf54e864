package rawclean

import (
	"math"
	"runtime"
	"sync"
)

// Patch-denoise primitive: non-local means over 16-bit samples with an L1
// patch distance. L1 is preferred over L2 for its robustness to the outlier
// values typical of sensor noise. gocv's NL-means binding only accepts 8-bit
// input, so this kernel is implemented here and shared by both backends.

// nlmPatchRadius gives the 3x3 patch window used throughout the pipeline.
const nlmPatchRadius = 1

// nlMeansDenoise returns a denoised copy of img. Channels are processed
// independently, each with its own strength; a channel whose strength is zero
// (or negative) is copied verbatim. searchSize is the full width of the
// square search window, e.g. 11 or 21.
func nlMeansDenoise(img *Image, s Strengths, searchSize int) *Image {
	out := img.Clone()
	for c := 0; c < img.Channels; c++ {
		h := s.forChannel(c)
		if h <= 0 {
			continue
		}
		denoiseChannel(img, out, c, h, searchSize/2)
	}
	return out
}

func denoiseChannel(src, dst *Image, c int, h float64, searchRadius int) {
	rows := src.Rows
	invH := 1.0 / h

	workers := runtime.NumCPU()
	if workers > rows {
		workers = rows
	}
	rowsPerWorker := (rows + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < rows; start += rowsPerWorker {
		end := start + rowsPerWorker
		if end > rows {
			end = rows
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			for y := y0; y < y1; y++ {
				denoiseRow(src, dst, c, y, invH, searchRadius)
			}
		}(start, end)
	}
	wg.Wait()
}

func denoiseRow(src, dst *Image, c, y int, invH float64, searchRadius int) {
	rows, cols, ch := src.Rows, src.Cols, src.Channels

	sy0 := y - searchRadius
	sy1 := y + searchRadius
	if sy0 < 0 {
		sy0 = 0
	}
	if sy1 >= rows {
		sy1 = rows - 1
	}

	for x := 0; x < cols; x++ {
		sx0 := x - searchRadius
		sx1 := x + searchRadius
		if sx0 < 0 {
			sx0 = 0
		}
		if sx1 >= cols {
			sx1 = cols - 1
		}

		var wsum, vsum float64
		for sy := sy0; sy <= sy1; sy++ {
			for sx := sx0; sx <= sx1; sx++ {
				d := patchDistL1(src, c, y, x, sy, sx)
				w := math.Exp(-d * invH)
				wsum += w
				vsum += w * float64(src.Data[sy*cols*ch+sx*ch+c])
			}
		}
		dst.Data[y*cols*ch+x*ch+c] = uint16(vsum/wsum + 0.5)
	}
}

// patchDistL1 is the mean absolute difference between the 3x3 patches
// centered at (y0, x0) and (y1, x1), with replicated borders.
func patchDistL1(img *Image, c, y0, x0, y1, x1 int) float64 {
	rows, cols, ch := img.Rows, img.Cols, img.Channels
	var sum int32
	for dy := -nlmPatchRadius; dy <= nlmPatchRadius; dy++ {
		ay := clampIndex(y0+dy, rows)
		by := clampIndex(y1+dy, rows)
		for dx := -nlmPatchRadius; dx <= nlmPatchRadius; dx++ {
			ax := clampIndex(x0+dx, cols)
			bx := clampIndex(x1+dx, cols)
			d := int32(img.Data[ay*cols*ch+ax*ch+c]) - int32(img.Data[by*cols*ch+bx*ch+c])
			if d < 0 {
				d = -d
			}
			sum += d
		}
	}
	const patchArea = (2*nlmPatchRadius + 1) * (2*nlmPatchRadius + 1)
	return float64(sum) / patchArea
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
