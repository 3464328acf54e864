//go:build purego || js

package rawclean

import (
	"image"

	"golang.org/x/image/draw"
)

// Pure Go backend: fallback kernels for builds without OpenCV, such as wasm.
// Same op surface as the native backend; quality matches within the tolerances
// the pipeline cares about, throughput does not.

// medianBlur3x3 applies a 3x3 median filter to a single-channel plane using a
// sorting network, with replicated borders.
func medianBlur3x3(p *Image) *Image {
	rows, cols := p.Rows, p.Cols
	out := NewImage(rows, cols, 1)
	src := p.Data

	for r := 0; r < rows; r++ {
		r0, r2 := r-1, r+1
		if r0 < 0 {
			r0 = 0
		}
		if r2 >= rows {
			r2 = rows - 1
		}
		row0, row1, row2 := r0*cols, r*cols, r2*cols
		for c := 0; c < cols; c++ {
			c0, c2 := c-1, c+1
			if c0 < 0 {
				c0 = 0
			}
			if c2 >= cols {
				c2 = cols - 1
			}
			out.Data[row1+c] = median9(
				src[row0+c0], src[row0+c], src[row0+c2],
				src[row1+c0], src[row1+c], src[row1+c2],
				src[row2+c0], src[row2+c], src[row2+c2],
			)
		}
	}
	return out
}

// median9 is Paeth's 19-exchange median-of-9 network.
func median9(p0, p1, p2, p3, p4, p5, p6, p7, p8 uint16) uint16 {
	sort2 := func(a, b *uint16) {
		if *a > *b {
			*a, *b = *b, *a
		}
	}
	sort2(&p1, &p2)
	sort2(&p4, &p5)
	sort2(&p7, &p8)
	sort2(&p0, &p1)
	sort2(&p3, &p4)
	sort2(&p6, &p7)
	sort2(&p1, &p2)
	sort2(&p4, &p5)
	sort2(&p7, &p8)
	sort2(&p0, &p3)
	sort2(&p5, &p8)
	sort2(&p4, &p7)
	sort2(&p3, &p6)
	sort2(&p1, &p4)
	sort2(&p2, &p5)
	sort2(&p4, &p7)
	sort2(&p4, &p2)
	sort2(&p6, &p4)
	sort2(&p4, &p2)
	return p4
}

// resizeArea shrinks img by averaging the source block each destination pixel
// covers. Exact for integer shrink factors, which is the only way the
// pipeline uses it.
func resizeArea(img *Image, dstRows, dstCols int) *Image {
	rows, cols, ch := img.Rows, img.Cols, img.Channels
	out := NewImage(dstRows, dstCols, ch)

	for dy := 0; dy < dstRows; dy++ {
		y0 := dy * rows / dstRows
		y1 := (dy + 1) * rows / dstRows
		if y1 <= y0 {
			y1 = y0 + 1
		}
		for dx := 0; dx < dstCols; dx++ {
			x0 := dx * cols / dstCols
			x1 := (dx + 1) * cols / dstCols
			if x1 <= x0 {
				x1 = x0 + 1
			}
			area := (y1 - y0) * (x1 - x0)
			for c := 0; c < ch; c++ {
				var sum int64
				for y := y0; y < y1; y++ {
					base := y*cols*ch + c
					for x := x0; x < x1; x++ {
						sum += int64(img.Data[base+x*ch])
					}
				}
				out.Data[dy*dstCols*ch+dx*ch+c] = uint16((sum + int64(area)/2) / int64(area))
			}
		}
	}
	return out
}

// resizeCubic resamples through x/image's Catmull-Rom scaler, which operates
// on 16-bit image types directly.
func resizeCubic(img *Image, dstRows, dstCols int) *Image {
	rows, cols, ch := img.Rows, img.Cols, img.Channels
	out := NewImage(dstRows, dstCols, ch)

	if ch == 1 {
		src := image.NewGray16(image.Rect(0, 0, cols, rows))
		for i, v := range img.Data {
			src.Pix[2*i] = byte(v >> 8)
			src.Pix[2*i+1] = byte(v)
		}
		dst := image.NewGray16(image.Rect(0, 0, dstCols, dstRows))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		for i := range out.Data {
			out.Data[i] = uint16(dst.Pix[2*i])<<8 | uint16(dst.Pix[2*i+1])
		}
		return out
	}

	src := image.NewRGBA64(image.Rect(0, 0, cols, rows))
	for p := 0; p < rows*cols; p++ {
		off := 8 * p
		for c := 0; c < 3; c++ {
			v := img.Data[3*p+c]
			src.Pix[off+2*c] = byte(v >> 8)
			src.Pix[off+2*c+1] = byte(v)
		}
		src.Pix[off+6] = 0xff
		src.Pix[off+7] = 0xff
	}
	dst := image.NewRGBA64(image.Rect(0, 0, dstCols, dstRows))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	for p := 0; p < dstRows*dstCols; p++ {
		off := 8 * p
		for c := 0; c < 3; c++ {
			out.Data[3*p+c] = uint16(dst.Pix[off+2*c])<<8 | uint16(dst.Pix[off+2*c+1])
		}
	}
	return out
}

// inpaintPlane repairs the masked pixels of a single-channel plane. Pixels
// are filled in order of distance from the unmasked region, each from a
// distance-weighted average of already-known neighbors; the Navier-Stokes
// method then relaxes the filled region toward a smooth diffusion solution.
func inpaintPlane(p *Image, mask []uint8, radius int, method InpaintMethod) *Image {
	rows, cols := p.Rows, p.Cols
	out := p.Clone()
	if radius < 1 {
		radius = 1
	}

	known := make([]bool, rows*cols)
	order := fillOrder(mask, rows, cols, known)
	if order == nil {
		return out // nothing masked, or nothing known to fill from
	}

	work := make([]float64, rows*cols)
	for i, v := range out.Data {
		work[i] = float64(v)
	}

	for _, idx := range order {
		y, x := idx/cols, idx%cols
		var wsum, vsum float64
		for dy := -radius; dy <= radius; dy++ {
			ny := y + dy
			if ny < 0 || ny >= rows {
				continue
			}
			for dx := -radius; dx <= radius; dx++ {
				nx := x + dx
				if nx < 0 || nx >= cols {
					continue
				}
				ni := ny*cols + nx
				if !known[ni] {
					continue
				}
				w := 1.0 / float64(1+dy*dy+dx*dx)
				wsum += w
				vsum += w * work[ni]
			}
		}
		if wsum > 0 {
			work[idx] = vsum / wsum
		}
		known[idx] = true
	}

	if method == InpaintNS {
		relaxMasked(work, mask, rows, cols)
	}

	for _, idx := range order {
		work[idx] += 0.5
		if work[idx] < 0 {
			work[idx] = 0
		}
		if work[idx] > 65535 {
			work[idx] = 65535
		}
		out.Data[idx] = uint16(work[idx])
	}
	return out
}

// fillOrder runs a multi-source BFS from every unmasked pixel and returns the
// masked pixel indices ordered by increasing distance, so each pixel always
// has an already-known 8-neighbor when its turn comes. known is set true for
// unmasked pixels. Returns nil when there is nothing to do.
func fillOrder(mask []uint8, rows, cols int, known []bool) []int {
	queue := make([]int, 0, rows*cols)
	masked := 0
	for i := range known {
		if mask[i] == 0 {
			known[i] = true
			queue = append(queue, i)
		} else {
			masked++
		}
	}
	if masked == 0 || len(queue) == 0 {
		return nil
	}

	visited := make([]bool, rows*cols)
	for _, i := range queue {
		visited[i] = true
	}
	order := make([]int, 0, masked)
	for len(queue) > 0 {
		next := queue[:0:0]
		for _, idx := range queue {
			y, x := idx/cols, idx%cols
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= rows {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if nx < 0 || nx >= cols {
						continue
					}
					ni := ny*cols + nx
					if !visited[ni] {
						visited[ni] = true
						order = append(order, ni)
						next = append(next, ni)
					}
				}
			}
		}
		queue = next
	}
	return order
}

// relaxMasked iterates a 4-neighbor average over the masked region, driving
// it toward the steady state of the fluid-dynamics formulation.
func relaxMasked(work []float64, mask []uint8, rows, cols int) {
	const maxIterations = 200
	const converged = 0.05

	for iter := 0; iter < maxIterations; iter++ {
		var maxDelta float64
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				idx := y*cols + x
				if mask[idx] == 0 {
					continue
				}
				var sum float64
				var n int
				if y > 0 {
					sum += work[idx-cols]
					n++
				}
				if y < rows-1 {
					sum += work[idx+cols]
					n++
				}
				if x > 0 {
					sum += work[idx-1]
					n++
				}
				if x < cols-1 {
					sum += work[idx+1]
					n++
				}
				v := sum / float64(n)
				if d := v - work[idx]; d > maxDelta {
					maxDelta = d
				} else if -d > maxDelta {
					maxDelta = -d
				}
				work[idx] = v
			}
		}
		if maxDelta < converged {
			return
		}
	}
}
