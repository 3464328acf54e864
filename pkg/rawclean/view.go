package rawclean

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidInput is wrapped by every error returned from the package entry
// points. All such errors are caller contract violations, not runtime
// conditions worth retrying.
var ErrInvalidInput = errors.New("rawclean: invalid input")

// View is a non-owning description of a rectangular buffer of 16-bit samples.
// Rows are stored Stride samples apart, which may exceed Cols*Channels when
// the caller's buffer carries row padding. A View never owns its storage and
// must not outlive the buffer it describes.
//
// The sample at (y, x, c) lives at Data[y*Stride + x*Channels + c].
type View struct {
	Data     []uint16
	Rows     int
	Cols     int
	Channels int
	Stride   int
}

// NewView wraps an externally-owned sample buffer. No data is validated or
// copied; constructing a View is free.
func NewView(data []uint16, rows, cols, channels, stride int) View {
	return View{Data: data, Rows: rows, Cols: cols, Channels: channels, Stride: stride}
}

func (v View) validate() error {
	if v.Rows <= 0 || v.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d image", ErrInvalidInput, v.Cols, v.Rows)
	}
	if v.Channels != 1 && v.Channels != 3 {
		return fmt.Errorf("%w: %d channels, want 1 or 3", ErrInvalidInput, v.Channels)
	}
	if v.Stride < v.Cols*v.Channels {
		return fmt.Errorf("%w: stride %d < %d samples per row", ErrInvalidInput, v.Stride, v.Cols*v.Channels)
	}
	if need := (v.Rows-1)*v.Stride + v.Cols*v.Channels; len(v.Data) < need {
		return fmt.Errorf("%w: buffer holds %d samples, need %d", ErrInvalidInput, len(v.Data), need)
	}
	return nil
}

// At returns the sample at (y, x, c).
func (v View) At(y, x, c int) uint16 {
	return v.Data[y*v.Stride+x*v.Channels+c]
}

// Set stores a sample at (y, x, c).
func (v View) Set(y, x, c int, val uint16) {
	v.Data[y*v.Stride+x*v.Channels+c] = val
}

// Sub returns a view restricted to r, sharing the same storage. r must lie
// inside the view's bounds.
func (v View) Sub(r image.Rectangle) View {
	return View{
		Data:     v.Data[r.Min.Y*v.Stride+r.Min.X*v.Channels:],
		Rows:     r.Dy(),
		Cols:     r.Dx(),
		Channels: v.Channels,
		Stride:   v.Stride,
	}
}

// Clone copies the logical content into a freshly allocated packed Image.
func (v View) Clone() *Image {
	img := NewImage(v.Rows, v.Cols, v.Channels)
	w := v.Cols * v.Channels
	for y := 0; y < v.Rows; y++ {
		copy(img.Data[y*w:(y+1)*w], v.Data[y*v.Stride:y*v.Stride+w])
	}
	return img
}

// CopyFrom writes a packed image of identical logical dimensions back through
// the view, row by row, honoring the view's own stride. Padding samples
// between rows are left untouched.
func (v View) CopyFrom(img *Image) {
	w := v.Cols * v.Channels
	for y := 0; y < v.Rows; y++ {
		copy(v.Data[y*v.Stride:y*v.Stride+w], img.Data[y*w:(y+1)*w])
	}
}

// Image is an owned, contiguously packed sample buffer used for pipeline
// intermediates. Its stride is always Cols*Channels.
type Image struct {
	Data     []uint16
	Rows     int
	Cols     int
	Channels int
}

// NewImage allocates a zeroed packed image.
func NewImage(rows, cols, channels int) *Image {
	return &Image{
		Data:     make([]uint16, rows*cols*channels),
		Rows:     rows,
		Cols:     cols,
		Channels: channels,
	}
}

// View returns a strided view over the packed buffer.
func (img *Image) View() View {
	return NewView(img.Data, img.Rows, img.Cols, img.Channels, img.Cols*img.Channels)
}

// Clone returns a deep copy.
func (img *Image) Clone() *Image {
	out := NewImage(img.Rows, img.Cols, img.Channels)
	copy(out.Data, img.Data)
	return out
}

// Plane extracts channel c into a new single-channel image.
func (img *Image) Plane(c int) *Image {
	out := NewImage(img.Rows, img.Cols, 1)
	ch := img.Channels
	for i, j := c, 0; j < len(out.Data); i, j = i+ch, j+1 {
		out.Data[j] = img.Data[i]
	}
	return out
}

// SetPlane writes a co-registered single-channel image back into channel c.
func (img *Image) SetPlane(c int, p *Image) {
	ch := img.Channels
	for i, j := c, 0; j < len(p.Data); i, j = i+ch, j+1 {
		img.Data[i] = p.Data[j]
	}
}

// Mask is a non-owning view over a single-channel 8-bit defect mask,
// co-registered with the image it repairs. A non-zero sample marks a pixel
// requiring repair.
type Mask struct {
	Data   []uint8
	Rows   int
	Cols   int
	Stride int
}

// NewMask wraps an externally-owned mask buffer.
func NewMask(data []uint8, rows, cols, stride int) Mask {
	return Mask{Data: data, Rows: rows, Cols: cols, Stride: stride}
}

// At returns the mask sample at (y, x).
func (m Mask) At(y, x int) uint8 {
	return m.Data[y*m.Stride+x]
}

func (m Mask) validate() error {
	if m.Stride < m.Cols {
		return fmt.Errorf("%w: mask stride %d < %d columns", ErrInvalidInput, m.Stride, m.Cols)
	}
	if need := (m.Rows-1)*m.Stride + m.Cols; len(m.Data) < need {
		return fmt.Errorf("%w: mask holds %d samples, need %d", ErrInvalidInput, len(m.Data), need)
	}
	return nil
}

// packed returns the logical mask content as a contiguous buffer.
func (m Mask) packed() []uint8 {
	out := make([]uint8, m.Rows*m.Cols)
	for y := 0; y < m.Rows; y++ {
		copy(out[y*m.Cols:(y+1)*m.Cols], m.Data[y*m.Stride:y*m.Stride+m.Cols])
	}
	return out
}

// empty reports whether no pixel is flagged.
func (m Mask) empty() bool {
	for y := 0; y < m.Rows; y++ {
		row := m.Data[y*m.Stride : y*m.Stride+m.Cols]
		for _, s := range row {
			if s != 0 {
				return false
			}
		}
	}
	return true
}

// MaskFromPoints builds a packed mask from a list of defect coordinates.
// Points outside the given dimensions are ignored, since sensor metadata may
// list defects relative to an uncropped frame.
func MaskFromPoints(rows, cols int, pts []image.Point) Mask {
	data := make([]uint8, rows*cols)
	for _, p := range pts {
		if p.X >= 0 && p.X < cols && p.Y >= 0 && p.Y < rows {
			data[p.Y*cols+p.X] = 255
		}
	}
	return NewMask(data, rows, cols, cols)
}

// clampUint16 saturates a signed intermediate to the unsigned 16-bit range.
func clampUint16(val int32) uint16 {
	if val < 0 {
		return 0
	}
	if val > 65535 {
		return 65535
	}
	return uint16(val)
}
