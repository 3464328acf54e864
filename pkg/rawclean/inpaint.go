package rawclean

import "fmt"

// InpaintMethod selects the inpainting strategy used for defect repair.
type InpaintMethod int

const (
	// InpaintNS is the fluid-dynamics-inspired method: higher quality,
	// slower.
	InpaintNS InpaintMethod = iota
	// InpaintTelea is the fast-marching method: faster, lower quality.
	InpaintTelea
)

// Repair synthesizes replacement values for the pixels flagged by m (non-zero
// = repair) and writes the result back through v. radius is the pixel
// neighborhood considered when synthesizing values. Pixels outside the mask
// are never altered.
//
// The inpainting kernel only operates on single-channel high-bit-depth data,
// so multi-channel images are split into independent planes, each repaired
// against the same shared mask, and recombined.
func Repair(v View, m Mask, radius int, method InpaintMethod) error {
	if err := v.validate(); err != nil {
		return err
	}
	if err := m.validate(); err != nil {
		return err
	}
	if m.Rows != v.Rows || m.Cols != v.Cols {
		return fmt.Errorf("%w: mask %dx%d does not match image %dx%d",
			ErrInvalidInput, m.Cols, m.Rows, v.Cols, v.Rows)
	}
	if radius <= 0 {
		return fmt.Errorf("%w: inpaint radius %d", ErrInvalidInput, radius)
	}
	if method != InpaintNS && method != InpaintTelea {
		return fmt.Errorf("%w: inpaint method %d", ErrInvalidInput, method)
	}
	if m.empty() {
		return nil
	}

	mask := m.packed()
	img := v.Clone()
	if v.Channels == 1 {
		v.CopyFrom(inpaintPlane(img, mask, radius, method))
		return nil
	}

	out := NewImage(v.Rows, v.Cols, v.Channels)
	for c := 0; c < v.Channels; c++ {
		out.SetPlane(c, inpaintPlane(img.Plane(c), mask, radius, method))
	}
	v.CopyFrom(out)
	return nil
}
