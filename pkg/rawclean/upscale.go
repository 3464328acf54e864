package rawclean

import "fmt"

// Upscale resamples src into dst with bicubic interpolation. The
// destination's declared dimensions are authoritative; source and destination
// may have arbitrary independent strides. Used to bring low-resolution sensor
// channels up to the resolution of a high-resolution reference channel.
func Upscale(src, dst View) error {
	if err := src.validate(); err != nil {
		return err
	}
	if err := dst.validate(); err != nil {
		return err
	}
	if src.Channels != dst.Channels {
		return fmt.Errorf("%w: channel mismatch, src %d vs dst %d", ErrInvalidInput, src.Channels, dst.Channels)
	}
	dst.CopyFrom(resizeCubic(src.Clone(), dst.Rows, dst.Cols))
	return nil
}
