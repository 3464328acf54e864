package rawclean

import "fmt"

const (
	searchWindowMain = 11
	searchWindowLow  = 21

	// residBias lifts the signed low-frequency residual into the unsigned
	// range so the cubic resize kernel can carry it. Cubic weights sum to
	// one, so a constant offset passes through the resampler unchanged.
	residBias = 32768
)

// Denoise removes sensor noise in two frequency bands, writing the result
// back through v. Channel 0 is treated as luma and left untouched by the
// patch denoiser; channels 1 and 2 as chroma. h is the target strength for
// channel 2; h == 0 is a valid minimal-strength configuration.
//
// Three-channel images get the full treatment: a high-frequency non-local
// means pass at full resolution, a 3x3 median over channel 2 to kill residual
// color speckle, and a low-frequency correction computed at quarter
// resolution and reprojected as a residual. Single-channel images get one
// non-local means pass at strength h.
func Denoise(v View, h float64) error {
	if err := checkStrength(v, h); err != nil {
		return err
	}

	img := v.Clone()
	if v.Channels == 1 {
		v.CopyFrom(nlMeansDenoise(img, Strengths{Luma: h}, searchWindowMain))
		return nil
	}

	// High-frequency pass at full resolution.
	img = nlMeansDenoise(img, bandSplitPrimary(h), searchWindowMain)

	// Patch denoising leaves isolated color speckle on channel 2; a small
	// median takes it out without touching the other channels.
	img.SetPlane(2, medianBlur3x3(img.Plane(2)))

	// Low-frequency band: denoise a quarter-resolution copy with a wider
	// search window, isolate the noise estimate as a signed residual, and
	// subtract it from the full-resolution result.
	subRows, subCols := quarterDim(img.Rows), quarterDim(img.Cols)
	sub := resizeArea(img, subRows, subCols)
	subDenoised := nlMeansDenoise(sub, bandSplitLowFreq(h), searchWindowLow)

	resid := NewImage(subRows, subCols, img.Channels)
	for i := range resid.Data {
		resid.Data[i] = clampUint16(int32(sub.Data[i]) - int32(subDenoised.Data[i]) + residBias)
	}
	residUp := resizeCubic(resid, img.Rows, img.Cols)
	for i := range img.Data {
		img.Data[i] = clampUint16(int32(img.Data[i]) - int32(residUp.Data[i]) + residBias)
	}

	v.CopyFrom(img)
	return nil
}

// DenoiseHighRes is the single-pass variant for sensor variants whose pixel
// count makes the two-band pipeline too costly. The channel-2 strength is
// doubled to compensate for the skipped low-frequency stage; high-resolution
// variants are visually less susceptible to low-frequency blotching, so only
// the high-frequency pass is kept.
func DenoiseHighRes(v View, h float64) error {
	if err := checkStrength(v, h); err != nil {
		return err
	}

	img := v.Clone()
	if v.Channels == 1 {
		v.CopyFrom(nlMeansDenoise(img, Strengths{Luma: h}, searchWindowMain))
		return nil
	}
	v.CopyFrom(nlMeansDenoise(img, highResSingle(h), searchWindowMain))
	return nil
}

func checkStrength(v View, h float64) error {
	if err := v.validate(); err != nil {
		return err
	}
	if h < 0 {
		return fmt.Errorf("%w: negative strength %g", ErrInvalidInput, h)
	}
	return nil
}

func quarterDim(n int) int {
	if n < 4 {
		return 1
	}
	return n / 4
}
