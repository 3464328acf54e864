package rawclean

// Strengths holds per-channel denoising strengths for the patch-denoise
// primitive. Channel 0 is luma-like and denoised conservatively; channels 1
// and 2 are chroma-like, with channel 2 historically receiving the higher
// strength. The ordering is a caller contract — the pipeline never infers it.
type Strengths struct {
	Luma    float64 // channel 0
	ChromaU float64 // channel 1
	ChromaV float64 // channel 2
}

func (s Strengths) forChannel(c int) float64 {
	switch c {
	case 0:
		return s.Luma
	case 1:
		return s.ChromaU
	default:
		return s.ChromaV
	}
}

// Stage presets, derived from the caller's single scalar h (the target
// strength for channel 2).

// bandSplitPrimary is the full-resolution high-frequency pass: luma is
// assumed pre-cleaned and gets zero strength.
func bandSplitPrimary(h float64) Strengths {
	return Strengths{Luma: 0, ChromaU: h, ChromaV: h}
}

// bandSplitLowFreq is the quarter-resolution pass, run with halved strengths
// since low-frequency noise has less amplitude per pixel.
func bandSplitLowFreq(h float64) Strengths {
	return Strengths{Luma: 0, ChromaU: h / 8, ChromaV: h / 4}
}

// highResSingle doubles the channel-2 strength to compensate for the skipped
// low-frequency correction stage.
func highResSingle(h float64) Strengths {
	return Strengths{Luma: 0, ChromaU: h, ChromaV: 2 * h}
}
