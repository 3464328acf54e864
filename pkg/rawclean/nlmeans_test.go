package rawclean

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyImage returns a packed image whose channels sit at base levels with
// uniform noise of the given amplitude, from a fixed seed.
func noisyImage(rows, cols, channels int, base []uint16, amplitude int, seed int64) *Image {
	rng := rand.New(rand.NewSource(seed))
	img := NewImage(rows, cols, channels)
	for p := 0; p < rows*cols; p++ {
		for c := 0; c < channels; c++ {
			n := rng.Intn(2*amplitude+1) - amplitude
			img.Data[p*channels+c] = clampUint16(int32(base[c]) + int32(n))
		}
	}
	return img
}

func TestNLMeansZeroStrengthIsCopy(t *testing.T) {
	img := noisyImage(12, 12, 3, []uint16{10000, 20000, 30000}, 500, 1)
	out := nlMeansDenoise(img, Strengths{}, searchWindowMain)

	assert.Equal(t, img.Data, out.Data)
	assert.NotSame(t, &img.Data[0], &out.Data[0], "output is a copy, not an alias")
}

func TestNLMeansReducesNoise(t *testing.T) {
	img := noisyImage(24, 24, 1, []uint16{20000}, 400, 2)
	before := Stats(img.View(), 0)

	out := nlMeansDenoise(img, Strengths{Luma: 800}, searchWindowMain)
	after := Stats(out.View(), 0)

	assert.Less(t, after.StdDev, before.StdDev)
	assert.InDelta(t, before.Mean, after.Mean, 100, "denoising must not shift the mean")
}

func TestNLMeansZeroStrengthChannelUntouched(t *testing.T) {
	img := noisyImage(16, 16, 3, []uint16{15000, 25000, 35000}, 300, 3)
	out := nlMeansDenoise(img, bandSplitPrimary(500), searchWindowMain)

	for p := 0; p < 16*16; p++ {
		require.Equal(t, img.Data[p*3], out.Data[p*3], "channel 0 pixel %d", p)
	}

	changed := 0
	for p := 0; p < 16*16; p++ {
		if img.Data[p*3+1] != out.Data[p*3+1] || img.Data[p*3+2] != out.Data[p*3+2] {
			changed++
		}
	}
	assert.Positive(t, changed, "chroma channels were denoised")
}

func TestNLMeansConstantImageIsFixedPoint(t *testing.T) {
	img := NewImage(10, 10, 1)
	for i := range img.Data {
		img.Data[i] = 4242
	}
	out := nlMeansDenoise(img, Strengths{Luma: 300}, searchWindowMain)
	assert.Equal(t, img.Data, out.Data)
}

func TestPatchDistL1(t *testing.T) {
	img := NewImage(6, 6, 1)
	for i := range img.Data {
		img.Data[i] = 100
	}
	assert.Zero(t, patchDistL1(img, 0, 2, 2, 3, 3))

	// (3,3) is the center of the second patch and the corner of the first,
	// so the outlier contributes twice.
	img.Data[3*6+3] = 1000
	assert.InDelta(t, 1800.0/9, patchDistL1(img, 0, 2, 2, 3, 3), 1e-9)
}
