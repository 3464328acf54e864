package rawclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillNoisy(v View, base []uint16, amplitude int, seed int64) {
	img := noisyImage(v.Rows, v.Cols, v.Channels, base, amplitude, seed)
	v.CopyFrom(img)
}

func TestDenoiseThreeChannel(t *testing.T) {
	// 16x16x3, stride 48 (no padding), h = 10.
	buf := make([]uint16, 16*48)
	v := NewView(buf, 16, 16, 3, 48)
	fillNoisy(v, []uint16{12000, 22000, 32000}, 200, 4)

	require.NoError(t, Denoise(v, 10))
}

func TestDenoiseRespectsStridePadding(t *testing.T) {
	v := newPaddedView(16, 16, 3, 54)
	fillNoisy(v, []uint16{12000, 22000, 32000}, 200, 5)

	require.NoError(t, Denoise(v, 400))
	assertPaddingIntact(t, v)
}

func TestDenoiseZeroStrengthNearIdentity(t *testing.T) {
	// Constant channels: the median stage and residual subtraction are
	// identities up to rounding, so h == 0 must behave as a near no-op.
	buf := make([]uint16, 16*48)
	v := NewView(buf, 16, 16, 3, 48)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			v.Set(y, x, 0, 10000)
			v.Set(y, x, 1, 20000)
			v.Set(y, x, 2, 30000)
		}
	}

	require.NoError(t, Denoise(v, 0))

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			assert.InDelta(t, 10000, float64(v.At(y, x, 0)), 2)
			assert.InDelta(t, 20000, float64(v.At(y, x, 1)), 2)
			assert.InDelta(t, 30000, float64(v.At(y, x, 2)), 2)
		}
	}
}

func TestDenoiseSingleChannel(t *testing.T) {
	buf := make([]uint16, 24*24)
	v := NewView(buf, 24, 24, 1, 24)
	fillNoisy(v, []uint16{20000}, 400, 6)
	before := Stats(v, 0)

	require.NoError(t, Denoise(v, 800))

	after := Stats(v, 0)
	assert.Less(t, after.StdDev, before.StdDev)
}

func TestDenoiseSingleChannelZeroStrengthIsIdentity(t *testing.T) {
	buf := make([]uint16, 12*12)
	v := NewView(buf, 12, 12, 1, 12)
	fillNoisy(v, []uint16{15000}, 500, 7)
	before := make([]uint16, len(buf))
	copy(before, buf)

	require.NoError(t, Denoise(v, 0))
	assert.Equal(t, before, buf)
}

func TestDenoiseHighResLumaUntouched(t *testing.T) {
	buf := make([]uint16, 20*60)
	v := NewView(buf, 20, 20, 3, 60)
	fillNoisy(v, []uint16{14000, 24000, 34000}, 300, 8)

	luma := make([]uint16, 20*20)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			luma[y*20+x] = v.At(y, x, 0)
		}
	}
	chromaBefore := Stats(v, 2)

	require.NoError(t, DenoiseHighRes(v, 500))

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			require.Equal(t, luma[y*20+x], v.At(y, x, 0), "(%d,%d)", y, x)
		}
	}
	assert.Less(t, Stats(v, 2).StdDev, chromaBefore.StdDev)
}

func TestDenoiseRejectsBadInput(t *testing.T) {
	buf := make([]uint16, 16*48)

	assert.ErrorIs(t, Denoise(NewView(buf, 16, 16, 3, 40), 10), ErrInvalidInput)
	assert.ErrorIs(t, Denoise(NewView(buf, 16, 16, 3, 48), -1), ErrInvalidInput)
	assert.ErrorIs(t, DenoiseHighRes(NewView(buf, 16, 16, 2, 48), 10), ErrInvalidInput)
}

func TestQuarterDim(t *testing.T) {
	assert.Equal(t, 4, quarterDim(16))
	assert.Equal(t, 4, quarterDim(17))
	assert.Equal(t, 1, quarterDim(3))
	assert.Equal(t, 1, quarterDim(1))
}
