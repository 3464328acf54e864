package rawclean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpscaleFillsDestination(t *testing.T) {
	// 4x4x3 source up to 16x16x3: every destination pixel populated, values
	// inside the source range plus cubic overshoot.
	srcBuf := make([]uint16, 4*12)
	src := NewView(srcBuf, 4, 4, 3, 12)
	fillNoisy(src, []uint16{25000, 30000, 35000}, 5000, 9)

	dstBuf := make([]uint16, 16*48)
	dst := NewView(dstBuf, 16, 16, 3, 48)

	require.NoError(t, Upscale(src, dst))

	var srcMin, srcMax uint16 = 65535, 0
	for _, s := range srcBuf {
		if s < srcMin {
			srcMin = s
		}
		if s > srcMax {
			srcMax = s
		}
	}
	margin := int32(srcMax-srcMin) / 4
	lo := clampUint16(int32(srcMin) - margin)
	hi := clampUint16(int32(srcMax) + margin)
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			for c := 0; c < 3; c++ {
				val := dst.At(y, x, c)
				require.GreaterOrEqual(t, val, lo, "(%d,%d,%d)", y, x, c)
				require.LessOrEqual(t, val, hi, "(%d,%d,%d)", y, x, c)
			}
		}
	}
}

func TestUpscaleRampGridRecovery(t *testing.T) {
	// On a linear ramp, cubic interpolation is exact away from the borders;
	// sampling the upscaled image at doubled grid positions must land close
	// to the original values.
	srcBuf := make([]uint16, 8*8)
	src := NewView(srcBuf, 8, 8, 1, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			src.Set(y, x, 0, uint16(5000+1000*(x+y)))
		}
	}

	dstBuf := make([]uint16, 16*16)
	dst := NewView(dstBuf, 16, 16, 1, 16)
	require.NoError(t, Upscale(src, dst))

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.InDelta(t, float64(src.At(y, x, 0)), float64(dst.At(2*y, 2*x, 0)), 800,
				"grid point (%d,%d)", y, x)
		}
	}
}

func TestUpscaleHonorsStrides(t *testing.T) {
	src := newPaddedView(4, 4, 1, 7)
	dst := newPaddedView(8, 8, 1, 13)

	require.NoError(t, Upscale(src, dst))
	assertPaddingIntact(t, src)
	assertPaddingIntact(t, dst)
}

func TestUpscaleChannelMismatch(t *testing.T) {
	src := NewView(make([]uint16, 4*4), 4, 4, 1, 4)
	dst := NewView(make([]uint16, 8*24), 8, 8, 3, 24)

	assert.ErrorIs(t, Upscale(src, dst), ErrInvalidInput)
}
