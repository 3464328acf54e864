package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rawclean/pkg/rawclean"
)

func TestPNMRoundTrip(t *testing.T) {
	for _, channels := range []int{1, 3} {
		img := rawclean.NewImage(5, 7, channels)
		for i := range img.Data {
			img.Data[i] = uint16(i * 997)
		}

		path := filepath.Join(t.TempDir(), "img.pnm")
		require.NoError(t, writePNM(path, img))

		back, err := readPNM(path)
		require.NoError(t, err)
		assert.Equal(t, img, back, "%d channels", channels)
	}
}

func TestReadPNMPromotesEightBit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gray.pgm")
	require.NoError(t, os.WriteFile(path, append([]byte("P5\n# comment\n2 2\n255\n"), 0, 128, 255, 1), 0o644))

	img, err := readPNM(path)
	require.NoError(t, err)
	require.Equal(t, 1, img.Channels)
	assert.Equal(t, []uint16{0, 128 * 257, 65535, 257}, img.Data)
}

func TestReadPNMRejectsBadMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pnm")
	require.NoError(t, os.WriteFile(path, []byte("P3\n1 1\n255\n0 0 0\n"), 0o644))

	_, err := readPNM(path)
	assert.Error(t, err)
}
