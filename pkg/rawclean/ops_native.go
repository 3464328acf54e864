//go:build !purego && !js

package rawclean

import (
	"image"

	"gocv.io/x/gocv"
)

// Native backend: median, resize and inpaint kernels served by OpenCV via
// gocv. Buffers cross the boundary as packed copies; stride handling stays on
// the Go side.

func matFromImage(img *Image) gocv.Mat {
	mt := gocv.MatTypeCV16UC1
	if img.Channels == 3 {
		mt = gocv.MatTypeCV16UC3
	}
	m := gocv.NewMatWithSize(img.Rows, img.Cols, mt)
	data, _ := m.DataPtrUint16()
	copy(data, img.Data)
	return m
}

func imageFromMat(m gocv.Mat, channels int) *Image {
	img := NewImage(m.Rows(), m.Cols(), channels)
	data, _ := m.DataPtrUint16()
	copy(img.Data, data)
	return img
}

// medianBlur3x3 applies a 3x3 median filter to a single-channel plane.
func medianBlur3x3(p *Image) *Image {
	src := matFromImage(p)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.MedianBlur(src, &dst, 3)
	return imageFromMat(dst, 1)
}

// resizeArea shrinks img to dstRows x dstCols with area-averaging
// interpolation, the anti-aliasing choice when downsampling.
func resizeArea(img *Image, dstRows, dstCols int) *Image {
	src := matFromImage(img)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(dstCols, dstRows), 0, 0, gocv.InterpolationArea)
	return imageFromMat(dst, img.Channels)
}

// resizeCubic resamples img to dstRows x dstCols with bicubic interpolation.
func resizeCubic(img *Image, dstRows, dstCols int) *Image {
	src := matFromImage(img)
	defer src.Close()
	dst := gocv.NewMat()
	defer dst.Close()
	gocv.Resize(src, &dst, image.Pt(dstCols, dstRows), 0, 0, gocv.InterpolationCubic)
	return imageFromMat(dst, img.Channels)
}

// inpaintPlane repairs the masked pixels of a single-channel plane. mask is
// packed, co-registered, non-zero = repair.
func inpaintPlane(p *Image, mask []uint8, radius int, method InpaintMethod) *Image {
	src := matFromImage(p)
	defer src.Close()
	mm := gocv.NewMatWithSize(p.Rows, p.Cols, gocv.MatTypeCV8UC1)
	defer mm.Close()
	md, _ := mm.DataPtrUint8()
	copy(md, mask)
	dst := gocv.NewMat()
	defer dst.Close()
	algo := gocv.NS
	if method == InpaintTelea {
		algo = gocv.Telea
	}
	gocv.Inpaint(src, mm, &dst, float32(radius), algo)
	return imageFromMat(dst, 1)
}
