package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"rawclean/pkg/rawclean"
)

// Binary PNM (P5/P6) reader and writer. PNM is the interchange format the
// sensor toolchain debugs with: trivially inspectable, 16-bit capable.
// Samples with maxval > 255 are stored as big-endian 16-bit words; 8-bit
// files are promoted to the full 16-bit range on read.

func readPNM(path string) (*rawclean.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)

	magic, err := pnmToken(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var channels int
	switch magic {
	case "P5":
		channels = 1
	case "P6":
		channels = 3
	default:
		return nil, fmt.Errorf("%s: unsupported PNM type %q", path, magic)
	}

	var cols, rows, maxval int
	for _, dst := range []*int{&cols, &rows, &maxval} {
		tok, err := pnmToken(r)
		if err != nil {
			return nil, fmt.Errorf("reading %s header: %w", path, err)
		}
		if _, err := fmt.Sscanf(tok, "%d", dst); err != nil {
			return nil, fmt.Errorf("%s: bad header field %q", path, tok)
		}
	}
	if cols <= 0 || rows <= 0 || maxval <= 0 || maxval > 65535 {
		return nil, fmt.Errorf("%s: bad dimensions %dx%d maxval %d", path, cols, rows, maxval)
	}

	img := rawclean.NewImage(rows, cols, channels)
	n := rows * cols * channels
	if maxval < 256 {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("reading %s samples: %w", path, err)
		}
		for i, b := range buf {
			img.Data[i] = uint16(b) * 257
		}
	} else {
		buf := make([]byte, 2*n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, fmt.Errorf("reading %s samples: %w", path, err)
		}
		for i := 0; i < n; i++ {
			img.Data[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
		}
	}
	return img, nil
}

func writePNM(path string, img *rawclean.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	magic := "P5"
	if img.Channels == 3 {
		magic = "P6"
	}
	fmt.Fprintf(w, "%s\n%d %d\n65535\n", magic, img.Cols, img.Rows)

	buf := make([]byte, 2*len(img.Data))
	for i, v := range img.Data {
		buf[2*i] = byte(v >> 8)
		buf[2*i+1] = byte(v)
	}
	if _, err := w.Write(buf); err != nil {
		return err
	}
	return w.Flush()
}

// pnmToken returns the next whitespace-delimited header token, skipping
// # comments.
func pnmToken(r *bufio.Reader) (string, error) {
	var tok []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case b == '#':
			if _, err := r.ReadString('\n'); err != nil {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, b)
		}
	}
}
