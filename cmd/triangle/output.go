package main

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/term"
)

// pipeName is the file name that indicates stdout is being used.
const pipeName = "-"

// formatFor picks the image encoding from an explicit format or the file
// extension. Stdout defaults to PNG.
func formatFor(path, explicit string) (string, error) {
	f := strings.ToLower(explicit)
	if f == "" {
		if path == pipeName {
			return "png", nil
		}
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch f {
	case "png", "bmp":
		return f, nil
	case "tif", "tiff":
		return "tiff", nil
	case "":
		return "png", nil
	default:
		return "", fmt.Errorf("unsupported image format %q", f)
	}
}

// encodeImage writes img to w in the given format.
func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "png":
		return png.Encode(w, img)
	case "bmp":
		return bmp.Encode(w, img)
	case "tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// scaleImage resamples img by factor. A factor of 1 returns img unchanged.
func scaleImage(img image.Image, factor float64) image.Image {
	if factor == 1 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx())*factor + 0.5)
	h := int(float64(b.Dy())*factor + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// writeImage encodes img to path, or to stdout when path is "-".
func writeImage(path, format string, img image.Image) error {
	if path == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return encodeImage(os.Stdout, img, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create the destination file: %w", err)
	}
	if err := encodeImage(f, img, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
