package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path     string
		explicit string
		want     string
		wantErr  bool
	}{
		{"out.png", "", "png", false},
		{"out.PNG", "", "png", false},
		{"out.bmp", "", "bmp", false},
		{"out.tif", "", "tiff", false},
		{"out.tiff", "", "tiff", false},
		{"out", "", "png", false},
		{"-", "", "png", false},
		{"-", "bmp", "bmp", false},
		{"out.png", "tiff", "tiff", false},
		{"out.jpg", "", "", true},
		{"out.png", "gif", "", true},
	}
	for _, tt := range tests {
		got, err := formatFor(tt.path, tt.explicit)
		if (err != nil) != tt.wantErr {
			t.Errorf("formatFor(%q, %q) error = %v, wantErr %v", tt.path, tt.explicit, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("formatFor(%q, %q) = %q, want %q", tt.path, tt.explicit, got, tt.want)
		}
	}
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(3, 1, color.RGBA{B: 255, A: 255})
	return img
}

func TestEncodeImage(t *testing.T) {
	decoders := map[string]func(*bytes.Reader) (image.Image, error){
		"png":  func(r *bytes.Reader) (image.Image, error) { return png.Decode(r) },
		"bmp":  func(r *bytes.Reader) (image.Image, error) { return bmp.Decode(r) },
		"tiff": func(r *bytes.Reader) (image.Image, error) { return tiff.Decode(r) },
	}
	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encodeImage(&buf, testImage(), format); err != nil {
				t.Fatalf("encodeImage failed: %v", err)
			}
			img, err := decode(bytes.NewReader(buf.Bytes()))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if img.Bounds() != testImage().Bounds() {
				t.Errorf("bounds = %v, want %v", img.Bounds(), testImage().Bounds())
			}
			r, _, _, _ := img.At(0, 0).RGBA()
			if r>>8 != 255 {
				t.Errorf("pixel (0,0) red = %d, want 255", r>>8)
			}
		})
	}

	if err := encodeImage(&bytes.Buffer{}, testImage(), "gif"); err == nil {
		t.Error("encodeImage should reject unknown formats")
	}
}

func TestScaleImage(t *testing.T) {
	src := testImage()
	tests := []struct {
		factor float64
		w, h   int
	}{
		{1, 4, 2},
		{0, 4, 2},
		{2, 8, 4},
		{0.5, 2, 1},
		{0.1, 1, 1},
	}
	for _, tt := range tests {
		b := scaleImage(src, tt.factor).Bounds()
		if b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("scaleImage(%v) = %dx%d, want %dx%d", tt.factor, b.Dx(), b.Dy(), tt.w, tt.h)
		}
	}
}

func TestWriteImageFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := writeImage(path, "png", testImage()); err != nil {
		t.Fatalf("writeImage failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("written file is not a PNG: %v", err)
	}
}

func TestImageSize(t *testing.T) {
	type sizeCase struct {
		name          string
		width, height uint
		wantW, wantH  uint32
		wantErr       bool
	}
	tests := []sizeCase{
		{"default", 640, 480, 640, 480, false},
		{"max", math.MaxUint32, 1, math.MaxUint32, 1, false},
		{"zero width", 0, 480, 0, 0, true},
		{"zero height", 640, 0, 0, 0, true},
	}
	if uint64(math.MaxUint) > math.MaxUint32 {
		over := uint(math.MaxUint32)
		over++
		tests = append(tests,
			sizeCase{"width overflow", over, 480, 0, 0, true},
			sizeCase{"height overflow", 640, over, 0, 0, true},
		)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := imageSize(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Fatalf("imageSize(%d, %d) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("imageSize(%d, %d) = %dx%d, want %dx%d", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
