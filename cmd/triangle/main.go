// Command triangle renders the demo triangle offscreen and saves it as an
// image.
//
// Usage:
//
//	triangle [-width 640] [-height 480] [-o triangle.png] [-scene scene.yml] [-scale 1] [-v]
//
// The GPU is opened through the Vulkan hal backend. Use "-o -" to write the
// image to a pipe.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/triangle"
	"github.com/gogpu/triangle/offscreen"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend
)

func main() {
	var (
		width     = flag.Uint("width", 640, "image width")
		height    = flag.Uint("height", 480, "image height")
		output    = flag.String("o", "triangle.png", "output file (\"-\" for stdout)")
		format    = flag.String("format", "", "output format: png, bmp or tiff (default: from extension)")
		scenePath = flag.String("scene", "", "optional YAML scene file")
		scale     = flag.Float64("scale", 1, "resample the rendered image by this factor")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "triangle %s\n\nUsage of %s:\n", triangle.Version, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	triangle.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	w, h, err := imageSize(*width, *height)
	if err != nil {
		log.Fatalf("triangle: %v", err)
	}
	if err := run(w, h, *output, *format, *scenePath, *scale); err != nil {
		log.Fatalf("triangle: %v", err)
	}
}

// imageSize validates the -width and -height flags.
func imageSize(width, height uint) (uint32, uint32, error) {
	if width == 0 || height == 0 {
		return 0, 0, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if uint64(width) > math.MaxUint32 || uint64(height) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("image size %dx%d exceeds %d", width, height, uint32(math.MaxUint32))
	}
	return uint32(width), uint32(height), nil
}

func run(width, height uint32, output, format, scenePath string, scale float64) error {
	imgFormat, err := formatFor(output, format)
	if err != nil {
		return err
	}

	var opts []triangle.Option
	if scenePath != "" {
		scene, err := LoadScene(scenePath)
		if err != nil {
			return err
		}
		if scene.Width > 0 {
			width = scene.Width
		}
		if scene.Height > 0 {
			height = scene.Height
		}
		if opts, err = scene.Options(); err != nil {
			return err
		}
	}

	platform, err := triangle.DefaultPlatform()
	if err != nil {
		return err
	}

	surface := offscreen.New(width, height)
	rc, err := triangle.Run(platform, surface, opts...)
	if err != nil {
		return err
	}

	img, err := surface.ReadPixels(rc.Device, rc.Frames)
	if err != nil {
		return err
	}

	out := scaleImage(img, scale)
	if err := writeImage(output, imgFormat, out); err != nil {
		return err
	}
	if output != pipeName {
		b := out.Bounds()
		log.Printf("saved %s (%dx%d, %s)", output, b.Dx(), b.Dy(), rc.Device.Adapter())
	}
	return nil
}
