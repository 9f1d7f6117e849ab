package skyimage

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/astrogo/fitsio"
	"github.com/rwcarlsen/goexif/exif"
	"go.uber.org/zap"
	"golang.org/x/image/tiff"

	"github.com/abworrall/skylayers/pkg/emath"
)

// LoadRaster reads one filter's image into a grid of raw values. FITS
// keeps its physical values (they get normalized per layer later);
// everything else is read as luminance in [0,1].
func LoadRaster(filename string, log *zap.Logger) (emath.FloatGrid, error) {
	if log == nil {
		log = zap.NewNop()
	}
	ext := filepath.Ext(filename)

	switch strings.ToLower(ext) {
	case ".fits", ".fit", ".fts":
		fg, err := loadFITS(filename)
		if err != nil {
			return fg, fmt.Errorf("Loading %s as FITS failed: %v", filename, err)
		}
		return fg, nil

	case ".tif", ".tiff":
		fg, err := loadTIFF(filename, log)
		if err != nil {
			return fg, fmt.Errorf("Loading %s as TIFF failed: %v", filename, err)
		}
		return fg, nil

	case ".png", ".jpg", ".jpeg":
		fg, err := loadStdImage(filename)
		if err != nil {
			return fg, fmt.Errorf("Loading %s failed: %v", filename, err)
		}
		return fg, nil
	}

	return emath.FloatGrid{}, fmt.Errorf("Loading %s: unsupported extension %q", filename, ext)
}

// loadFITS reads the first HDU that holds a 2D (or deeper) image; for
// data cubes only the first plane is used.
func loadFITS(filename string) (emath.FloatGrid, error) {
	r, err := os.Open(filename)
	if err != nil {
		return emath.FloatGrid{}, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer r.Close()

	f, err := fitsio.Open(r)
	if err != nil {
		return emath.FloatGrid{}, fmt.Errorf("fits parsing '%s': %v", filename, err)
	}
	defer f.Close()

	for _, hdu := range f.HDUs() {
		img, ok := hdu.(fitsio.Image)
		if !ok {
			continue
		}
		axes := img.Header().Axes()
		if len(axes) < 2 || axes[0] == 0 || axes[1] == 0 {
			continue
		}
		return fitsPlane(img, axes)
	}

	return emath.FloatGrid{}, fmt.Errorf("'%s': no image HDU", filename)
}

func fitsPlane(img fitsio.Image, axes []int) (emath.FloatGrid, error) {
	w, h := axes[0], axes[1]
	n := 1
	for _, a := range axes {
		n *= a
	}

	raw := make([]float64, n)
	if err := img.Read(&raw); err != nil {
		// Fall back to the library's own image.Image view of the data
		if goimg := img.Image(); goimg != nil {
			return emath.NewFloatGridFromImage(goimg), nil
		}
		return emath.FloatGrid{}, err
	}

	// FITS rows run bottom to top
	fg := emath.NewFloatGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := raw[y*w+x]
			if math.IsInf(v, 0) {
				v = math.NaN()
			}
			fg.Set(x, h-1-y, v)
		}
	}
	return fg, nil
}

func loadTIFF(filename string, log *zap.Logger) (emath.FloatGrid, error) {
	// The EXIF metadata is nice to have; filter exports often don't carry any.
	if reader, err := os.Open(filename); err == nil {
		if ex, err := exif.Decode(reader); err == nil {
			if t, err := ex.DateTime(); err == nil {
				log.Debug("tiff exif", zap.String("file", filepath.Base(filename)), zap.Time("taken", t))
			}
		}
		reader.Close()
	}

	// Re-open the file, now for the image data
	reader, err := os.Open(filename)
	if err != nil {
		return emath.FloatGrid{}, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, err := tiff.Decode(reader)
	if err != nil {
		return emath.FloatGrid{}, fmt.Errorf("tiff loading '%s': %v", filename, err)
	}
	return emath.NewFloatGridFromImage(img), nil
}

func loadStdImage(filename string) (emath.FloatGrid, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return emath.FloatGrid{}, fmt.Errorf("open+r img '%s': %v", filename, err)
	}
	defer reader.Close()

	img, _, err := image.Decode(reader)
	if err != nil {
		return emath.FloatGrid{}, fmt.Errorf("decoding '%s': %v", filename, err)
	}
	return emath.NewFloatGridFromImage(img), nil
}
