package skyimage

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// WritePNG encodes a rendered frame. The file is closed before returning,
// so a failed flush is reported too.
func WritePNG(frame image.Image, filename string) error {
	if frame == nil {
		return fmt.Errorf("WritePNG %s: no frame", filename)
	}
	w, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("WritePNG create: %w", err)
	}
	if err := png.Encode(w, frame); err != nil {
		w.Close()
		return fmt.Errorf("WritePNG encode %s: %w", filename, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("WritePNG close %s: %w", filename, err)
	}
	return nil
}
