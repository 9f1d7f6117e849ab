package skyimage

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/skylayers/pkg/ecolor"
)

/* Example config file ...

dpi: 100
previewmaxpixels: 800
tonemapper: linear
logstretch: 1000
cliplow: 0.005
cliphigh: 0.995
background: black
legend: true

*/

type Config struct {
	Verbosity int

	DPI              float64 // Display pixels per inch; the width control is in cm
	PreviewMaxPixels int     // Unless full resolution is asked for, work on grids no wider than this
	Tonemapper       string  // How to map the HDR composite down to LDR: see Tonemappers
	LogStretch       float64 // The `a` in log10(a*v+1)/log10(a+1)
	ClipLow          float64 // Percentile (0.0->1.0) mapped to black, per layer
	ClipHigh         float64 // Percentile (0.0->1.0) mapped to full intensity, per layer
	Background       string  // Figure background color
	Legend           bool    // Draw a filter/color key under the image
}

func NewConfig() Config {
	return Config{
		DPI:              100,
		PreviewMaxPixels: 800,
		Tonemapper:       "linear",
		LogStretch:       1000,
		ClipLow:          0.005,
		ClipHigh:         0.995,
		Background:       "black",
		Legend:           true,
	}
}

func newConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return NewConfig(), fmt.Errorf("config read %s: %v", filename, err)
	}
	c, err := newConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config %s: %v", filename, err)
	}
	return c, nil
}

func (c Config) AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("# can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Validate does sanity checks
func (c Config) Validate() error {
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, not %v", c.DPI)
	}
	if c.ClipLow < 0 || c.ClipHigh > 1 || c.ClipLow >= c.ClipHigh {
		return fmt.Errorf("need 0 <= cliplow < cliphigh <= 1, not %v, %v", c.ClipLow, c.ClipHigh)
	}
	if !knownTonemapper(c.Tonemapper) {
		return fmt.Errorf("no Tonemapper named '%s', wanted %s", c.Tonemapper, ListTonemappers())
	}
	if _, err := ecolor.Parse(c.Background); err != nil {
		return fmt.Errorf("background: %v", err)
	}
	return nil
}
