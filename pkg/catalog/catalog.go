// Package catalog lists the astronomical objects that can be shown, and
// where the image file for each of their filters lives.
//
// Example catalog file ...
//
//	cache_dir: data
//	objects:
//	  - name: kepler
//	    default_colors: [red, green, blue]
//	    filters:
//	      - name: optical_red
//	        file: kepler/optical_red.fits
//	      - name: infrared
//	        file: kepler/infrared.fits
//	        url: https://example.org/kepler/infrared.fits
//
// An object is local when every one of its filter files is in the cache
// dir; it is remote when some are missing but all the missing ones have a
// url to fetch them from.
package catalog

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/abworrall/skylayers/pkg/sky"
)

type Filter struct {
	Name string `yaml:"name"`
	File string `yaml:"file"`          // relative to the cache dir
	URL  string `yaml:"url,omitempty"` // where to fetch File from, if missing
}

type Object struct {
	Name          string   `yaml:"name"`
	DefaultColors []string `yaml:"default_colors"`
	Filters       []Filter `yaml:"filters"`
}

func (o Object) FilterNames() []string {
	names := make([]string, len(o.Filters))
	for i, f := range o.Filters {
		names[i] = f.Name
	}
	return names
}

type Catalog struct {
	CacheDir string   `yaml:"cache_dir"`
	Objects  []Object `yaml:"objects"`

	Client *http.Client `yaml:"-"`
	Log    *zap.Logger  `yaml:"-"`
}

// Load reads and validates a catalog file. A relative cache dir is taken
// relative to the catalog file.
func Load(filename string) (*Catalog, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("catalog read %s: %w", filename, err)
	}

	c, err := Parse(contents)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", filename, err)
	}
	if !filepath.IsAbs(c.CacheDir) {
		c.CacheDir = filepath.Join(filepath.Dir(filename), c.CacheDir)
	}
	return c, nil
}

func Parse(b []byte) (*Catalog, error) {
	c := &Catalog{}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate reports every problem in the catalog, not just the first.
func (c *Catalog) Validate() error {
	var err error
	seen := map[string]bool{}

	for i, o := range c.Objects {
		switch {
		case o.Name == "":
			err = multierr.Append(err, fmt.Errorf("object #%d: no name", i))
			continue
		case seen[o.Name]:
			err = multierr.Append(err, fmt.Errorf("object %q: duplicate", o.Name))
		case sky.IsRemote(o.Name):
			err = multierr.Append(err, fmt.Errorf("object %q: name may not start with %q", o.Name, sky.RemoteMarker))
		}
		seen[o.Name] = true

		if len(o.Filters) == 0 {
			err = multierr.Append(err, fmt.Errorf("object %q: no filters", o.Name))
		}
		filters := map[string]bool{}
		for _, f := range o.Filters {
			if f.Name == "" || f.File == "" {
				err = multierr.Append(err, fmt.Errorf("object %q: filter needs a name and a file", o.Name))
				continue
			}
			if filters[f.Name] {
				err = multierr.Append(err, fmt.Errorf("object %q: duplicate filter %q", o.Name, f.Name))
			}
			filters[f.Name] = true
		}
	}

	return err
}

func (c *Catalog) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

func (c *Catalog) Lookup(name string) (Object, error) {
	for _, o := range c.Objects {
		if o.Name == name {
			return o, nil
		}
	}
	return Object{}, fmt.Errorf("%q: %w", name, sky.ErrUnknownObject)
}

// Path is where the filter's file lives (or will live, once fetched).
func (c *Catalog) Path(f Filter) string {
	return filepath.Join(c.CacheDir, filepath.FromSlash(f.File))
}

func (c *Catalog) missingFilters(o Object) []Filter {
	missing := []Filter{}
	for _, f := range o.Filters {
		if _, err := os.Stat(c.Path(f)); err != nil {
			missing = append(missing, f)
		}
	}
	return missing
}

func (c *Catalog) IsLocal(name string) bool {
	o, err := c.Lookup(name)
	return err == nil && len(c.missingFilters(o)) == 0
}

// LocalObjects are the objects that can be shown right now, in catalog order.
func (c *Catalog) LocalObjects() []string {
	names := []string{}
	for _, o := range c.Objects {
		if len(c.missingFilters(o)) == 0 {
			names = append(names, o.Name)
		}
	}
	return names
}

// RemoteObjects are the objects that need a Fetch first, in catalog order.
// Objects with missing files that have no url are in neither list.
func (c *Catalog) RemoteObjects() []string {
	names := []string{}
	for _, o := range c.Objects {
		missing := c.missingFilters(o)
		if len(missing) == 0 {
			continue
		}
		fetchable := true
		for _, f := range missing {
			if f.URL == "" {
				fetchable = false
				break
			}
		}
		if !fetchable {
			c.logger().Warn("object has missing files and nowhere to fetch them from",
				zap.String("object", o.Name), zap.Int("missing", len(missing)))
			continue
		}
		names = append(names, o.Name)
	}
	return names
}
