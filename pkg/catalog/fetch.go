package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/abworrall/skylayers/pkg/sky"
)

// Fetch downloads every missing filter file of the named object into the
// cache dir. Files already present are left alone, so a Fetch that was
// interrupted can just be run again. Any failure wraps sky.ErrFetchFailed.
func (c *Catalog) Fetch(ctx context.Context, name string) error {
	o, err := c.Lookup(name)
	if err != nil {
		return err
	}

	for _, f := range c.missingFilters(o) {
		if f.URL == "" {
			return fmt.Errorf("%s/%s: no url: %w", o.Name, f.Name, sky.ErrFetchFailed)
		}

		tStart := time.Now()
		n, err := c.download(ctx, f.URL, c.Path(f))
		if err != nil {
			return fmt.Errorf("%s/%s: %v: %w", o.Name, f.Name, err, sky.ErrFetchFailed)
		}
		c.logger().Info("fetched filter",
			zap.String("object", o.Name),
			zap.String("filter", f.Name),
			zap.Int64("bytes", n),
			zap.Duration("took", time.Since(tStart)))
	}

	return nil
}

func (c *Catalog) client() *http.Client {
	if c.Client == nil {
		return http.DefaultClient
	}
	return c.Client
}

// download writes to a temp file next to dst, and renames it into place
// only once the whole body has arrived.
func (c *Catalog) download(ctx context.Context, url, dst string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.client().Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("GET %s: %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, err
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".fetch-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	n, err := io.Copy(tmp, resp.Body)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return n, fmt.Errorf("write %s: %v", dst, err)
	}

	return n, os.Rename(tmp.Name(), dst)
}
