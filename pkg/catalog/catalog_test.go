package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/abworrall/skylayers/pkg/sky"
)

const testCatalog = `
cache_dir: data
objects:
  - name: kepler
    default_colors: [red, green, blue]
    filters:
      - name: optical_red
        file: kepler/optical_red.png
      - name: optical_green
        file: kepler/optical_green.png
      - name: infrared
        file: kepler/infrared.png
  - name: m31
    default_colors: [red]
    filters:
      - name: xray
        file: m31/xray.png
        url: URL/m31/xray.png
  - name: lost
    filters:
      - name: radio
        file: lost/radio.png
`

func writeCatalog(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range []string{"kepler/optical_red.png", "kepler/optical_green.png", "kepler/infrared.png"} {
		p := filepath.Join(dir, "data", f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	path := filepath.Join(dir, "catalog.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadClassifiesObjects(t *testing.T) {
	c, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)

	assert.Equal(t, []string{"kepler"}, c.LocalObjects())
	assert.Equal(t, []string{"m31"}, c.RemoteObjects(), "lost has no url so is in neither list")
	assert.True(t, c.IsLocal("kepler"))
	assert.False(t, c.IsLocal("m31"))

	o, err := c.Lookup("kepler")
	require.NoError(t, err)
	assert.Equal(t, []string{"optical_red", "optical_green", "infrared"}, o.FilterNames())
	assert.Equal(t, []string{"red", "green", "blue"}, o.DefaultColors)

	_, err = c.Lookup("vega")
	assert.ErrorIs(t, err, sky.ErrUnknownObject)
}

func TestValidateReportsEverything(t *testing.T) {
	_, err := Parse([]byte(`
objects:
  - name: a
    filters: []
  - name: a
    filters:
      - {name: r, file: r.png}
      - {name: r, file: r2.png}
  - filters: []
  - name: "*b"
    filters:
      - {name: "", file: x.png}
`))
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 6)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/m31/xray.png" {
			w.Write([]byte("fits-ish"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	path := writeCatalog(t, testCatalog)
	c, err := Load(path)
	require.NoError(t, err)
	c.Objects[1].Filters[0].URL = srv.URL + "/m31/xray.png"

	require.NoError(t, c.Fetch(context.Background(), "m31"))
	assert.True(t, c.IsLocal("m31"))
	assert.Equal(t, []string{"kepler", "m31"}, c.LocalObjects())
	assert.Empty(t, c.RemoteObjects())

	got, err := os.ReadFile(c.Path(c.Objects[1].Filters[0]))
	require.NoError(t, err)
	assert.Equal(t, "fits-ish", string(got))
}

func TestFetchFailures(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c, err := Load(writeCatalog(t, testCatalog))
	require.NoError(t, err)
	c.Objects[1].Filters[0].URL = srv.URL + "/m31/xray.png"

	err = c.Fetch(context.Background(), "m31")
	assert.ErrorIs(t, err, sky.ErrFetchFailed)
	assert.False(t, c.IsLocal("m31"))

	err = c.Fetch(context.Background(), "lost")
	assert.ErrorIs(t, err, sky.ErrFetchFailed)

	err = c.Fetch(context.Background(), "vega")
	assert.ErrorIs(t, err, sky.ErrUnknownObject)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Objects[1].Filters[0].URL = srv.URL + "/anything"
	assert.ErrorIs(t, c.Fetch(ctx, "m31"), sky.ErrFetchFailed)
}
