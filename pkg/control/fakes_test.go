package control_test

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/abworrall/skylayers/pkg/control"
	"github.com/abworrall/skylayers/pkg/ecolor"
	"github.com/abworrall/skylayers/pkg/sky"
)

type fakeObject struct {
	filters    []string
	defaults   []string
	failLayer  string // AppendLayer fails for this filter
	beforeFail func() // Runs just before that failure, while the panel is rebuilding
}

type fakeSource struct {
	mu       sync.Mutex
	local    []string
	remote   []string
	objects  map[string]fakeObject
	fetchErr error
	fetched  []string
	opened   map[string]*fakeImage
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		objects: map[string]fakeObject{},
		opened:  map[string]*fakeImage{},
	}
}

func (s *fakeSource) add(name string, local bool, o fakeObject) {
	s.objects[name] = o
	if local {
		s.local = append(s.local, name)
	} else {
		s.remote = append(s.remote, name)
	}
}

func (s *fakeSource) LocalObjects() []string  { return s.local }
func (s *fakeSource) RemoteObjects() []string { return s.remote }

func (s *fakeSource) Fetch(ctx context.Context, object string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = append(s.fetched, object)
	if s.fetchErr != nil {
		return s.fetchErr
	}
	return ctx.Err()
}

func (s *fakeSource) OpenImage(object string) (control.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, exists := s.objects[object]
	if !exists {
		return nil, fmt.Errorf("object %q: %w", object, sky.ErrUnknownObject)
	}
	img := &fakeImage{name: object, obj: o}
	s.opened[object] = img
	return img, nil
}

func (s *fakeSource) image(object string) *fakeImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened[object]
}

type fakeImage struct {
	name string
	obj  fakeObject

	mu      sync.Mutex
	layers  []*fakeLayer
	renders []sky.RenderRequest
}

func (i *fakeImage) Object() string          { return i.name }
func (i *fakeImage) Filters() []string       { return i.obj.filters }
func (i *fakeImage) DefaultColors() []string { return i.obj.defaults }

func (i *fakeImage) AppendLayer(filter string, c ecolor.Color) (control.Layer, error) {
	if filter == i.obj.failLayer {
		if i.obj.beforeFail != nil {
			i.obj.beforeFail()
		}
		return nil, fmt.Errorf("no data for %s", filter)
	}
	l := &fakeLayer{filter: filter, params: sky.DefaultLayerParams(c)}
	i.mu.Lock()
	i.layers = append(i.layers, l)
	i.mu.Unlock()
	return l, nil
}

func (i *fakeImage) Render(req sky.RenderRequest) (image.Image, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.renders = append(i.renders, req)
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func (i *fakeImage) Renders() []sky.RenderRequest {
	i.mu.Lock()
	defer i.mu.Unlock()
	return append([]sky.RenderRequest{}, i.renders...)
}

type fakeLayer struct {
	filter string

	mu      sync.Mutex
	params  sky.LayerParams
	updates int
}

func (l *fakeLayer) Filter() string { return l.filter }

func (l *fakeLayer) Update(p sky.LayerParams) error {
	if err := p.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	l.params = p
	l.updates++
	l.mu.Unlock()
	return nil
}

func (l *fakeLayer) Updates() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.updates
}
