package constellation

import (
	"errors"
	"fmt"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// recorder is a Renderer that logs every call.
type recorder struct {
	calls    []string
	recolors map[int]star.RGB
	sizes    map[int]float64
	groups   map[Handle][]astro.Segment
	placed   []StarVisual

	failCreate  bool
	failDestroy bool
}

func newRecorder() *recorder {
	return &recorder{
		recolors: make(map[int]star.RGB),
		sizes:    make(map[int]float64),
		groups:   make(map[Handle][]astro.Segment),
	}
}

var errRender = errors.New("render failed")

func (r *recorder) PlaceStar(v StarVisual) error {
	r.calls = append(r.calls, fmt.Sprintf("place %d", v.CatalogNumber))
	r.placed = append(r.placed, v)
	r.recolors[v.CatalogNumber] = v.Color
	r.sizes[v.CatalogNumber] = v.Size
	return nil
}

func (r *recorder) Recolor(hr int, c star.RGB) error {
	r.calls = append(r.calls, fmt.Sprintf("recolor %d", hr))
	r.recolors[hr] = c
	return nil
}

func (r *recorder) Resize(hr int, size float64) error {
	r.calls = append(r.calls, fmt.Sprintf("resize %d", hr))
	r.sizes[hr] = size
	return nil
}

func (r *recorder) CreateGroup(h Handle, label string) error {
	r.calls = append(r.calls, "create "+label)
	if r.failCreate {
		return errRender
	}
	r.groups[h] = nil
	return nil
}

func (r *recorder) AddLine(h Handle, seg astro.Segment) error {
	r.calls = append(r.calls, "line")
	if _, ok := r.groups[h]; !ok {
		return fmt.Errorf("no group %s", h)
	}
	r.groups[h] = append(r.groups[h], seg)
	return nil
}

func (r *recorder) DestroyGroup(h Handle) error {
	r.calls = append(r.calls, "destroy")
	delete(r.groups, h)
	if r.failDestroy {
		return errRender
	}
	return nil
}

func (r *recorder) Clear() error {
	r.calls = append(r.calls, "clear")
	r.recolors = make(map[int]star.RGB)
	r.sizes = make(map[int]float64)
	r.groups = make(map[Handle][]astro.Segment)
	r.placed = nil
	return nil
}

// lookup is a map-backed StarLookup.
type lookup map[int]star.Star

func (l lookup) ByCatalogNumber(n int) (star.Star, bool) {
	s, ok := l[n]
	return s, ok
}

func makeLookup(stars ...star.Star) lookup {
	l := make(lookup, len(stars))
	for _, s := range stars {
		l[s.CatalogNumber] = s
	}
	return l
}

// seqHandles returns a deterministic handle allocator.
func seqHandles() func() Handle {
	n := 0
	return func() Handle {
		n++
		return Handle(fmt.Sprintf("g%d", n))
	}
}
