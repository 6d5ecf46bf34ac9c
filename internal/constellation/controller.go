package constellation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// DefaultLineInset is how far each line end is pulled back from its star.
const DefaultLineInset = 3.0

// ToggleResult describes what a toggle did.
type ToggleResult struct {
	Index   int
	Name    string
	Visible bool // state after the toggle
	Handle  Handle
	Lines   int // segments drawn (show only)

	// Missing holds one ErrMissingCatalogEntry per unresolved vertex or edge.
	Missing []error
	// Failed holds renderer errors for individual elements.
	Failed []error
}

// Controller applies toggle commands to a registry and a renderer.
// It is not safe for concurrent use.
type Controller struct {
	registry *Registry
	stars    StarLookup
	renderer Renderer
	field    Field
	inset    float64
	newID    func() Handle
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithField sets the field geometry used for line endpoints.
func WithField(f Field) ControllerOption {
	return func(c *Controller) {
		c.field = f
	}
}

// WithLineInset sets the per-end line inset in world units.
func WithLineInset(d float64) ControllerOption {
	return func(c *Controller) {
		c.inset = d
	}
}

// WithHandleSource replaces the handle allocator.
func WithHandleSource(fn func() Handle) ControllerOption {
	return func(c *Controller) {
		c.newID = fn
	}
}

// NewController creates a controller. Handles default to random UUIDs.
func NewController(reg *Registry, stars StarLookup, r Renderer, opts ...ControllerOption) *Controller {
	c := &Controller{
		registry: reg,
		stars:    stars,
		renderer: r,
		field:    DefaultField(),
		inset:    DefaultLineInset,
		newID:    func() Handle { return Handle(uuid.NewString()) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetStars swaps the lookup used for subsequent toggles.
func (c *Controller) SetStars(s StarLookup) {
	c.stars = s
}

// SetField updates the field geometry used for new lines.
func (c *Controller) SetField(f Field) {
	c.field = f
}

// Registry returns the registry the controller drives.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Toggle flips constellation i between hidden and visible.
//
// An out-of-range index returns ErrInvalidConstellationIndex. A failure to
// create the overlay group is also returned; in both cases nothing changes.
// Unresolved stars and per-element render failures are reported in the
// result and skipped.
func (c *Controller) Toggle(i int) (ToggleResult, error) {
	if c.registry.IsVisible(i) {
		return c.Hide(i)
	}
	return c.Show(i)
}

// Show draws constellation i. Showing a visible constellation is a no-op.
func (c *Controller) Show(i int) (ToggleResult, error) {
	con, err := c.registry.At(i)
	if err != nil {
		return ToggleResult{Index: i}, err
	}
	if h, ok := c.registry.Handle(i); ok {
		return ToggleResult{Index: i, Name: con.Name, Visible: true, Handle: h}, nil
	}

	res := ToggleResult{Index: i, Name: con.Name, Visible: true, Handle: c.newID()}
	if err := c.renderer.CreateGroup(res.Handle, con.Name); err != nil {
		return ToggleResult{Index: i, Name: con.Name}, fmt.Errorf("create group for %s: %w", con.Name, err)
	}

	for _, hr := range con.Vertices {
		if _, ok := c.stars.ByCatalogNumber(hr); !ok {
			res.Missing = append(res.Missing, fmt.Errorf("%s vertex HR %d: %w", con.Name, hr, ErrMissingCatalogEntry))
			continue
		}
		if err := c.renderer.Recolor(hr, star.White); err != nil {
			res.Failed = append(res.Failed, fmt.Errorf("highlight HR %d: %w", hr, err))
		}
	}

	for _, e := range con.Edges {
		seg, ok := c.segment(e)
		if !ok {
			res.Missing = append(res.Missing, fmt.Errorf("%s edge %d-%d: %w", con.Name, e.A, e.B, ErrMissingCatalogEntry))
			continue
		}
		if err := c.renderer.AddLine(res.Handle, seg); err != nil {
			res.Failed = append(res.Failed, fmt.Errorf("line %d-%d: %w", e.A, e.B, err))
			continue
		}
		res.Lines++
	}

	c.registry.markVisible(i, res.Handle)
	return res, nil
}

// Hide removes constellation i and restores its stars' own colors.
// Hiding a hidden constellation is a no-op.
func (c *Controller) Hide(i int) (ToggleResult, error) {
	con, err := c.registry.At(i)
	if err != nil {
		return ToggleResult{Index: i}, err
	}
	h, ok := c.registry.Handle(i)
	if !ok {
		return ToggleResult{Index: i, Name: con.Name}, nil
	}

	res := ToggleResult{Index: i, Name: con.Name, Handle: h}
	for _, hr := range con.Vertices {
		s, ok := c.stars.ByCatalogNumber(hr)
		if !ok {
			res.Missing = append(res.Missing, fmt.Errorf("%s vertex HR %d: %w", con.Name, hr, ErrMissingCatalogEntry))
			continue
		}
		if err := c.renderer.Recolor(hr, s.Color); err != nil {
			res.Failed = append(res.Failed, fmt.Errorf("restore HR %d: %w", hr, err))
		}
	}

	// The group is gone from our side even if the renderer failed to drop it.
	if err := c.renderer.DestroyGroup(h); err != nil {
		res.Failed = append(res.Failed, fmt.Errorf("destroy group for %s: %w", con.Name, err))
	}

	c.registry.markHidden(i)
	return res, nil
}

// IsVisible reports whether constellation i is drawn.
func (c *Controller) IsVisible(i int) bool {
	return c.registry.IsVisible(i)
}

// VisibleVertexCatalogNumbers returns the vertices of constellation i
// when it is visible, or nil otherwise.
func (c *Controller) VisibleVertexCatalogNumbers(i int) []int {
	if !c.registry.IsVisible(i) {
		return nil
	}
	con, err := c.registry.At(i)
	if err != nil {
		return nil
	}
	out := make([]int, len(con.Vertices))
	copy(out, con.Vertices)
	return out
}

// VisibleStars returns the resolvable vertex stars of every visible
// constellation, in index then vertex order, without duplicates.
func (c *Controller) VisibleStars() []star.Star {
	seen := make(map[int]bool)
	var out []star.Star
	for _, i := range c.registry.Visible() {
		for _, hr := range c.VisibleVertexCatalogNumbers(i) {
			if seen[hr] {
				continue
			}
			seen[hr] = true
			if s, ok := c.stars.ByCatalogNumber(hr); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func (c *Controller) segment(e Edge) (astro.Segment, bool) {
	a, ok := c.stars.ByCatalogNumber(e.A)
	if !ok {
		return astro.Segment{}, false
	}
	b, ok := c.stars.ByCatalogNumber(e.B)
	if !ok {
		return astro.Segment{}, false
	}
	return astro.Inset(c.field.WorldPosition(a), c.field.WorldPosition(b), c.inset), true
}
