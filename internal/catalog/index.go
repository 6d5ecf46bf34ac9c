package catalog

import "github.com/Ricardo08S/StarrySky-4/internal/star"

// Index is an immutable lookup over a loaded catalog. A nil *Index is empty.
type Index struct {
	stars    []star.Star
	byNumber map[int]int
}

// NewIndex builds an index over stars in load order. When catalog numbers
// repeat, lookups return the last occurrence.
func NewIndex(stars []star.Star) *Index {
	x := &Index{
		stars:    make([]star.Star, len(stars)),
		byNumber: make(map[int]int, len(stars)),
	}
	copy(x.stars, stars)
	for i, s := range x.stars {
		x.byNumber[s.CatalogNumber] = i
	}
	return x
}

// ByCatalogNumber returns the star with the given catalog number.
func (x *Index) ByCatalogNumber(n int) (star.Star, bool) {
	if x == nil {
		return star.Star{}, false
	}
	i, ok := x.byNumber[n]
	if !ok {
		return star.Star{}, false
	}
	return x.stars[i], true
}

// All returns every loaded star in load order, duplicates included.
func (x *Index) All() []star.Star {
	if x == nil {
		return nil
	}
	out := make([]star.Star, len(x.stars))
	copy(out, x.stars)
	return out
}

// Slice returns up to limit stars starting at offset, in load order.
func (x *Index) Slice(offset, limit int) []star.Star {
	if x == nil || offset < 0 || offset >= len(x.stars) || limit <= 0 {
		return nil
	}
	end := min(offset+limit, len(x.stars))
	out := make([]star.Star, end-offset)
	copy(out, x.stars[offset:end])
	return out
}

// Len returns the number of loaded stars.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.stars)
}
