// Package constellation holds the constellation tables, their visibility
// state, and the controller that draws and removes overlays.
package constellation

import "fmt"

// Edge joins two stars by catalog number.
type Edge struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Constellation is a named stick figure over catalog numbers.
type Constellation struct {
	Name     string `json:"name"`
	Vertices []int  `json:"vertices"`
	Edges    []Edge `json:"edges"`
}

// Validate reports edges whose endpoints are not listed vertices.
func (c Constellation) Validate() error {
	verts := make(map[int]bool, len(c.Vertices))
	for _, v := range c.Vertices {
		verts[v] = true
	}
	for i, e := range c.Edges {
		if !verts[e.A] || !verts[e.B] {
			return fmt.Errorf("%s: edge %d (%d-%d) references a non-vertex", c.Name, i, e.A, e.B)
		}
	}
	return nil
}

// edgesFrom pairs a flat endpoint list into edges.
func edgesFrom(flat ...int) []Edge {
	if len(flat)%2 != 0 {
		panic(fmt.Sprintf("constellation: odd edge list length %d", len(flat)))
	}
	edges := make([]Edge, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		edges = append(edges, Edge{A: flat[i], B: flat[i+1]})
	}
	return edges
}

// Default returns the built-in constellation table, indexed 0..7.
// Catalog numbers are Harvard Revised (Bright Star Catalogue) numbers.
func Default() []Constellation {
	return []Constellation{
		{
			Name: "Orion",
			Vertices: []int{1948, 1903, 1852, 2004, 1713, 2061, 1790, 1907, 2124,
				2199, 2135, 2047, 2159, 1543, 1544, 1570, 1552, 1567},
			Edges: edgesFrom(1713, 2004, 1713, 1852, 1852, 1790, 1852, 1903, 1903, 1948,
				1948, 2061, 1948, 2004, 1790, 1907, 1907, 2061, 2061, 2124,
				2124, 2199, 2199, 2135, 2199, 2159, 2159, 2047, 1790, 1543,
				1543, 1544, 1544, 1570, 1543, 1552, 1552, 1567, 2135, 2047),
		},
		{
			Name:     "Monoceros",
			Vertices: []int{2970, 3188, 2714, 2356, 2227, 2506, 2298, 2385, 2456, 2479},
			Edges: edgesFrom(2970, 3188, 3188, 2714, 2714, 2356, 2356, 2227, 2714, 2506,
				2506, 2298, 2298, 2385, 2385, 2456, 2479, 2506, 2479, 2385),
		},
		{
			Name: "Gemini",
			Vertices: []int{2890, 2891, 2990, 2421, 2777, 2473, 2650, 2216, 2895,
				2343, 2484, 2286, 2134, 2763, 2697, 2540, 2821, 2905, 2985},
			Edges: edgesFrom(2890, 2697, 2990, 2905, 2697, 2473, 2905, 2777, 2777, 2650,
				2650, 2421, 2473, 2286, 2286, 2216, 2473, 2343, 2216, 2134,
				2763, 2484, 2763, 2777, 2697, 2540, 2697, 2821, 2821, 2905, 2905, 2985),
		},
		{
			Name:     "Cancer",
			Vertices: []int{3475, 3449, 3461, 3572, 3249},
			Edges:    edgesFrom(3475, 3449, 3449, 3461, 3461, 3572, 3461, 3249),
		},
		{
			Name:     "Leo",
			Vertices: []int{3982, 4534, 4057, 4357, 3873, 4031, 4359, 3975, 4399, 4386, 3905, 3773, 3731},
			Edges: edgesFrom(4534, 4357, 4534, 4359, 4357, 4359, 4357, 4057, 4057, 4031,
				4057, 3975, 3975, 3982, 3975, 4359, 4359, 4399, 4399, 4386,
				4031, 3905, 3905, 3873, 3873, 3975, 3873, 3773, 3773, 3731, 3731, 3905),
		},
		{
			Name:     "Leo Minor",
			Vertices: []int{3800, 3974, 4100, 4247, 4090},
			Edges:    edgesFrom(3800, 3974, 3974, 4100, 4100, 4247, 4247, 4090, 4090, 3974),
		},
		{
			Name:     "Lynx",
			Vertices: []int{3705, 3690, 3612, 3579, 3275, 2818, 2560, 2238},
			Edges: edgesFrom(3705, 3690, 3690, 3612, 3612, 3579, 3579, 3275, 3275, 2818,
				2818, 2560, 2560, 2238),
		},
		{
			Name: "Ursa Major",
			Vertices: []int{3569, 3594, 3775, 3888, 3323, 3757, 4301, 4295, 4554, 4660,
				4905, 5054, 5191, 4518, 4335, 4069, 4033, 4377, 4375},
			Edges: edgesFrom(3569, 3594, 3594, 3775, 3775, 3888, 3888, 3323, 3323, 3757,
				3757, 3888, 3757, 4301, 4301, 4295, 4295, 3888, 4295, 4554,
				4554, 4660, 4660, 4301, 4660, 4905, 4905, 5054, 5054, 5191,
				4554, 4518, 4518, 4335, 4335, 4069, 4069, 4033, 4518, 4377, 4377, 4375),
		},
	}
}
