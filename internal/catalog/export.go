package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// CatalogExport is the JSON-serializable representation of a load.
type CatalogExport struct {
	Format    string       `json:"format"`
	LoadedAt  time.Time    `json:"loaded_at"`
	Count     int          `json:"count"`
	Skipped   int          `json:"skipped"`
	Truncated bool         `json:"truncated,omitempty"`
	Stars     []StarExport `json:"stars"`
}

// StarExport is a JSON-friendly star with formatted coordinates.
type StarExport struct {
	HR       int        `json:"hr"`
	Name     string     `json:"name"`
	RA       string     `json:"ra"`
	Dec      string     `json:"dec"`
	Spectral string     `json:"spectral"`
	Mag      *float64   `json:"magnitude,omitempty"`
	Color    string     `json:"color"`
	Size     float64    `json:"size"`
	Position astro.Vec3 `json:"position"`
}

// ExportStars converts a load result to an exportable format.
func ExportStars(res *Result, loadedAt time.Time) *CatalogExport {
	if res == nil {
		return &CatalogExport{LoadedAt: loadedAt}
	}

	export := &CatalogExport{
		Format:    res.Format,
		LoadedAt:  loadedAt,
		Count:     len(res.Stars),
		Skipped:   res.Skipped,
		Truncated: res.Truncated,
		Stars:     make([]StarExport, 0, len(res.Stars)),
	}
	for _, s := range res.Stars {
		export.Stars = append(export.Stars, ExportStar(s))
	}
	return export
}

// ExportStar converts a single star.
func ExportStar(s star.Star) StarExport {
	e := StarExport{
		HR:       s.CatalogNumber,
		Name:     s.DisplayName(),
		RA:       astro.FormatRA(s.RA),
		Dec:      astro.FormatDec(s.Dec),
		Spectral: s.SpectralLabel(),
		Color:    s.Color.Hex(),
		Size:     s.Size,
		Position: s.Position,
	}
	if s.HasMagnitude {
		m := s.Magnitude
		e.Mag = &m
	}
	return e
}

// WriteJSON writes the export as JSON to the given writer.
func (c *CatalogExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

// SpectralHistogram counts stars per spectral class letter. Unknown
// classes are counted under '?'.
func SpectralHistogram(stars []star.Star) map[byte]int {
	h := make(map[byte]int)
	for _, s := range stars {
		c := s.SpectralClass
		if c == 0 {
			c = '?'
		}
		h[c]++
	}
	return h
}

// WriteSummaryTable writes a text summary of a load: totals, the spectral
// histogram, and the first n stars.
func WriteSummaryTable(w io.Writer, res *Result, n int) {
	fmt.Fprintln(w, strings.Repeat("─", 72))
	if res == nil || len(res.Stars) == 0 {
		fmt.Fprintln(w, "No stars loaded")
		return
	}

	fmt.Fprintf(w, "Format: %s   Stars: %d   Skipped: %d", res.Format, len(res.Stars), res.Skipped)
	if res.Truncated {
		fmt.Fprint(w, "   (truncated)")
	}
	fmt.Fprintln(w)

	hist := SpectralHistogram(res.Stars)
	classes := make([]byte, 0, len(hist))
	for c := range hist {
		classes = append(classes, c)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	fmt.Fprint(w, "Classes:")
	for _, c := range classes {
		fmt.Fprintf(w, " %c=%d", c, hist[c])
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if n <= 0 {
		return
	}

	fmt.Fprintf(w, "%-6s %-16s %-14s %-12s %-6s %-6s %-7s\n",
		"HR", "Name", "RA", "Dec", "Spec", "Mag", "Color")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, s := range res.Stars[:min(n, len(res.Stars))] {
		mag := "  -"
		if s.HasMagnitude {
			mag = fmt.Sprintf("%5.2f", s.Magnitude)
		}
		fmt.Fprintf(w, "%-6d %-16s %-14s %-12s %-6s %-6s %-7s\n",
			s.CatalogNumber,
			truncateStr(s.DisplayName(), 16),
			astro.FormatRA(s.RA),
			astro.FormatDec(s.Dec),
			truncateStr(s.SpectralLabel(), 6),
			mag,
			s.Color.Hex(),
		)
	}

	if n < len(res.Stars) {
		fmt.Fprintf(w, "... %d more\n", len(res.Stars)-n)
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
