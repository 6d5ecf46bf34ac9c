// Package catalog loads star catalogs and indexes the resulting stars.
package catalog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// Format decodes one catalog encoding into stars.
//
// Decode returns a nil Result only when nothing could be loaded. Record-level
// problems are collected in Result.SkippedErrors and never returned as err.
type Format interface {
	// Name returns the format name for display/logging.
	Name() string

	// Decode parses a raw catalog stream.
	Decode(r io.Reader) (*Result, error)
}

// Result is the outcome of a single bulk load.
type Result struct {
	Format        string
	Stars         []star.Star
	Skipped       int
	SkippedErrors []error // one per skipped record
	Truncated     bool
}

func (r *Result) skip(err error) {
	r.Skipped++
	r.SkippedErrors = append(r.SkippedErrors, err)
}

// Load decodes r with the given format.
func Load(r io.Reader, f Format) (*Result, error) {
	res, err := f.Decode(r)
	if err != nil {
		return res, fmt.Errorf("load %s catalog: %w", f.Name(), err)
	}
	return res, nil
}

// LoadFile opens path and decodes it with the given format.
func LoadFile(path string, f Format) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer file.Close()

	return Load(file, f)
}

// ParseFormat resolves a configured format name. An empty profile means
// the format's own magnitude scale.
func ParseFormat(name string, profile star.MagnitudeProfile, hasProfile bool) (Format, error) {
	switch strings.ToLower(name) {
	case "binary", "bsc5":
		f := BinaryFormat{Profile: star.Hundredths}
		if hasProfile {
			f.Profile = profile
		}
		return f, nil
	case "json":
		f := TextFormat{Schema: SchemaArray, Profile: star.Decimal}
		if hasProfile {
			f.Profile = profile
		}
		return f, nil
	case "ndjson", "jsonl":
		f := TextFormat{Schema: SchemaLines, Profile: star.Decimal}
		if hasProfile {
			f.Profile = profile
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unknown catalog format %q", name)
	}
}
