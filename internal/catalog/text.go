package catalog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// Schema selects how a structured-text blob is laid out. It is always
// declared by the caller, never sniffed from content.
type Schema int

const (
	// SchemaArray is one JSON array of star objects.
	SchemaArray Schema = iota
	// SchemaLines is one JSON object per line.
	SchemaLines
)

func (s Schema) String() string {
	switch s {
	case SchemaArray:
		return "json"
	case SchemaLines:
		return "ndjson"
	default:
		return "unknown"
	}
}

const maxLineSize = 1 << 20

// TextFormat reads the VizieR-style JSON catalog.
type TextFormat struct {
	Schema  Schema
	Profile star.MagnitudeProfile
}

// Name implements Format.
func (f TextFormat) Name() string {
	return f.Schema.String()
}

// Decode implements Format.
func (f TextFormat) Decode(r io.Reader) (*Result, error) {
	profile := f.Profile
	if profile == (star.MagnitudeProfile{}) {
		profile = star.Decimal
	}

	res := &Result{Format: f.Name()}

	switch f.Schema {
	case SchemaArray:
		var raws []json.RawMessage
		if err := json.NewDecoder(r).Decode(&raws); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEnvelope, err)
		}
		res.Stars = make([]star.Star, 0, len(raws))
		for i, raw := range raws {
			s, err := decodeTextRecord(raw, profile)
			if err != nil {
				res.skip(fmt.Errorf("record %d: %w", i, err))
				continue
			}
			res.Stars = append(res.Stars, s)
		}

	case SchemaLines:
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		line := 0
		for sc.Scan() {
			line++
			b := bytes.TrimSpace(sc.Bytes())
			if len(b) == 0 {
				continue
			}
			s, err := decodeTextRecord(b, profile)
			if err != nil {
				res.skip(fmt.Errorf("line %d: %w", line, err))
				continue
			}
			res.Stars = append(res.Stars, s)
		}
		if err := sc.Err(); err != nil {
			return res, fmt.Errorf("read line %d: %w", line+1, err)
		}

	default:
		return nil, fmt.Errorf("%w: unknown schema %d", ErrMalformedEnvelope, int(f.Schema))
	}

	return res, nil
}

// textRecord mirrors one catalog object. Every value may be a JSON number
// or a numeric string.
type textRecord struct {
	HR     value `json:"HR"`
	Name   value `json:"Name"`
	RAh    value `json:"RAh"`
	RAm    value `json:"RAm"`
	RAs    value `json:"RAs"`
	DESign value `json:"DE-"`
	DEd    value `json:"DEd"`
	DEm    value `json:"DEm"`
	DEs    value `json:"DEs"`
	Vmag   value `json:"Vmag"`
	SpType value `json:"SpType"`
	PMRA   value `json:"pmRA"`
	PMDE   value `json:"pmDE"`

	Constellation value `json:"Constellation"`
	Temperature   value `json:"K"`
	Common        value `json:"Common"`
	Flamsteed     value `json:"FlamsteedF"`
	HD            value `json:"HD"`
}

// value holds the textual form of a scalar JSON value.
type value struct {
	raw string
	set bool
}

func (v *value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = value{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		*v = value{raw: s, set: s != ""}
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return fmt.Errorf("expected scalar, got %s", b[:1])
	default:
		*v = value{raw: string(b), set: true}
	}
	return nil
}

func (v value) number() (float64, bool) {
	if !v.set {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func (v value) integer() (int, bool) {
	f, ok := v.number()
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

func decodeTextRecord(b []byte, profile star.MagnitudeProfile) (star.Star, error) {
	var rec textRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return star.Star{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	hr, ok := rec.HR.integer()
	if !ok {
		return star.Star{}, fmt.Errorf("%w: missing or invalid HR", ErrMalformedRecord)
	}

	var coords [6]float64
	for i, f := range []struct {
		key string
		v   value
	}{
		{"RAh", rec.RAh}, {"RAm", rec.RAm}, {"RAs", rec.RAs},
		{"DEd", rec.DEd}, {"DEm", rec.DEm}, {"DEs", rec.DEs},
	} {
		n, ok := f.v.number()
		if !ok {
			return star.Star{}, fmt.Errorf("%w: HR %d: missing or invalid %s", ErrMalformedRecord, hr, f.key)
		}
		coords[i] = n
	}

	negative := false
	if rec.DESign.set {
		switch rec.DESign.raw {
		case "-":
			negative = true
		case "+":
		default:
			return star.Star{}, fmt.Errorf("%w: HR %d: invalid DE- %q", ErrMalformedRecord, hr, rec.DESign.raw)
		}
	}

	p := star.Params{
		CatalogNumber: hr,
		RA:            astro.HMSToRadians(coords[0], coords[1], coords[2]),
		Dec:           astro.DMSToRadians(negative, coords[3], coords[4], coords[5]),
		Profile:       profile,
		Meta: star.Meta{
			Name:          rec.Name.raw,
			Common:        rec.Common.raw,
			Constellation: rec.Constellation.raw,
			Flamsteed:     rec.Flamsteed.raw,
			SpectralType:  rec.SpType.raw,
		},
	}

	p.PMRA, _ = rec.PMRA.number()
	p.PMDec, _ = rec.PMDE.number()
	p.Magnitude, p.HasMagnitude = rec.Vmag.number()
	p.SpectralClass, p.SpectralFraction = star.ParseSpectralType(rec.SpType.raw)
	p.Meta.HD, _ = rec.HD.integer()
	p.Meta.Temperature, _ = rec.Temperature.number()

	return star.New(p), nil
}
