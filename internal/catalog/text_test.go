package catalog

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

const betelgeuse = `{"HR":"2061","Name":"58Alp Ori","RAh":"05","RAm":"55","RAs":"10.3","DE-":"+","DEd":"07","DEm":"24","DEs":"25","Vmag":"0.50","SpType":"M1-2Ia-Iab","pmRA":"0.026","pmDE":"0.009","Constellation":"Orion","Common":"Betelgeuse","K":"3500","HD":"39801"}`

func TestTextFormat_ArrayRecord(t *testing.T) {
	blob := "[" + betelgeuse + "]"

	res, err := Load(strings.NewReader(blob), TextFormat{Schema: SchemaArray})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(res.Stars) != 1 {
		t.Fatalf("len(Stars) = %d, want 1", len(res.Stars))
	}

	s := res.Stars[0]
	if s.CatalogNumber != 2061 {
		t.Errorf("CatalogNumber = %d, want 2061", s.CatalogNumber)
	}
	wantRA := astro.HMSToRadians(5, 55, 10.3)
	wantDec := astro.DMSToRadians(false, 7, 24, 25)
	if math.Abs(s.RA-wantRA) > 1e-12 || math.Abs(s.Dec-wantDec) > 1e-12 {
		t.Errorf("RA, Dec = %v, %v, want %v, %v", s.RA, s.Dec, wantRA, wantDec)
	}
	if !s.HasMagnitude || s.Magnitude != 0.5 {
		t.Errorf("Magnitude = %v (has %v), want 0.5", s.Magnitude, s.HasMagnitude)
	}
	if want := star.Decimal.Size(0.5); math.Abs(s.Size-want) > 1e-12 {
		t.Errorf("Size = %v, want %v", s.Size, want)
	}
	if s.SpectralClass != 'M' || math.Abs(s.SpectralFraction-0.1) > 1e-12 {
		t.Errorf("spectral = %c %v, want M 0.1", s.SpectralClass, s.SpectralFraction)
	}
	if s.PMRA != 0.026 || s.PMDec != 0.009 {
		t.Errorf("PM = %v, %v, want 0.026, 0.009", s.PMRA, s.PMDec)
	}
	if s.Meta.Common != "Betelgeuse" || s.Meta.Constellation != "Orion" || s.Meta.HD != 39801 || s.Meta.Temperature != 3500 {
		t.Errorf("Meta = %+v", s.Meta)
	}
	if s.SpectralLabel() != "M1-2Ia-Iab" {
		t.Errorf("SpectralLabel() = %q, want M1-2Ia-Iab", s.SpectralLabel())
	}
}

func TestTextFormat_NumericValues(t *testing.T) {
	blob := `[{"HR":1,"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0,"Vmag":7.96}]`

	res, err := TextFormat{Schema: SchemaArray}.Decode(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	s := res.Stars[0]
	if s.Position != (astro.Vec3{X: 1}) {
		t.Errorf("Position = %+v, want (1,0,0)", s.Position)
	}
	if s.Size != 0 {
		t.Errorf("Size = %v, want 0", s.Size)
	}
	if s.Color != star.White {
		t.Errorf("Color = %+v, want white for missing SpType", s.Color)
	}
}

func TestTextFormat_SouthernDeclination(t *testing.T) {
	blob := `[{"HR":"1713","RAh":"05","RAm":"14","RAs":"32.3","DE-":"-","DEd":"08","DEm":"12","DEs":"06","Vmag":"0.12","SpType":"B8Ia"}]`

	res, err := TextFormat{Schema: SchemaArray}.Decode(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if d := res.Stars[0].Dec; d >= 0 {
		t.Errorf("Dec = %v, want negative", d)
	}
	if y := res.Stars[0].Position.Y; y >= 0 {
		t.Errorf("Position.Y = %v, want negative", y)
	}
}

func TestTextFormat_MissingHRSkipped(t *testing.T) {
	blob := `[
		{"HR":"1","RAh":"0","RAm":"0","RAs":"0","DEd":"0","DEm":"0","DEs":"0"},
		{"RAh":"1","RAm":"0","RAs":"0","DEd":"0","DEm":"0","DEs":"0"},
		{"HR":"3","RAh":"2","RAm":"0","RAs":"0","DEd":"0","DEm":"0","DEs":"0"}
	]`

	res, err := TextFormat{Schema: SchemaArray}.Decode(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(res.Stars) != 2 {
		t.Fatalf("len(Stars) = %d, want 2", len(res.Stars))
	}
	if res.Skipped != 1 || len(res.SkippedErrors) != 1 {
		t.Fatalf("Skipped = %d, errors = %d, want 1, 1", res.Skipped, len(res.SkippedErrors))
	}
	if !errors.Is(res.SkippedErrors[0], ErrMalformedRecord) {
		t.Errorf("skip error = %v, want ErrMalformedRecord", res.SkippedErrors[0])
	}
	if res.Stars[0].CatalogNumber != 1 || res.Stars[1].CatalogNumber != 3 {
		t.Errorf("catalog numbers = %d, %d, want 1, 3", res.Stars[0].CatalogNumber, res.Stars[1].CatalogNumber)
	}
}

func TestTextFormat_RecordDefaults(t *testing.T) {
	tests := []struct {
		name     string
		record   string
		wantSize float64
		wantHas  bool
		skipped  bool
	}{
		{"no Vmag", `{"HR":1,"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0}`, star.DefaultSize, false, false},
		{"blank Vmag", `{"HR":1,"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0,"Vmag":" "}`, star.DefaultSize, false, false},
		{"bad Vmag", `{"HR":1,"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0,"Vmag":"bright"}`, star.DefaultSize, false, false},
		{"null Vmag", `{"HR":1,"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0,"Vmag":null}`, star.DefaultSize, false, false},
		{"missing DEs", `{"HR":1,"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0}`, 0, false, true},
		{"bad RAh", `{"HR":1,"RAh":"x","RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0}`, 0, false, true},
		{"fractional HR", `{"HR":1.5,"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0}`, 0, false, true},
		{"bad sign", `{"HR":1,"RAh":0,"RAm":0,"RAs":0,"DE-":"?","DEd":0,"DEm":0,"DEs":0}`, 0, false, true},
		{"nested value", `{"HR":{"n":1},"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0}`, 0, false, true},
		{"not an object", `42`, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := TextFormat{Schema: SchemaArray}.Decode(strings.NewReader("[" + tt.record + "]"))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if tt.skipped {
				if res.Skipped != 1 || len(res.Stars) != 0 {
					t.Errorf("Skipped = %d, stars = %d, want 1, 0", res.Skipped, len(res.Stars))
				}
				return
			}
			if len(res.Stars) != 1 {
				t.Fatalf("len(Stars) = %d, want 1", len(res.Stars))
			}
			s := res.Stars[0]
			if s.Size != tt.wantSize || s.HasMagnitude != tt.wantHas {
				t.Errorf("Size = %v has = %v, want %v %v", s.Size, s.HasMagnitude, tt.wantSize, tt.wantHas)
			}
		})
	}
}

func TestTextFormat_MalformedEnvelope(t *testing.T) {
	for _, blob := range []string{``, `{"HR":1}`, `[{"HR":1},`, `not json`} {
		res, err := TextFormat{Schema: SchemaArray}.Decode(strings.NewReader(blob))
		if !errors.Is(err, ErrMalformedEnvelope) {
			t.Errorf("Decode(%q) error = %v, want ErrMalformedEnvelope", blob, err)
		}
		if res != nil {
			t.Errorf("Decode(%q) result = %+v, want nil", blob, res)
		}
	}
}

func TestTextFormat_Lines(t *testing.T) {
	blob := strings.Join([]string{
		`{"HR":1,"RAh":0,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0}`,
		``,
		`this is not json`,
		`{"HR":2,"RAh":6,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0}`,
		`   `,
		`{"RAh":6,"RAm":0,"RAs":0,"DEd":0,"DEm":0,"DEs":0}`,
	}, "\n")

	res, err := Load(strings.NewReader(blob), TextFormat{Schema: SchemaLines})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if res.Format != "ndjson" {
		t.Errorf("Format = %q, want ndjson", res.Format)
	}
	if len(res.Stars) != 2 {
		t.Fatalf("len(Stars) = %d, want 2", len(res.Stars))
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
	for _, e := range res.SkippedErrors {
		if !errors.Is(e, ErrMalformedRecord) {
			t.Errorf("skip error %v does not wrap ErrMalformedRecord", e)
		}
	}
	if !strings.HasPrefix(res.SkippedErrors[0].Error(), "line 3:") {
		t.Errorf("first skip error = %q, want line 3 prefix", res.SkippedErrors[0])
	}
}

func TestTextFormat_EmptyArray(t *testing.T) {
	res, err := TextFormat{Schema: SchemaArray}.Decode(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(res.Stars) != 0 || res.Skipped != 0 {
		t.Errorf("stars = %d skipped = %d, want 0, 0", len(res.Stars), res.Skipped)
	}
}
