package catalog

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

func sampleResult() *Result {
	rigel := star.New(star.Params{
		CatalogNumber: 1713,
		RA:            1.3724,
		Dec:           -0.1431,
		SpectralClass: 'B', SpectralFraction: 0.8,
		Magnitude: 12, HasMagnitude: true, Profile: star.Hundredths,
		Meta: star.Meta{Common: "Rigel", SpectralType: "B8Ia"},
	})
	faint := star.New(star.Params{CatalogNumber: 9000, RA: 3, Dec: 0.5})
	return &Result{Format: "binary", Stars: []star.Star{rigel, faint}, Skipped: 1}
}

func TestExportStars(t *testing.T) {
	loadedAt := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	export := ExportStars(sampleResult(), loadedAt)

	if export.LoadedAt != loadedAt {
		t.Errorf("LoadedAt = %v, want %v", export.LoadedAt, loadedAt)
	}
	if export.Count != 2 || export.Skipped != 1 {
		t.Errorf("Count, Skipped = %d, %d, want 2, 1", export.Count, export.Skipped)
	}

	rigel := export.Stars[0]
	if rigel.Name != "Rigel" || rigel.Spectral != "B8Ia" {
		t.Errorf("star 0 = %+v", rigel)
	}
	if rigel.Mag == nil || *rigel.Mag != 0.12 {
		t.Errorf("Mag = %v, want 0.12", rigel.Mag)
	}
	if !strings.HasPrefix(rigel.Color, "#") || len(rigel.Color) != 7 {
		t.Errorf("Color = %q, want #rrggbb", rigel.Color)
	}

	if export.Stars[1].Mag != nil {
		t.Errorf("faint star Mag = %v, want nil", *export.Stars[1].Mag)
	}
	if export.Stars[1].Name != "HR 9000" {
		t.Errorf("faint star Name = %q, want HR 9000", export.Stars[1].Name)
	}
}

func TestExportStars_Nil(t *testing.T) {
	loadedAt := time.Now()
	export := ExportStars(nil, loadedAt)

	if export.LoadedAt != loadedAt {
		t.Errorf("LoadedAt = %v, want %v", export.LoadedAt, loadedAt)
	}
	if len(export.Stars) != 0 {
		t.Error("Stars should be empty for nil result")
	}
}

func TestCatalogExport_WriteJSON(t *testing.T) {
	export := ExportStars(sampleResult(), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, field := range []string{"format", "loaded_at", "count", "stars"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("missing field %q", field)
		}
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("JSON should be indented")
	}
}

func TestWriteSummaryTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, sampleResult(), 1)
	out := buf.String()

	for _, want := range []string{"Stars: 2", "Skipped: 1", "B=1", "?=1", "Rigel", "... 1 more"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSummaryTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteSummaryTable(&buf, &Result{}, 10)

	if !strings.Contains(buf.String(), "No stars loaded") {
		t.Errorf("empty summary = %q", buf.String())
	}
}

func TestTruncateStr(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"Betelgeuse", 6, "Bete.."},
		{"abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		if got := truncateStr(tt.in, tt.max); got != tt.want {
			t.Errorf("truncateStr(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
