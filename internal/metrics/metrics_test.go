package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

func TestObserveLoad(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	res := &catalog.Result{Stars: make([]star.Star, 3), Skipped: 2}
	m.ObserveLoad(res, false)
	m.ObserveLoad(&catalog.Result{Stars: make([]star.Star, 5)}, true)

	if got := testutil.ToFloat64(m.RecordsLoaded); got != 8 {
		t.Errorf("RecordsLoaded = %v, want 8", got)
	}
	if got := testutil.ToFloat64(m.RecordsSkipped); got != 2 {
		t.Errorf("RecordsSkipped = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Stars); got != 5 {
		t.Errorf("Stars = %v, want 5", got)
	}
	if got := testutil.ToFloat64(m.Reloads); got != 1 {
		t.Errorf("Reloads = %v, want 1", got)
	}
}

func TestObserveToggle(t *testing.T) {
	m, _ := New(prometheus.NewRegistry())

	m.ObserveToggle(constellation.ToggleResult{Visible: true, Missing: []error{errors.New("a"), errors.New("b")}})
	m.ObserveToggle(constellation.ToggleResult{Visible: false})
	m.ObserveToggle(constellation.ToggleResult{Visible: true})

	if got := testutil.ToFloat64(m.Toggles.WithLabelValues("visible")); got != 2 {
		t.Errorf("visible toggles = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Toggles.WithLabelValues("hidden")); got != 1 {
		t.Errorf("hidden toggles = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.MissingEntries); got != 2 {
		t.Errorf("MissingEntries = %v, want 2", got)
	}
}

func TestNew_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := New(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := New(reg); err == nil {
		t.Error("second New() on the same registry should fail")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObserveLoad(&catalog.Result{}, true)
	m.ObserveToggle(constellation.ToggleResult{})
}
