package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
	"github.com/Ricardo08S/StarrySky-4/internal/session"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

func emptyScene() render.Snapshot {
	return render.Snapshot{}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func newTestModel(t *testing.T) (Model, *session.Manager) {
	t.Helper()
	reg, err := constellation.NewRegistry([]constellation.Constellation{
		{Name: "Pair", Vertices: []int{1, 2}, Edges: []constellation.Edge{{A: 1, B: 2}}},
		{Name: "Gap", Vertices: []int{2, 9}, Edges: []constellation.Edge{{A: 2, B: 9}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	scene := render.NewScene()
	mgr := session.NewManager(session.DefaultConfig(), reg, scene)
	mgr.Reload(&catalog.Result{Format: "json", Stars: []star.Star{
		star.New(star.Params{CatalogNumber: 1, Meta: star.Meta{Name: "Alpha"}, SpectralClass: 'M'}),
		star.New(star.Params{CatalogNumber: 2, Meta: star.Meta{Name: "Beta"}, RA: 0.1, SpectralClass: 'B'}),
	}})
	return New(mgr, scene.Snapshot, DefaultSensitivity), mgr
}

func press(m Model, key string) Model {
	next, _ := m.Update(runeKey(key))
	return next.(Model)
}

func TestModel_ToggleKeys(t *testing.T) {
	m, mgr := newTestModel(t)

	m = press(m, "0")
	if !strings.Contains(m.statusMsg, "Pair shown") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if got := mgr.Snapshot().Visible; len(got) != 1 || got[0] != 0 {
		t.Errorf("visible = %v, want [0]", got)
	}
	if len(m.skyView.selectable) != 2 {
		t.Errorf("selectable = %d stars, want 2", len(m.skyView.selectable))
	}
	if len(m.skyView.scene.Groups) != 1 {
		t.Errorf("scene groups = %d, want 1", len(m.skyView.scene.Groups))
	}

	m = press(m, "1")
	if !strings.Contains(m.statusMsg, "missing catalog entries") {
		t.Errorf("statusMsg = %q, want missing entries reported", m.statusMsg)
	}

	m = press(m, "0")
	if !strings.Contains(m.statusMsg, "Pair hidden") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}

	m = press(m, "7")
	if m.statusMsg != "No constellation 7" {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
}

func TestModel_SizeKeys(t *testing.T) {
	m, mgr := newTestModel(t)

	m = press(m, "]")
	m = press(m, "}")
	f := mgr.Field()
	if f.SizeMin != 0.5 || f.SizeMax != 5.5 {
		t.Errorf("field = %+v, want 0.5..5.5", f)
	}
	if m.skyView.field != f {
		t.Errorf("sky view field = %+v, want %+v", m.skyView.field, f)
	}

	m = press(m, "[")
	m = press(m, "[")
	if !strings.Contains(m.statusMsg, "rejected") {
		t.Errorf("statusMsg = %q, want rejection below zero", m.statusMsg)
	}
	if mgr.Field().SizeMin != 0 {
		t.Errorf("SizeMin = %v, want 0", mgr.Field().SizeMin)
	}
}

func TestModel_ViewRenders(t *testing.T) {
	m, _ := newTestModel(t)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("View before size = %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	m = press(m, "0")

	view := m.View()
	for _, want := range []string{"Sky View", "Pair", "json catalog: 2 stars"} {
		if !strings.Contains(view, want) {
			t.Errorf("sky view missing %q", want)
		}
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.viewMode != ViewConstellations {
		t.Fatalf("viewMode = %v, want constellations", m.viewMode)
	}
	view = m.View()
	if !strings.Contains(view, "shown") || !strings.Contains(view, "Gap") {
		t.Error("constellation panel should list every constellation with its state")
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runeKey("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestRenderConstellationBar(t *testing.T) {
	var statuses []session.ConstellationStatus
	for i := 0; i < 12; i++ {
		statuses = append(statuses, session.ConstellationStatus{Index: i, Name: "C" + string(rune('A'+i))})
	}
	statuses[3].Visible = true

	bar := RenderConstellationBar(statuses)
	if !strings.Contains(bar, "CA") || !strings.Contains(bar, "CJ") {
		t.Error("bar should include constellations 0-9")
	}
	if strings.Contains(bar, "CK") {
		t.Error("constellations without a digit key should be omitted")
	}
	if strings.Count(bar, "●") != 1 {
		t.Errorf("bar should mark exactly one visible constellation")
	}

	if RenderConstellationBar(nil) != "" {
		t.Error("empty input should render nothing")
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 0, 10, 1); got != "#3B82F6" {
		t.Errorf("gradientColor start = %s, want #3B82F6", got)
	}
	if got := gradientColor(5, 0, 10, 1); !strings.HasPrefix(got, "#") || len(got) != 7 {
		t.Errorf("gradientColor = %q, want #RRGGBB", got)
	}
}
