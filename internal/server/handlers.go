package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/catalog"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
	"github.com/Ricardo08S/StarrySky-4/internal/session"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
	defaultEvents   = 50
)

// Handler holds API route handlers.
type Handler struct {
	sess     Session
	scene    func() render.Snapshot
	observer *astro.Observer
	now      func() time.Time
	logger   *slog.Logger
}

// intParam parses a chi URL parameter.
func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	return n, err == nil
}

// Session handles GET /api/session.
func (h *Handler) Session(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sess.Snapshot())
}

// ListStars handles GET /api/stars.
func (h *Handler) ListStars(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	if limit <= 0 {
		limit = defaultPageSize
	}
	limit = min(limit, maxPageSize)
	offset = max(offset, 0)

	stars := h.sess.Stars(offset, limit)
	items := make([]catalog.StarExport, 0, len(stars))
	for _, s := range stars {
		items = append(items, catalog.ExportStar(s))
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stars":  items,
		"total":  h.sess.Snapshot().Stars,
		"offset": offset,
		"limit":  limit,
	})
}

// GetStar handles GET /api/stars/{hr}.
func (h *Handler) GetStar(w http.ResponseWriter, r *http.Request) {
	hr, ok := intParam(r, "hr")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("catalog number must be an integer"))
		return
	}
	s, ok := h.sess.Star(hr)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("star not found"))
		return
	}
	writeJSON(w, http.StatusOK, catalog.ExportStar(s))
}

// HorizonResponse places a star on the configured observer's sky.
type HorizonResponse struct {
	CatalogNumber int       `json:"hr"`
	Site          string    `json:"site,omitempty"`
	At            time.Time `json:"at"`
	AzDeg         float64   `json:"az_deg"`
	AltDeg        float64   `json:"alt_deg"`
	AboveHorizon  bool      `json:"above_horizon"`
}

// StarHorizon handles GET /api/stars/{hr}/horizon?at=RFC3339.
func (h *Handler) StarHorizon(w http.ResponseWriter, r *http.Request) {
	hr, ok := intParam(r, "hr")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("catalog number must be an integer"))
		return
	}
	at := h.now()
	if v := r.URL.Query().Get("at"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("at must be an RFC 3339 timestamp"))
			return
		}
		at = t
	}
	s, ok := h.sess.Star(hr)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody("star not found"))
		return
	}

	pos := astro.ToHorizontal(s.RA, s.Dec, *h.observer, at)
	writeJSON(w, http.StatusOK, HorizonResponse{
		CatalogNumber: s.CatalogNumber,
		Site:          h.observer.Name,
		At:            at.UTC(),
		AzDeg:         pos.AzDeg,
		AltDeg:        pos.AltDeg,
		AboveHorizon:  pos.AboveHorizon(),
	})
}

// ListConstellations handles GET /api/constellations.
func (h *Handler) ListConstellations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"constellations": h.sess.Constellations(),
	})
}

// GetConstellation handles GET /api/constellations/{idx}.
func (h *Handler) GetConstellation(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(r, "idx")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be an integer"))
		return
	}
	status, err := h.sess.Constellation(idx)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// ToggleResponse is the body returned by a toggle.
type ToggleResponse struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Visible bool     `json:"visible"`
	Lines   int      `json:"lines"`
	Missing []string `json:"missing,omitempty"`
	Failed  []string `json:"failed,omitempty"`
}

// ToggleConstellation handles POST /api/constellations/{idx}/toggle.
func (h *Handler) ToggleConstellation(w http.ResponseWriter, r *http.Request) {
	idx, ok := intParam(r, "idx")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("index must be an integer"))
		return
	}

	res, err := h.sess.Toggle(idx)
	switch {
	case errors.Is(err, constellation.ErrInvalidConstellationIndex):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
		return
	case err != nil:
		h.logger.Error("toggle failed", slog.Int("index", idx), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("render error"))
		return
	}

	writeJSON(w, http.StatusOK, ToggleResponse{
		Index:   res.Index,
		Name:    res.Name,
		Visible: res.Visible,
		Lines:   res.Lines,
		Missing: errorStrings(res.Missing),
		Failed:  errorStrings(res.Failed),
	})
}

// SizesRequest is the body of POST /api/field/sizes.
type SizesRequest struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RebuildSizes handles POST /api/field/sizes.
func (h *Handler) RebuildSizes(w http.ResponseWriter, r *http.Request) {
	var req SizesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	err := h.sess.RebuildVisualSizes(req.Min, req.Max)
	switch {
	case errors.Is(err, constellation.ErrInvalidSizeBounds):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	case err != nil:
		h.logger.Warn("resize incomplete", slog.String("error", err.Error()))
	}
	writeJSON(w, http.StatusOK, h.sess.Snapshot().Field)
}

// Events handles GET /api/events.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		n = defaultEvents
	}
	events := h.sess.RecentEvents(n)
	if events == nil {
		events = []session.Event{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

// Scene handles GET /api/scene.
func (h *Handler) Scene(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.scene())
}
