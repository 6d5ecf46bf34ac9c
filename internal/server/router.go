// Package server implements the query and control HTTP API using chi.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ricardo08S/StarrySky-4/internal/astro"
	"github.com/Ricardo08S/StarrySky-4/internal/constellation"
	"github.com/Ricardo08S/StarrySky-4/internal/render"
	"github.com/Ricardo08S/StarrySky-4/internal/session"
	"github.com/Ricardo08S/StarrySky-4/internal/star"
)

// Session is the part of session.Manager the API serves.
type Session interface {
	Stars(offset, limit int) []star.Star
	Star(hr int) (star.Star, bool)
	Constellations() []session.ConstellationStatus
	Constellation(i int) (session.ConstellationStatus, error)
	Toggle(i int) (constellation.ToggleResult, error)
	RebuildVisualSizes(minSize, maxSize float64) error
	RecentEvents(n int) []session.Event
	Snapshot() session.Snapshot
}

// Options wires optional endpoints. Nil fields leave the endpoint unmounted.
type Options struct {
	Scene    func() render.Snapshot
	Stream   http.Handler
	Gatherer prometheus.Gatherer
	Observer *astro.Observer
	Logger   *slog.Logger
}

// NewRouter creates a chi router with health, API, metrics and stream routes.
func NewRouter(sess Session, opts Options) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{sess: sess, scene: opts.Scene, observer: opts.Observer, now: time.Now, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/session", h.Session)

		r.Get("/stars", h.ListStars)
		r.Get("/stars/{hr}", h.GetStar)
		if opts.Observer != nil {
			r.Get("/stars/{hr}/horizon", h.StarHorizon)
		}

		r.Get("/constellations", h.ListConstellations)
		r.Get("/constellations/{idx}", h.GetConstellation)
		r.Post("/constellations/{idx}/toggle", h.ToggleConstellation)

		r.Post("/field/sizes", h.RebuildSizes)
		r.Get("/events", h.Events)

		if opts.Scene != nil {
			r.Get("/scene", h.Scene)
		}
	})

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	if opts.Stream != nil {
		r.Get("/ws", opts.Stream.ServeHTTP)
	}

	return r
}
