package hc

import (
	"context"
	"net/http"
	"time"

	"vanguard/core"
	"vanguard/handler/render"

	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

const pingTimeout = 3 * time.Second

// Handle health check, reports 503 while the listing api is unreachable
func Handle(version string, listings core.ListingStore) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(version, listings))
	return r
}

func handle(version string, listings core.ListingStore) http.HandlerFunc {
	started := time.Now()

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		api, status := "ok", http.StatusOK
		if _, err := listings.ListAssets(ctx, 1, 0); err != nil {
			logger.FromContext(ctx).WithError(err).Warnln("hc: listing api unreachable")
			api, status = err.Error(), http.StatusServiceUnavailable
		}

		render.JSONStatus(w, status, render.H{
			"uptime":  time.Since(started).Truncate(time.Millisecond).String(),
			"version": version,
			"api":     api,
		})
	}
}
