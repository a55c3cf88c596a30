package rest

import (
	"net/http"

	"vanguard/core"
	"vanguard/handler/auth"
	"vanguard/handler/render"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Handle handle rest api request
func Handle(cfg *core.Config, listings core.ListingStore, directory core.DirectoryStore, notices core.NoticeStore) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	router.Route("/listings", func(r chi.Router) {
		r.Get("/", listingsHandler(cfg, listings))
		r.Get("/categories", categoriesHandler(cfg, listings))

		r.With(auth.RequireSession).Put("/{id}/active", toggleActiveHandler(cfg, listings))
		r.With(auth.RequireSession).Delete("/{id}", deleteListingHandler(cfg, listings))
	})

	router.With(auth.RequireSession).Get("/summary", summaryHandler(listings, directory))

	router.Route("/notices", func(r chi.Router) {
		r.Get("/", noticesHandler(notices))
		r.With(auth.RequireSession, requireAdmin).Post("/", postNoticeHandler(notices))
	})

	router.With(auth.RequireSession, requireAdmin).Post("/staff", enrollStaffHandler(directory))

	return router
}
