package handler

import (
	"net/http"

	"vanguard/core"
	"vanguard/handler/auth"
	"vanguard/handler/render"
	"vanguard/handler/rest"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

// Server server
type Server struct {
	cfg       *core.Config
	listings  core.ListingStore
	directory core.DirectoryStore
	notices   core.NoticeStore
	sessions  core.SessionStore
}

// New new server function
func New(
	cfg *core.Config,
	listings core.ListingStore,
	directory core.DirectoryStore,
	notices core.NoticeStore,
	sessions core.SessionStore,
) Server {
	return Server{
		cfg:       cfg,
		listings:  listings,
		directory: directory,
		notices:   notices,
		sessions:  sessions,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(render.WrapResponse(true))
	r.Use(auth.HandleAuthentication(s.sessions, s.cfg))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, twirp.NotFoundError("not found"))
	})

	r.Mount("/", rest.Handle(s.cfg, s.listings, s.directory, s.notices))

	return r
}
