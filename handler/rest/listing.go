package rest

import (
	"context"
	"net/http"

	"vanguard/core"
	"vanguard/handler/param"
	"vanguard/handler/render"
	"vanguard/handler/request"
	"vanguard/handler/views"
	"vanguard/internal/listing"
	svc "vanguard/service/listing"

	"github.com/go-chi/chi"
	"github.com/twitchtv/twirp"
)

const maxPerPage = 100

// newView one view session per request, the store cache keeps loads cheap
func newView(ctx context.Context, cfg *core.Config, listings core.ListingStore, perPage int) (*svc.View, *core.Session, error) {
	session, _ := request.NewContext(ctx).GetSession()

	if perPage <= 0 {
		perPage = cfg.View.PerPage
	}

	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	view := svc.NewView(listings, svc.Options{
		PerPage: perPage,
		Limit:   cfg.View.Limit,
		Session: session,
	})

	if err := view.Load(ctx); err != nil {
		view.Close()
		return nil, nil, err
	}

	return view, session, nil
}

func listingsHandler(cfg *core.Config, listings core.ListingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Query    string `json:"q"`
			Category string `json:"category"`
			Kind     string `json:"kind" valid:"in(asset|coin)"`
			Active   string `json:"active" valid:"in(all|active|inactive)"`
			Page     int    `json:"page"`
			PerPage  int    `json:"per_page"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.Error(w, err)
			return
		}

		ctx := r.Context()
		view, session, err := newView(ctx, cfg, listings, params.PerPage)
		if err != nil {
			render.Error(w, err)
			return
		}
		defer view.Close()

		view.SearchNow(params.Query)
		view.SetCategory(params.Category)
		view.SetKind(core.Kind(params.Kind))
		if params.Active != "" {
			view.SetActive(listing.ActiveFilter(params.Active))
		}
		if params.Page > 1 {
			view.SetPage(params.Page)
		}

		render.JSON(w, views.PageView(view.Snapshot(), session))
	}
}

func categoriesHandler(cfg *core.Config, listings core.ListingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, _, err := newView(r.Context(), cfg, listings, 0)
		if err != nil {
			render.Error(w, err)
			return
		}
		defer view.Close()

		render.JSON(w, view.Snapshot().Categories)
	}
}

func toggleActiveHandler(cfg *core.Config, listings core.ListingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Active *bool `json:"active"`
		}

		if err := param.Binding(r, &body); err != nil {
			render.Error(w, err)
			return
		}

		ctx := r.Context()
		id := chi.URLParam(r, "id")

		view, session, err := newView(ctx, cfg, listings, 0)
		if err != nil {
			render.Error(w, err)
			return
		}
		defer view.Close()

		item, ok := listing.Find(view.Items(), id)
		if !ok {
			render.Error(w, &core.Error{Code: core.ErrListingNotFound, Op: "toggle", Msg: id})
			return
		}

		// explicit target state, already there
		if body.Active != nil && *body.Active == item.IsActive {
			render.JSON(w, views.ListingView(item, session))
			return
		}

		if err := view.ToggleActive(ctx, id); err != nil {
			render.Error(w, err)
			return
		}

		item, _ = listing.Find(view.Items(), id)
		render.JSON(w, views.ListingView(item, session))
	}
}

func deleteListingHandler(cfg *core.Config, listings core.ListingStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")

		if _, _, err := core.ParseItemID(id); err != nil {
			render.Error(w, twirp.InvalidArgumentError("id", "expected asset:<id> or coin:<id>"))
			return
		}

		view, _, err := newView(ctx, cfg, listings, 0)
		if err != nil {
			render.Error(w, err)
			return
		}
		defer view.Close()

		if err := view.Remove(ctx, id); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.RemovedView(id))
	}
}

func summaryHandler(listings core.ListingStore, directory core.DirectoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := svc.Summarize(r.Context(), listings, directory)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, summary)
	}
}
