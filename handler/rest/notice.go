package rest

import (
	"net/http"

	"vanguard/core"
	"vanguard/handler/param"
	"vanguard/handler/render"
	"vanguard/handler/request"
)

func noticesHandler(notices core.NoticeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := notices.List(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}

func postNoticeHandler(notices core.NoticeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form core.NoticeForm
		if err := param.Binding(r, &form); err != nil {
			render.Error(w, err)
			return
		}

		n, err := notices.Post(r.Context(), &form)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSONStatus(w, http.StatusCreated, n)
	}
}

func enrollStaffHandler(directory core.DirectoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form core.StaffForm
		if err := param.Binding(r, &form); err != nil {
			render.Error(w, err)
			return
		}

		p, err := directory.Enroll(r.Context(), &form)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSONStatus(w, http.StatusCreated, p)
	}
}

// requireAdmin reject sessions without the admin role, after RequireSession
func requireAdmin(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if s, ok := request.NewContext(r.Context()).GetSession(); !ok || !s.IsAdmin() {
			render.Error(w, &core.Error{Code: core.ErrForbidden, Op: "admin", Msg: "admin only"})
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
