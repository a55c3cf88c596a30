package auth

import (
	"net/http"
	"strings"

	"vanguard/core"
	"vanguard/handler/render"
	"vanguard/handler/request"

	"github.com/fox-one/pkg/logger"
)

// HandleAuthentication attach the stored operator session. A request with
// a bearer token only gets it when the token matches.
func HandleAuthentication(sessions core.SessionStore, cfg *core.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			session, err := sessions.Get(ctx)
			if err != nil {
				log.WithError(err).Debugln("no stored session")
				next.ServeHTTP(w, r)
				return
			}

			if token := getBearerToken(r); token != "" && token != session.Token {
				log.Debugln("bearer token does not match the stored session")
				next.ServeHTTP(w, r)
				return
			}

			if cfg != nil && cfg.IsAdmin(session.User.ID) {
				session.User.Role = core.RoleAdmin
			}

			next.ServeHTTP(w, r.WithContext(request.NewContext(ctx).WithSession(session)))
		}

		return http.HandlerFunc(fn)
	}
}

// RequireSession reject requests without a session
func RequireSession(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if _, ok := request.NewContext(r.Context()).GetSession(); !ok {
			render.Error(w, core.ErrSessionNotFound)
			return
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}

func getBearerToken(r *http.Request) string {
	s := r.Header.Get("Authorization")
	return strings.TrimPrefix(s, "Bearer ")
}
