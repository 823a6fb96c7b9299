package middleware

import (
	"context"
	"fmt"
	"net/http"

	cyphergen "github.com/genegraph/cyphergen/pkg"
)

// Authorization admits only the users listed in the user environment. With
// no users configured every request passes through untouched.
func Authorization(cfg *cyphergen.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.UserEnv == nil || !cfg.UserEnv.Enabled() {
				h.ServeHTTP(w, r)
				return
			}

			user := r.Header.Get(forwardedUserHeader)
			if user == "" {
				l := fmt.Sprintf("Request without required header: %s", forwardedUserHeader)
				http.Error(w, l, http.StatusBadRequest)
				return
			}

			if !cfg.UserEnv.IsAuthorized(user) {
				l := "User does not have required permissions"
				cfg.Logger.Errorf("%s: %s", l, user)
				http.Error(w, l, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
