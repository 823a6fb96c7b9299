package middleware

import (
	"errors"
	"net/http"

	cyphergen "github.com/genegraph/cyphergen/pkg"
	"github.com/genegraph/cyphergen/pkg/metrics"
)

// Outcome recorded for questions whose handling panicked.
const outcomePanic = "panic"

func Recovery(cfg *cyphergen.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					err, ok := v.(error)
					if ok && errors.Is(err, http.ErrAbortHandler) {
						panic(err)
					}

					cfg.Logger.Errorf("Recovered from an error: %s (%s %s)", v, r.Method, r.URL.Path)
					metrics.ObserveQuestion(outcomePanic)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				}
			}()
			h.ServeHTTP(w, r)
		})
	}
}
