package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	cyphergen "github.com/genegraph/cyphergen/pkg"
	"github.com/genegraph/cyphergen/pkg/audit"
	"github.com/genegraph/cyphergen/pkg/models"
)

// Questions are short; anything larger is rejected before it is buffered.
const maxRequestBodyBytes = 1 << 20

func Audit(cfg *cyphergen.Config) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			now := time.Now()

			var (
				b       bytes.Buffer
				request models.QueryRequest
			)

			user, _ := ctx.Value(ContextKeyUser).(string)
			if user == "" {
				user = r.Header.Get(forwardedUserHeader)
			}
			if user == "" {
				user = anonymousUser
			}

			if _, err := io.Copy(&b, http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)); err != nil {
				var maxErr *http.MaxBytesError
				if errors.As(err, &maxErr) {
					l := fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit)
					cfg.Logger.Debug(l)
					http.Error(w, l, http.StatusRequestEntityTooLarge)
					return
				}
				cfg.Logger.Errorf("Unable to copy request body: %s", err)
				http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
				return
			}
			_ = r.Body.Close()

			r.Body = io.NopCloser(bytes.NewReader(b.Bytes()))

			if err := json.Unmarshal(b.Bytes(), &request); err != nil {
				cfg.Logger.Debugf("Unable to unmarshal request body: %s", err)
				h.ServeHTTP(w, r)
				return
			}

			question := &audit.QueryData{
				Question:  request.Question,
				User:      user,
				Timestamp: now.Unix(),
			}
			_ = cfg.LoggerAudit.Write(ctx, question)

			if cfg.SplunkAudit != nil {
				if err := cfg.SplunkAudit.Write(ctx, question); err != nil {
					cfg.Logger.Errorf("Unable to send audit to Splunk: %s", err)
					http.Error(w, "An internal error has occurred", http.StatusInternalServerError)
					return
				}
			}
			h.ServeHTTP(w, r)
		})
	}
}
