package middleware

import (
	"net/http"
)

type ctxKey string

const (
	ContextKeyUser ctxKey = "user"
)

const (
	forwardedUserHeader = "X-Forwarded-User"
	anonymousUser       = "anonymous"
)

type Middleware func(http.Handler) http.Handler
