package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"
)

type contextKey string

const ActorKey contextKey = "actor"

// GetActor extracts the acting user identity from the request context.
// Returns an empty string when no actor header was sent.
func GetActor(r *http.Request) string {
	if val, ok := r.Context().Value(ActorKey).(string); ok {
		return val
	}
	return ""
}

// ActorMiddleware reads the X-Actor request header and stores it in the
// request context so write handlers can stamp created_by on new records.
func ActorMiddleware() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		actor := strings.TrimSpace(e.Request.Header.Get("X-Actor"))
		if actor != "" {
			ctx := context.WithValue(e.Request.Context(), ActorKey, actor)
			e.Request = e.Request.WithContext(ctx)
		}
		return e.Next()
	}
}
