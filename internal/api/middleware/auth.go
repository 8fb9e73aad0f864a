package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clinicdesk/backend/internal/domain/entities"
)

// Identity headers set by the API gateway after it has authenticated the
// caller. This service trusts them; it never sees credentials.
const (
	headerUserID      = "X-User-ID"
	headerUserRole    = "X-User-Role"
	headerIsSuperuser = "X-Is-Superuser"
)

type contextKey string

const actorContextKey contextKey = "actor"

// ActorMiddleware extracts the acting user from the gateway identity headers
// and rejects requests that carry none.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(headerUserID)
		role := entities.Role(r.Header.Get(headerUserRole))

		if userID == "" {
			unauthorized(w, "missing user identity")
			return
		}
		if role != entities.RolePatient && role != entities.RoleDoctor {
			unauthorized(w, "unknown user role")
			return
		}

		isSuperuser, _ := strconv.ParseBool(r.Header.Get(headerIsSuperuser))

		actor := entities.Actor{
			ID:          userID,
			Role:        role,
			IsSuperuser: isSuperuser,
		}

		next.ServeHTTP(w, r.WithContext(ContextWithActor(r.Context(), actor)))
	})
}

// ContextWithActor returns a context carrying the acting user
func ContextWithActor(ctx context.Context, actor entities.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey, actor)
}

// ActorFromContext returns the acting user stored by ActorMiddleware
func ActorFromContext(ctx context.Context) (entities.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey).(entities.Actor)
	return actor, ok
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
