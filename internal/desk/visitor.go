package desk

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName holds the anonymous visitor id.
const CookieName = "termfolio_visitor"

const cookieMaxAge = 365 * 24 * time.Hour

type ctxKey struct{}

// Visitors assigns every request a visitor id, setting the cookie when the
// request has none (or a malformed one).
func Visitors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(CookieName); err == nil {
			if u, err := uuid.Parse(c.Value); err == nil {
				id = u.String()
			}
		}
		if id == "" {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cookieMaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// VisitorID returns the id Visitors stored on the request context, or "".
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
