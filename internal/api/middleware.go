package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Identity cookie names.
const (
	SessionCookie = "sid"
	ClientCookie  = "cid"
)

const clientCookieAge = 365 * 24 * time.Hour

type ctxKey int

const (
	sessionKey ctxKey = iota
	clientKey
)

// BearerAuth returns middleware that validates the Authorization: Bearer <token> header.
// Uses crypto/subtle.ConstantTimeCompare to prevent timing attacks. An empty
// token disables the check.
func BearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			provided := strings.TrimPrefix(auth, "Bearer ")

			if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 || !strings.HasPrefix(auth, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody{Error: "unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Identity issues the sid (browser session) and cid (one year) cookies when
// they are missing or malformed and puts both ids in the request context.
// secure marks both cookies Secure and must be set when served over TLS.
func Identity(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return identity(next, secure)
	}
}

func identity(next http.Handler, secure bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := cookieID(r, SessionCookie)
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		cid := cookieID(r, ClientCookie)
		if cid == "" {
			cid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookie,
				Value:    cid,
				Path:     "/",
				MaxAge:   int(clientCookieAge.Seconds()),
				HttpOnly: true,
				Secure:   secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, sid)
		ctx = context.WithValue(ctx, clientKey, cid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func cookieID(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

// SessionID returns the session id set by Identity.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey).(string)
	return sid
}

// ClientID returns the client id set by Identity.
func ClientID(ctx context.Context) string {
	cid, _ := ctx.Value(clientKey).(string)
	return cid
}

// PageView records a view of name for the requesting client.
func PageView(prefs PreferencesPage, name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			prefs.TrackPageView(r.Context(), ClientID(r.Context()), name, r.UserAgent())
			next.ServeHTTP(w, r)
		})
	}
}
