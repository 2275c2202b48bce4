package middleware

import (
	"net/http"
	"time"

	"burnoutlens/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CookieName carries the session id between requests
const CookieName = "burnout_session"

const contextKey = "burnout.session"

// Session resolves the caller's session from its cookie, starting a new one when
// the cookie is missing, malformed or expired
func Session(manager *session.Manager, ttl time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	log := logger.With().Str("component", "session").Logger()
	return func(c *gin.Context) {
		id, _ := c.Cookie(CookieName)
		s, created := manager.GetOrCreate(id)
		if created {
			log.Debug().Str("session_id", s.ID.String()).Msg("session started")
		}
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     CookieName,
			Value:    s.ID.String(),
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		c.Set(contextKey, s)
		c.Next()
	}
}

// Current returns the session resolved for this request
func Current(c *gin.Context) (session.Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return session.Session{}, false
	}
	s, ok := v.(session.Session)
	return s, ok
}
