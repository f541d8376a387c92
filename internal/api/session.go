package api

import (
	"crypto/rand"
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

const (
	flashCookieName = "sc_flash"
	flashMaxAge     = 300
)

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

func init() {
	// flashes are gob-encoded into the signed cookie
	gob.Register(Flash{})
}

func (h *Handler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", h.auth.SecureSessionCookie, true)
}

// startSession signs a token for user and stores it in the session cookie
func (h *Handler) startSession(c *gin.Context, user models.User) error {
	token, _, err := h.generateJWTToken(user)
	if err != nil {
		return err
	}
	h.setCookie(c, sessionCookieName, token, int(h.auth.TokenTTL.Seconds()))
	return nil
}

func (h *Handler) clearSession(c *gin.Context) {
	h.setCookie(c, sessionCookieName, "", -1)
}

// Sessions installs the cookie store that carries flash messages across
// redirects. The cookie is signed with the JWT secret, or with a per-process
// random key when no secret is configured.
func (h *Handler) Sessions() gin.HandlerFunc {
	key := []byte(h.auth.JWTSecret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("generate flash key: %v", err))
		}
	}
	store := cookie.NewStore(key)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		Secure:   h.auth.SecureSessionCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return sessions.Sessions(flashCookieName, store)
}

// flashSession returns the request's flash session, or nil when the
// Sessions middleware is not installed
func flashSession(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}

// addFlash queues a message for the next rendered page, surviving a redirect
func (h *Handler) addFlash(c *gin.Context, category, message string) {
	sess := flashSession(c)
	if sess == nil {
		return
	}
	sess.AddFlash(Flash{Category: category, Message: message})
	if err := sess.Save(); err != nil {
		_ = c.Error(fmt.Errorf("save flash: %w", err))
	}
}

// takeFlashes returns and clears the queued messages
func (h *Handler) takeFlashes(c *gin.Context) []Flash {
	sess := flashSession(c)
	if sess == nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(); err != nil {
		_ = c.Error(fmt.Errorf("save flash: %w", err))
	}
	flashes := make([]Flash, 0, len(raw))
	for _, v := range raw {
		if f, ok := v.(Flash); ok {
			flashes = append(flashes, f)
		}
	}
	return flashes
}
