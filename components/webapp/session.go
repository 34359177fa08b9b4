package webapp

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/analytica/webapp/pkg/backend"
)

const (
	sessionTokenKey = "token"
	sessionNameKey  = "user_name"
	sessionEmailKey = "user_email"
)

// SessionStore is the single source of truth for the bearer token and the
// resolved user profile. Token presence is the sole authorization gate;
// the profile is a display nicety and may legitimately be absent.
type SessionStore struct {
	store *session.Store
	api   *backend.Client
}

// NewSessionStore builds a cookie-backed session store with the given
// lifetime.
func NewSessionStore(api *backend.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		store: session.New(session.Config{
			Expiration:     ttl,
			CookieHTTPOnly: true,
			CookieSameSite: "Lax",
		}),
		api: api,
	}
}

// Token returns the stored bearer token, or "" for anonymous visitors.
func (s *SessionStore) Token(c *fiber.Ctx) string {
	sess, err := s.store.Get(c)
	if err != nil {
		return ""
	}
	token, _ := sess.Get(sessionTokenKey).(string)
	return token
}

// User returns the cached profile, if the post-login fetch succeeded.
func (s *SessionStore) User(c *fiber.Ctx) *backend.User {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil
	}
	name, _ := sess.Get(sessionNameKey).(string)
	email, _ := sess.Get(sessionEmailKey).(string)
	if name == "" && email == "" {
		return nil
	}
	return &backend.User{FullName: name, Email: email}
}

// Login stores the token and attempts to resolve the profile behind it.
// A failed profile fetch is swallowed: the login stands, the profile stays
// empty.
func (s *SessionStore) Login(c *fiber.Ctx, token string) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionTokenKey, token)
	if user, err := s.api.WithToken(token).CurrentUser(c.UserContext()); err == nil {
		sess.Set(sessionNameKey, user.FullName)
		sess.Set(sessionEmailKey, user.Email)
	}
	return sess.Save()
}

// Logout destroys the session, clearing token and profile together.
func (s *SessionStore) Logout(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
