package cookie

import (
	"errors"
	"net/http"
	"time"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "authToken"

// Manager writes and reads cookies with a set of default attributes.
type Manager struct {
	defaults Options
}

// New creates a Manager. Defaults are HttpOnly, path "/", SameSite=Strict;
// production deployments should pass WithSecure(true) and, when serving
// cross-site clients, WithSameSite(http.SameSiteNoneMode).
func New(opts ...Option) *Manager {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	return &Manager{defaults: applyOptions(defaults, opts)}
}

// Set writes a cookie using the manager defaults merged with opts.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(m.defaults, opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get returns the named cookie's value or ErrCookieNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the named cookie. Attributes must match the ones used on
// Set or browsers will keep the original cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   m.defaults.Secure,
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
	})
}

// SetSession writes the session token cookie with MaxAge equal to ttl.
func (m *Manager) SetSession(w http.ResponseWriter, token string, ttl time.Duration) {
	m.Set(w, SessionCookieName, token, WithMaxAge(int(ttl.Seconds())))
}

// GetSession reads the session token cookie.
func (m *Manager) GetSession(r *http.Request) (string, error) {
	return m.Get(r, SessionCookieName)
}

// ClearSession expires the session token cookie.
func (m *Manager) ClearSession(w http.ResponseWriter) {
	m.Delete(w, SessionCookieName)
}
