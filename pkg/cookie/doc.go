// Package cookie manages the HTTP session carrier for the auth core.
//
// A Manager holds default attributes chosen at construction time and applies
// them to every cookie it writes; per-call options override the defaults.
// The session contract is: authToken cookie, HttpOnly always, Secure plus
// SameSite=None in production (cross-site clients), SameSite=Strict
// elsewhere, MaxAge equal to the session token lifetime.
//
//	m := cookie.New(
//	    cookie.WithSecure(env.IsProduction()),
//	    cookie.WithSameSite(http.SameSiteStrictMode),
//	)
//	m.Set(w, cookie.SessionCookieName, token, cookie.WithMaxAge(int(ttl.Seconds())))
//
// Delete writes an expired cookie with the same attributes so browsers drop
// the stored value; it does not (and cannot) invalidate the token itself.
package cookie
