package accounts

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/nexuscampus/authcore/core"
	"github.com/nexuscampus/authcore/pkg/cookie"
	"github.com/nexuscampus/authcore/pkg/logger"
	"github.com/nexuscampus/authcore/pkg/sessiontoken"
)

// Guard authenticates requests and enforces the principal kind a route
// expects. Each request either ends Authenticated with the account in the
// context, or Rejected with 401 (no usable token), 403 (wrong kind) or
// 404 (token subject no longer exists).
type Guard struct {
	storage Storage
	tokens  *sessiontoken.Service
	cookies *cookie.Manager
	log     *slog.Logger
	devMode bool
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithGuardLogger sets the guard logger.
func WithGuardLogger(log *slog.Logger) GuardOption {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// WithGuardDevMode includes validation failure detail in responses.
// Never enable outside development.
func WithGuardDevMode(dev bool) GuardOption {
	return func(g *Guard) { g.devMode = dev }
}

// NewGuard wires the auth guard.
func NewGuard(storage Storage, tokens *sessiontoken.Service, cookies *cookie.Manager, opts ...GuardOption) *Guard {
	g := &Guard{
		storage: storage,
		tokens:  tokens,
		cookies: cookies,
		log:     logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// RequireKind returns middleware admitting only sessions of the given kind.
func (g *Guard) RequireKind(kind Kind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := g.extractToken(r)
			if !ok {
				core.WriteError(w, core.ErrUnauthorized, g.devMode)
				return
			}

			principal, err := g.tokens.Validate(token)
			if err != nil {
				// Expired and invalid both reject with 401; detail stays
				// out of the response outside development.
				core.WriteError(w, core.ErrUnauthorized, g.devMode)
				return
			}

			if principal.Kind != string(kind) {
				core.WriteError(w, core.ErrForbidden, g.devMode)
				return
			}

			accountID, err := uuid.Parse(principal.AccountID)
			if err != nil {
				core.WriteError(w, core.ErrUnauthorized, g.devMode)
				return
			}

			account, err := g.storage.FindByID(r.Context(), accountID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					// A signed token for a vanished account is a hard auth
					// failure, not a retryable condition.
					core.WriteError(w, core.ErrNotFound, g.devMode)
					return
				}
				g.log.ErrorContext(r.Context(), "principal load failed",
					logger.Component("guard"),
					logger.Error(err),
				)
				core.WriteError(w, core.ErrInternalServerError, g.devMode)
				return
			}

			next.ServeHTTP(w, r.WithContext(withAccount(r.Context(), account)))
		})
	}
}

// extractToken prefers the session cookie over the Authorization header
// when both are present.
func (g *Guard) extractToken(r *http.Request) (string, bool) {
	if token, err := g.cookies.GetSession(r); err == nil && token != "" {
		return token, true
	}

	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
