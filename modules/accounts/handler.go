package accounts

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nexuscampus/authcore/core"
	"github.com/nexuscampus/authcore/pkg/cookie"
	"github.com/nexuscampus/authcore/pkg/logger"
	"github.com/nexuscampus/authcore/pkg/requestid"
	"github.com/nexuscampus/authcore/pkg/validator"
)

// Handler exposes the account lifecycle over HTTP.
type Handler struct {
	svc     *Service
	cookies *cookie.Manager
	log     *slog.Logger
	devMode bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerLogger sets the handler logger.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithHandlerDevMode includes internal error messages in 500 responses.
func WithHandlerDevMode(dev bool) HandlerOption {
	return func(h *Handler) { h.devMode = dev }
}

// NewHandler wires the HTTP handler.
func NewHandler(svc *Service, cookies *cookie.Manager, opts ...HandlerOption) *Handler {
	h := &Handler{
		svc:     svc,
		cookies: cookies,
		log:     logger.NewDiscard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	Profile   Profile `json:"profile"`
	EmailSent bool    `json:"email_sent"`
}

// Signup handles POST /accounts/{kind}/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindFromRoute(w, r)
	if !ok {
		return
	}

	var req signupRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.svc.Register(r.Context(), kind, req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	core.WriteJSON(w, http.StatusCreated, signupResponse{
		Profile:   result.Account.Profile(),
		EmailSent: result.EmailSent,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Profile Profile `json:"profile"`
	Token   string  `json:"token"`
}

// Login handles POST /accounts/{kind}/login. The session token is both
// returned in the body for header-based clients and set as a cookie for
// browsers.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindFromRoute(w, r)
	if !ok {
		return
	}

	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	account, token, err := h.svc.Authenticate(r.Context(), kind, req.Email, req.Password)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	h.cookies.SetSession(w, token, h.svc.SessionTTL())
	core.WriteJSON(w, http.StatusOK, loginResponse{
		Profile: account.Profile(),
		Token:   token,
	})
}

type verifyRequest struct {
	PublicID string `json:"public_id"`
	Code     string `json:"code"`
}

// Verify handles POST /accounts/{kind}/verify.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindFromRoute(w, r)
	if !ok {
		return
	}

	var req verifyRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.VerifyEmail(r.Context(), kind, req.PublicID, req.Code); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	core.WriteJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

type resendRequest struct {
	PublicID string `json:"public_id"`
}

// ResendVerification handles POST /accounts/{kind}/verify/resend.
func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindFromRoute(w, r)
	if !ok {
		return
	}

	var req resendRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.ResendVerification(r.Context(), kind, req.PublicID); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	core.WriteJSON(w, http.StatusAccepted, map[string]bool{"sent": true})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword handles POST /accounts/password/forgot. The response is
// identical whether or not the email exists, so the endpoint cannot be used
// to probe for accounts. Internal failures are logged but still answered
// uniformly.
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.ForgotPassword(r.Context(), req.Email); err != nil && !errors.Is(err, ErrNotFound) {
		h.log.ErrorContext(r.Context(), "forgot password failed",
			logger.Component("accounts.http"),
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
		)
	}

	core.WriteJSON(w, http.StatusAccepted, map[string]string{
		"status": "If the email is registered, a reset link has been sent.",
	})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /accounts/password/reset.
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	core.WriteJSON(w, http.StatusOK, map[string]bool{"reset": true})
}

// Logout handles POST /accounts/logout. Tokens are stateless, so logout is
// purely a cookie clear; a token already handed to a client stays valid
// until it expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.ClearSession(w)
	core.WriteJSON(w, http.StatusOK, map[string]bool{"logged_out": true})
}

// Me handles GET /accounts/{kind}/me. The guard has already authenticated
// the request and loaded the account.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := CurrentAccount(r.Context())
	if !ok {
		core.WriteError(w, core.ErrUnauthorized, h.devMode)
		return
	}
	core.WriteJSON(w, http.StatusOK, account.Profile())
}

func (h *Handler) kindFromRoute(w http.ResponseWriter, r *http.Request) (Kind, bool) {
	kind, err := ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		core.WriteError(w, core.ErrNotFound, h.devMode)
		return "", false
	}
	return kind, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.WriteError(w, core.ErrBadRequest, h.devMode)
		return false
	}
	return true
}

// writeDomainError maps domain errors onto stable HTTP status/code pairs.
// Anything unmapped is an opaque 500, logged with its request id.
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		// A deadline-bound store or mail call timed out; distinct from any
		// domain outcome so clients can retry.
		h.log.ErrorContext(r.Context(), "backend call timed out",
			logger.Component("accounts.http"),
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
		)
		core.WriteError(w, core.NewHTTPError(http.StatusGatewayTimeout, "timeout"), h.devMode)
	case errors.Is(err, ErrInvalidCredentials):
		core.WriteError(w, core.NewHTTPError(http.StatusUnauthorized, "invalid_credentials"), h.devMode)
	case errors.Is(err, ErrNotVerified):
		core.WriteError(w, core.NewHTTPError(http.StatusForbidden, "email_not_verified"), h.devMode)
	case errors.Is(err, ErrEmailTaken):
		core.WriteError(w, core.NewHTTPError(http.StatusConflict, "email_taken"), h.devMode)
	case errors.Is(err, ErrNotFound):
		core.WriteError(w, core.ErrNotFound, h.devMode)
	case errors.Is(err, ErrAlreadyVerified):
		core.WriteError(w, core.NewHTTPError(http.StatusBadRequest, "already_verified"), h.devMode)
	case errors.Is(err, ErrNoCodeOutstanding):
		core.WriteError(w, core.NewHTTPError(http.StatusBadRequest, "no_code_outstanding"), h.devMode)
	case errors.Is(err, ErrCodeMismatch):
		core.WriteError(w, core.NewHTTPError(http.StatusBadRequest, "code_mismatch"), h.devMode)
	case errors.Is(err, ErrCodeExpired):
		core.WriteError(w, core.NewHTTPError(http.StatusBadRequest, "code_expired"), h.devMode)
	case errors.Is(err, ErrInvalidOrExpiredResetToken):
		core.WriteError(w, core.NewHTTPError(http.StatusBadRequest, "invalid_or_expired_token"), h.devMode)
	case errors.Is(err, ErrEmailDeliveryFailed):
		core.WriteError(w, core.NewHTTPError(http.StatusBadGateway, "email_delivery_failed"), h.devMode)
	default:
		// Validation errors carry their own mapping inside WriteError.
		if isValidationError(err) {
			core.WriteError(w, err, h.devMode)
			return
		}
		h.log.ErrorContext(r.Context(), "unhandled domain error",
			logger.Component("accounts.http"),
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
		)
		core.WriteError(w, err, h.devMode)
	}
}

func isValidationError(err error) bool {
	var verrs validator.ValidationErrors
	return errors.As(err, &verrs)
}
