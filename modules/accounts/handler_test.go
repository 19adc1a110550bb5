package accounts_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexuscampus/authcore/modules/accounts"
	"github.com/nexuscampus/authcore/pkg/cookie"
	"github.com/nexuscampus/authcore/pkg/secrethash"
)

// stallStorage parks email lookups until the request deadline fires.
type stallStorage struct {
	accounts.Storage
}

func (s stallStorage) FindByEmail(ctx context.Context, kind accounts.Kind, email string) (*accounts.Account, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

type httpEnv struct {
	*testEnv
	router http.Handler
}

func newHTTPEnv(t *testing.T) *httpEnv {
	t.Helper()

	env := newTestEnv(t)
	cookies := cookie.New()
	handler := accounts.NewHandler(env.svc, cookies)
	guard := accounts.NewGuard(env.store, env.tokens, cookies)

	return &httpEnv{testEnv: env, router: accounts.Router(handler, guard)}
}

func (e *httpEnv) post(t *testing.T, path string, body any, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data  map[string]any `json:"data"`
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	if envelope.Error != nil {
		return envelope.Error
	}
	return envelope.Data
}

func TestAccountLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	env := newHTTPEnv(t)

	// Signup.
	rec := env.post(t, "/accounts/student/signup", map[string]string{
		"email":    "flow@example.com",
		"password": "Sup3rSecret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	data := decodeBody(t, rec)
	profile := data["profile"].(map[string]any)
	publicID := profile["public_id"].(string)
	assert.True(t, data["email_sent"].(bool))
	assert.False(t, profile["is_verified"].(bool))

	// Login before verification is refused.
	rec = env.post(t, "/accounts/student/login", map[string]string{
		"email":    "flow@example.com",
		"password": "Sup3rSecret",
	})
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "email_not_verified", decodeBody(t, rec)["code"])

	// Verify with the emailed code.
	code := env.storedCode(t, accounts.KindStudent, "flow@example.com")
	rec = env.post(t, "/accounts/student/verify", map[string]string{
		"public_id": publicID,
		"code":      code,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Login succeeds, sets the session cookie and returns the token.
	rec = env.post(t, "/accounts/student/login", map[string]string{
		"email":    "flow@example.com",
		"password": "Sup3rSecret",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decodeBody(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookie.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, token, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)

	// The guarded profile route accepts the cookie.
	req := httptest.NewRequest(http.MethodGet, "/accounts/student/me", nil)
	req.AddCookie(sessionCookie)
	meRec := httptest.NewRecorder()
	env.router.ServeHTTP(meRec, req)
	require.Equal(t, http.StatusOK, meRec.Code, meRec.Body.String())
	assert.Equal(t, publicID, decodeBody(t, meRec)["public_id"])

	// A student session must not reach the institute route.
	req = httptest.NewRequest(http.MethodGet, "/accounts/institute/me", nil)
	req.AddCookie(sessionCookie)
	meRec = httptest.NewRecorder()
	env.router.ServeHTTP(meRec, req)
	require.Equal(t, http.StatusForbidden, meRec.Code)

	// Logout clears the cookie.
	rec = env.post(t, "/accounts/logout", map[string]string{})
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookie.SessionCookieName {
			assert.Equal(t, -1, c.MaxAge)
		}
	}
}

func TestHandlerErrorMapping(t *testing.T) {
	t.Parallel()

	t.Run("unknown kind segment is a 404", func(t *testing.T) {
		t.Parallel()
		env := newHTTPEnv(t)

		rec := env.post(t, "/accounts/admin/signup", map[string]string{
			"email": "a@example.com", "password": "Sup3rSecret",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate email is a 409", func(t *testing.T) {
		t.Parallel()
		env := newHTTPEnv(t)

		body := map[string]string{"email": "dup@example.com", "password": "Sup3rSecret"}
		require.Equal(t, http.StatusCreated, env.post(t, "/accounts/student/signup", body).Code)

		rec := env.post(t, "/accounts/student/signup", body)
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "email_taken", decodeBody(t, rec)["code"])
	})

	t.Run("validation failures carry field details", func(t *testing.T) {
		t.Parallel()
		env := newHTTPEnv(t)

		rec := env.post(t, "/accounts/student/signup", map[string]string{
			"email": "nope", "password": "x",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		errBody := decodeBody(t, rec)
		assert.Equal(t, "validation_error", errBody["code"])
		details := errBody["details"].(map[string]any)
		assert.Contains(t, details, "email")
		assert.Contains(t, details, "password")
	})

	t.Run("malformed json is a 400", func(t *testing.T) {
		t.Parallel()
		env := newHTTPEnv(t)

		req := httptest.NewRequest(http.MethodPost, "/accounts/student/signup", bytes.NewReader([]byte("{")))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong credentials are a 401", func(t *testing.T) {
		t.Parallel()
		env := newHTTPEnv(t)

		account := env.register(t, accounts.KindStudent, "auth@example.com")
		env.verify(t, account)

		rec := env.post(t, "/accounts/student/login", map[string]string{
			"email": "auth@example.com", "password": "wrong-password",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid_credentials", decodeBody(t, rec)["code"])
	})

	t.Run("forgot password answers identically for known and unknown emails", func(t *testing.T) {
		t.Parallel()
		env := newHTTPEnv(t)

		account := env.register(t, accounts.KindStudent, "known@example.com")
		env.verify(t, account)

		known := env.post(t, "/accounts/password/forgot", map[string]string{"email": "known@example.com"})
		unknown := env.post(t, "/accounts/password/forgot", map[string]string{"email": "unknown@example.com"})

		assert.Equal(t, http.StatusAccepted, known.Code)
		assert.Equal(t, http.StatusAccepted, unknown.Code)
		assert.Equal(t, known.Body.String(), unknown.Body.String())
	})

	t.Run("deadline-bound backend call surfaces as 504", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		cookies := cookie.New()
		svc := accounts.NewService(stallStorage{Storage: env.store},
			secrethash.New(secrethash.WithBcryptCost(bcrypt.MinCost)),
			env.tokens,
			accounts.NewMailer(env.sender, "https://app.example.com/reset-password"),
		)
		handler := accounts.NewHandler(svc, cookies)
		guard := accounts.NewGuard(env.store, env.tokens, cookies)

		r := chi.NewRouter()
		r.Use(middleware.Timeout(50 * time.Millisecond))
		r.Mount("/", accounts.Router(handler, guard))

		payload, err := json.Marshal(map[string]string{
			"email": "hung@example.com", "password": "Sup3rSecret",
		})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/accounts/student/login", bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assert.Equal(t, "timeout", decodeBody(t, rec)["code"])
	})

	t.Run("spent reset token is a 400", func(t *testing.T) {
		t.Parallel()
		env := newHTTPEnv(t)

		account := env.register(t, accounts.KindStudent, "spent@example.com")
		env.verify(t, account)
		require.NoError(t, env.svc.ForgotPassword(context.Background(), "spent@example.com"))
		rawToken := env.sender.lastResetToken(t)

		first := env.post(t, "/accounts/password/reset", map[string]string{
			"token": rawToken, "password": "N3wPassword",
		})
		require.Equal(t, http.StatusOK, first.Code, first.Body.String())

		second := env.post(t, "/accounts/password/reset", map[string]string{
			"token": rawToken, "password": "An0therPass",
		})
		require.Equal(t, http.StatusBadRequest, second.Code)
		assert.Equal(t, "invalid_or_expired_token", decodeBody(t, second)["code"])
	})
}
