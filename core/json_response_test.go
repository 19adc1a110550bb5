package core_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscampus/authcore/core"
	"github.com/nexuscampus/authcore/pkg/validator"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) core.JSONResponse {
	t.Helper()
	var resp core.JSONResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	core.WriteJSON(w, http.StatusCreated, map[string]string{"public_id": "NXI_AB23CD"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	resp := decode(t, w)
	require.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("http error keeps status and code", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		core.WriteError(w, core.ErrForbidden, false)

		assert.Equal(t, http.StatusForbidden, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "forbidden", resp.Error.Code)
	})

	t.Run("validation errors become 400 with details", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(validator.ValidEmail("email", "nope"))
		w := httptest.NewRecorder()
		core.WriteError(w, err, false)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "validation_error", resp.Error.Code)
		assert.Contains(t, resp.Error.Details, "email")
	})

	t.Run("unexpected errors are opaque in production", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		core.WriteError(w, errors.New("pq: secret detail"), false)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		resp := decode(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "internal_error", resp.Error.Code)
		assert.NotContains(t, w.Body.String(), "secret detail")
	})

	t.Run("dev mode includes message", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		core.WriteError(w, errors.New("boom"), true)
		assert.Contains(t, w.Body.String(), "boom")
	})

	t.Run("wrapped http error unwraps", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		core.WriteError(w, errors.Join(core.ErrNotFound, errors.New("ctx")), false)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
