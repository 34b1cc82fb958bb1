package httpapi_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requesthub/requesthub/pkg/httpapi"
)

func TestWriteError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, httpapi.WriteError(w, http.StatusConflict, "REQUEST_CONFLICT", "already exists", map[string]string{
		"id": "abc",
	}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":"REQUEST_CONFLICT","message":"already exists","meta":{"id":"abc"}}`, w.Body.String())
}

func TestWriteError_DefaultsBlankFields(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, httpapi.WriteError(w, http.StatusInternalServerError, "", "", nil))

	assert.JSONEq(t, `{"code":"INTERNAL_ERROR","message":"Internal Server Error"}`, w.Body.String())
}

func TestWriteJSON_NilPayloadWritesHeaderOnly(t *testing.T) {
	w := httptest.NewRecorder()
	require.NoError(t, httpapi.WriteJSON(w, http.StatusNoContent, nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
