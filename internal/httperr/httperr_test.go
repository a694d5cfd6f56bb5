package httperr

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("x"), http.StatusBadRequest},
		{"conflict", Conflict("x"), http.StatusBadRequest},
		{"unauthorized", Unauthorized("x"), http.StatusUnauthorized},
		{"forbidden", Forbidden("x"), http.StatusForbidden},
		{"not found", NotFound("x"), http.StatusNotFound},
		{"payload too large", PayloadTooLarge("x"), http.StatusRequestEntityTooLarge},
		{"storage", Storage("x"), http.StatusInternalServerError},
		{"configuration", Configuration("x"), http.StatusInternalServerError},
		{"internal", Internal("x"), http.StatusInternalServerError},
		{"unknown error", errors.New("x"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusOf(tt.err))
		})
	}
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(KindStorage, "Erreur du stockage d'images", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, KindStorage, KindOf(err))
	assert.Contains(t, err.Error(), "disk full")
}

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/services/1", nil)
	return c, w
}

func TestWriteErrorEnvelope(t *testing.T) {
	c, w := newTestContext(t)

	WriteError(c, NotFound("Service non trouvé"))

	require.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Service non trouvé", body["error"])
}

func TestWriteErrorHidesUnknownDetail(t *testing.T) {
	c, w := newTestContext(t)

	WriteError(c, errors.New("pq: duplicate key value violates unique constraint"))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Erreur interne du serveur", body["error"])
	assert.NotContains(t, w.Body.String(), "duplicate key")
}
