package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubPool implements database.Pool for readiness tests
type stubPool struct {
	pingErr error
}

func (s *stubPool) Ping(ctx context.Context) error { return s.pingErr }
func (s *stubPool) Close()                         {}

func TestHandleHealthz(t *testing.T) {
	handler := HandleHealthz()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	err := json.NewDecoder(w.Body).Decode(&resp)
	assert.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleReadyz(t *testing.T) {
	t.Run("Database Available", func(t *testing.T) {
		handler := HandleReadyz(&stubPool{})

		req := httptest.NewRequest("GET", "/readyz", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Database Unavailable", func(t *testing.T) {
		handler := HandleReadyz(&stubPool{pingErr: errors.New("connection refused")})

		req := httptest.NewRequest("GET", "/readyz", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp HealthResponse
		err := json.NewDecoder(w.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Equal(t, "unavailable", resp.Status)
	})
}
