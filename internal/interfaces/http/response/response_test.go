package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainerrors "gisteam.backend/internal/domain/errors"
)

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusOK, gin.H{"ok": true})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestError_Mapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"app error", domainerrors.NotFound("missing"), http.StatusNotFound},
		{"conflict", &domainerrors.ConflictError{Field: "username", Value: "amy"}, http.StatusConflict},
		{"transient", domainerrors.Transient("list", errors.New("timeout")), http.StatusServiceUnavailable},
		{"wrapped invalid input", fmt.Errorf("seed: %w", domainerrors.ErrInvalidInput), http.StatusBadRequest},
		{"generic", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			Error(c, tc.err)
			assert.Equal(t, tc.status, w.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestError_HidesInternalDetail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("dial tcp 10.0.0.1: refused"))
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	assert.Contains(t, w.Body.String(), "internal server error")
}
