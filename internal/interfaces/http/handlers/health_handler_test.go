package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Live(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", NewHealthHandler(nil).Live)

	rec := serve(r, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, serviceName, body["service"])
}

func TestHealthHandler_Ready(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var probeErr error
	r := gin.New()
	r.GET("/ready", NewHealthHandler(func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		require.True(t, ok)
		return probeErr
	}).Ready)

	require.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/ready").Code)

	probeErr = errors.New("bucket unreachable")
	require.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodGet, "/ready").Code)
}
