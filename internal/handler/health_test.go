package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stucom/basketball-fans-service/internal/handler"
)

type pingStub struct{ err error }

func (p pingStub) Ping(context.Context) error { return p.err }

func newHealthRouter(p handler.Pinger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewHealthHandler(p)
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)
	return r
}

func TestLiveness(t *testing.T) {
	r := newHealthRouter(pingStub{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "alive")
}

func TestReadiness(t *testing.T) {
	r := newHealthRouter(pingStub{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ready")
}

func TestReadiness_DatabaseDown(t *testing.T) {
	r := newHealthRouter(pingStub{err: errors.New("dial tcp: refused")})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "unavailable")
}
