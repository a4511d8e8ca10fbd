package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dcms-platform/manifest-service/pkg/errors"
	"github.com/dcms-platform/manifest-service/pkg/logging"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	Setup(router, DefaultConfig("manifest-service", logger))

	return router
}

func decodeErrorResponse(t *testing.T, w *httptest.ResponseRecorder) APIErrorResponse {
	t.Helper()
	var resp APIErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSetupStampsRequestAndCorrelationIDs(t *testing.T) {
	router := newTestRouter()

	var ctxCorrelationID string
	router.GET("/manifests", func(c *gin.Context) {
		ctxCorrelationID = logging.CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manifests", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
	assert.NotEmpty(t, w.Header().Get(HeaderCorrelationID))
	assert.Equal(t, w.Header().Get(HeaderCorrelationID), ctxCorrelationID)
}

func TestSetupPropagatesIncomingCorrelationID(t *testing.T) {
	router := newTestRouter()

	var ctxCorrelationID string
	router.GET("/manifests", func(c *gin.Context) {
		ctxCorrelationID = logging.CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/manifests", nil)
	req.Header.Set(HeaderCorrelationID, "corr-from-gateway")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "corr-from-gateway", w.Header().Get(HeaderCorrelationID))
	assert.Equal(t, "corr-from-gateway", ctxCorrelationID)
}

func TestSetupSecurityHeaders(t *testing.T) {
	router := newTestRouter()
	router.GET("/manifests", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manifests", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-store, no-cache, must-revalidate", w.Header().Get("Cache-Control"))
}

func TestSetupCORSPreflight(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/manifests", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestErrorHandlerMapsDomainErrors(t *testing.T) {
	router := newTestRouter()
	router.GET("/manifests/:id", func(c *gin.Context) {
		_ = c.Error(errors.New("manifest not found"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manifests/m-1", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, apperrors.CodeNotFound, resp.Code)
	assert.Equal(t, "/manifests/m-1", resp.Path)
	assert.NotEmpty(t, resp.RequestID)
}

func TestErrorResponderRespondWithError(t *testing.T) {
	router := newTestRouter()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	router.GET("/manifests/:id", func(c *gin.Context) {
		responder := NewErrorResponder(c, logger)
		responder.RespondWithError(apperrors.ErrManifestNotFound(c.Param("id")))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manifests/m-9", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, apperrors.CodeManifestNotFound, resp.Code)
	assert.Equal(t, "m-9", resp.Details["manifestId"])
}

func TestReadinessCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ready", func(t *testing.T) {
		router := gin.New()
		router.GET("/ready", ReadinessCheck("manifest-service", func() error { return nil }))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("store unreachable", func(t *testing.T) {
		router := gin.New()
		router.GET("/ready", ReadinessCheck("manifest-service", func() error {
			return errors.New("connection refused")
		}))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decodeErrorResponse(t, w)
		assert.Equal(t, apperrors.CodeServiceUnavailable, resp.Code)
	})
}

func TestNoRoute(t *testing.T) {
	router := newTestRouter()
	router.NoRoute(NoRoute())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeErrorResponse(t, w)
	assert.Equal(t, "ROUTE_NOT_FOUND", resp.Code)
	assert.Equal(t, "/nope", resp.Path)
}
