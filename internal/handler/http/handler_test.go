package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-card-sync/internal/logger"
	"github.com/MKhiriev/go-card-sync/internal/service"
)

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())

	require.NotNil(t, h)
}

func TestNewHandler_StoresServices(t *testing.T) {
	svc := &service.Services{}
	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, svc, h.services)
}

func TestRequestLogger_AttachesLoggerAndPassesThrough(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		// логгер доступен внутри обработчика через контекст запроса
		log := logger.FromRequest(r)
		require.NotNil(t, log)
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	h.RequestLogger(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/sync/metrics", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
