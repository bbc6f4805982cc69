package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serveLogged(t *testing.T, target string, handler http.HandlerFunc) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.InfoLevel)
	chain := middleware.RequestID(Logger(zap.New(core))(handler))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	chain.ServeHTTP(httptest.NewRecorder(), req)
	return logs
}

func TestLogger_RecordsRequestDetails(t *testing.T) {
	logs := serveLogged(t, "/api/threats?status=verified", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/api/threats", fields["path"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, "status=verified", fields["query"])
	assert.NotEmpty(t, fields["requestID"])
}

func TestLogger_OmitsEmptyQuery(t *testing.T) {
	logs := serveLogged(t, "/api/threats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	require.Equal(t, 1, logs.Len())
	_, ok := logs.All()[0].ContextMap()["query"]
	assert.False(t, ok)
}

func TestLogger_ServerErrorsLogAtErrorLevel(t *testing.T) {
	logs := serveLogged(t, "/api/threats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}
