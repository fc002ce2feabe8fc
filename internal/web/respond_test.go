package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWriteJSON(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := &Handlers{logger: zap.New(core)}

	rec := httptest.NewRecorder()
	h.writeJSON(rec, httptest.NewRequest(http.MethodGet, "/me", nil), http.StatusOK, map[string]int{"total": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"total":3}`, rec.Body.String())
	assert.Zero(t, logs.Len())
}

func TestWriteJSON_EncodeFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	h := &Handlers{logger: zap.New(core)}

	rec := httptest.NewRecorder()
	h.writeJSON(rec, httptest.NewRequest(http.MethodGet, "/me", nil), http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusOK, rec.Code)
	entries := logs.FilterMessage("writing response failed").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/me", fields["path"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Contains(t, fields["error"], "unsupported type")
}
