package serverhttp

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matcher-service/internal/config"
	"matcher-service/internal/reconcile/model"
	recSvc "matcher-service/internal/reconcile/service"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	e, err := recSvc.NewEngine(model.DefaultEngineConfig(), zerolog.Nop())
	require.NoError(t, err)
	cfg := config.Config{AllowOrigins: []string{"*"}, MaxUploadMB: 1}
	srv := httptest.NewServer(NewRouter(cfg, e, zerolog.Nop()))
	t.Cleanup(srv.Close)
	return srv
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	resp, err = http.Post(srv.URL+"/score", "application/json", strings.NewReader(`{"a":"Лампа 60Вт","b":"лампа 60 вт"}`))
	require.NoError(t, err)
	var score map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&score))
	resp.Body.Close()
	assert.Contains(t, score, "similarity")

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	resp.Body.Close()
	assert.Contains(t, buf.String(), "matcher_similarity_cache_lookups_total")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/caches", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/match")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMatchUploadLimit(t *testing.T) {
	e, err := recSvc.NewEngine(model.DefaultEngineConfig(), zerolog.Nop())
	require.NoError(t, err)
	router := NewRouter(config.Config{MaxUploadMB: 1}, e, zerolog.Nop())

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("materials", "m.csv")
	require.NoError(t, err)
	_, err = fw.Write(bytes.Repeat([]byte("Кабель;"), 200_000))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/match", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
