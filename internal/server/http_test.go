package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"riskboard/internal/board"
	"riskboard/internal/risk"
	"riskboard/internal/storage"
	"riskboard/internal/surface"
)

type stubTrend struct {
	img []byte
	err error
}

func (s stubTrend) PNG() ([]byte, error) { return s.img, s.err }

func newServer(t *testing.T, trend stubTrend) (*httptest.Server, *board.Board, *storage.Store) {
	t.Helper()
	b := board.New(board.DefaultLayout())
	db, err := storage.OpenSQLite("file:" + filepath.Join(t.TempDir(), "a.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, storage.InitSchema(db))
	st := storage.NewStore(db)
	srv := httptest.NewServer(NewHTTPMux(Deps{Board: b, Trend: trend, Archive: st}))
	t.Cleanup(srv.Close)
	return srv, b, st
}

func TestHealthAndPage(t *testing.T) {
	srv, _, _ := newServer(t, stubTrend{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Contains(t, buf.String(), `id="polymarket-value"`)
	assert.Contains(t, buf.String(), `data-canvas="weather-sparkline"`)
}

func TestBoardState(t *testing.T) {
	srv, b, _ := newServer(t, stubTrend{})
	b.SetText(surface.AlertLevel, "SEVERE")
	b.SetClass(surface.AlertLevel, "alert-severe")

	resp, err := http.Get(srv.URL + "/api/board")
	require.NoError(t, err)
	defer resp.Body.Close()
	var st board.State
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Equal(t, "SEVERE", st.Regions[surface.AlertLevel].Text)
	assert.Equal(t, "alert-severe", st.Regions[surface.AlertLevel].Class)
}

func TestCanvasPNG(t *testing.T) {
	srv, _, _ := newServer(t, stubTrend{})

	resp, err := http.Get(srv.URL + "/canvas/" + surface.TrendChart)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	cfg, err := png.DecodeConfig(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)

	resp2, err := http.Get(srv.URL + "/canvas/missing")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestViewport(t *testing.T) {
	srv, b, _ := newServer(t, stubTrend{})
	resized := make(chan struct{}, 1)
	b.OnResize(func() { resized <- struct{}{} })

	resp, err := http.Post(srv.URL+"/api/viewport?width=500", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Len(t, resized, 1)
	assert.Equal(t, 500, b.State().Viewport)

	resp, err = http.Post(srv.URL+"/api/viewport?width=abc", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTrendChart(t *testing.T) {
	srv, _, _ := newServer(t, stubTrend{err: errors.New("no data yet")})
	resp, err := http.Get(srv.URL + "/chart/trend.png")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	srv2, _, _ := newServer(t, stubTrend{img: []byte("png-bytes")})
	resp, err = http.Get(srv2.URL + "/chart/trend.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	assert.Equal(t, "png-bytes", buf.String())
}

func TestArchive(t *testing.T) {
	srv, _, st := newServer(t, stubTrend{})
	s, err := risk.Decode([]byte(`{"total_risk":{"risk":44},"last_updated":"2026-01-01T00:00:00"}`))
	require.NoError(t, err)
	require.NoError(t, st.SaveSnapshot(s))

	resp, err := http.Get(srv.URL + "/api/archive?limit=5")
	require.NoError(t, err)
	defer resp.Body.Close()
	var rows []storage.ArchivedSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 44, rows[0].TotalRisk)
	assert.Equal(t, "ELEVATED", rows[0].Alert)
}

func TestMetricsRoute(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("riskboard_total_risk 42\n")) })
	srv := httptest.NewServer(NewHTTPMux(Deps{Board: board.New(board.DefaultLayout()), Metrics: metrics}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp2, err := http.Get(srv.URL + "/chart/trend.png")
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}
