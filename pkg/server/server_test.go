package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/isosort/pkg/cache"
	"github.com/matzehuels/isosort/pkg/depgraph"
	"github.com/matzehuels/isosort/pkg/observability"
	"github.com/matzehuels/isosort/pkg/pipeline"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(c, nil, log.New(io.Discard))
	t.Cleanup(func() { _ = runner.Close() })

	ts := httptest.NewServer(New(runner, log.New(io.Discard)).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func courtyardSource(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../scene/testdata/courtyard.toml")
	require.NoError(t, err)
	return string(data)
}

func post(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorDetail {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Error
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Server"), "isosort/"))
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "version")
}

func TestSortFromSource(t *testing.T) {
	ts := newTestServer(t)
	req := Request{Source: courtyardSource(t), SourceFormat: "toml"}

	resp := post(t, ts, "/v1/sort", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "miss", resp.Header.Get("X-Cache"))

	var res pipeline.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	got := make(map[string]int)
	for _, e := range res.Order {
		got[e.ID] = e.Order
	}
	assert.Equal(t, map[string]int{"fountain": 0, "hedge": 2, "cat": 4, "lamp": 6}, got)
	require.NotNil(t, res.Graph)
	assert.NoError(t, res.Graph.CheckOrder())

	again := post(t, ts, "/v1/sort", req)
	require.Equal(t, http.StatusOK, again.StatusCode)
	assert.Equal(t, "hit", again.Header.Get("X-Cache"))
}

func TestSortInlineScene(t *testing.T) {
	ts := newTestServer(t)
	body := map[string]any{
		"scene": map[string]any{
			"name": "pair",
			"objects": []map[string]any{
				{"id": "back", "p1": map[string]float64{"x": 0, "y": 5}, "pad": 3},
				{"id": "front", "p1": map[string]float64{"x": 0, "y": 1}, "pad": 3},
			},
		},
		"options": map[string]any{"order_step": 10},
	}

	resp := post(t, ts, "/v1/sort", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var res pipeline.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Len(t, res.Order, 2)
	assert.Equal(t, "back", res.Order[0].ID)
	assert.Equal(t, 10, res.Order[1].Order)
}

func TestGraph(t *testing.T) {
	ts := newTestServer(t)
	req := Request{
		Source:       courtyardSource(t),
		SourceFormat: "toml",
		Options:      pipeline.Options{Format: pipeline.FormatJSON},
	}

	resp := post(t, ts, "/v1/graph", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	g, err := depgraph.ReadJSON(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 4, g.NodeCount())

	req.Options.Format = pipeline.FormatDOT
	dot := post(t, ts, "/v1/graph", req)
	require.Equal(t, http.StatusOK, dot.StatusCode)
	data, err := io.ReadAll(dot.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name       string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"empty request", "/v1/sort", map[string]any{}, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", "/v1/sort", map[string]any{"scenery": 1}, http.StatusBadRequest, "INVALID_INPUT"},
		{"both forms", "/v1/sort", map[string]any{"scene": map[string]any{}, "source": "x"}, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad source format", "/v1/sort", Request{Source: "a", SourceFormat: "ini"}, http.StatusBadRequest, "INVALID_FORMAT"},
		{"broken source", "/v1/sort", Request{Source: "[[objects", SourceFormat: "toml"}, http.StatusBadRequest, "INVALID_SCENE"},
		{"bad graph format", "/v1/graph", Request{Source: courtyardSource(t), SourceFormat: "toml", Options: pipeline.Options{Format: "gif"}}, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad options", "/v1/sort", Request{Source: courtyardSource(t), SourceFormat: "toml", Options: pipeline.Options{Frames: -1}}, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeError(t, resp).Code)
		})
	}
}

func TestRejectsNonJSON(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/v1/sort", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
}

type httpEvents struct {
	observability.NoopHTTPHooks
	mu       sync.Mutex
	statuses []int
	errors   int
}

func (h *httpEvents) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func (h *httpEvents) OnError(context.Context, string, string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors++
}

func TestHTTPHooks(t *testing.T) {
	events := &httpEvents{}
	observability.SetHTTPHooks(events)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	post(t, ts, "/v1/sort", map[string]any{})

	// Hooks fire after the response is flushed.
	require.Eventually(t, func() bool {
		events.mu.Lock()
		defer events.mu.Unlock()
		return len(events.statuses) == 2
	}, time.Second, 10*time.Millisecond)

	events.mu.Lock()
	defer events.mu.Unlock()
	assert.Equal(t, []int{http.StatusOK, http.StatusBadRequest}, events.statuses)
	assert.Equal(t, 1, events.errors)
}

func TestListenAndServeStops(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, log.New(io.Discard))
	srv := New(runner, log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
