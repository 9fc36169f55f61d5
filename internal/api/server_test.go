package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/treekit/tidytree/pkg/graph"
	"github.com/treekit/tidytree/pkg/pipeline"
)

func testServer() *Server {
	logger := log.Default()
	logger.SetLevel(log.FatalLevel)
	return NewServer(pipeline.NewRunner(nil, logger), logger)
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(testServer().Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestLayout(t *testing.T) {
	srv := httptest.NewServer(testServer().Router())
	defer srv.Close()

	req := `{"words": ["ab", "ac", "abcd", "abce"], "direction": "TB"}`
	resp, err := http.Post(srv.URL+"/v1/layout", "application/json", strings.NewReader(req))
	if err != nil {
		t.Fatalf("POST /v1/layout: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if etag := resp.Header.Get("ETag"); etag == "" {
		t.Error("ETag header missing")
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("X-Request-ID header missing")
	}

	var body struct {
		Layout graph.Document     `json:"layout"`
		Stats  pipeline.Stats     `json:"stats"`
		Cache  pipeline.CacheInfo `json:"cache"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Layout.NodeCount() != 6 {
		t.Errorf("node count = %d, want 6", body.Layout.NodeCount())
	}
	if body.Layout.Direction != "TB" {
		t.Errorf("direction = %q, want TB", body.Layout.Direction)
	}
}

func TestLayout_BadRequest(t *testing.T) {
	srv := httptest.NewServer(testServer().Router())
	defer srv.Close()

	tests := []struct {
		name string
		body string
	}{
		{"empty words", `{"words": []}`},
		{"bad direction", `{"words": ["a"], "direction": "XY"}`},
		{"negative depth", `{"words": ["a"], "depth_limit": -1}`},
		{"malformed json", `{"words": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/v1/layout", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestRender_SVG(t *testing.T) {
	srv := httptest.NewServer(testServer().Router())
	defer srv.Close()

	req := `{"words": ["ab", "ac"], "format": "svg"}`
	resp, err := http.Post(srv.URL+"/v1/render", "application/json", strings.NewReader(req))
	if err != nil {
		t.Fatalf("POST /v1/render: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q, want image/svg+xml", ct)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	srv := httptest.NewServer(testServer().Router())
	defer srv.Close()

	req := `{"words": ["ab"], "format": "gif"}`
	resp, err := http.Post(srv.URL+"/v1/render", "application/json", strings.NewReader(req))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRequestID_EchoesIncoming(t *testing.T) {
	srv := httptest.NewServer(testServer().Router())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}
}
