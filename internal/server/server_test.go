package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/soundpress/gigcard/pkg/pipeline"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), logger, "")
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealth(t *testing.T) {
	ts := testServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if id := resp.Header.Get("X-Request-ID"); id == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestRender(t *testing.T) {
	ts := testServer(t)
	body := `{
		"style": "minimal",
		"format": "story",
		"content": {"id": "rec-1", "type": "concertReport", "title": "Lange Nacht", "locale": "de"}
	}`
	resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("response is not a valid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 1080 || b.Dy() != 1920 {
		t.Errorf("rendered %dx%d, want 1080x1920", b.Dx(), b.Dy())
	}
}

func TestRenderErrors(t *testing.T) {
	ts := testServer(t)
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown style",
			body:       `{"style": "vaporwave"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_STYLE",
		},
		{
			name:       "unknown format",
			body:       `{"format": "square"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_FORMAT",
		},
		{
			name:       "malformed json",
			body:       `{"style": `,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_INPUT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/v1/render", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			var er errorResponse
			if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
				t.Fatalf("error body not JSON: %v", err)
			}
			if er.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", er.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestStylesAndFormats(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/v1/styles")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var styles struct {
		Styles []struct{ Key, Label string } `json:"styles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&styles); err != nil {
		t.Fatal(err)
	}
	if len(styles.Styles) != 5 {
		t.Errorf("styles = %d, want 5", len(styles.Styles))
	}

	resp, err = http.Get(ts.URL + "/v1/formats")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var formats struct {
		Formats []struct {
			Key           string
			Width, Height int
		} `json:"formats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&formats); err != nil {
		t.Fatal(err)
	}
	if len(formats.Formats) != 2 {
		t.Errorf("formats = %d, want 2", len(formats.Formats))
	}
	for _, f := range formats.Formats {
		if f.Width != 1080 {
			t.Errorf("format %s width = %d, want 1080", f.Key, f.Width)
		}
	}
}
