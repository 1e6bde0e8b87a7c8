package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/soundpress/gigcard/pkg/errors"
	"github.com/soundpress/gigcard/pkg/pipeline"
	"github.com/soundpress/gigcard/pkg/style"
)

// maxRequestBytes bounds render request bodies. Render requests are small
// JSON documents; anything larger is a client error.
const maxRequestBytes = 1 << 20

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode render request"))
		return
	}
	// Server-side renders never read local files.
	opts.ContentPath = ""
	opts.Logger = s.Logger

	result, err := s.Runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if result.Stats.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PNG)
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Key   string `json:"key"`
		Label string `json:"label"`
	}
	all := style.All()
	var out []entry
	for _, key := range style.Keys() {
		out = append(out, entry{Key: key, Label: all[key].Label})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"styles": out})
}

func (s *Server) handleFormats(w http.ResponseWriter, r *http.Request) {
	type entry struct {
		Key    string `json:"key"`
		Label  string `json:"label"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}
	all := style.Formats()
	var out []entry
	for _, key := range style.FormatKeys() {
		f := all[key]
		out = append(out, entry{Key: string(f.Key), Label: f.Label, Width: f.Width, Height: f.Height})
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"formats": out})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidContent:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	}

	s.Logger.Error("request failed",
		"request_id", requestID(r),
		"path", r.URL.Path,
		"code", code,
		"err", err)

	var resp errorResponse
	resp.Error.Code = string(code)
	resp.Error.Message = errors.UserMessage(err)
	s.writeJSON(w, status, resp)
}

// requestLogger tags every request with a UUID and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		r = r.WithContext(withRequestID(r.Context(), id))

		start := time.Now()
		next.ServeHTTP(w, r)
		s.Logger.Debug("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}
