package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spacesedan/moodlens/internal/analysis"
	"github.com/spacesedan/moodlens/internal/models"
	"github.com/spacesedan/moodlens/internal/monitoring"
)

const REQUEST_ID_HEADER = "X-Request-ID"

type ctxKey struct{}

// Analyzer is the slice of *analysis.Analyzer the HTTP boundary needs.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (models.AnalysisResult, error)
}

type Server struct {
	analyzer     Analyzer
	healthy      *atomic.Bool
	maxBodyBytes int64
}

// New returns the HTTP handler. healthy may be nil when the classifier
// backend has no health probe.
func New(analyzer Analyzer, healthy *atomic.Bool, maxBodyBytes int64) http.Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = 65536
	}
	s := &Server{analyzer: analyzer, healthy: healthy, maxBodyBytes: maxBodyBytes}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/analyze", s.handleAnalyze)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	classifierHealthy := s.healthy == nil || s.healthy.Load()
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":                 true,
		"classifier_healthy": classifierHealthy,
	})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, req *http.Request) {
	reqID := RequestIDFrom(req.Context())

	text, err := s.readText(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), RequestID: reqID})
		return
	}

	result, err := s.analyzer.Analyze(req.Context(), text)
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.Error("[Server] Analysis failed",
				slog.String("request_id", reqID),
				slog.Int("status", status),
				slog.String("error", err.Error()))
		}
		writeJSON(w, status, models.ErrorResponse{Error: analysis.PublicMessage(err), RequestID: reqID})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// readText accepts a JSON body {"text": ...} or a form field named text.
func (s *Server) readText(req *http.Request) (string, error) {
	mediaType, _, _ := mime.ParseMediaType(req.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		req.Body = http.MaxBytesReader(nil, req.Body, s.maxBodyBytes)
		if err := req.ParseMultipartForm(s.maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return "", fmt.Errorf("invalid form: %w", err)
		}
		return req.FormValue("text"), nil
	default:
		var in models.AnalyzeRequest
		if err := decodeJSONBody(req, s.maxBodyBytes, &in); err != nil {
			return "", err
		}
		return in.Text, nil
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrSentimentUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSONBody(req *http.Request, maxBytes int64, out any) error {
	defer req.Body.Close()
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return fmt.Errorf("request body too large")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return fmt.Errorf("invalid json: multiple JSON values")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// requestID keeps a caller supplied X-Request-ID and mints one otherwise.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(REQUEST_ID_HEADER)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(REQUEST_ID_HEADER, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		monitoring.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()

		slog.Debug("[Server] Request served",
			slog.String("request_id", RequestIDFrom(r.Context())),
			slog.String("method", r.Method),
			slog.String("route", route),
			slog.Int("status", status),
			slog.Duration("elapsed", time.Since(start)))
	})
}
