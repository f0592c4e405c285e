package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/pprof"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"scholarship-go/internal/config"
	"scholarship-go/internal/metrics"
	"scholarship-go/internal/model"
	"scholarship-go/internal/providers/serper"
	"scholarship-go/internal/query"
	"scholarship-go/internal/services/scholarship"
)

type ScholarshipSearcher interface {
	Search(ctx context.Context, base string, filters query.Filters) (model.SearchResponse, error)
}

type Handler struct {
	service        ScholarshipSearcher
	policy         config.UpstreamFailurePolicy
	allowedOrigins []string
	logger         *zap.Logger
}

func NewHandler(service ScholarshipSearcher, policy config.UpstreamFailurePolicy, allowedOrigins []string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if policy == "" {
		policy = config.PolicyEmpty
	}
	return &Handler{service: service, policy: policy, allowedOrigins: allowedOrigins, logger: logger}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(h.corsOptions()))

	r.Get("/", h.handleRoot)
	r.Get("/search", h.handleSearch)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Post("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		r.Get("/allocs", pprof.Handler("allocs").ServeHTTP)
		r.Get("/goroutine", pprof.Handler("goroutine").ServeHTTP)
		r.Get("/heap", pprof.Handler("heap").ServeHTTP)
	})
	return r
}

// corsOptions allows every method and header. A "*" origin is echoed back
// per request so credentialed browser requests are accepted.
func (h *Handler) corsOptions() cors.Options {
	opts := cors.Options{
		AllowedMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	if slices.Contains(h.allowedOrigins, "*") {
		opts.AllowOriginFunc = func(r *http.Request, origin string) bool { return true }
		return opts
	}
	opts.AllowedOrigins = h.allowedOrigins
	return opts
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"Hello": "World!"})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	base := values.Get("query")
	if !values.Has("query") {
		metrics.RecordOutcome("invalid")
		writeDetail(w, http.StatusUnprocessableEntity, "query parameter is required")
		return
	}

	filters := query.FiltersFromValues(values)
	metrics.RecordRequest(!filters.IsZero())

	resp, err := h.service.Search(r.Context(), base, filters)
	if err != nil {
		h.writeSearchError(w, r, err)
		return
	}

	metrics.RecordOutcome("ok")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeSearchError(w http.ResponseWriter, r *http.Request, err error) {
	logger := h.logger.With(zap.String("request_id", middleware.GetReqID(r.Context())))

	var credErr *scholarship.CredentialError
	switch {
	case errors.As(err, &credErr):
		metrics.RecordOutcome("misconfigured")
		logger.Error("missing credential", zap.String("name", credErr.Name))
		writeDetail(w, http.StatusInternalServerError, credErr.Error())
	case errors.Is(err, scholarship.ErrNoResults):
		metrics.RecordOutcome("no_results")
		writeDetail(w, http.StatusNotFound, "No URLs found in search results")
	case errors.Is(err, serper.ErrUpstreamUnavailable), errors.Is(err, serper.ErrMalformedResponse):
		metrics.RecordOutcome("upstream_unavailable")
		logger.Warn("search provider failed", zap.Error(err), zap.String("policy", string(h.policy)))
		if h.policy == config.PolicyError {
			writeDetail(w, http.StatusBadGateway, "search provider unavailable")
			return
		}
		writeJSON(w, http.StatusOK, []any{})
	default:
		metrics.RecordOutcome("error")
		logger.Error("search failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Info("http request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// requestID assigns a UUID to requests that arrive without an X-Request-Id
// header and echoes the ID back to the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(middleware.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(middleware.RequestIDHeader, id)
		}
		w.Header().Set(middleware.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
