package http

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	applog "reviewdesk/internal/log"
	"reviewdesk/internal/metrics"
	"reviewdesk/internal/middleware/ratelimit"
	"reviewdesk/internal/middleware/security"
	"reviewdesk/internal/middleware/trace"
	"reviewdesk/internal/services"
	appweb "reviewdesk/web"
)

// Deps are the collaborators the server needs. Templates and Static default
// to the embedded web assets.
type Deps struct {
	Reviews            *services.ReviewService
	Metrics            *metrics.Metrics
	Logger             *applog.Logger
	RateLimitPerMinute int
	Templates          fs.FS
	Static             fs.FS
}

type Server struct {
	http.Server
	templates *template.Template
	reviews   *services.ReviewService
	metrics   *metrics.Metrics
	logger    *applog.Logger
	limiter   *ratelimit.Limiter
	startedAt time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Templates == nil {
		deps.Templates = appweb.TemplatesFS
	}
	if deps.Static == nil {
		deps.Static = appweb.StaticFS
	}

	mux := http.NewServeMux()
	s := &Server{
		reviews:   deps.Reviews,
		metrics:   deps.Metrics,
		logger:    logger.WithComponent(applog.ComponentHTTP),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.RateLimitPerMinute}),
		startedAt: time.Now(),
	}

	t, err := template.ParseFS(deps.Templates, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", applog.FieldError, err)
	} else {
		s.templates = t
	}

	if sub, err := fs.Sub(deps.Static, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/metrics", s.metrics.Handler())

	// UI partials
	mux.HandleFunc("/ui/summary", s.handleSummary)
	mux.HandleFunc("/ui/tabs", s.handleTabs)
	mux.HandleFunc("/ui/reject-dialog", s.handleRejectDialog)

	// Review actions
	mux.HandleFunc("/expenses/approve", s.handleApprove)
	mux.HandleFunc("/expenses/reject", s.handleReject)

	clientIP := security.NewClientIP()
	limited := s.limiter.Middleware(ratelimit.Options{
		ExtractKey: clientIP.Extract,
		Skip:       ratelimit.SafeMethods,
		OnLimit: func(w http.ResponseWriter, r *http.Request) {
			s.metrics.RateLimited.Inc()
			applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
				applog.FieldClientIP, clientIP.Extract(r),
				applog.FieldPath, r.URL.Path)
			TooManyRequestsError().Write(w)
		},
	})(mux)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(limited)
	traced := trace.NewMiddleware(logger, clientIP.Extract, s.metrics).Middleware(headers)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           traced,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown stops background routines and the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

// render executes a named template into a buffer.
func (s *Server) render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderOrFail writes the template as the whole response, or a 500 fragment.
func (s *Server) renderOrFail(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		InternalServerError("Templates not loaded").Write(w)
		return
	}
	body, err := s.render(name, data)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Template execution failed",
			applog.FieldOperation, applog.OpRender,
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeInternal,
			"template", name)
		InternalServerError("Rendering failed").Write(w)
		return
	}
	NewHTMXResponse().Body(body).Header("Content-Type", "text/html; charset=utf-8").Write(w)
}
