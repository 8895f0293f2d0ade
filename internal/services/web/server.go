package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/educonsult/site/internal/lead"
	"github.com/educonsult/site/internal/platform/timeouts"
	"github.com/educonsult/site/internal/services/shared/i18nhttp"
	"github.com/educonsult/site/internal/services/web/composition"
	module "github.com/educonsult/site/internal/services/web/module"
	"github.com/educonsult/site/internal/services/web/modules"
	"github.com/educonsult/site/internal/services/web/modules/apply"
	"github.com/educonsult/site/internal/services/web/platform/httpx"
	"github.com/educonsult/site/internal/services/web/platform/observability"
	"github.com/educonsult/site/internal/services/web/platform/requestmeta"
	"github.com/educonsult/site/internal/services/web/routepath"
	webstatic "github.com/educonsult/site/internal/services/web/static"
	"github.com/educonsult/site/internal/services/web/storage"
	"github.com/educonsult/site/internal/site"
)

// Config defines startup inputs for the website.
type Config struct {
	HTTPAddr string
	// WhatsAppNumber is the agency contact number in international form.
	WhatsAppNumber string
	Site           *site.Content
	Logger         *slog.Logger

	Drafts storage.DraftStore
	// Leads receives finished applications; nil logs them.
	Leads lead.Sink
	Apply apply.Config

	RequestSchemePolicy requestmeta.SchemePolicy
}

// Server hosts the website HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *slog.Logger
}

// NewHandler builds the root handler: static assets, the health check and
// the site modules behind language resolution and request middleware.
func NewHandler(cfg Config) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	leads := cfg.Leads
	if leads == nil {
		leads = lead.LogSink{Logger: logger}
	}
	h, err := composition.ComposeAppHandler(composition.ComposeInput{
		ModuleDependencies: modules.Dependencies{
			Shared: module.Dependencies{
				WhatsAppNumber: cfg.WhatsAppNumber,
				Site:           cfg.Site,
				Logger:         logger,
			},
			Drafts: cfg.Drafts,
			Leads:  leads,
			Apply:  cfg.Apply,
		},
		RequestSchemePolicy: cfg.RequestSchemePolicy,
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, webstatic.Handler(routepath.StaticPrefix))
	rootMux.Handle("/", i18nhttp.Middleware(skipLanguage)(h))
	return otelhttp.NewHandler(httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		httpx.SecurityHeaders(),
		observability.RequestLogger(logger),
	), "http.server"), nil
}

// skipLanguage reports paths that carry no localized content.
func skipLanguage(path string) bool {
	return path == routepath.Health || strings.HasPrefix(path, routepath.StaticPrefix)
}

// NewServer validates config and constructs the website server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server
// stop. Cancellation drains in-flight requests before returning.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	s.logger.Info("web listening", "addr", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close stops the HTTP server immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
