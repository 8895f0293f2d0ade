// Package web parses website flags and launches the site process.
package web

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/educonsult/site/internal/lead"
	entrypoint "github.com/educonsult/site/internal/platform/cmd"
	"github.com/educonsult/site/internal/platform/logging"
	"github.com/educonsult/site/internal/platform/otel"
	"github.com/educonsult/site/internal/services/web"
	"github.com/educonsult/site/internal/services/web/modules/apply"
	"github.com/educonsult/site/internal/services/web/platform/requestmeta"
	"github.com/educonsult/site/internal/services/web/storage"
	"github.com/educonsult/site/internal/services/web/storage/memory"
	redisstore "github.com/educonsult/site/internal/services/web/storage/redis"
	"github.com/educonsult/site/internal/services/web/storage/sqlite"
	"github.com/educonsult/site/internal/site"
)

// Draft store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

// pruneInterval is how often the SQLite store drops expired drafts.
const pruneInterval = time.Hour

// Config holds the website command configuration. Environment variables
// carry the EDUCONSULT_WEB_ prefix.
type Config struct {
	HTTPAddr       string        `env:"HTTP_ADDR" envDefault:":8080" validate:"required"`
	WhatsAppNumber string        `env:"WHATSAPP_NUMBER" envDefault:"+905391357686" validate:"required,e164"`
	ContentPath    string        `env:"CONTENT_PATH"`
	DraftStore     string        `env:"DRAFT_STORE" envDefault:"memory" validate:"oneof=memory sqlite redis"`
	DBPath         string        `env:"DB_PATH" envDefault:"data/drafts.db" validate:"required_if=DraftStore sqlite"`
	DraftTTL       time.Duration `env:"DRAFT_TTL" envDefault:"24h" validate:"gt=0"`
	MaxUploadBytes int64         `env:"MAX_UPLOAD_BYTES" envDefault:"10485760" validate:"gt=0"`

	Redis       redisstore.Options
	Mail        lead.MailConfig
	Logging     logging.Options
	Telemetry   otel.Options
	RequestMeta requestmeta.SchemePolicy
}

// ParseConfig parses environment and flags into Config and validates it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.Load(&cfg, fs, args, bindFlags, normalize); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func bindFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.WhatsAppNumber, "whatsapp", cfg.WhatsAppNumber, "Agency WhatsApp number in international form")
	fs.StringVar(&cfg.ContentPath, "content", cfg.ContentPath, "Site content YAML file; empty uses the built-in content")
	fs.StringVar(&cfg.DraftStore, "draft-store", cfg.DraftStore, "Draft store backend: memory, sqlite or redis")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite draft database path")
	fs.StringVar(&cfg.Redis.Addr, "redis-addr", cfg.Redis.Addr, "Redis address for the redis draft store")
	fs.DurationVar(&cfg.DraftTTL, "draft-ttl", cfg.DraftTTL, "How long an untouched application draft is kept")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "Log format: text or json")
}

func normalize(cfg *Config) {
	cfg.DraftStore = strings.ToLower(strings.TrimSpace(cfg.DraftStore))
	cfg.WhatsAppNumber = strings.TrimSpace(cfg.WhatsAppNumber)
}

// Run starts the website server.
func Run(ctx context.Context, cfg Config) error {
	logger := logging.Init(cfg.Logging)
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, cfg.Telemetry, logger, func(ctx context.Context) error {
		content, err := loadContent(cfg.ContentPath)
		if err != nil {
			return err
		}
		drafts, err := openDraftStore(ctx, cfg)
		if err != nil {
			return fmt.Errorf("open draft store: %w", err)
		}
		defer func() {
			if err := drafts.Close(); err != nil {
				logger.Error("close draft store", "error", err)
			}
		}()
		if pruner, ok := drafts.(draftPruner); ok {
			go pruneDrafts(ctx, pruner, pruneInterval, logger)
		}

		server, err := web.NewServer(ctx, web.Config{
			HTTPAddr:       cfg.HTTPAddr,
			WhatsAppNumber: cfg.WhatsAppNumber,
			Site:           content,
			Logger:         logger,
			Drafts:         drafts,
			Leads:          leadSink(cfg, logger),
			Apply: apply.Config{
				DraftTTL:       cfg.DraftTTL,
				MaxUploadBytes: cfg.MaxUploadBytes,
			},
			RequestSchemePolicy: cfg.RequestMeta,
		})
		if err != nil {
			return fmt.Errorf("init web server: %w", err)
		}
		defer server.Close()

		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve web: %w", err)
		}
		return nil
	})
}

func loadContent(path string) (*site.Content, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return site.Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}
	content, err := site.Load(data)
	if err != nil {
		return nil, fmt.Errorf("load site content %s: %w", path, err)
	}
	return content, nil
}

func openDraftStore(ctx context.Context, cfg Config) (storage.DraftStore, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.DraftStore)) {
	case "", StoreMemory:
		return memory.New(), nil
	case StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case StoreRedis:
		store, err := redisstore.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown draft store %q", cfg.DraftStore)
	}
}

// leadSink logs every submission and also emails it when SMTP is set up.
func leadSink(cfg Config, logger *slog.Logger) lead.Sink {
	logSink := lead.LogSink{Logger: logger}
	if !cfg.Mail.Enabled() {
		return logSink
	}
	return lead.MultiSink{logSink, lead.NewMailSink(cfg.Mail)}
}

type draftPruner interface {
	PruneExpired(ctx context.Context) (int64, error)
}

func pruneDrafts(ctx context.Context, store draftPruner, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := store.PruneExpired(ctx)
			if err != nil {
				logger.Warn("prune drafts", "error", err)
				continue
			}
			if removed > 0 {
				logger.Debug("pruned expired drafts", "count", removed)
			}
		}
	}
}
