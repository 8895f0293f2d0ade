package web

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/educonsult/site/internal/lead"
	entrypoint "github.com/educonsult/site/internal/platform/cmd"
	"github.com/educonsult/site/internal/services/web/storage/memory"
	"github.com/educonsult/site/internal/services/web/storage/sqlite"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
	if cfg.WhatsAppNumber != "+905391357686" {
		t.Fatalf("WhatsAppNumber = %q, want %q", cfg.WhatsAppNumber, "+905391357686")
	}
	if cfg.DraftStore != StoreMemory {
		t.Fatalf("DraftStore = %q, want %q", cfg.DraftStore, StoreMemory)
	}
	if cfg.DraftTTL != 24*time.Hour {
		t.Fatalf("DraftTTL = %v, want 24h", cfg.DraftTTL)
	}
	if cfg.MaxUploadBytes != lead.MaxDocumentBytes {
		t.Fatalf("MaxUploadBytes = %d, want %d", cfg.MaxUploadBytes, lead.MaxDocumentBytes)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("Redis.Addr = %q, want %q", cfg.Redis.Addr, "localhost:6379")
	}
	if cfg.Mail.Enabled() {
		t.Fatalf("Mail.Enabled() = true, want false without SMTP settings")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Fatalf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestParseConfigReadsPrefixedEnv(t *testing.T) {
	t.Setenv(entrypoint.EnvPrefix+"HTTP_ADDR", "127.0.0.1:9100")
	t.Setenv(entrypoint.EnvPrefix+"DRAFT_STORE", "sqlite")
	t.Setenv(entrypoint.EnvPrefix+"DRAFT_TTL", "2h")
	t.Setenv(entrypoint.EnvPrefix+"SMTP_HOST", "smtp.example.com")
	t.Setenv(entrypoint.EnvPrefix+"SMTP_FROM", "site@example.com")
	t.Setenv(entrypoint.EnvPrefix+"LEADS_INBOX", "leads@example.com")
	t.Setenv(entrypoint.EnvPrefix+"TRUST_FORWARDED_PROTO", "true")

	cfg, err := ParseConfig(flag.NewFlagSet("web", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9100" || cfg.DraftStore != StoreSQLite || cfg.DraftTTL != 2*time.Hour {
		t.Fatalf("cfg = %+v", cfg)
	}
	if !cfg.Mail.Enabled() {
		t.Fatalf("Mail.Enabled() = false, want true")
	}
	if !cfg.RequestMeta.TrustForwardedProto {
		t.Fatalf("RequestMeta.TrustForwardedProto = false, want true")
	}
}

func TestParseConfigFlagsOverrideEnv(t *testing.T) {
	t.Setenv(entrypoint.EnvPrefix+"HTTP_ADDR", "127.0.0.1:9100")

	cfg, err := ParseConfig(flag.NewFlagSet("web", flag.ContinueOnError), []string{
		"-http-addr", "127.0.0.1:9200",
		"-draft-store", "redis",
		"-redis-addr", "redis://cache:6379",
		"-draft-ttl", "30m",
		"-log-format", "json",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9200" {
		t.Fatalf("HTTPAddr = %q, want flag value", cfg.HTTPAddr)
	}
	if cfg.DraftStore != StoreRedis || cfg.Redis.Addr != "redis://cache:6379" {
		t.Fatalf("store = %q at %q", cfg.DraftStore, cfg.Redis.Addr)
	}
	if cfg.DraftTTL != 30*time.Minute || cfg.Logging.Format != "json" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestParseConfigRejectsUnknownFlag(t *testing.T) {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := ParseConfig(fs, []string{"-nope"}); err == nil {
		t.Fatalf("ParseConfig() error = nil, want unknown flag error")
	}
}

func TestParseConfigValidates(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown store", args: []string{"-draft-store", "bolt"}, want: "DraftStore: oneof"},
		{name: "zero ttl", args: []string{"-draft-ttl", "0s"}, want: "DraftTTL: gt"},
		{name: "bad whatsapp", args: []string{"-whatsapp", "0539 135"}, want: "WhatsAppNumber: e164"},
		{name: "sqlite without path", args: []string{"-draft-store", "sqlite", "-db-path", ""}, want: "DBPath: required_if"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig(flag.NewFlagSet("web", flag.ContinueOnError), tc.args)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("ParseConfig(%v) error = %v, want %q", tc.args, err, tc.want)
			}
		})
	}
}

func TestParseConfigNormalizesStoreName(t *testing.T) {
	cfg, err := ParseConfig(flag.NewFlagSet("web", flag.ContinueOnError), []string{"-draft-store", " SQLite "})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.DraftStore != StoreSQLite {
		t.Fatalf("DraftStore = %q, want %q", cfg.DraftStore, StoreSQLite)
	}
}

func TestOpenDraftStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store, err := openDraftStore(ctx, Config{DraftStore: "Memory"})
	if err != nil {
		t.Fatalf("openDraftStore(memory) error = %v", err)
	}
	if _, ok := store.(*memory.Store); !ok {
		t.Fatalf("openDraftStore(memory) = %T, want *memory.Store", store)
	}

	path := filepath.Join(t.TempDir(), "drafts.db")
	store, err = openDraftStore(ctx, Config{DraftStore: StoreSQLite, DBPath: path})
	if err != nil {
		t.Fatalf("openDraftStore(sqlite) error = %v", err)
	}
	defer store.Close()
	if _, ok := store.(*sqlite.Store); !ok {
		t.Fatalf("openDraftStore(sqlite) = %T, want *sqlite.Store", store)
	}
	if _, ok := store.(draftPruner); !ok {
		t.Fatalf("sqlite store should prune expired drafts")
	}

	if _, err := openDraftStore(ctx, Config{DraftStore: "postgres"}); err == nil {
		t.Fatalf("openDraftStore(postgres) error = nil, want unknown store error")
	}
}

func TestLeadSinkAddsMailWhenConfigured(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if _, ok := leadSink(Config{}, logger).(lead.LogSink); !ok {
		t.Fatalf("leadSink() without SMTP should only log")
	}
	cfg := Config{Mail: lead.MailConfig{Host: "smtp.example.com", Port: 587, From: "site@example.com", To: "leads@example.com"}}
	multi, ok := leadSink(cfg, logger).(lead.MultiSink)
	if !ok || len(multi) != 2 {
		t.Fatalf("leadSink() with SMTP = %T, want log and mail sinks", leadSink(cfg, logger))
	}
}

func TestLoadContent(t *testing.T) {
	t.Parallel()

	content, err := loadContent("")
	if err != nil || content == nil {
		t.Fatalf("loadContent(\"\") = %v, %v", content, err)
	}
	if _, err := loadContent(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("loadContent(missing) error = nil")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("unknown_field: true\n"), 0o600); err != nil {
		t.Fatalf("write content: %v", err)
	}
	if _, err := loadContent(bad); err == nil {
		t.Fatalf("loadContent(bad) error = nil")
	}
}

type countingPruner struct {
	calls atomic.Int32
}

func (p *countingPruner) PruneExpired(context.Context) (int64, error) {
	p.calls.Add(1)
	return 1, nil
}

func TestPruneDraftsRunsUntilCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	pruner := &countingPruner{}
	done := make(chan struct{})
	go func() {
		pruneDrafts(ctx, pruner, time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	deadline := time.Now().Add(5 * time.Second)
	for pruner.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
	if pruner.calls.Load() == 0 {
		t.Fatalf("pruneDrafts never pruned")
	}
}
