// Package cmd holds the startup plumbing shared by the site's binaries.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"strings"

	"github.com/educonsult/site/internal/platform/config"
	"github.com/educonsult/site/internal/platform/otel"
	"github.com/educonsult/site/internal/platform/timeouts"
)

// ServiceWeb names the public website process in telemetry and logs.
const ServiceWeb = "educonsult-web"

// EnvPrefix is the environment variable prefix for the website process.
const EnvPrefix = "EDUCONSULT_WEB_"

// Load fills cfg from EnvPrefix-ed environment variables, lets bind
// register flag overrides on fs, parses args, then validates the result.
// normalize, when set, runs between parsing and validation.
func Load[T any](cfg *T, fs *flag.FlagSet, args []string, bind func(*flag.FlagSet, *T), normalize func(*T)) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if err := config.ParseEnvWithPrefix(cfg, EnvPrefix); err != nil {
		return err
	}
	if bind != nil {
		bind(fs, cfg)
	}
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if normalize != nil {
		normalize(cfg)
	}
	return config.Validate(cfg)
}

// RunWithTelemetry installs tracing for service, runs the process body and
// flushes spans on the way out.
func RunWithTelemetry(ctx context.Context, service string, telemetry otel.Options, logger *slog.Logger, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	shutdown, err := otel.Setup(ctx, service, telemetry)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Error("otel shutdown", "service", service, "error", err)
		}
	}()
	return run(ctx)
}
