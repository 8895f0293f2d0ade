// Package main starts the agency website.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	webcmd "github.com/educonsult/site/internal/cmd/web"
	"github.com/educonsult/site/internal/platform/config"
)

func main() {
	cfg, err := webcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("web: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = webcmd.Run(ctx, cfg)
	stop()
	if err != nil {
		config.Exitf("web: %v", err)
	}
}
