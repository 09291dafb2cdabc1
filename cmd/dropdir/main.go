package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dropdir/dropdir/modules/browser"
	"github.com/dropdir/dropdir/pkg/browse"
	"github.com/dropdir/dropdir/pkg/config"
	"github.com/dropdir/dropdir/pkg/httpserver"
	"github.com/dropdir/dropdir/pkg/logger"
)

type logConfig struct {
	Level  slog.Level    `env:"LOG_LEVEL" envDefault:"info"`
	Format logger.Format `env:"LOG_FORMAT" envDefault:"json"`
}

func main() {
	var (
		logCfg     logConfig
		serverCfg  httpserver.Config
		browserCfg browser.Config
	)
	config.MustLoad(&logCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&browserCfg)

	log := logger.New(
		logger.WithLevel(logCfg.Level),
		logger.WithFormat(logCfg.Format),
		logger.WithAttr(slog.String("app", "dropdir")),
	)

	files, err := browse.New(browserCfg.Root)
	if err != nil {
		log.Error("open root directory", "root", browserCfg.Root, "error", err)
		os.Exit(1)
	}

	svc := browser.NewService(files,
		browser.WithLogger(log),
		browser.WithMaxUploadSize(browserCfg.MaxUploadSize),
	)

	r := chi.NewRouter()
	r.Mount("/", svc.Handle())

	log.Info("starting server", "addr", serverCfg.Addr, "root", files.Root())

	srv := httpserver.NewFromConfig(serverCfg, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), r); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
