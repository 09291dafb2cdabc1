// Package httpserver wraps http.Server with graceful shutdown.
//
// Run blocks until the context is canceled, SIGINT/SIGTERM arrives, or the
// listener fails; in-flight requests get the configured shutdown timeout
// to complete.
//
//	srv := httpserver.New(
//		httpserver.WithAddr(":8080"),
//		httpserver.WithLogger(log),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", slog.Any("error", err))
//	}
package httpserver
