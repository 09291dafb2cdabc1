// Package logger builds configured slog loggers.
//
// The factory wraps the standard library handlers with the small amount of
// configuration this application needs: output format (JSON for log
// aggregation, text for development), level, destination, and static
// attributes applied to every record.
//
//	log := logger.New(
//		logger.WithFormat(logger.FormatText),
//		logger.WithLevel(slog.LevelDebug),
//		logger.WithAttr(slog.String("service", "dropdir")),
//	)
package logger
