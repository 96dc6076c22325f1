// Package logger provides a configured slog.Logger factory with functional
// options for level, format, output, and static attributes, plus attribute
// helpers for the identifiers used across the notification engine
// (notification, alert and product ids).
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("service", "freshwatch")),
//	)
package logger
