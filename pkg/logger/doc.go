// Package logger builds *slog.Logger instances for beacon services and
// provides attribute helpers that keep log keys consistent across packages.
//
// New creates a logger from Option functions: output format (text or json),
// minimum level, static attributes and ContextExtractor callbacks that pull
// request-scoped values (request id, client IP, visitor id) out of the context on
// every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.AppEnv, "beacon-proxy"),
//	    logger.WithConfig(cfg.Log),
//	    logger.WithContextExtractors(collect.LoggerExtractors()...),
//	)
//	log.DebugContext(ctx, "track page view",
//	    logger.AccountID("UA-1-1"),
//	    logger.Path("/home"),
//	)
//
// LOG_LEVEL and LOG_FORMAT, applied through WithConfig, override the
// environment presets.
package logger
