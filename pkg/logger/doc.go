// Package logger builds *slog.Logger values with functional options, helper
// attribute constructors and context-driven attribute injection.
//
// New is the single factory. Options select the output format (text or
// json), the minimum level, static attributes, and ContextExtractor callbacks
// that pull request-scoped values such as the request id out of the context
// on every log call:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "signup"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "signup submitted",
//	    logger.Component("registration"),
//	    logger.StatusCode(201),
//	)
//
// WithEnvironment picks per-environment defaults: text at debug level for
// development, json at info level for staging and production.
//
// Attribute helpers keep key names consistent across packages. Error and
// Errors return an empty Attr for nil errors, so they can be passed
// unconditionally.
package logger
