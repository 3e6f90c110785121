// Package environment names the deployment environment (development,
// staging, production) and carries it through context.Context.
//
// Parse maps configuration values such as "prod" or "stage" onto the three
// known environments, defaulting to Development. Middleware attaches the
// environment to every request so that handlers can decide, for example,
// whether to show error details:
//
//	r.Use(environment.Middleware(environment.Parse(cfg.Env)))
//	...
//	if !environment.IsProduction(r.Context()) { ... }
//
// LoggerExtractor plugs into logger.WithContextExtractors.
package environment
