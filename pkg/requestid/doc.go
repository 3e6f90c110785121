// Package requestid assigns an identifier to every request and carries it
// through context.Context.
//
// Middleware reuses a well-formed incoming X-Request-ID header or generates
// a UUID, echoes it in the response and stores it in the request context.
// LoggerExtractor adds it to every log record written with that context,
// and outbound API calls forward it upstream. Code outside HTTP handlers
// (the terminal view, for instance) tags its own work with New and
// WithContext.
package requestid
