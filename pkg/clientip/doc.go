// Package clientip resolves the client address of an HTTP request and carries
// it in the request context.
//
// FromRequest prefers proxy headers (CF-Connecting-IP, X-Forwarded-For,
// X-Real-IP) and falls back to RemoteAddr. Only deploy it behind a proxy that
// overwrites those headers; otherwise clients can choose their own address.
//
//	r.Use(clientip.Middleware)
//	...
//	ip := clientip.FromContext(r.Context())
package clientip
