package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/starfederation/datastar-go/datastar"
)

// Context wraps http.Request and http.ResponseWriter with context.Context.
// It embeds the request's context and provides access to HTTP components.
type Context interface {
	context.Context
	Request() *http.Request
	ResponseWriter() http.ResponseWriter
	// SSE returns the request's event generator, creating it on first use.
	// It is nil for requests that are not DataStar requests.
	SSE() *datastar.ServerSentEventGenerator
}

// NewContext creates a new Context from HTTP request and response writer.
// The returned context's Request carries the SSE holder, so responses
// rendered with it share one generator.
func NewContext(w http.ResponseWriter, r *http.Request) Context {
	if _, ok := r.Context().Value(sseHolderKey{}).(*sseHolder); !ok {
		r = r.WithContext(context.WithValue(r.Context(), sseHolderKey{}, &sseHolder{}))
	}
	return &httpContext{w: w, r: r}
}

type httpContext struct {
	w http.ResponseWriter
	r *http.Request
}

func (c *httpContext) Request() *http.Request {
	return c.r
}

func (c *httpContext) ResponseWriter() http.ResponseWriter {
	return c.w
}

func (c *httpContext) SSE() *datastar.ServerSentEventGenerator {
	if !IsDataStar(c.r) {
		return nil
	}
	return sseGenerator(c.w, c.r)
}

func (c *httpContext) Deadline() (deadline time.Time, ok bool) {
	return c.r.Context().Deadline()
}

func (c *httpContext) Done() <-chan struct{} {
	return c.r.Context().Done()
}

func (c *httpContext) Err() error {
	return c.r.Context().Err()
}

func (c *httpContext) Value(key any) any {
	return c.r.Context().Value(key)
}

type sseHolderKey struct{}

type sseHolder struct {
	once sync.Once
	gen  *datastar.ServerSentEventGenerator
}

// sseGenerator returns the generator bound to r, creating it once.
// Requests that did not pass through NewContext get a fresh generator.
func sseGenerator(w http.ResponseWriter, r *http.Request) *datastar.ServerSentEventGenerator {
	h, ok := r.Context().Value(sseHolderKey{}).(*sseHolder)
	if !ok {
		return datastar.NewSSE(w, r)
	}
	h.once.Do(func() {
		h.gen = datastar.NewSSE(w, r)
	})
	return h.gen
}

// ContextKey provides type-safe context keys.
type ContextKey struct{ name string }

func (c *ContextKey) String() string {
	return c.name
}

// NewContextKey creates a new context key.
func NewContextKey(name string) *ContextKey {
	return &ContextKey{name}
}

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not present or has a different type.
func ContextValue[T any](ctx context.Context, key any) T {
	val, _ := ctx.Value(key).(T)
	return val
}
