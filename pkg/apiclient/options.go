package apiclient

import (
	"net/http"
	"time"
)

// Encoding selects how fields are written into the request body.
type Encoding string

const (
	EncodingMultipart Encoding = "multipart"
	EncodingJSON      Encoding = "json"
)

// Valid reports whether e is a supported encoding.
func (e Encoding) Valid() bool {
	return e == EncodingMultipart || e == EncodingJSON
}

// DeliveryResult describes a finished request.
type DeliveryResult struct {
	Method     string
	URL        string
	StatusCode int
	Duration   time.Duration
	Error      error
}

// DeliveryHook is called after each request.
type DeliveryHook func(result DeliveryResult)

type options struct {
	httpClient  *http.Client
	timeout     time.Duration
	headers     map[string]string
	contentType string
	encoding    Encoding
	userAgent   string
	onDelivery  DeliveryHook
}

func defaultOptions() *options {
	return &options{
		headers:   make(map[string]string),
		encoding:  EncodingMultipart,
		userAgent: "signupkit-apiclient/1.0",
	}
}

// Option configures a Client.
type Option func(*options)

// WithHTTPClient sets a custom HTTP client.
// Useful for custom transports, proxies, or testing.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithTimeout bounds every request. Zero, the default, applies no timeout
// beyond the caller's context.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout >= 0 {
			o.timeout = timeout
		}
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if key != "" && value != "" {
			o.headers[key] = value
		}
	}
}

// WithContentType overrides the declared Content-Type header.
// The body encoding is not affected.
func WithContentType(contentType string) Option {
	return func(o *options) {
		o.contentType = contentType
	}
}

// WithEncoding selects the body encoding. Unknown values are ignored.
func WithEncoding(enc Encoding) Option {
	return func(o *options) {
		if enc.Valid() {
			o.encoding = enc
		}
	}
}

func WithUserAgent(ua string) Option {
	return func(o *options) {
		if ua != "" {
			o.userAgent = ua
		}
	}
}

// WithOnDelivery sets a callback invoked after each request.
func WithOnDelivery(hook DeliveryHook) Option {
	return func(o *options) {
		o.onDelivery = hook
	}
}
