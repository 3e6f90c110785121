package signup

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/signupkit/pkg/apiclient"
	"github.com/dmitrymomot/signupkit/pkg/logger"
	"github.com/dmitrymomot/signupkit/svc/registration"
)

// Config holds the signup module settings.
type Config struct {
	APIBaseURL string `env:"API_BASE_URL,required"`
	APIPath    string `env:"SIGNUP_API_PATH" envDefault:"/auth/signup"`
	BasePath   string `env:"SIGNUP_BASE_PATH" envDefault:"/signup"`
	LoginURL   string `env:"SIGNUP_LOGIN_URL" envDefault:"/login"`

	// APIEncoding is "multipart" or "json".
	APIEncoding string `env:"SIGNUP_API_ENCODING" envDefault:"multipart"`
	// The upstream API has always received multipart bodies labelled as
	// application/json. StrictContentType sends the real content type instead.
	StrictContentType bool          `env:"SIGNUP_API_STRICT_CONTENT_TYPE" envDefault:"false"`
	APITimeout        time.Duration `env:"SIGNUP_API_TIMEOUT" envDefault:"0"`

	// SubmitRateLimit is the number of submissions allowed per client IP
	// per minute. Zero disables the limit.
	SubmitRateLimit int `env:"SIGNUP_SUBMIT_RATE_LIMIT" envDefault:"10"`
}

// DefaultConfig returns the defaults for everything but the API base URL.
func DefaultConfig(apiBaseURL string) Config {
	return Config{
		APIBaseURL:  apiBaseURL,
		APIPath:     registration.DefaultPath,
		BasePath:    "/signup",
		LoginURL:    "/login",
		APIEncoding: string(apiclient.EncodingMultipart),

		SubmitRateLimit: 10,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig(c.APIBaseURL)
	if c.APIPath == "" {
		c.APIPath = d.APIPath
	}
	if c.BasePath == "" {
		c.BasePath = d.BasePath
	}
	if c.LoginURL == "" {
		c.LoginURL = d.LoginURL
	}
	if c.APIEncoding == "" {
		c.APIEncoding = d.APIEncoding
	}
	return c
}

// NewClient builds the upstream API client described by cfg.
// Every finished request is logged at debug level, failures at warn.
func NewClient(cfg Config, log *slog.Logger, opts ...apiclient.Option) (*apiclient.Client, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.Discard()
	}

	enc := apiclient.Encoding(cfg.APIEncoding)
	if !enc.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEncoding, cfg.APIEncoding)
	}

	clientOpts := []apiclient.Option{
		apiclient.WithEncoding(enc),
		apiclient.WithTimeout(cfg.APITimeout),
		apiclient.WithOnDelivery(func(r apiclient.DeliveryResult) {
			attrs := []any{
				logger.Method(r.Method),
				logger.URL(r.URL),
				logger.StatusCode(r.StatusCode),
				logger.Duration(r.Duration),
				logger.Component("apiclient"),
			}
			if r.Error != nil {
				log.Warn("upstream request failed", append(attrs, logger.Error(r.Error))...)
				return
			}
			log.Debug("upstream request", attrs...)
		}),
	}
	if !cfg.StrictContentType {
		clientOpts = append(clientOpts, apiclient.WithContentType("application/json"))
	}

	return apiclient.New(cfg.APIBaseURL, append(clientOpts, opts...)...)
}
