package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/signupkit/pkg/apiclient"
	"github.com/dmitrymomot/signupkit/pkg/logger"
)

// DefaultPath is the signup endpoint relative to the API base URL.
const DefaultPath = "/auth/signup"

// Transport posts form fields to the API.
// *apiclient.Client satisfies it.
type Transport interface {
	Post(ctx context.Context, path string, fields []apiclient.Field) (*apiclient.Result, error)
}

// Snapshot is a copy of the store state.
type Snapshot struct {
	Submitting bool
	Payload    json.RawMessage
}

// Observer is called after every state change.
type Observer func(ctx context.Context, s Snapshot)

// Store holds the state of the signup submission.
type Store struct {
	transport Transport
	notifier  Notifier
	logger    *slog.Logger
	path      string
	observers []Observer

	mu         sync.RWMutex
	submitting bool
	payload    json.RawMessage
}

// Option configures a Store.
type Option func(*Store)

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPath overrides DefaultPath.
func WithPath(path string) Option {
	return func(s *Store) {
		if path != "" {
			s.path = path
		}
	}
}

// WithObserver registers a state change callback.
// Observers run synchronously on the goroutine calling RegisterUser.
func WithObserver(o Observer) Option {
	return func(s *Store) {
		if o != nil {
			s.observers = append(s.observers, o)
		}
	}
}

// NewStore creates a store. A nil notifier discards notifications.
// It panics when transport is nil.
func NewStore(transport Transport, notifier Notifier, opts ...Option) *Store {
	if transport == nil {
		panic(ErrTransportMissing)
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	s := &Store{
		transport: transport,
		notifier:  notifier,
		logger:    slog.Default(),
		path:      DefaultPath,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("registration"))
	return s
}

// RegisterUser submits p. It returns the decoded response on success and nil
// on any failure, after notifying the user once.
func (s *Store) RegisterUser(ctx context.Context, p Payload) *Response {
	s.setSubmitting(ctx, true)
	start := time.Now()

	resp, err := s.submit(ctx, p)

	s.mu.Lock()
	s.submitting = false
	if err == nil {
		s.payload = resp.Data
	}
	s.mu.Unlock()
	s.emit(ctx)

	if err != nil {
		s.logger.ErrorContext(ctx, "signup request failed",
			logger.Error(err),
			logger.Duration(time.Since(start)),
			slog.Any("payload", p),
		)
		s.notifier.Notify(ctx, Notification{Level: LevelError, Message: FailureMessage})
		return nil
	}

	s.logger.InfoContext(ctx, "signup request completed",
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)
	return resp
}

func (s *Store) submit(ctx context.Context, p Payload) (*Response, error) {
	res, err := s.transport.Post(ctx, s.path, p.Fields())
	if err != nil {
		return nil, errors.Join(ErrSignupFailed, err)
	}
	if res == nil {
		return nil, fmt.Errorf("%w: empty result", ErrSignupFailed)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrSignupFailed, res.StatusCode)
	}
	resp, err := decodeResponse(res.StatusCode, res.Body)
	if err != nil {
		return nil, errors.Join(ErrSignupFailed, err)
	}
	return resp, nil
}

func (s *Store) setSubmitting(ctx context.Context, v bool) {
	s.mu.Lock()
	s.submitting = v
	s.mu.Unlock()
	s.emit(ctx)
}

func (s *Store) emit(ctx context.Context) {
	if len(s.observers) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, o := range s.observers {
		o(ctx, snap)
	}
}

func (s *Store) IsSubmitting() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submitting
}

// Payload returns the data of the last successful response, or nil.
func (s *Store) Payload() json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.payload
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Submitting: s.submitting, Payload: s.payload}
}
