package signup

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/signupkit/handler"
	"github.com/dmitrymomot/signupkit/pkg/binder"
	"github.com/dmitrymomot/signupkit/pkg/form"
	"github.com/dmitrymomot/signupkit/pkg/i18n"
	"github.com/dmitrymomot/signupkit/pkg/logger"
	"github.com/dmitrymomot/signupkit/pkg/ratelimiter"
	"github.com/dmitrymomot/signupkit/svc/registration"
)

// Service serves the signup page. Mount its Handle at Config.BasePath.
type Service struct {
	cfg          Config
	transport    registration.Transport
	views        *Views
	errorHandler handler.ErrorHandler[handler.Context]
	logger       *slog.Logger
	translator   *i18n.Translator

	submitLimiter ratelimiter.Limiter
	submitKey     ratelimiter.KeyFunc
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithViews replaces the default views. Nil members keep their defaults.
func WithViews(v *Views) ServiceOption {
	return func(s *Service) {
		s.views = v.withDefaults()
	}
}

// WithErrorHandler sets the handler for binding and rendering errors.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) ServiceOption {
	return func(s *Service) {
		if h != nil {
			s.errorHandler = h
		}
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTranslator replaces the bundled error message translations.
func WithTranslator(t *i18n.Translator) ServiceOption {
	return func(s *Service) {
		if t != nil {
			s.translator = t
		}
	}
}

// WithSubmitLimiter throttles form submissions per key, usually the client IP.
// Validation requests are not limited.
func WithSubmitLimiter(l ratelimiter.Limiter, key ratelimiter.KeyFunc) ServiceOption {
	return func(s *Service) {
		if l != nil && key != nil {
			s.submitLimiter = l
			s.submitKey = key
		}
	}
}

// NewService creates the signup service. transport is usually the client
// returned by NewClient.
func NewService(cfg Config, transport registration.Transport, opts ...ServiceOption) *Service {
	if transport == nil {
		panic(registration.ErrTransportMissing)
	}
	s := &Service{
		cfg:       cfg.withDefaults(),
		transport: transport,
		views:     DefaultViews(),
		logger:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logger.Component("signup"))
	if s.translator == nil {
		s.translator = DefaultTranslator()
	}
	if s.errorHandler == nil {
		ehCfg := s.views.ErrorHandlerConfig()
		ehCfg.Translate = translateError(s.translator)
		s.errorHandler = handler.NewErrorHandler(s.logger, ehCfg)
	}
	return s
}

// SubmitRequest carries the form values, from datastar signals or a plain form post.
type SubmitRequest struct {
	FullName    string `json:"fullName" form:"fullName"`
	Email       string `json:"email" form:"email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	Password    string `json:"password" form:"password"`
}

// ValidateRequest is SubmitRequest plus the field that changed.
type ValidateRequest struct {
	Field       string `query:"field"`
	FullName    string `json:"fullName" form:"fullName"`
	Email       string `json:"email" form:"email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber"`
	Password    string `json:"password" form:"password"`
}

func (r SubmitRequest) values() map[string]string {
	return map[string]string{
		FieldFullName:    r.FullName,
		FieldEmail:       r.Email,
		FieldPhoneNumber: r.PhoneNumber,
		FieldPassword:    r.Password,
	}
}

func (r ValidateRequest) values() map[string]string {
	return SubmitRequest{
		FullName:    r.FullName,
		Email:       r.Email,
		PhoneNumber: r.PhoneNumber,
		Password:    r.Password,
	}.values()
}

func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(i18n.Middleware(s.translator))

	r.Get("/", handler.Wrap(s.page,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.With(s.limitSubmit).Post("/", handler.Wrap(s.submit,
		handler.WithBinders[handler.Context, SubmitRequest](
			binder.Signals(), // datastar requests
			binder.Form(),    // plain form posts
		),
		handler.WithErrorHandler[handler.Context, SubmitRequest](s.errorHandler),
	))
	r.Post("/validate", handler.Wrap(s.validate,
		handler.WithBinders[handler.Context, ValidateRequest](
			binder.Query(),
			binder.Signals(),
			binder.Form(),
		),
		handler.WithErrorHandler[handler.Context, ValidateRequest](s.errorHandler),
	))

	return r
}

func (s *Service) limitSubmit(next http.Handler) http.Handler {
	if s.submitLimiter == nil {
		return next
	}
	return ratelimiter.Middleware(s.submitLimiter, s.submitKey,
		ratelimiter.WithLimitedHandler(s.errorResponse(handler.ErrTooManyRequests)),
		ratelimiter.WithStoreErrorHandler(s.errorResponse(handler.ErrServiceUnavailable)),
	)(next)
}

// errorResponse renders err through the error handler, as a toast for
// datastar requests and as the error page otherwise.
func (s *Service) errorResponse(err error) http.Handler {
	h := handler.HandlerFunc[handler.Context, struct{}](func(handler.Context, struct{}) handler.Response {
		return handler.Error(err)
	})
	return handler.Wrap(h, handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler))
}

func (s *Service) validateURL(field string) string {
	return path.Join(s.cfg.BasePath, "validate") + "?field=" + url.QueryEscape(field)
}

func (s *Service) formParams(state *form.State) FormParams {
	fields := state.Fields()
	params := FormParams{
		Action:    s.cfg.BasePath,
		LoginURL:  s.cfg.LoginURL,
		Fields:    make([]FieldParams, 0, len(fields)),
		CanSubmit: state.CanSubmit(),
	}
	for _, f := range fields {
		params.Fields = append(params.Fields, FieldParams{
			Name:         f.Name,
			Label:        f.Label,
			Placeholder:  f.Placeholder,
			InputType:    f.InputType,
			InputMode:    f.InputMode,
			AutoComplete: f.AutoComplete,
			MaxLength:    f.MaxLength,
			Value:        state.Value(f.Name),
			Error:        state.Error(f.Name),
			ValidateURL:  s.validateURL(f.Name),
		})
	}
	return params
}

func (s *Service) pageParams(state *form.State, toast *ToastParams) PageParams {
	return PageParams{Form: s.formParams(state), Toast: toast}
}

func (s *Service) page(_ handler.Context, _ struct{}) handler.Response {
	return handler.Templ(s.views.Page(s.pageParams(NewForm(), nil)))
}

// validate re-checks the changed field. Other fields are only checked when
// they already hold a value, so untouched inputs stay free of errors.
func (s *Service) validate(ctx handler.Context, req ValidateRequest) handler.Response {
	state := NewForm()
	if _, ok := state.Field(req.Field); !ok {
		s.logger.DebugContext(ctx, "validation rejected", logger.Field(req.Field), logger.Error(ErrUnknownField))
		return handler.Error(handler.NewHTTPError(http.StatusBadRequest, "unknown_field"))
	}

	for name, raw := range req.values() {
		if name != req.Field && raw == "" {
			continue
		}
		if _, err := state.Set(name, raw); err != nil {
			return handler.Error(err)
		}
	}

	value, message := state.Value(req.Field), state.Error(req.Field)
	canSubmit := state.CanSubmit()

	if !handler.IsDataStar(ctx.Request()) {
		return handler.JSON(map[string]any{
			"field":     req.Field,
			"value":     value,
			"error":     message,
			"canSubmit": canSubmit,
		})
	}

	return handler.SSE(func(stream handler.StreamContext) error {
		if err := stream.SendSignals(map[string]any{
			req.Field:       value,
			SignalCanSubmit: canSubmit,
		}); err != nil {
			return err
		}
		return stream.SendComponent(s.views.FieldError(FieldErrorParams{Field: req.Field, Message: message}))
	})
}

func (s *Service) submit(ctx handler.Context, req SubmitRequest) handler.Response {
	state := NewForm()
	for name, raw := range req.values() {
		if _, err := state.Set(name, raw); err != nil {
			return handler.Error(err)
		}
	}
	valid := state.Validate()
	datastar := handler.IsDataStar(ctx.Request())

	if !valid {
		if datastar {
			return handler.SSE(func(stream handler.StreamContext) error {
				return s.streamErrors(stream, state)
			})
		}
		return handler.TemplWithStatus(http.StatusUnprocessableEntity, s.views.Page(s.pageParams(state, nil)))
	}

	payload := registration.PayloadFromValues(state.Values())
	if datastar {
		return handler.SSE(func(stream handler.StreamContext) error {
			return s.submitStream(stream, payload)
		})
	}
	return s.submitPlain(ctx, state, payload)
}

func (s *Service) streamErrors(stream handler.StreamContext, state *form.State) error {
	patches := make([]handler.TemplPatch, 0, len(state.Fields()))
	for _, f := range state.Fields() {
		patches = append(patches, handler.Patch(s.views.FieldError(FieldErrorParams{
			Field:   f.Name,
			Message: state.Error(f.Name),
		})))
	}
	if err := stream.SendMultiple(patches...); err != nil {
		return err
	}
	return stream.SendSignal(SignalCanSubmit, false)
}

func (s *Service) toastPatch(n registration.Notification) handler.TemplPatch {
	return handler.Patch(
		s.views.Toast(ToastParams{Level: n.Level, Message: n.Message}),
		handler.WithTarget("#"+ToastContainerID),
		handler.WithPatchMode(handler.PatchAppend),
	)
}

// submitStream registers the user while streaming progress to the page.
func (s *Service) submitStream(stream handler.StreamContext, payload registration.Payload) error {
	// Writes to the stream are serialized.
	var mu sync.Mutex
	send := func(fn func() error) {
		mu.Lock()
		defer mu.Unlock()
		if err := fn(); err != nil {
			s.logger.DebugContext(stream, "stream write failed", logger.Error(err))
		}
	}

	store := registration.NewStore(s.transport,
		registration.NotifierFunc(func(_ context.Context, n registration.Notification) {
			p := s.toastPatch(n)
			send(func() error { return stream.SendComponent(p.Component, p.Options...) })
		}),
		registration.WithLogger(s.logger),
		registration.WithPath(s.cfg.APIPath),
		registration.WithObserver(func(_ context.Context, snap registration.Snapshot) {
			send(func() error { return stream.SendSignal(SignalSubmitting, snap.Submitting) })
		}),
	)

	resp := store.RegisterUser(stream, payload)
	if resp == nil {
		return nil
	}
	if !resp.Created() {
		s.logInfoNotCreated(stream, resp)
		return nil
	}
	return stream.Redirect(s.cfg.LoginURL)
}

// submitPlain registers the user for a request without JavaScript.
func (s *Service) submitPlain(ctx handler.Context, state *form.State, payload registration.Payload) handler.Response {
	var toast *ToastParams
	store := registration.NewStore(s.transport,
		registration.NotifierFunc(func(_ context.Context, n registration.Notification) {
			toast = &ToastParams{Level: n.Level, Message: n.Message}
		}),
		registration.WithLogger(s.logger),
		registration.WithPath(s.cfg.APIPath),
	)

	resp := store.RegisterUser(ctx, payload)
	if resp != nil && resp.Created() {
		return handler.Redirect(s.cfg.LoginURL)
	}
	if resp != nil {
		s.logInfoNotCreated(ctx, resp)
	}
	return handler.Templ(s.views.Page(s.pageParams(state, toast)))
}

func (s *Service) logInfoNotCreated(ctx context.Context, resp *registration.Response) {
	s.logger.InfoContext(ctx, "signup accepted without creating a user",
		logger.StatusCode(resp.StatusCode),
		slog.String("message", resp.Message),
	)
}
