package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/signupkit/handler"
	"github.com/dmitrymomot/signupkit/pkg/binder"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func datastarRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(handler.DataStarRequestHeader, "true")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  func() *http.Request
		want bool
	}{
		{"plain", func() *http.Request { return httptest.NewRequest(http.MethodGet, "/", nil) }, false},
		{"request header", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.Header.Set("Datastar-Request", "true")
			return r
		}, true},
		{"accept header", func() *http.Request {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Accept", "text/event-stream")
			return r
		}, true},
		{"query param", func() *http.Request { return httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil) }, true},
		{"header false", func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			r.Header.Set("Datastar-Request", "false")
			return r
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, handler.IsDataStar(tt.req()))
		})
	}
}

func TestContext_SSE(t *testing.T) {
	t.Parallel()

	t.Run("nil for plain requests", func(t *testing.T) {
		t.Parallel()
		ctx := handler.NewContext(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Nil(t, ctx.SSE())
	})

	t.Run("lazy and shared", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		ctx := handler.NewContext(w, datastarRequest(http.MethodPost, "/", nil))
		assert.Empty(t, w.Header().Get("Content-Type"), "headers untouched until first use")

		first := ctx.SSE()
		require.NotNil(t, first)
		assert.Same(t, first, ctx.SSE())
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	})

	t.Run("context methods follow the request", func(t *testing.T) {
		t.Parallel()
		key := handler.NewContextKey("user")
		reqCtx, cancel := context.WithCancel(context.WithValue(context.Background(), key, "alice"))
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(reqCtx)
		ctx := handler.NewContext(httptest.NewRecorder(), req)

		assert.Equal(t, "alice", handler.ContextValue[string](ctx, key))
		assert.Equal(t, "/", ctx.Request().URL.Path)
		assert.NoError(t, ctx.Err())
		cancel()
		<-ctx.Done()
		assert.ErrorIs(t, ctx.Err(), context.Canceled)
	})
}

func TestContextValue(t *testing.T) {
	t.Parallel()
	key := handler.NewContextKey("count")
	assert.Equal(t, "count", key.String())

	ctx := context.WithValue(context.Background(), key, 42)
	assert.Equal(t, 42, handler.ContextValue[int](ctx, key))
	assert.Empty(t, handler.ContextValue[string](ctx, key), "wrong type yields zero value")
	assert.Zero(t, handler.ContextValue[int](context.Background(), key))
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("plain renders html", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, handler.Templ(text("<p>hi</p>")).Render(w, r))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<p>hi</p>", w.Body.String())
	})

	t.Run("plain with status", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		require.NoError(t, handler.TemplWithStatus(http.StatusUnprocessableEntity, text("bad")).Render(w, r))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("datastar patches element", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		r := datastarRequest(http.MethodPost, "/", nil)
		resp := handler.TemplWithStatus(http.StatusUnprocessableEntity, text(`<p id="x">hi</p>`), handler.WithTarget("#x"))
		require.NoError(t, resp.Render(w, r))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "datastar-patch-elements")
		assert.Contains(t, w.Body.String(), `<p id="x">hi</p>`)
		assert.Contains(t, w.Body.String(), "#x")
	})
}

func TestTemplPartial(t *testing.T) {
	t.Parallel()
	resp := handler.TemplPartial(text("partial"), text("full"))

	w := httptest.NewRecorder()
	require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, "full", w.Body.String())

	w = httptest.NewRecorder()
	require.NoError(t, resp.Render(w, datastarRequest(http.MethodGet, "/", nil)))
	assert.Contains(t, w.Body.String(), "partial")
	assert.NotContains(t, w.Body.String(), "full")
}

func TestTemplMulti(t *testing.T) {
	t.Parallel()
	resp := handler.TemplMulti(
		handler.Patch(text(`<div id="a">A</div>`)),
		handler.Patch(text(`<div id="b">B</div>`), handler.WithPatchMode(handler.PatchOuter)),
	)

	w := httptest.NewRecorder()
	require.NoError(t, resp.Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, `<div id="a">A</div><div id="b">B</div>`, w.Body.String())

	w = httptest.NewRecorder()
	require.NoError(t, resp.Render(w, datastarRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, 2, strings.Count(w.Body.String(), "datastar-patch-elements"))
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/login").Render(w, httptest.NewRequest(http.MethodPost, "/signup", nil)))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	require.NoError(t, handler.RedirectWithCode("/moved", http.StatusFound).Render(w, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Equal(t, http.StatusFound, w.Code)

	w = httptest.NewRecorder()
	require.NoError(t, handler.Redirect("/login").Render(w, datastarRequest(http.MethodPost, "/signup", nil)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/login")
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("rejects plain requests", func(t *testing.T) {
		t.Parallel()
		called := false
		err := handler.SSE(func(handler.StreamContext) error {
			called = true
			return nil
		}).Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))

		var httpErr handler.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
		assert.False(t, called)
	})

	t.Run("streams signals and components", func(t *testing.T) {
		t.Parallel()
		w := httptest.NewRecorder()
		err := handler.SSE(func(stream handler.StreamContext) error {
			if err := stream.SendSignal("submitting", true); err != nil {
				return err
			}
			if err := stream.SendComponent(text(`<div id="toast">ok</div>`)); err != nil {
				return err
			}
			if err := stream.SendMultiple(handler.Patch(text(`<span id="a"></span>`))); err != nil {
				return err
			}
			if err := stream.SendSignals(map[string]any{"submitting": false}); err != nil {
				return err
			}
			return stream.Redirect("/login")
		}).Render(w, datastarRequest(http.MethodPost, "/", nil))
		require.NoError(t, err)

		body := w.Body.String()
		assert.Contains(t, body, "datastar-patch-signals")
		assert.Contains(t, body, `"submitting":true`)
		assert.Contains(t, body, `"submitting":false`)
		assert.Contains(t, body, `<div id="toast">ok</div>`)
		assert.Contains(t, body, "/login")
		assert.Less(t, strings.Index(body, `"submitting":true`), strings.Index(body, `"submitting":false`))
	})

	t.Run("handler error is returned", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		err := handler.SSE(func(handler.StreamContext) error { return boom }).
			Render(httptest.NewRecorder(), datastarRequest(http.MethodPost, "/", nil))
		assert.ErrorIs(t, err, boom)
	})
}

type signupForm struct {
	Email string `form:"email" json:"email"`
	Field string `query:"field"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	echo := handler.HandlerFunc[handler.Context, signupForm](func(_ handler.Context, req signupForm) handler.Response {
		return handler.JSON(req)
	})

	t.Run("binds form and query", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(echo, handler.WithBinders[handler.Context, signupForm](binder.Query(), binder.Signals(), binder.Form()))

		body := url.Values{"email": {"a@b.co"}}.Encode()
		req := httptest.NewRequest(http.MethodPost, "/validate?field=email", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"email":"a@b.co","Field":"email"}}`, w.Body.String())
	})

	t.Run("binds datastar signals", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(echo, handler.WithBinders[handler.Context, signupForm](binder.Query(), binder.Signals(), binder.Form()))

		req := datastarRequest(http.MethodPost, "/validate?field=email", strings.NewReader(`{"email":"x@y.io"}`))
		w := httptest.NewRecorder()
		h(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"email":"x@y.io"`)
	})

	t.Run("binder error reaches error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(echo,
			handler.WithBinders[handler.Context, signupForm](binder.Signals()),
			handler.WithErrorHandler[handler.Context, signupForm](func(_ handler.Context, err error) { got = err }),
		)
		h(httptest.NewRecorder(), datastarRequest(http.MethodPost, "/", strings.NewReader(`{not json`)))
		require.Error(t, got)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(handler.HandlerFunc[handler.Context, struct{}](func(handler.Context, struct{}) handler.Response { return nil }))
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("http error uses its code", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(handler.HandlerFunc[handler.Context, struct{}](func(handler.Context, struct{}) handler.Response {
			return handler.SSE(func(handler.StreamContext) error { return nil })
		}))
		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "datastar_required")
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(
			handler.HandlerFunc[handler.Context, struct{}](func(handler.Context, struct{}) handler.Response { return handler.JSON("ok") }),
			handler.WithDecorators(mark("outer"), mark("inner")),
		)
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"outer", "inner"}, order)
	})
}
