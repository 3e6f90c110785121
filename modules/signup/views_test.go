package signup_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/signupkit/handler"
	"github.com/dmitrymomot/signupkit/modules/signup"
	"github.com/dmitrymomot/signupkit/svc/registration"
)

func TestViews_Form(t *testing.T) {
	t.Parallel()

	v := signup.DefaultViews()
	form := signup.FormParams{
		Action:   "/signup",
		LoginURL: "/login",
		Fields: []signup.FieldParams{
			{Name: "fullName", Label: "Full Name", Value: `<script>alert("x")</script>`, MaxLength: 50, ValidateURL: "/signup/validate?field=fullName"},
			{Name: "password", Label: "Password", InputType: "password", Value: "Secret1!", Error: "Password is required"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, v.Form(form).Render(context.Background(), &buf))
	body := buf.String()

	t.Run("escapes field values", func(t *testing.T) {
		assert.NotContains(t, body, "<script>alert")
		assert.Contains(t, body, `value="&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt;"`)
	})

	t.Run("password value is never rendered", func(t *testing.T) {
		assert.NotContains(t, body, "Secret1!")
		assert.Contains(t, body, `data-attr:type="$_showPassword ? &#39;text&#39; : &#39;password&#39;"`)
		assert.Contains(t, body, `class="toggle-password"`)
	})

	t.Run("field attributes", func(t *testing.T) {
		assert.Contains(t, body, `type="text"`)
		assert.Contains(t, body, `maxlength="50"`)
		assert.Contains(t, body, `data-on:input__debounce.200ms="@post(&#39;/signup/validate?field=fullName&#39;)"`)
		assert.Contains(t, body, `aria-invalid="true" aria-describedby="password-error"`)
		assert.Contains(t, body, `<p id="password-error" class="field-error" role="alert">Password is required</p>`)
		assert.Contains(t, body, `<p id="fullName-error" class="field-error" role="alert"></p>`)
	})

	t.Run("form wiring", func(t *testing.T) {
		assert.Contains(t, body, `<form id="signup-form" method="post" action="/signup" novalidate`)
		assert.Contains(t, body, `data-on:submit__prevent="@post(&#39;/signup&#39;)"`)
		assert.Contains(t, body, `<a href="/login">Log in</a>`)
	})
}

func TestViews_Toast(t *testing.T) {
	t.Parallel()

	v := signup.DefaultViews()
	tests := []struct {
		name  string
		level registration.Level
		want  string
	}{
		{name: "defaults to error", want: `<div class="toast toast-error" role="status">done</div>`},
		{name: "success", level: registration.LevelSuccess, want: `<div class="toast toast-success" role="status">done</div>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, v.Toast(signup.ToastParams{Level: tt.level, Message: "done"}).Render(context.Background(), &buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestViews_ErrorPage(t *testing.T) {
	t.Parallel()

	v := signup.DefaultViews()
	var buf bytes.Buffer
	err := v.ErrorPage(handler.ErrorPageParams{
		Error:      "Something went wrong",
		StatusCode: 503,
		RequestID:  "req-1",
		RetryURL:   "/signup",
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	body := buf.String()
	assert.Contains(t, body, "<title>Error 503</title>")
	assert.Contains(t, body, "<h1>503</h1><p>Something went wrong</p>")
	assert.Contains(t, body, `<p class="request-id">Request ID: req-1</p>`)
	assert.Contains(t, body, `<a href="/signup">Try again</a>`)

	buf.Reset()
	require.NoError(t, v.ErrorToast(handler.ErrorToastParams{Message: "nope", Type: "warning"}).Render(context.Background(), &buf))
	assert.Equal(t, `<div class="toast toast-warning" role="alert">nope</div>`, buf.String())
}
