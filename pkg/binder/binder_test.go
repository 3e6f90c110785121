package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/signupkit/pkg/binder"
)

type signupRequest struct {
	FullName string   `form:"fullName" json:"fullName"`
	Email    string   `form:"email" json:"email"`
	Age      int      `form:"age" json:"age"`
	Agree    bool     `form:"agree"`
	Tags     []string `form:"tags"`
	Nick     *string  `form:"nick"`
	Field    string   `query:"field"`
	Internal string   `form:"-"`
	Untagged string
}

func TestQuery(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/signup/validate?field=email&untagged=x", nil)
	var got signupRequest
	require.NoError(t, binder.Query()(req, &got))
	assert.Equal(t, "email", got.Field)
	assert.Empty(t, got.Untagged)
}

func TestQuery_InvalidTarget(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/?field=x", nil)
	var got signupRequest
	assert.ErrorIs(t, binder.Query()(req, got), binder.ErrInvalidQuery)
	assert.ErrorIs(t, binder.Query()(req, nil), binder.ErrInvalidQuery)
}

func TestForm_URLEncoded(t *testing.T) {
	t.Parallel()

	body := url.Values{
		"fullName": {"Ann Lee"},
		"email":    {"ann@example.com"},
		"age":      {"30"},
		"agree":    {"on"},
		"tags":     {"a", "b"},
		"nick":     {"annie"},
		"Internal": {"nope"},
	}
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var got signupRequest
	require.NoError(t, binder.Form()(req, &got))
	assert.Equal(t, "Ann Lee", got.FullName)
	assert.Equal(t, "ann@example.com", got.Email)
	assert.Equal(t, 30, got.Age)
	assert.True(t, got.Agree)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	require.NotNil(t, got.Nick)
	assert.Equal(t, "annie", *got.Nick)
	assert.Empty(t, got.Internal)
}

func TestForm_Multipart(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("fullName", "Ann Lee"))
	require.NoError(t, mw.WriteField("email", "ann@example.com"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/signup", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var got signupRequest
	require.NoError(t, binder.Form()(req, &got))
	assert.Equal(t, "Ann Lee", got.FullName)
	assert.Equal(t, "ann@example.com", got.Email)
}

func TestForm_NotApplicable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
	}{
		{"no content type", ""},
		{"json body", "application/json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{}`))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			var got signupRequest
			assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrBinderNotApplicable)
		})
	}
}

func TestForm_Errors(t *testing.T) {
	t.Parallel()

	t.Run("bad int", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader("age=old"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var got signupRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("bad bool", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader("agree=maybe"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		var got signupRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})

	t.Run("multipart without boundary", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(""))
		req.Header.Set("Content-Type", "multipart/form-data")
		var got signupRequest
		assert.ErrorIs(t, binder.Form()(req, &got), binder.ErrInvalidForm)
	})
}

func TestSignals(t *testing.T) {
	t.Parallel()

	t.Run("reads json body of datastar requests", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/signup",
			strings.NewReader(`{"fullName":"Ann Lee","email":"ann@example.com","age":30,"canSubmit":false}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Datastar-Request", "true")

		var got signupRequest
		require.NoError(t, binder.Signals()(req, &got))
		assert.Equal(t, "Ann Lee", got.FullName)
		assert.Equal(t, "ann@example.com", got.Email)
		assert.Equal(t, 30, got.Age)
	})

	t.Run("reads query of datastar GET requests", func(t *testing.T) {
		t.Parallel()
		q := url.Values{"datastar": {`{"email":"ann@example.com"}`}}
		req := httptest.NewRequest(http.MethodGet, "/signup?"+q.Encode(), nil)

		var got signupRequest
		require.NoError(t, binder.Signals()(req, &got))
		assert.Equal(t, "ann@example.com", got.Email)
	})

	t.Run("not applicable to plain requests", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":"x"}`))
		req.Header.Set("Content-Type", "application/json")

		var got signupRequest
		assert.ErrorIs(t, binder.Signals()(req, &got), binder.ErrBinderNotApplicable)
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(`{"email":`))
		req.Header.Set("Datastar-Request", "true")

		var got signupRequest
		assert.ErrorIs(t, binder.Signals()(req, &got), binder.ErrInvalidJSON)
	})
}
