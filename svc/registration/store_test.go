package registration_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/signupkit/pkg/apiclient"
	"github.com/dmitrymomot/signupkit/pkg/logger"
	"github.com/dmitrymomot/signupkit/svc/registration"
)

var testPayload = registration.Payload{
	FullName:    "Ann Lee",
	Email:       "ann@example.com",
	PhoneNumber: "1234567890",
	Password:    "Abcdef1!",
}

type fakeTransport struct {
	result *apiclient.Result
	err    error

	mu     sync.Mutex
	calls  int
	path   string
	fields []apiclient.Field
}

func (f *fakeTransport) Post(_ context.Context, path string, fields []apiclient.Field) (*apiclient.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.path = path
	f.fields = fields
	return f.result, f.err
}

type recorder struct {
	mu    sync.Mutex
	notes []registration.Notification
}

func (r *recorder) Notify(_ context.Context, n registration.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

func (r *recorder) all() []registration.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]registration.Notification(nil), r.notes...)
}

func newStore(tr registration.Transport, n registration.Notifier, opts ...registration.Option) *registration.Store {
	opts = append([]registration.Option{registration.WithLogger(logger.Discard())}, opts...)
	return registration.NewStore(tr, n, opts...)
}

func TestStore_RegisterUser_Success(t *testing.T) {
	t.Parallel()

	tr := &fakeTransport{result: &apiclient.Result{
		StatusCode: http.StatusCreated,
		Body:       []byte(`{"statusCode":201,"message":"ok","data":{"id":"u1"}}`),
	}}
	notes := &recorder{}

	var states []bool
	store := newStore(tr, notes, registration.WithObserver(func(_ context.Context, s registration.Snapshot) {
		states = append(states, s.Submitting)
	}))

	resp := store.RegisterUser(context.Background(), testPayload)
	require.NotNil(t, resp)
	assert.True(t, resp.Created())
	assert.Equal(t, http.StatusCreated, resp.HTTPStatus)
	assert.Equal(t, "ok", resp.Message)
	assert.JSONEq(t, `{"id":"u1"}`, string(resp.Data))

	assert.False(t, store.IsSubmitting())
	assert.JSONEq(t, `{"id":"u1"}`, string(store.Payload()))
	assert.Equal(t, []bool{true, false}, states)
	assert.Empty(t, notes.all())

	assert.Equal(t, registration.DefaultPath, tr.path)
	assert.Equal(t, []apiclient.Field{
		{Name: "fullName", Value: "Ann Lee"},
		{Name: "email", Value: "ann@example.com"},
		{Name: "phoneNumber", Value: "1234567890"},
		{Name: "password", Value: "Abcdef1!"},
	}, tr.fields)
}

func TestStore_RegisterUser_NestedEnvelope(t *testing.T) {
	t.Parallel()

	tr := &fakeTransport{result: &apiclient.Result{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"data":{"statusCode":201,"data":{"id":"u2"}}}`),
	}}
	store := newStore(tr, nil)

	resp := store.RegisterUser(context.Background(), testPayload)
	require.NotNil(t, resp)
	assert.True(t, resp.Created())
	assert.Equal(t, http.StatusOK, resp.HTTPStatus)
	assert.JSONEq(t, `{"id":"u2"}`, string(store.Payload()))
}

func TestStore_RegisterUser_TransportStatusDoesNotConfirm(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{"empty object", `{}`},
		{"data without status", `{"data":{"id":"u1"}}`},
		{"message only", `{"message":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			notes := &recorder{}
			store := newStore(&fakeTransport{result: &apiclient.Result{
				StatusCode: http.StatusCreated,
				Body:       []byte(tt.body),
			}}, notes)

			resp := store.RegisterUser(context.Background(), testPayload)
			require.NotNil(t, resp)
			assert.False(t, resp.Created())
			assert.Zero(t, resp.StatusCode)
			assert.Equal(t, http.StatusCreated, resp.HTTPStatus)
			assert.False(t, store.IsSubmitting())
			assert.Empty(t, notes.all())
		})
	}
}

func TestStore_RegisterUser_NotCreated(t *testing.T) {
	t.Parallel()

	tr := &fakeTransport{result: &apiclient.Result{
		StatusCode: http.StatusOK,
		Body:       []byte(`{"statusCode":200,"data":null}`),
	}}
	notes := &recorder{}
	store := newStore(tr, notes)

	resp := store.RegisterUser(context.Background(), testPayload)
	require.NotNil(t, resp)
	assert.False(t, resp.Created())
	assert.Nil(t, resp.Data)
	assert.Empty(t, notes.all())
}

func TestStore_RegisterUser_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		tr   *fakeTransport
	}{
		{"transport error", &fakeTransport{err: apiclient.ErrRequestFailed}},
		{"non-2xx status", &fakeTransport{
			result: &apiclient.Result{StatusCode: http.StatusConflict, Body: []byte(`{"statusCode":409}`)},
			err:    apiclient.ErrUnexpectedStatus,
		}},
		{"non-2xx without error", &fakeTransport{
			result: &apiclient.Result{StatusCode: http.StatusInternalServerError},
		}},
		{"undecodable body", &fakeTransport{
			result: &apiclient.Result{StatusCode: http.StatusCreated, Body: []byte(`<html>`)},
		}},
		{"empty body", &fakeTransport{
			result: &apiclient.Result{StatusCode: http.StatusCreated},
		}},
		{"nil result", &fakeTransport{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			notes := &recorder{}
			var last registration.Snapshot
			store := newStore(tt.tr, notes, registration.WithObserver(func(_ context.Context, s registration.Snapshot) {
				last = s
			}))

			resp := store.RegisterUser(context.Background(), testPayload)
			assert.Nil(t, resp)
			assert.False(t, store.IsSubmitting())
			assert.False(t, last.Submitting)
			assert.Nil(t, store.Payload())
			assert.Equal(t, []registration.Notification{
				{Level: registration.LevelError, Message: "Signup failed!"},
			}, notes.all())
		})
	}
}

func TestStore_RegisterUser_KeepsPayloadAfterFailure(t *testing.T) {
	t.Parallel()

	tr := &fakeTransport{result: &apiclient.Result{
		StatusCode: http.StatusCreated,
		Body:       []byte(`{"statusCode":201,"data":{"id":"u1"}}`),
	}}
	store := newStore(tr, nil)
	require.NotNil(t, store.RegisterUser(context.Background(), testPayload))

	tr.result, tr.err = nil, errors.New("down")
	assert.Nil(t, store.RegisterUser(context.Background(), testPayload))
	assert.JSONEq(t, `{"id":"u1"}`, string(store.Payload()))
}

func TestStore_SubmittingDuringRequest(t *testing.T) {
	t.Parallel()

	var store *registration.Store
	var during bool
	tr := transportFunc(func(ctx context.Context, path string, fields []apiclient.Field) (*apiclient.Result, error) {
		during = store.IsSubmitting()
		return &apiclient.Result{StatusCode: http.StatusCreated, Body: []byte(`{"statusCode":201}`)}, nil
	})
	store = newStore(tr, nil, registration.WithPath("/v2/signup"))

	store.RegisterUser(context.Background(), testPayload)
	assert.True(t, during)
	assert.False(t, store.IsSubmitting())
}

func TestStore_OverHTTP(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/signup", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		first, _, _ := bytes.Cut(body, []byte("\r\n"))
		mr := multipart.NewReader(bytes.NewReader(body), strings.TrimPrefix(string(first), "--"))

		got := map[string]string{}
		for {
			part, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			v, _ := io.ReadAll(part)
			got[part.FormName()] = string(v)
		}
		assert.Equal(t, map[string]string{
			"fullName":    "Ann Lee",
			"email":       "ann@example.com",
			"phoneNumber": "1234567890",
			"password":    "Abcdef1!",
		}, got)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"statusCode":201,"data":{"id":"u1"}}`))
	}))
	defer server.Close()

	client, err := apiclient.New(server.URL, apiclient.WithContentType("application/json"))
	require.NoError(t, err)

	notes := &recorder{}
	store := newStore(client, notes)
	resp := store.RegisterUser(context.Background(), testPayload)
	require.NotNil(t, resp)
	assert.True(t, resp.Created())
	assert.Empty(t, notes.all())
}

func TestNewStore_PanicsWithoutTransport(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, registration.ErrTransportMissing, func() {
		registration.NewStore(nil, nil)
	})
}

func TestPayloadFromValues(t *testing.T) {
	t.Parallel()

	p := registration.PayloadFromValues(map[string]string{
		"fullName":    "Ann Lee",
		"email":       "ann@example.com",
		"phoneNumber": "1234567890",
		"password":    "Abcdef1!",
	})
	assert.Equal(t, testPayload, p)
	assert.NotContains(t, p.LogValue().String(), "Abcdef1!")
}

type transportFunc func(ctx context.Context, path string, fields []apiclient.Field) (*apiclient.Result, error)

func (f transportFunc) Post(ctx context.Context, path string, fields []apiclient.Field) (*apiclient.Result, error) {
	return f(ctx, path, fields)
}
