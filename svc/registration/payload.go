package registration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/signupkit/pkg/apiclient"
)

// Wire names of the submitted fields.
const (
	FieldFullName    = "fullName"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
	FieldPassword    = "password"
)

// Payload is the data submitted on signup.
type Payload struct {
	FullName    string
	Email       string
	PhoneNumber string
	Password    string
}

// PayloadFromValues builds a Payload from a map keyed by wire field names.
func PayloadFromValues(values map[string]string) Payload {
	return Payload{
		FullName:    values[FieldFullName],
		Email:       values[FieldEmail],
		PhoneNumber: values[FieldPhoneNumber],
		Password:    values[FieldPassword],
	}
}

// Fields returns the payload in wire order.
func (p Payload) Fields() []apiclient.Field {
	return []apiclient.Field{
		{Name: FieldFullName, Value: p.FullName},
		{Name: FieldEmail, Value: p.Email},
		{Name: FieldPhoneNumber, Value: p.PhoneNumber},
		{Name: FieldPassword, Value: p.Password},
	}
}

// LogValue keeps the password out of logs.
func (p Payload) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String(FieldFullName, p.FullName),
		slog.String(FieldEmail, p.Email),
		slog.String(FieldPhoneNumber, p.PhoneNumber),
	)
}

// Response is a decoded successful answer of the signup endpoint.
type Response struct {
	// HTTPStatus is the transport status, StatusCode the one reported in the
	// body. StatusCode is 0 when the body carries none.
	HTTPStatus int
	StatusCode int
	Message    string
	Data       json.RawMessage
}

// Created reports whether the body confirmed the account was created.
// The transport status alone never counts.
func (r *Response) Created() bool {
	return r != nil && r.StatusCode == 201
}

type envelope struct {
	StatusCode *int            `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// decodeResponse reads {"statusCode":..,"data":..}. A body wrapped once more
// in a "data" object carrying its own statusCode is unwrapped.
func decodeResponse(httpStatus int, body []byte) (*Response, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	if env.StatusCode == nil && len(env.Data) > 0 {
		var inner envelope
		if err := json.Unmarshal(env.Data, &inner); err == nil && inner.StatusCode != nil {
			env = inner
		}
	}

	resp := &Response{
		HTTPStatus: httpStatus,
		Message:    env.Message,
	}
	if env.StatusCode != nil {
		resp.StatusCode = *env.StatusCode
	}
	if len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		resp.Data = env.Data
	}
	return resp, nil
}
