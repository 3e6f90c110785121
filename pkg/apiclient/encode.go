package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
)

// Field is a single named form value. Order is preserved on the wire.
type Field struct {
	Name  string
	Value string
}

// encode writes fields using enc and returns the body with its natural content type.
func encode(enc Encoding, fields []Field) ([]byte, string, error) {
	if len(fields) == 0 {
		return nil, "", fmt.Errorf("%w: no fields", ErrInvalidPayload)
	}
	for _, f := range fields {
		if f.Name == "" {
			return nil, "", fmt.Errorf("%w: field name is required", ErrInvalidPayload)
		}
	}

	switch enc {
	case EncodingJSON:
		return encodeJSON(fields)
	default:
		return encodeMultipart(fields)
	}
}

func encodeMultipart(fields []Field) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func encodeJSON(fields []Field) ([]byte, string, error) {
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.Name] = f.Value
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return b, "application/json", nil
}
