package binder

import (
	"fmt"
	"mime"
	"net/http"
)

// DefaultMaxMemory caps the memory used when parsing multipart forms.
const DefaultMaxMemory = 1 << 20

// Form binds urlencoded and multipart bodies into fields tagged `form:"name"`.
// Requests with another or no content type are not applicable, which lets
// GET requests and DataStar JSON requests pass through.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return ErrBinderNotApplicable
		}

		mediaType, params, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: malformed content type: %v", ErrInvalidForm, err)
		}

		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindToStruct(v, "form", r.PostForm, ErrInvalidForm)

		case "multipart/form-data":
			if params["boundary"] == "" {
				return fmt.Errorf("%w: missing boundary in content type", ErrInvalidForm)
			}
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindToStruct(v, "form", r.MultipartForm.Value, ErrInvalidForm)

		default:
			return ErrBinderNotApplicable
		}
	}
}
