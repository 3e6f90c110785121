package handler

import "net/http"

type errorResponse struct {
	err error
}

func (e errorResponse) Render(http.ResponseWriter, *http.Request) error {
	return e.err
}

// Error returns a response that hands err to the error handler passed to Wrap.
//
//	if !ok {
//		return handler.Error(handler.ErrNotFound)
//	}
func Error(err error) Response {
	return errorResponse{err: err}
}
