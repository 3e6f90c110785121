package handler

import (
	"net/http"
)

// SSEHandler streams events for the lifetime of a DataStar request.
// The stream is closed when it returns.
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		if err := stream.SendSignal("submitting", true); err != nil {
//			return err
//		}
//		resp := store.RegisterUser(stream, payload)
//		if err := stream.SendSignal("submitting", false); err != nil {
//			return err
//		}
//		if resp.Created() {
//			return stream.Redirect("/login")
//		}
//		return nil
//	})
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

// Render rejects non-DataStar requests and runs the handler.
func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return NewHTTPError(http.StatusBadRequest, "datastar_required")
	}

	base := NewContext(w, r)
	return s.handler(&streamContext{
		Context: base,
		sse:     base.SSE(),
	})
}

// SSE creates a response that runs handler with a StreamContext.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
