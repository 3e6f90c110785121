package handler

import (
	"encoding/json"

	"github.com/starfederation/datastar-go/datastar"
)

// StreamContext extends Context with SSE streaming capabilities.
type StreamContext interface {
	Context

	// SendComponent patches a templ component into the page.
	//
	//	err := stream.SendComponent(
	//		views.FieldError(name, msg),
	//		handler.WithTarget("#email-error"),
	//	)
	SendComponent(component TemplComponent, opts ...TemplOption) error

	// SendMultiple sends several patches in order.
	SendMultiple(patches ...TemplPatch) error

	// SendSignal updates a single frontend signal.
	SendSignal(name string, value any) error

	// SendSignals updates multiple frontend signals at once.
	//
	//	err := stream.SendSignals(map[string]any{
	//		"submitting": false,
	//		"canSubmit":  true,
	//	})
	SendSignals(signals map[string]any) error

	// Redirect navigates the browser to url.
	Redirect(url string) error
}

type streamContext struct {
	Context
	sse *datastar.ServerSentEventGenerator
}

func (c *streamContext) SendComponent(component TemplComponent, opts ...TemplOption) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.PatchElementTempl(component, opts...)
}

func (c *streamContext) SendMultiple(patches ...TemplPatch) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	for _, patch := range patches {
		if err := c.sse.PatchElementTempl(patch.Component, patch.Options...); err != nil {
			return err
		}
	}
	return nil
}

func (c *streamContext) SendSignal(name string, value any) error {
	return c.SendSignals(map[string]any{name: value})
}

func (c *streamContext) SendSignals(signals map[string]any) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return c.sse.PatchSignals(data)
}

func (c *streamContext) Redirect(url string) error {
	if c.sse == nil {
		return ErrSSENotInitialized
	}
	return c.sse.Redirect(url)
}
