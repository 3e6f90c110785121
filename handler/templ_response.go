package handler

import (
	"context"
	"io"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// TemplComponent represents a templ component interface.
// This matches github.com/a-h/templ.Component without importing it.
type TemplComponent interface {
	Render(ctx context.Context, w io.Writer) error
}

// TemplOption is an alias for datastar's PatchElementOption
type TemplOption = datastar.PatchElementOption

// WithTarget sets the target selector for where the component should be rendered
func WithTarget(selector string) TemplOption {
	return datastar.WithSelector(selector)
}

// WithPatchMode sets how the component should be merged into the DOM
func WithPatchMode(mode datastar.ElementPatchMode) TemplOption {
	return datastar.WithMode(mode)
}

// TemplPatch represents a component with its own rendering options
type TemplPatch struct {
	Component TemplComponent
	Options   []datastar.PatchElementOption
}

// Patch creates a TemplPatch for TemplMulti and StreamContext.SendMultiple.
func Patch(component TemplComponent, opts ...TemplOption) TemplPatch {
	return TemplPatch{
		Component: component,
		Options:   opts,
	}
}

type templResponse struct {
	component TemplComponent
	options   []datastar.PatchElementOption
	status    int
}

func (t templResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return sseGenerator(w, r).PatchElementTempl(t.component, t.options...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if t.status != 0 {
		w.WriteHeader(t.status)
	}
	return t.component.Render(r.Context(), w)
}

// Templ renders component as HTML, or patches it into the page for DataStar requests.
//
//	return handler.Templ(views.Toast(msg), handler.WithTarget("#toast-container"))
func Templ(component TemplComponent, opts ...TemplOption) Response {
	return templResponse{
		component: component,
		options:   opts,
	}
}

// TemplWithStatus is Templ with a status code for regular requests.
// SSE responses always use 200.
func TemplWithStatus(status int, component TemplComponent, opts ...TemplOption) Response {
	return templResponse{
		component: component,
		options:   opts,
		status:    status,
	}
}

type templPartialResponse struct {
	partial TemplComponent
	full    TemplComponent
	options []datastar.PatchElementOption
}

func (t templPartialResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		return sseGenerator(w, r).PatchElementTempl(t.partial, t.options...)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return t.full.Render(r.Context(), w)
}

// TemplPartial patches partial for DataStar requests and renders full otherwise.
func TemplPartial(partial, full TemplComponent, opts ...TemplOption) Response {
	return templPartialResponse{
		partial: partial,
		full:    full,
		options: opts,
	}
}

type templMultiResponse struct {
	patches []TemplPatch
}

func (t templMultiResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if IsDataStar(r) {
		sse := sseGenerator(w, r)
		for _, patch := range t.patches {
			if err := sse.PatchElementTempl(patch.Component, patch.Options...); err != nil {
				return err
			}
		}
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	for _, patch := range t.patches {
		if err := patch.Component.Render(r.Context(), w); err != nil {
			return err
		}
	}
	return nil
}

// TemplMulti sends one patch per component for DataStar requests and
// concatenates the components otherwise.
func TemplMulti(patches ...TemplPatch) Response {
	return templMultiResponse{
		patches: patches,
	}
}
