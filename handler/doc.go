// Package handler provides type-safe HTTP request handling for server-rendered
// pages that are progressively enhanced with DataStar.
//
// A HandlerFunc binds the request into a typed value and returns a Response.
// Wrap turns it into an http.HandlerFunc, running binders in order, applying
// decorators and sending any binding or rendering error to an ErrorHandler:
//
//	type SubmitRequest struct {
//		Email string `form:"email" json:"email"`
//	}
//
//	func submit(ctx handler.Context, req SubmitRequest) handler.Response {
//		if req.Email == "" {
//			return handler.Templ(views.Form(req), handler.WithTarget("#form"))
//		}
//		return handler.Redirect("/done")
//	}
//
//	r.Post("/submit", handler.Wrap(submit,
//		handler.WithBinders[handler.Context, SubmitRequest](binder.Signals(), binder.Form()),
//		handler.WithErrorHandler[handler.Context, SubmitRequest](errorHandler),
//	))
//
// Binders that do not apply to a request return binder.ErrBinderNotApplicable
// and are skipped.
//
// # Responses
//
// Every response adapts to the request type. DataStar requests receive
// server-sent events; regular requests receive HTML, JSON or redirects:
//
//	handler.Templ(component, opts...)   // html, or an element patch
//	handler.TemplPartial(partial, full) // patch the partial, render the full page otherwise
//	handler.TemplMulti(patches...)      // several patches
//	handler.Redirect("/login")          // 303, or a client-side redirect
//	handler.JSON(data)                  // json envelope
//	handler.SSE(func(stream handler.StreamContext) error { ... })
//
// SSE responses receive a StreamContext for sending several patches, signals
// and a final redirect on one connection. The generator is created once per
// request, so a handler may mix Context.SSE and an SSE response safely.
//
// # Errors
//
// NewErrorHandler renders an error page for regular requests and a toast for
// DataStar requests. HTTPError carries a status code and a translation key;
// validator.ValidationErrors are reported as 422. Outside production,
// messages of unclassified errors are shown as is.
package handler
