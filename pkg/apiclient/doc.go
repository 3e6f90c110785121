// Package apiclient posts form fields to an upstream HTTP API.
//
// A Client is bound to a base URL and a set of options at construction.
// Post resolves a path against the base URL, encodes the fields as a
// multipart form (default) or a flat JSON object, and returns the response
// status and body.
//
// Basic usage:
//
//	client, err := apiclient.New("https://api.example.com",
//		apiclient.WithTimeout(5*time.Second),
//	)
//	res, err := client.Post(ctx, "/auth/signup", []apiclient.Field{
//		{Name: "email", Value: "abc@example.com"},
//	})
//
// # Declared content type
//
// By default the Content-Type header matches the encoding. Some upstream APIs
// expect a fixed declared type regardless of the body; WithContentType
// overrides the header without changing the encoding:
//
//	apiclient.New(base, apiclient.WithContentType("application/json"))
//
// # Errors
//
// Transport failures wrap ErrRequestFailed (or ErrTimeout when a deadline was
// hit). A response outside 2xx is returned together with an error wrapping
// ErrUnexpectedStatus, so callers still see the body. Response bodies are
// read up to 1 MiB.
//
// # Observability
//
// WithOnDelivery registers a hook invoked after every request with the
// method, URL, status, duration and error, which is the place to log or
// record metrics.
//
// A Client is safe for concurrent use.
package apiclient
