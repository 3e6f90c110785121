// Package registration submits signup payloads to the upstream API and keeps
// the in-flight state of that submission.
//
// A Store is an explicit container, created per view (per HTTP request on
// the web, once per program in the terminal). RegisterUser flips the
// submitting flag, posts the payload through a Transport and reports the
// outcome:
//
//	store := registration.NewStore(client, notifier, registration.WithLogger(log))
//	if resp := store.RegisterUser(ctx, payload); resp != nil && resp.Created() {
//	    // navigate to the login page
//	}
//
// Failures of any kind (transport, non-2xx status, undecodable body) are
// logged, surfaced as exactly one "Signup failed!" notification and
// swallowed: RegisterUser returns nil and the caller cannot tell causes
// apart. There is no retry and no guard against concurrent submissions.
package registration
