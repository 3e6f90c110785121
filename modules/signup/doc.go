// Package signup serves the signup page: four sanitized and validated inputs,
// a password visibility toggle and one submission to the upstream API.
//
// The page is server rendered and kept live with datastar. Each keystroke
// posts the client signals to /validate, which answers with the sanitized
// value, the field's error slot and the canSubmit signal. Submitting streams
// the submitting signal around the upstream call, shows a toast on failure
// and redirects to the login URL once the API reports 201. Without
// JavaScript the same routes accept a regular form post.
//
//	client, err := signup.NewClient(cfg, log)
//	if err != nil {
//		return err
//	}
//	svc := signup.NewService(cfg, client, signup.WithLogger(log))
//	r.Mount(cfg.BasePath, svc.Handle())
//
// WithSubmitLimiter throttles submissions per client. Error keys shown by the
// error handler are translated from the embedded catalogs in translations/,
// using the request's Accept-Language.
//
// Fields, NewForm and the Sanitize functions are shared with the terminal
// front-end in package tui.
package signup
