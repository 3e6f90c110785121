// Package httpserver runs an http.Handler with graceful shutdown, server
// timeouts and health-check endpoints.
//
// Run binds the listener before serving, so address errors surface
// immediately as ErrStart and Addr reports the bound address (useful with
// ":0"). Run blocks until the context is cancelled or Shutdown is called,
// then drains connections within the shutdown timeout:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.New(httpserver.WithAddr(":8080"), httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		return err
//	}
//
// Liveness and Readiness return probe handlers. Readiness runs named checks,
// such as a reachability ping of an upstream API, under a shared deadline.
package httpserver
