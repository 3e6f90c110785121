package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/signupkit/modules/signup"
	"github.com/dmitrymomot/signupkit/pkg/apiclient"
	"github.com/dmitrymomot/signupkit/pkg/clientip"
	"github.com/dmitrymomot/signupkit/pkg/config"
	"github.com/dmitrymomot/signupkit/pkg/environment"
	"github.com/dmitrymomot/signupkit/pkg/httpserver"
	"github.com/dmitrymomot/signupkit/pkg/ratelimiter"
	"github.com/dmitrymomot/signupkit/pkg/requestid"
)

const readinessTimeout = 3 * time.Second

func (c *cli) newServeCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the signup page over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.serve(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

func (c *cli) serve(ctx context.Context, addr string) error {
	log := c.newLogger()

	var srvCfg httpserver.Config
	if err := config.Load(&srvCfg); err != nil {
		return err
	}
	if addr != "" {
		srvCfg.Addr = addr
	}

	client, err := signup.NewClient(c.signup, log)
	if err != nil {
		return err
	}

	var svcOpts []signup.ServiceOption
	if c.signup.SubmitRateLimit > 0 {
		store := ratelimiter.NewMemoryStore()
		defer store.Close()
		limiter, err := ratelimiter.NewBucket(store, ratelimiter.PerMinute(c.signup.SubmitRateLimit))
		if err != nil {
			return err
		}
		svcOpts = append(svcOpts, signup.WithSubmitLimiter(limiter, clientip.Key))
	}

	router := newRouter(log, c.environment(), c.signup, client, svcOpts...)
	srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, router)
}

// newRouter wires the signup module and the probes.
func newRouter(log *slog.Logger, env environment.Environment, cfg signup.Config, client *apiclient.Client, opts ...signup.ServiceOption) http.Handler {
	svc := signup.NewService(cfg, client, append([]signup.ServiceOption{signup.WithLogger(log)}, opts...)...)
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/signup"
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(clientip.Middleware)
	r.Use(environment.Middleware(env))

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(log, readinessTimeout,
		httpserver.Check{Name: "upstream_api", Fn: client.Ping},
	))
	r.Mount(basePath, svc.Handle())
	if basePath != "/" {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, basePath, http.StatusFound)
		})
	}
	return r
}
