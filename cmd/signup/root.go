package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/signupkit/modules/signup"
	"github.com/dmitrymomot/signupkit/pkg/clientip"
	"github.com/dmitrymomot/signupkit/pkg/config"
	"github.com/dmitrymomot/signupkit/pkg/environment"
	"github.com/dmitrymomot/signupkit/pkg/i18n"
	"github.com/dmitrymomot/signupkit/pkg/logger"
	"github.com/dmitrymomot/signupkit/pkg/requestid"
)

type appConfig struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Name string `env:"APP_NAME" envDefault:"signup"`
}

type cli struct {
	envFile    string
	apiBaseURL string

	app    appConfig
	signup signup.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	cmd := &cobra.Command{
		Use:           "signup",
		Short:         "Signup form backed by an upstream registration API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return c.loadConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&c.envFile, "env-file", "", "additional .env file to load")
	cmd.PersistentFlags().StringVar(&c.apiBaseURL, "api-base-url", "", "upstream API base URL (overrides API_BASE_URL)")

	cmd.AddCommand(c.newServeCmd())
	cmd.AddCommand(c.newTUICmd())
	return cmd
}

func (c *cli) loadConfig() error {
	if c.envFile != "" {
		if err := config.LoadEnv(c.envFile); err != nil {
			return err
		}
	}
	// The flag wins over the environment, including the required check.
	if c.apiBaseURL != "" {
		if err := os.Setenv("API_BASE_URL", c.apiBaseURL); err != nil {
			return errors.Join(errFlagOverride, err)
		}
	}

	if err := config.Load(&c.app); err != nil {
		return err
	}
	return config.Parse(&c.signup)
}

func (c *cli) environment() environment.Environment {
	return environment.Parse(c.app.Env)
}

func (c *cli) newLogger(opts ...logger.Option) *slog.Logger {
	base := []logger.Option{
		logger.WithEnvironment(c.app.Env, c.app.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			environment.LoggerExtractor(),
			clientip.LoggerExtractor(),
			i18n.LoggerExtractor(),
		),
	}
	return logger.New(append(base, opts...)...)
}

var errFlagOverride = errors.New("failed to apply flag override")
