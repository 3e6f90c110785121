package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/signupkit/modules/signup"
	"github.com/dmitrymomot/signupkit/modules/signup/tui"
	"github.com/dmitrymomot/signupkit/pkg/config"
	"github.com/dmitrymomot/signupkit/pkg/logger"
)

type tuiConfig struct {
	LogFile string `env:"SIGNUP_TUI_LOG_FILE"`
}

func (c *cli) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Fill in the signup form in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg tuiConfig
			if err := config.Load(&cfg); err != nil {
				return err
			}

			// The terminal owns stdout; logs go to a file or nowhere.
			var out io.Writer = io.Discard
			if cfg.LogFile != "" {
				f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err != nil {
					return fmt.Errorf("open tui log file: %w", err)
				}
				defer f.Close()
				out = f
			}
			log := c.newLogger(logger.WithOutput(out))

			client, err := signup.NewClient(c.signup, log)
			if err != nil {
				return err
			}

			m := tui.New(client,
				tui.WithContext(cmd.Context()),
				tui.WithLogger(log),
				tui.WithLoginURL(c.signup.LoginURL),
				tui.WithAPIPath(c.signup.APIPath),
			)
			final, err := tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if done, ok := final.(tui.Model); ok && done.NavigatedTo() != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Account created. Log in at %s\n", done.NavigatedTo())
			}
			return nil
		},
	}
}
