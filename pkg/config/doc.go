// Package config loads application configuration from environment variables
// into tagged structs, using github.com/caarlos0/env/v11 for parsing and
// github.com/joho/godotenv for .env files.
//
// Load parses a struct once per type and caches the result for the life of
// the process; Parse always reads the environment afresh, which suits tests
// and values that command-line flags may override afterwards:
//
//	type Config struct {
//		APIBaseURL string        `env:"API_BASE_URL,required"`
//		Timeout    time.Duration `env:"SIGNUP_API_TIMEOUT" envDefault:"0"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// The default .env file in the working directory is loaded before the first
// parse when it exists; variables already set in the environment win.
// LoadEnv loads other files explicitly.
//
// A failed Load is not cached, so a later call can succeed once the
// environment is fixed. ResetCache drops every cached value.
package config
