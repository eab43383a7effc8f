// Package config loads env-tagged configuration structs.
//
// Load reads an optional .env file once, then parses the environment into
// the struct with github.com/caarlos0/env. Each struct type is parsed once
// and cached:
//
//	var cfg dispatch.Config
//	config.MustLoad(&cfg)
//
// LoadEnv reads additional env files explicitly. ResetCache forces the next
// Load to parse the environment again, which tests use after t.Setenv.
package config
