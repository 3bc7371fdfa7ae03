package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrMissingOption  = goerr.New("required option is missing")
	ErrConfigNotFound = goerr.New("configuration file not found")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	OptionKey     = "option"
	BackendKey    = "backend"
)
