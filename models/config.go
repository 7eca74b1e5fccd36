package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`

	// Remote API
	APIBaseURL     string        `mapstructure:"api_base_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Identity
	TokenURL    string `mapstructure:"token_url"`
	AccessToken string `mapstructure:"access_token"`
	Email       string `mapstructure:"email"`
	Password    string `mapstructure:"password"`

	// Dev server (local stand-in for the backend + identity provider)
	DevServerHost  string        `mapstructure:"dev_server_host"`
	DevServerPort  string        `mapstructure:"dev_server_port"`
	TokenSecret    string        `mapstructure:"token_secret"`
	TokenExpiresIn time.Duration `mapstructure:"token_expires_in"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}
