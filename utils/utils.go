package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storefront-client/models"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")

	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err == nil {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	// Handle nested JSON structure from config.json
	flattenNestedConfig(v)

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Durations may arrive as strings from config files or env vars
	if s := v.GetString("request_timeout"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			config.RequestTimeout = d
		}
	}
	if s := v.GetString("token_expires_in"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			config.TokenExpiresIn = d
		}
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "Storefront Client")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")

	v.SetDefault("api_base_url", "http://localhost:9090")
	v.SetDefault("request_timeout", 15*time.Second)

	v.SetDefault("token_url", "http://localhost:9090/auth/token")
	v.SetDefault("access_token", "")
	v.SetDefault("email", "")
	v.SetDefault("password", "")

	v.SetDefault("dev_server_host", "0.0.0.0")
	v.SetDefault("dev_server_port", "9090")
	v.SetDefault("token_secret", "dev-only-token-secret-change-me")
	v.SetDefault("token_expires_in", 30*time.Minute)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must be set")
	}
	if c.AppEnv == "production" && c.TokenSecret == "dev-only-token-secret-change-me" {
		return fmt.Errorf("TOKEN_SECRET must be set in production environment")
	}
	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	nested := map[string]string{
		"app.name":              "app_name",
		"app.version":           "app_version",
		"app.env":               "app_env",
		"api.base_url":          "api_base_url",
		"api.request_timeout":   "request_timeout",
		"identity.token_url":    "token_url",
		"identity.email":        "email",
		"identity.password":     "password",
		"dev_server.host":       "dev_server_host",
		"dev_server.port":       "dev_server_port",
		"dev_server.secret":     "token_secret",
		"dev_server.expires_in": "token_expires_in",
		"logging.level":         "log_level",
		"logging.format":        "log_format",
	}
	for key, flat := range nested {
		if v.IsSet(key) {
			v.Set(flat, v.GetString(key))
		}
	}
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// HashPassword hashes a plain text password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a hashed password with a plain text password.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
