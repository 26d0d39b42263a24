package config

import (
	"fmt"
	"net/url"
)

// Validate checks semantic constraints the schema cannot express.
func Validate(config *Config) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateServer(&config.Server); err != nil {
		return fmt.Errorf("invalid server configuration: %w", err)
	}

	if err := validateUpstream(&config.Upstream); err != nil {
		return fmt.Errorf("invalid upstream configuration: %w", err)
	}

	return nil
}

func validateServer(server *ServerConfig) error {
	if server.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}

	if server.ReadTimeout < 0 {
		return fmt.Errorf("readTimeout cannot be negative")
	}
	if server.WriteTimeout < 0 {
		return fmt.Errorf("writeTimeout cannot be negative")
	}

	if server.LogMode != "development" && server.LogMode != "production" {
		return fmt.Errorf("logMode must be development or production, got %q", server.LogMode)
	}

	return nil
}

func validateUpstream(upstream *UpstreamConfig) error {
	if upstream.BaseURL == "" {
		return fmt.Errorf("baseUrl cannot be empty")
	}

	if err := validateHTTPURL("baseUrl", upstream.BaseURL); err != nil {
		return err
	}

	if upstream.ProxyURL != "" {
		if err := validateHTTPURL("proxyUrl", upstream.ProxyURL); err != nil {
			return err
		}
	}

	if upstream.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	return nil
}

func validateHTTPURL(field, raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, raw)
	}

	if parsed.Host == "" {
		return fmt.Errorf("%s has no host: %q", field, raw)
	}

	return nil
}
