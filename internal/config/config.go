// Package config provides configuration loading and validation for the
// ferry service.
package config

import (
	"time"
)

// Config is the root configuration.
//
// Example YAML:
//
//	server:
//	  addr: ":8080"
//	  logMode: development
//	  allowOrigins:
//	    - http://localhost:3000
//	upstream:
//	  baseUrl: "https://jsonplaceholder.typicode.com"
//	  timeout: 30s
//	  proxyUrl: "http://127.0.0.1:8888"
//	  insecureTls: true
type Config struct {
	// Server configures the inbound HTTP listener
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Upstream configures the outbound client for the JSON test API
	Upstream UpstreamConfig `json:"upstream,omitempty" yaml:"upstream,omitempty"`
}

// ServerConfig contains inbound listener settings.
type ServerConfig struct {
	// Addr is the listen address (host:port)
	Addr string `json:"addr,omitempty" yaml:"addr,omitempty"`

	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout Duration `json:"readTimeout,omitempty" yaml:"readTimeout,omitempty"`

	// WriteTimeout is the maximum duration before timing out a response write
	WriteTimeout Duration `json:"writeTimeout,omitempty" yaml:"writeTimeout,omitempty"`

	// AllowOrigins lists CORS origins allowed to call the service.
	// Empty means CORS headers are not emitted at all.
	AllowOrigins []string `json:"allowOrigins,omitempty" yaml:"allowOrigins,omitempty"`

	// LogMode selects the logger preset: "development" or "production"
	LogMode string `json:"logMode,omitempty" yaml:"logMode,omitempty"`
}

// UpstreamConfig contains outbound client settings.
//
// ProxyURL and InsecureTLS are the explicit seam for an intercepting
// debugging proxy: set ProxyURL to route outbound calls through it and
// InsecureTLS to accept its re-signing CA.
type UpstreamConfig struct {
	// BaseURL is the upstream API root, e.g. https://jsonplaceholder.typicode.com
	BaseURL string `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`

	// Timeout is the per-call outbound timeout
	Timeout Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// ProxyURL, when set, routes outbound calls through this proxy
	ProxyURL string `json:"proxyUrl,omitempty" yaml:"proxyUrl,omitempty"`

	// InsecureTLS disables upstream certificate verification
	InsecureTLS bool `json:"insecureTls,omitempty" yaml:"insecureTls,omitempty"`

	// UserAgent is sent on every outbound call
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
}

// Default configuration values.
const (
	DefaultAddr         = ":8080"
	DefaultUpstreamURL  = "https://jsonplaceholder.typicode.com"
	DefaultTimeout      = 30 * time.Second
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultLogMode      = "development"
	DefaultUserAgent    = "ferry/" + Version
)

// Version is the service version, also reported by the CLI.
const Version = "0.1.0"

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills zero-valued fields with defaults.
func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = Duration(DefaultReadTimeout)
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = Duration(DefaultWriteTimeout)
	}
	if c.Server.LogMode == "" {
		c.Server.LogMode = DefaultLogMode
	}
	if c.Upstream.BaseURL == "" {
		c.Upstream.BaseURL = DefaultUpstreamURL
	}
	if c.Upstream.Timeout == 0 {
		c.Upstream.Timeout = Duration(DefaultTimeout)
	}
	if c.Upstream.UserAgent == "" {
		c.Upstream.UserAgent = DefaultUserAgent
	}
}

// Duration is a time.Duration that marshals to/from strings like "30s".
type Duration time.Duration

// GetDuration returns the duration or a default if zero.
func (d Duration) GetDuration(defaultValue time.Duration) time.Duration {
	if d == 0 {
		return defaultValue
	}
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Duration(d).String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	if s == "" || s == "null" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}

	if s == "" {
		*d = 0
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}
