package httpclient

import (
	"fmt"
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
)

// Config configures the HTTP client.
type Config struct {
	// Name identifies the client in logs.
	Name string `yaml:"name" mapstructure:"name"`

	// Timeout is the request timeout of the client-built transport. Defaults to 30s.
	// Ignored when HTTPClient is supplied.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Proxy routes every request through the given proxy. Nil means direct.
	Proxy *ProxyConfig `yaml:"proxy" mapstructure:"proxy"`

	// HTTPClient is a caller-supplied client used as is.
	// Mutually exclusive with Proxy.
	HTTPClient *http.Client `yaml:"-" mapstructure:"-"`

	// Auth configures authentication applied to all requests.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// Headers are default headers applied to all requests.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Proxy != nil {
		c.Proxy.ApplyDefaults()
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.HTTPClient == nil && c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.HTTPClient != nil && c.Proxy != nil {
		return fmt.Errorf("httpclient: proxy and a supplied http client are mutually exclusive")
	}
	if c.Proxy != nil {
		if err := c.Proxy.Validate(); err != nil {
			return err
		}
	}
	return nil
}
