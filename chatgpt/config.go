package chatgpt

import (
	"maps"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/gochat/httpclient"
	"github.com/kbukum/gochat/logger"
	"github.com/kbukum/gochat/validation"
	"github.com/kbukum/gochat/version"
)

// DefaultTimeout bounds a call made through the client-built transport.
const DefaultTimeout = 120 * time.Second

// Config holds the client configuration. It is resolved once by New.
type Config struct {
	// APIKey is sent as a bearer token. Required unless Headers is set.
	APIKey string `yaml:"api_key" mapstructure:"api_key" validate:"required_without=Headers"`

	// APIHost is the full chat-completion URL. Defaults to DefaultAPIHost.
	APIHost string `yaml:"api_host" mapstructure:"api_host" validate:"required,url"`

	// Headers, when non-nil, are sent verbatim instead of the bearer header.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// HTTPClient is used as is when set. It excludes Proxy.
	HTTPClient *http.Client `yaml:"-" mapstructure:"-" validate:"-"`

	// Proxy routes the client-built transport through an HTTP or SOCKS5 proxy.
	Proxy *httpclient.ProxyConfig `yaml:"proxy" mapstructure:"proxy" validate:"excluded_with=HTTPClient"`

	// Timeout of the client-built transport. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Logger defaults to the "chatgpt" component logger.
	Logger *logger.Logger `yaml:"-" mapstructure:"-" validate:"-"`

	// TracerProvider and MeterProvider default to the global otel providers.
	TracerProvider trace.TracerProvider `yaml:"-" mapstructure:"-" validate:"-"`
	MeterProvider  metric.MeterProvider `yaml:"-" mapstructure:"-" validate:"-"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.APIHost == "" {
		c.APIHost = DefaultAPIHost
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Proxy != nil {
		// defaults go on a copy; the caller's ProxyConfig stays untouched
		p := *c.Proxy
		p.ApplyDefaults()
		c.Proxy = &p
	}
	if c.Logger == nil {
		c.Logger = logger.Get("chatgpt")
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if c.Proxy != nil {
		return c.Proxy.Validate()
	}
	return nil
}

// auth picks the header policy: custom headers replace the bearer token.
func (c *Config) auth() *httpclient.AuthConfig {
	if c.Headers != nil {
		return httpclient.HeaderAuth(maps.Clone(c.Headers))
	}
	return httpclient.BearerAuth(c.APIKey)
}

func (c *Config) httpConfig() httpclient.Config {
	return httpclient.Config{
		Name:       "chatgpt",
		Timeout:    c.Timeout,
		Proxy:      c.Proxy,
		HTTPClient: c.HTTPClient,
		Auth:       c.auth(),
		Headers:    map[string]string{"User-Agent": version.UserAgent()},
	}
}
