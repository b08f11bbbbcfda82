package httpclient

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/proxy"
)

// Proxy types.
const (
	ProxyHTTP   = "http"
	ProxySOCKS5 = "socks5"
)

// ProxyConfig describes an outbound proxy. When set, the proxy fully
// determines the network path: every request goes through it, including
// requests to loopback addresses.
type ProxyConfig struct {
	// Type is "http" (default) or "socks5".
	Type string `yaml:"type" mapstructure:"type"`
	// Host is the proxy host name or IP.
	Host string `yaml:"host" mapstructure:"host"`
	// Port is the proxy port.
	Port int `yaml:"port" mapstructure:"port"`
	// Username and Password are optional proxy credentials.
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
}

// HTTPProxy is shorthand for an HTTP proxy at host:port.
func HTTPProxy(host string, port int) *ProxyConfig {
	return &ProxyConfig{Type: ProxyHTTP, Host: host, Port: port}
}

// SOCKS5Proxy is shorthand for a SOCKS5 proxy at host:port.
func SOCKS5Proxy(host string, port int) *ProxyConfig {
	return &ProxyConfig{Type: ProxySOCKS5, Host: host, Port: port}
}

// ApplyDefaults sets the proxy type to HTTP when empty.
func (p *ProxyConfig) ApplyDefaults() {
	if p.Type == "" {
		p.Type = ProxyHTTP
	}
}

// Validate checks host, port and type.
func (p *ProxyConfig) Validate() error {
	if p.Host == "" {
		return fmt.Errorf("httpclient: proxy host is required")
	}
	if p.Port <= 0 || p.Port > 65535 {
		return fmt.Errorf("httpclient: proxy port must be in 1..65535 (got: %d)", p.Port)
	}
	switch p.Type {
	case "", ProxyHTTP, ProxySOCKS5:
		return nil
	default:
		return fmt.Errorf("httpclient: proxy type must be one of [%s, %s] (got: %s)", ProxyHTTP, ProxySOCKS5, p.Type)
	}
}

// Addr returns host:port.
func (p *ProxyConfig) Addr() string {
	return net.JoinHostPort(p.Host, strconv.Itoa(p.Port))
}

// URL returns the proxy URL including credentials, if any.
func (p *ProxyConfig) URL() *url.URL {
	scheme := p.Type
	if scheme == "" {
		scheme = ProxyHTTP
	}
	u := &url.URL{Scheme: scheme, Host: p.Addr()}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u
}

// apply routes the transport through the proxy.
func (p *ProxyConfig) apply(transport *http.Transport) error {
	switch p.Type {
	case ProxySOCKS5:
		var auth *proxy.Auth
		if p.Username != "" {
			auth = &proxy.Auth{User: p.Username, Password: p.Password}
		}
		dialer, err := proxy.SOCKS5("tcp", p.Addr(), auth, proxy.Direct)
		if err != nil {
			return fmt.Errorf("httpclient: socks5 proxy: %w", err)
		}
		cd, ok := dialer.(proxy.ContextDialer)
		if !ok {
			return fmt.Errorf("httpclient: socks5 dialer does not support contexts")
		}
		transport.Proxy = nil
		transport.DialContext = cd.DialContext
	default:
		transport.Proxy = http.ProxyURL(p.URL())
	}
	return nil
}

// ParseProxyURL parses "http://[user:pass@]host:port" or
// "socks5://[user:pass@]host:port". A missing scheme means http.
func ParseProxyURL(raw string) (*ProxyConfig, error) {
	if !strings.Contains(raw, "://") {
		raw = ProxyHTTP + "://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("httpclient: parse proxy url: %w", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		return nil, fmt.Errorf("httpclient: proxy url %q needs a numeric port", raw)
	}

	p := &ProxyConfig{Type: strings.ToLower(u.Scheme), Host: u.Hostname(), Port: port}
	if u.User != nil {
		p.Username = u.User.Username()
		p.Password, _ = u.User.Password()
	}
	return p, p.Validate()
}
