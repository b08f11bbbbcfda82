package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"
	"time"
)

type testChat struct {
	APIKey  string            `mapstructure:"api_key"`
	APIHost string            `mapstructure:"api_host"`
	Timeout time.Duration     `mapstructure:"timeout"`
	Headers map[string]string `mapstructure:"headers"`
	Proxy   *struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"proxy"`
}

type testConfig struct {
	ServiceConfig `mapstructure:",squash"`
	Chat          testChat `mapstructure:"chatgpt"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "svc", Debug: true}
	cfg.ApplyDefaults()
	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug log level, got %q", cfg.Logging.Level)
	}

	cfg = ServiceConfig{Name: "svc", Debug: true}
	cfg.Logging.Level = "warn"
	cfg.ApplyDefaults()
	if cfg.Logging.Level != "warn" {
		t.Errorf("explicit level should win, got %q", cfg.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    ServiceConfig
		errMsg string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, "config.environment must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %v", tc.errMsg, err)
			}
		})
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: chatgpt
environment: staging
logging:
  level: warn
  format: json
chatgpt:
  api_key: sk-file
  api_host: http://localhost:8080/v1/chat/completions
  timeout: 30s
  headers:
    X-Org: acme
  proxy:
    host: proxy.internal
    port: 3128
`)
	// empty variables are ignored, so these cannot shadow the file
	t.Setenv("NAME", "")
	t.Setenv("ENVIRONMENT", "")

	var cfg testConfig
	if err := LoadConfig("chatgpt", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "chatgpt" || cfg.Environment != "staging" {
		t.Errorf("service fields = %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if cfg.Chat.APIKey != "sk-file" || cfg.Chat.Timeout != 30*time.Second {
		t.Errorf("chat = %+v", cfg.Chat)
	}
	// viper lower-cases map keys
	if cfg.Chat.Headers["x-org"] != "acme" {
		t.Errorf("headers = %v", cfg.Chat.Headers)
	}
	if cfg.Chat.Proxy == nil || cfg.Chat.Proxy.Port != 3128 {
		t.Errorf("proxy = %+v", cfg.Chat.Proxy)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "chatgpt:\n  api_key: sk-file\n  timeout: 30s\n")
	t.Setenv("CHATGPT_API_KEY", "sk-env")
	t.Setenv("CHATGPT_TIMEOUT", "5s")

	var cfg testConfig
	if err := LoadConfig("chatgpt", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Chat.APIKey != "sk-env" {
		t.Errorf("APIKey = %q, want sk-env", cfg.Chat.APIKey)
	}
	if cfg.Chat.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Chat.Timeout)
	}
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "GOCHAT_TEST_CHATGPT_API_HOST=http://from-dotenv/v1\n")
	t.Cleanup(func() { _ = os.Unsetenv("GOCHAT_TEST_CHATGPT_API_HOST") })

	var cfg struct {
		Gochat struct {
			Test struct {
				Chatgpt testChat `mapstructure:"chatgpt"`
			} `mapstructure:"test"`
		} `mapstructure:"gochat"`
	}
	if err := LoadConfig("chatgpt", &cfg, WithConfigFile(filepath.Join(dir, "none.yml")), WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if got := cfg.Gochat.Test.Chatgpt.APIHost; got != "http://from-dotenv/v1" {
		t.Errorf("APIHost = %q", got)
	}
}

func TestLoadConfig_MissingFiles(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing files, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", "chatgpt: [unclosed\n")
	var cfg testConfig
	if err := LoadConfig("chatgpt", &cfg, WithConfigFile(path)); err == nil {
		t.Error("expected a parse error")
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolver(t *testing.T) {
	tests := []struct {
		name       string
		files      []string
		opts       LoaderConfig
		wantConfig string
		wantEnv    string
	}{
		{
			name:       "command directory first",
			files:      []string{"./cmd/chatgpt/config.yml", "./config.yml", "./cmd/chatgpt/.env", "./.env"},
			wantConfig: "./cmd/chatgpt/config.yml",
			wantEnv:    "./cmd/chatgpt/.env",
		},
		{
			name:       "app specific env file wins",
			files:      []string{"./.env.chatgpt", "./cmd/chatgpt/.env"},
			wantEnv:    "./.env.chatgpt",
		},
		{
			name:       "explicit paths are kept",
			files:      []string{"./config.yml"},
			opts:       LoaderConfig{ConfigFile: "/etc/app.yml", EnvFile: "/etc/app.env"},
			wantConfig: "/etc/app.yml",
			wantEnv:    "/etc/app.env",
		},
		{name: "nothing found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fs := &mockFS{files: map[string]bool{}}
			for _, f := range tc.files {
				fs.files[f] = true
			}
			got := (&Resolver{FileSystem: fs}).ResolveFiles("chatgpt", tc.opts)
			if got.ConfigFile != tc.wantConfig || got.EnvFile != tc.wantEnv {
				t.Errorf("ResolveFiles = %+v, want config %q env %q", got, tc.wantConfig, tc.wantEnv)
			}
		})
	}
}

func TestDeclaredKeys(t *testing.T) {
	got := declaredKeys(reflect.TypeOf(&testConfig{}), "")
	for _, want := range []string{"name", "debug", "logging.level", "chatgpt.api_key", "chatgpt.timeout", "chatgpt.proxy.port"} {
		if !slices.Contains(got, want) {
			t.Errorf("keys %v missing %q", got, want)
		}
	}
	for _, unwanted := range []string{"chatgpt.headers", "chatgpt.proxy", "chatgpt", "serviceconfig.name"} {
		if slices.Contains(got, unwanted) {
			t.Errorf("keys %v should not contain %q", got, unwanted)
		}
	}
	if keys := declaredKeys(reflect.TypeOf(map[string]any{}), ""); keys != nil {
		t.Errorf("non-struct keys = %v", keys)
	}
}

func TestEnvName(t *testing.T) {
	tests := map[string]string{
		"chatgpt.api_key":    "CHATGPT_API_KEY",
		"logging.no_color":   "LOGGING_NO_COLOR",
		"chatgpt.proxy.port": "CHATGPT_PROXY_PORT",
		"debug":              "DEBUG",
	}
	for key, want := range tests {
		if got := envName(key); got != want {
			t.Errorf("envName(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestLoadConfig_UnrelatedEnvIgnored(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: chatgpt
chatgpt:
  api_key: sk-file
  headers:
    x-org: acme
  proxy:
    host: proxy.internal
    port: 3128
`)
	t.Setenv("NAME", "")
	t.Setenv("DEBUG", "")

	tests := []struct {
		name, key, value string
	}{
		{"prefix of a scalar key", "DEBUG_MODE", "1"},
		{"inside a header map", "CHATGPT_HEADERS_X_API_KEY", "v"},
		{"scalar over a struct", "CHATGPT_PROXY", "http://p:8080"},
		{"scalar over a section", "CHATGPT", "on"},
		{"suffix of a scalar key", "CHATGPT_API_KEY_FILE", "/run/secret"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)

			var cfg testConfig
			if err := LoadConfig("chatgpt", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
				t.Fatalf("LoadConfig failed with %s set: %v", tc.key, err)
			}
			if cfg.Debug || cfg.Chat.APIKey != "sk-file" || cfg.Chat.Headers["x-org"] != "acme" {
				t.Errorf("config changed by %s: %+v", tc.key, cfg)
			}
			if cfg.Chat.Proxy == nil || cfg.Chat.Proxy.Host != "proxy.internal" {
				t.Errorf("proxy = %+v", cfg.Chat.Proxy)
			}
		})
	}
}

func TestLoadConfig_EnvFillsNestedKeyAbsentFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "chatgpt:\n  api_key: sk-file\n")
	t.Setenv("CHATGPT_PROXY_HOST", "proxy.env")
	t.Setenv("CHATGPT_PROXY_PORT", "1080")
	t.Setenv("DEBUG", "true")

	var cfg testConfig
	if err := LoadConfig("chatgpt", &cfg, WithConfigFile(path), WithEnvFile(filepath.Join(dir, "none"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Chat.Proxy == nil || cfg.Chat.Proxy.Host != "proxy.env" || cfg.Chat.Proxy.Port != 1080 {
		t.Errorf("proxy = %+v", cfg.Chat.Proxy)
	}
	if !cfg.Debug {
		t.Error("DEBUG=true should set debug")
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem != fs || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("options not applied: %+v", lc)
	}
}
