package main

import (
	"fmt"
	"time"

	"github.com/kbukum/gochat/chatgpt"
	"github.com/kbukum/gochat/config"
	"github.com/kbukum/gochat/observability"
	"github.com/kbukum/gochat/version"
)

// AppConfig is the configuration of the chatgpt command.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	ChatGPT              chatgpt.Config  `yaml:"chatgpt" mapstructure:"chatgpt"`
	Telemetry            TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// TelemetryConfig enables OTLP export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool   `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is nil when unset; an explicit 0 turns sampling off.
	SampleRate *float64      `yaml:"sample_rate" mapstructure:"sample_rate"`
	Interval   time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults applies default values.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "chatgpt"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Telemetry.SampleRate == nil {
		rate := 1.0
		c.Telemetry.SampleRate = &rate
	}
	if c.Telemetry.Interval == 0 {
		c.Telemetry.Interval = 15 * time.Second
	}
}

// Validate validates the command configuration. The chatgpt section is
// validated by chatgpt.New.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if r := c.Telemetry.SampleRate; r != nil && (*r < 0 || *r > 1) {
		return fmt.Errorf("telemetry.sample_rate must be within [0, 1] (got: %v)", *r)
	}
	return nil
}

func (c *AppConfig) tracerConfig() observability.TracerConfig {
	tc := observability.DefaultTracerConfig(c.Name)
	tc.ServiceVersion = version.Short()
	tc.Environment = c.Environment
	tc.Endpoint = c.Telemetry.Endpoint
	tc.Insecure = c.Telemetry.Insecure
	if c.Telemetry.SampleRate != nil {
		tc.SampleRate = *c.Telemetry.SampleRate
	}
	return tc
}

func (c *AppConfig) meterConfig() observability.MeterConfig {
	mc := observability.DefaultMeterConfig(c.Name)
	mc.ServiceVersion = version.Short()
	mc.Environment = c.Environment
	mc.Endpoint = c.Telemetry.Endpoint
	mc.Insecure = c.Telemetry.Insecure
	mc.Interval = c.Telemetry.Interval
	return mc
}
