// Command chatgpt asks a chat-completion endpoint one question and prints
// the answer.
//
//	chatgpt [flags] [prompt...]
//
// The prompt is read from stdin when no arguments are given. Settings come
// from config.yml, .env and the environment (CHATGPT_API_KEY, ...), and
// flags override them.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/gochat/chatgpt"
	"github.com/kbukum/gochat/config"
	"github.com/kbukum/gochat/httpclient"
	"github.com/kbukum/gochat/logger"
	"github.com/kbukum/gochat/observability"
	"github.com/kbukum/gochat/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

type options struct {
	configFile  string
	envFile     string
	apiKey      string
	apiHost     string
	proxy       string
	model       string
	user        string
	system      string
	maxTokens   int
	timeout     time.Duration
	raw         bool
	debug       bool
	showVersion bool
	listModels  bool
}

func parseFlags(args []string, stderr io.Writer) (*options, []string, error) {
	opts := &options{}
	fs := pflag.NewFlagSet("chatgpt", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.configFile, "config", "c", "", "config file (default: search for config.yml)")
	fs.StringVar(&opts.envFile, "env-file", "", ".env file (default: search for .env)")
	fs.StringVar(&opts.apiKey, "api-key", "", "API key sent as a bearer token")
	fs.StringVar(&opts.apiHost, "api-host", "", "chat-completion URL")
	fs.StringVar(&opts.proxy, "proxy", "", "proxy URL, http://host:port or socks5://host:port")
	fs.StringVarP(&opts.model, "model", "m", chatgpt.DefaultModel.Name(), "model name")
	fs.StringVarP(&opts.user, "user", "u", chatgpt.DefaultUser, "end-user identifier")
	fs.StringVarP(&opts.system, "system", "s", "", "system message sent before the prompt")
	fs.IntVarP(&opts.maxTokens, "max-tokens", "n", chatgpt.DefaultMaxTokens, "completion token cap (0 for the service default)")
	fs.DurationVar(&opts.timeout, "timeout", 0, "request timeout (default 2m)")
	fs.BoolVar(&opts.raw, "raw", false, "print the full JSON response")
	fs.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	fs.BoolVar(&opts.listModels, "models", false, "list known models and exit")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return opts, fs.Args(), nil
}

// apply lets explicitly given flags override the loaded configuration.
func (o *options) apply(cfg *AppConfig) error {
	if o.apiKey != "" {
		cfg.ChatGPT.APIKey = o.apiKey
	}
	if o.apiHost != "" {
		cfg.ChatGPT.APIHost = o.apiHost
	}
	if o.timeout > 0 {
		cfg.ChatGPT.Timeout = o.timeout
	}
	if o.debug {
		cfg.Debug = true
		cfg.Logging.Level = "debug"
	}
	if o.proxy != "" {
		p, err := httpclient.ParseProxyURL(o.proxy)
		if err != nil {
			return err
		}
		cfg.ChatGPT.Proxy = p
	}
	if cfg.ChatGPT.APIKey == "" && cfg.ChatGPT.Headers == nil {
		cfg.ChatGPT.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return nil
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, rest, err := parseFlags(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}

	switch {
	case opts.showVersion:
		fmt.Fprintln(stdout, version.String())
		return nil
	case opts.listModels:
		for _, m := range chatgpt.Models() {
			fmt.Fprintln(stdout, m.Name())
		}
		return nil
	}

	var cfg AppConfig
	var loadOpts []config.LoaderOption
	if opts.configFile != "" {
		loadOpts = append(loadOpts, config.WithConfigFile(opts.configFile))
	}
	if opts.envFile != "" {
		loadOpts = append(loadOpts, config.WithEnvFile(opts.envFile))
	}
	if err := config.LoadConfig("chatgpt", &cfg, loadOpts...); err != nil {
		return err
	}
	if err := opts.apply(&cfg); err != nil {
		return err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewWithWriter(&cfg.Logging, cfg.Name, stderr)
	logger.SetGlobalLogger(log)
	cfg.ChatGPT.Logger = log.WithComponent("chatgpt")

	shutdown, err := initTelemetry(ctx, &cfg)
	if err != nil {
		return err
	}
	defer func() {
		// flush even when ctx is already cancelled
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := shutdown(sctx); err != nil {
			log.Warn("telemetry shutdown failed", logger.ErrorFields("shutdown", err))
		}
	}()

	prompt, err := readPrompt(rest, stdin)
	if err != nil {
		return err
	}

	client, err := chatgpt.New(cfg.ChatGPT)
	if err != nil {
		return err
	}

	messages := []chatgpt.Message{chatgpt.UserMessage(prompt)}
	if opts.system != "" {
		messages = append([]chatgpt.Message{chatgpt.SystemMessage(opts.system)}, messages...)
	}
	model := chatgpt.Model(opts.model)

	if opts.raw {
		resp, err := client.AskOriginal(ctx, model, opts.user, messages, opts.maxTokens)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	answer, err := client.AskMessagesWith(ctx, model, opts.user, messages, opts.maxTokens)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, answer)
	return err
}

func readPrompt(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read prompt: %w", err)
	}
	prompt := strings.TrimSpace(string(data))
	if prompt == "" {
		return "", errors.New("no prompt given")
	}
	return prompt, nil
}

// initTelemetry installs OTLP tracer and meter providers when an endpoint is
// configured. The returned function flushes and stops them.
func initTelemetry(ctx context.Context, cfg *AppConfig) (func(context.Context) error, error) {
	if cfg.Telemetry.Endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	tp, err := observability.InitTracer(ctx, cfg.tracerConfig())
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}
	mp, err := observability.InitMeter(ctx, cfg.meterConfig())
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}
