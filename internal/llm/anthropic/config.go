package anthropic

import (
	"log/slog"
	"net/http"
	"time"
)

const apiVersion = "2023-06-01"

// Config for the Anthropic messages client.
type Config struct {
	APIKey      string        // required
	BaseURL     string        // default https://api.anthropic.com
	Model       string        // e.g., "claude-3-5-sonnet-20241022"
	MaxTokens   int           // default 4000
	Temperature float32       // kept low for consistent matching
	Timeout     time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-3-5-sonnet-20241022"
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4000
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}
