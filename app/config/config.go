package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Log  Log  `yaml:"log"`
	LLM  LLM  `yaml:"llm"`
	HTTP HTTP `yaml:"http"`
	MCP  MCP  `yaml:"mcp"`
}

type LLM struct {
	// Model used for intent classification
	Routing ModelConfig `yaml:"routing" validate:"required"`
	// Model used for query generation, summaries and report formatting
	Generation ModelConfig `yaml:"generation" validate:"required"`
}

type ModelConfig struct {
	// OpenAI-compatible base url
	BaseURL string `yaml:"base_url" example:"https://api.mistral.ai/v1" validate:"required"`
	// Provider token
	Token string `yaml:"token" example:"sk-abc123456789DEF789ghi012JKL345mno678PQR901stu234VWX" validate:"required"`
	// Model name
	Model string `yaml:"model" example:"mistral-large-latest" validate:"required"`
	// Sampling temperature
	Temperature float32 `yaml:"temperature" example:"0.1"`
}

type HTTP struct {
	// Address the HTTP API listens on
	Addr string `yaml:"addr" example:":8080"`
	// Disable the HTTP API
	Disabled bool `yaml:"disabled" example:"false"`
}

type MCP struct {
	// Serve the agent over MCP stdio instead of the interactive console.
	// Both read stdin, so only one of them can run.
	Enabled bool `yaml:"enabled" example:"false"`
}

type Log struct {
	// Telegram logging config
	Telegram TelegramLog `yaml:"telegram"`
}

type TelegramLog struct {
	// Chat bot token, obtain it via BotFather
	Token string `yaml:"token" example:"1234567890:ABCdefGHIjklMNopQRstUVwxyZ-123456789"`
	// Chat ID to send messages to
	ChatID string `yaml:"chat_id" example:"1001234567890"`
}

func Load() (*Config, error) {
	var result Config

	data, err := os.ReadFile("config.yaml")
	if err != nil {
		return nil, oops.Errorf("failed to read config file: %w", err)
	}

	if err = yaml.Unmarshal(data, &result); err != nil {
		return nil, oops.Errorf("failed to parse YAML config: %w", err)
	}

	if result.HTTP.Addr == "" {
		result.HTTP.Addr = ":8080"
	}
	if result.LLM.Routing.Temperature == 0 {
		result.LLM.Routing.Temperature = 0.1
	}
	if result.LLM.Generation.Temperature == 0 {
		result.LLM.Generation.Temperature = 0.2
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(result); err != nil {
		return nil, oops.Errorf("failed to validate config: %w", err)
	}

	return &result, nil
}
