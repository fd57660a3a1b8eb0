package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) {
	t.Helper()
	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte(data), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	writeConfig(t, `
llm:
  routing:
    base_url: https://api.mistral.ai/v1
    token: test-token
    model: mistral-large-latest
  generation:
    base_url: https://api.mistral.ai/v1
    token: test-token
    model: mistral-large-latest
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.InDelta(t, 0.1, cfg.LLM.Routing.Temperature, 1e-6)
	assert.InDelta(t, 0.2, cfg.LLM.Generation.Temperature, 1e-6)
	assert.False(t, cfg.MCP.Enabled)
}

func TestLoad_MissingToken(t *testing.T) {
	writeConfig(t, `
llm:
  routing:
    base_url: https://api.mistral.ai/v1
    model: mistral-large-latest
  generation:
    base_url: https://api.mistral.ai/v1
    token: test-token
    model: mistral-large-latest
`)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	assert.Error(t, err)
}
