package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini_key")
	os.Unsetenv("LLM_PROVIDER")
	os.Unsetenv("LLM_MODEL")
	os.Unsetenv("LLM_TIMEOUT")
	os.Unsetenv("SESSION_BACKEND")
	os.Unsetenv("SESSION_TTL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.LLMModel)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
	assert.Equal(t, SessionBackendSQLite, cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
}

func TestLoadMissingGeminiKey(t *testing.T) {
	os.Unsetenv("GEMINI_API_KEY")
	os.Unsetenv("LLM_PROVIDER")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestLoadGroqProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("GROQ_API_KEY", "groq_key")
	os.Unsetenv("LLM_MODEL")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLMModel)
}

func TestLoadUnknownProvider(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "markov-chain")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadUnknownSessionBackend(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini_key")
	t.Setenv("SESSION_BACKEND", "papyrus")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadCustomDurations(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gemini_key")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("SESSION_TTL", "1h30m")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)

	t.Setenv("SESSION_TTL", "soon")
	_, err = Load()
	require.Error(t, err)
}
