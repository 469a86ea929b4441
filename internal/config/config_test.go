package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/commitbuddy/internal/llm"
	"github.com/huimingz/commitbuddy/internal/prompt"
	"github.com/huimingz/commitbuddy/pkg/lang"
)

// isolate points HOME and the working directory at empty temp dirs and
// clears variables that would leak into Load
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	for _, name := range []string{
		"COMMITBUDDY_PROVIDER", "COMMITBUDDY_MODEL", "COMMITBUDDY_TEMPERATURE",
		"COMMITBUDDY_PROFESSIONALISM", "COMMITBUDDY_API_KEY", "COMMITBUDDY_LANGUAGE",
		"OPENAI_API_KEY", "DEEPSEEK_API_KEY", "GEMINI_API_KEY", "XAI_API_KEY",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	return home, work
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "ollama", mutate: func(c *Config) { c.Provider = "ollama" }},
		{name: "missing provider", mutate: func(c *Config) { c.Provider = "" }, wantErr: "provider is required"},
		{name: "unknown provider", mutate: func(c *Config) { c.Provider = "invalid" }, wantErr: "unsupported provider: invalid"},
		{name: "temperature too high", mutate: func(c *Config) { c.Temperature = 2.1 }, wantErr: "temperature must be between"},
		{name: "temperature negative", mutate: func(c *Config) { c.Temperature = -0.1 }, wantErr: "temperature must be between"},
		{name: "temperature bounds", mutate: func(c *Config) { c.Temperature = 2.0 }},
		{name: "unknown professionalism", mutate: func(c *Config) { c.Professionalism = "casual" }, wantErr: "casual"},
		{name: "unknown language", mutate: func(c *Config) { c.Language = "xx" }, wantErr: "unsupported language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, DefaultTemperature, cfg.Temperature)
	assert.Equal(t, prompt.StyleStandard, cfg.Style())
	assert.Equal(t, "gpt-4o-mini", cfg.ModelName())
	assert.Empty(t, cfg.File)
}

func TestLoad_WorkingDirectoryBeforeHome(t *testing.T) {
	home, work := isolate(t)
	writeConfig(t, home, "provider: gemini\n")
	writeConfig(t, work, "provider: ollama\nmodel: qwen2.5:14b\ntemperature: 0.2\nprofessionalism: enterprise\napi_endpoint: http://gpu-box:11434\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "qwen2.5:14b", cfg.ModelName())
	assert.InDelta(t, 0.2, cfg.Temperature, 0.0001)
	assert.Equal(t, prompt.StyleEnterprise, cfg.Style())
	assert.Equal(t, FileName, filepath.Base(cfg.File))

	pc := cfg.ProviderConfig("")
	assert.Equal(t, llm.ProviderConfig{Provider: "ollama", Model: "qwen2.5:14b", Temperature: 0.2, Endpoint: "http://gpu-box:11434"}, pc)
}

func TestLoad_HomeFallback(t *testing.T) {
	home, _ := isolate(t)
	writeConfig(t, home, "provider: deepseek\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "deepseek", cfg.Provider)
	assert.Equal(t, "deepseek-chat", cfg.ModelName())
}

func TestLoad_CustomPath(t *testing.T) {
	_, work := isolate(t)
	path := filepath.Join(work, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: grok\nlanguage: ja\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "grok", cfg.Provider)
	assert.Equal(t, lang.Japanese, cfg.GetLanguage(""))
	assert.Equal(t, lang.Korean, cfg.GetLanguage("ko"))

	_, err = Load(filepath.Join(work, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	_, work := isolate(t)
	writeConfig(t, work, "provider: openai\ntemperature: 3\n")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "temperature")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	_, work := isolate(t)
	writeConfig(t, work, "provider: openai\nmodel: gpt-4o\n")
	t.Setenv("COMMITBUDDY_PROVIDER", "ollama")
	t.Setenv("COMMITBUDDY_TEMPERATURE", "1.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.InDelta(t, 1.5, cfg.Temperature, 0.0001)
}

func TestLoad_DotEnv(t *testing.T) {
	_, work := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte("COMMITBUDDY_PROFESSIONALISM=simple\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("COMMITBUDDY_PROFESSIONALISM") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, prompt.StyleSimple, cfg.Style())
}

type fakeKeys struct {
	keys map[string]string
	err  error
}

func (f fakeKeys) Get(provider string) (string, error) {
	return f.keys[provider], f.err
}

func TestResolveAPIKey(t *testing.T) {
	tests := []struct {
		name       string
		keys       KeyGetter
		env        map[string]string
		configKey  string
		wantKey    string
		wantSource CredentialSource
	}{
		{
			name:       "keyring wins",
			keys:       fakeKeys{keys: map[string]string{"openai": "sk-keyring"}},
			env:        map[string]string{"OPENAI_API_KEY": "sk-env"},
			configKey:  "sk-config",
			wantKey:    "sk-keyring",
			wantSource: SourceKeyring,
		},
		{
			name:       "env before config",
			keys:       fakeKeys{},
			env:        map[string]string{"OPENAI_API_KEY": "sk-env"},
			configKey:  "sk-config",
			wantKey:    "sk-env",
			wantSource: SourceEnv,
		},
		{
			name:       "keyring failure falls through",
			keys:       fakeKeys{err: errors.New("secret service unavailable")},
			configKey:  "sk-config",
			wantKey:    "sk-config",
			wantSource: SourceConfig,
		},
		{
			name:       "config key with env expansion",
			env:        map[string]string{"MY_OPENAI_KEY": "sk-expanded"},
			configKey:  "${MY_OPENAI_KEY}",
			wantKey:    "sk-expanded",
			wantSource: SourceConfig,
		},
		{
			name:       "nothing set",
			keys:       fakeKeys{},
			wantSource: SourceNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := Default()
			cfg.APIKey = tt.configKey
			key, source := cfg.ResolveAPIKey(tt.keys)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestSwitchProvider_DropsFileCredential(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `provider: openai
model: gpt-4o
api_key: sk-openai-secret
api_endpoint: https://openai-proxy.example/v1
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	cfg.SwitchProvider(llm.ProviderOpenAI)
	key, source := cfg.ResolveAPIKey(fakeKeys{})
	assert.Equal(t, "sk-openai-secret", key)
	assert.Equal(t, SourceConfig, source)

	cfg.SwitchProvider(llm.ProviderDeepseek)
	assert.Equal(t, llm.ProviderDeepseek, cfg.Provider)
	assert.Empty(t, cfg.Model)
	assert.Empty(t, cfg.APIEndpoint)

	key, source = cfg.ResolveAPIKey(fakeKeys{})
	assert.Empty(t, key)
	assert.Equal(t, SourceNone, source)

	pc := cfg.ProviderConfig(key)
	assert.Empty(t, pc.APIKey)
	assert.Empty(t, pc.Endpoint)
	assert.Equal(t, llm.DefaultModel(llm.ProviderDeepseek), pc.Model)
}

func TestCredentialEnvVar(t *testing.T) {
	assert.Equal(t, "OPENAI_API_KEY", CredentialEnvVar("openai"))
	assert.Equal(t, "XAI_API_KEY", CredentialEnvVar("grok"))
	assert.Empty(t, CredentialEnvVar("ollama"))
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("CB_TEST_VAR", "value")

	assert.Equal(t, "value", expandEnv("${CB_TEST_VAR}"))
	assert.Equal(t, "value", expandEnv("$CB_TEST_VAR"))
	assert.Equal(t, "plain", expandEnv("plain"))
	assert.Empty(t, expandEnv("${CB_TEST_UNSET}"))
}

func TestHistoryPath(t *testing.T) {
	home, _ := isolate(t)

	cfg := Default()
	path, err := cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".commitbuddy", "history.db"), path)

	cfg.HistoryFile = "~/data/cb.db"
	path, err = cfg.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "cb.db"), path)
}
