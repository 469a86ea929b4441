package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/huimingz/commitbuddy/internal/llm"
	"github.com/huimingz/commitbuddy/internal/log"
	"github.com/huimingz/commitbuddy/internal/prompt"
	"github.com/huimingz/commitbuddy/pkg/lang"
)

const (
	// FileName is the configuration file looked up in the working and home directories
	FileName = ".commitbuddy.yaml"

	// EnvPrefix prefixes environment overrides, e.g. COMMITBUDDY_PROVIDER
	EnvPrefix = "COMMITBUDDY"

	DefaultProvider    = llm.ProviderOpenAI
	DefaultTemperature = 0.7
)

// credentialEnvVars are the conventional per-vendor API key variables
var credentialEnvVars = map[string]string{
	llm.ProviderOpenAI:   "OPENAI_API_KEY",
	llm.ProviderDeepseek: "DEEPSEEK_API_KEY",
	llm.ProviderGemini:   "GEMINI_API_KEY",
	llm.ProviderGrok:     "XAI_API_KEY",
}

// CredentialEnvVar returns the API key variable for a provider, or "" when it has none
func CredentialEnvVar(provider string) string {
	return credentialEnvVars[provider]
}

// SupportedProviders returns the registered provider names, sorted
func SupportedProviders() []string {
	return llm.NewProviderFactory().Names()
}

// Config represents the application configuration
type Config struct {
	Provider        string  `yaml:"provider" mapstructure:"provider"`
	Model           string  `yaml:"model" mapstructure:"model"`
	Temperature     float64 `yaml:"temperature" mapstructure:"temperature"`
	Professionalism string  `yaml:"professionalism" mapstructure:"professionalism"`
	APIEndpoint     string  `yaml:"api_endpoint" mapstructure:"api_endpoint"`
	APIKey          string  `yaml:"api_key" mapstructure:"api_key"`
	Language        string  `yaml:"language" mapstructure:"language"`
	HistoryFile     string  `yaml:"history_file" mapstructure:"history_file"`

	// File is the config file that was read, empty when only defaults apply
	File string `yaml:"-" mapstructure:"-"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Provider:        DefaultProvider,
		Temperature:     DefaultTemperature,
		Professionalism: string(prompt.DefaultStyle),
		Language:        string(lang.DefaultLanguage()),
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("provider", d.Provider)
	v.SetDefault("model", "")
	v.SetDefault("temperature", d.Temperature)
	v.SetDefault("professionalism", d.Professionalism)
	v.SetDefault("api_endpoint", "")
	v.SetDefault("api_key", "")
	v.SetDefault("language", d.Language)
	v.SetDefault("history_file", "")
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !llm.NewProviderFactory().Supports(c.Provider) {
		return fmt.Errorf("unsupported provider: %s (supported: %s)", c.Provider, strings.Join(SupportedProviders(), ", "))
	}
	if c.Temperature < float64(llm.MinTemperature) || c.Temperature > float64(llm.MaxTemperature) {
		return fmt.Errorf("temperature must be between %.1f and %.1f, got %g", llm.MinTemperature, llm.MaxTemperature, c.Temperature)
	}
	if _, err := prompt.ParseStyle(c.Professionalism); err != nil {
		return err
	}
	if _, ok := lang.Normalize(c.Language); c.Language != "" && !ok {
		return fmt.Errorf("unsupported language: %s", c.Language)
	}
	return nil
}

// Style returns the configured professionalism level
func (c *Config) Style() prompt.Style {
	style, err := prompt.ParseStyle(c.Professionalism)
	if err != nil {
		return prompt.DefaultStyle
	}
	return style
}

// ModelName returns the configured model or the provider default
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	return llm.DefaultModel(c.Provider)
}

// GetLanguage returns the language to use
// Priority: parameter > config (file or COMMITBUDDY_LANGUAGE) > default (en)
func (c *Config) GetLanguage(langParam string) lang.Language {
	if langParam != "" {
		return lang.ParseLanguage(langParam)
	}
	if c.Language != "" {
		return lang.ParseLanguage(c.Language)
	}
	return lang.DefaultLanguage()
}

// HistoryPath returns the history store location, ~ expanded
func (c *Config) HistoryPath() (string, error) {
	if c.HistoryFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".commitbuddy", "history.db"), nil
	}
	return expandHome(c.HistoryFile)
}

// KeyGetter reads a stored API key for a provider
type KeyGetter interface {
	Get(provider string) (string, error)
}

// CredentialSource names where an API key came from
type CredentialSource string

const (
	SourceKeyring CredentialSource = "keyring"
	SourceEnv     CredentialSource = "env"
	SourceConfig  CredentialSource = "config"
	SourceNone    CredentialSource = "none"
)

// ResolveAPIKey looks up the provider's key in the keyring, then the
// vendor environment variable, then api_key in the config file. An
// unreachable keyring is skipped.
func (c *Config) ResolveAPIKey(keys KeyGetter) (string, CredentialSource) {
	if keys != nil {
		key, err := keys.Get(c.Provider)
		if err != nil {
			log.Debug("Keyring lookup skipped: %v", err)
		} else if key != "" {
			return key, SourceKeyring
		}
	}

	if name := CredentialEnvVar(c.Provider); name != "" {
		if key := os.Getenv(name); key != "" {
			return key, SourceEnv
		}
	}

	if key := expandEnv(c.APIKey); key != "" {
		return key, SourceConfig
	}
	return "", SourceNone
}

// ProviderConfig builds the dispatcher input with the resolved key
func (c *Config) ProviderConfig(apiKey string) llm.ProviderConfig {
	return llm.ProviderConfig{
		Provider:    c.Provider,
		Model:       c.ModelName(),
		Temperature: float32(c.Temperature),
		Endpoint:    c.APIEndpoint,
		APIKey:      apiKey,
	}
}

// SwitchProvider makes name the active provider. The model, api_key and
// api_endpoint in the file belong to the provider the file names, so they
// are dropped when switching away from it.
func (c *Config) SwitchProvider(name string) {
	if name == "" || name == c.Provider {
		return
	}
	c.Provider = name
	c.Model = ""
	c.APIKey = ""
	c.APIEndpoint = ""
}

// DebugDump logs the effective configuration with the API key masked
func (c *Config) DebugDump() {
	log.DebugConfig("Effective configuration", map[string]interface{}{
		"file":            c.File,
		"provider":        c.Provider,
		"model":           c.ModelName(),
		"temperature":     c.Temperature,
		"professionalism": c.Professionalism,
		"api_endpoint":    c.APIEndpoint,
		"api_key":         log.MaskSecret(expandEnv(c.APIKey)),
		"language":        c.Language,
		"history_file":    c.HistoryFile,
	})
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

// loadDotEnv loads ./.env when present; variables already set win
func loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(".env"); err != nil {
		log.Warn("failed to load .env: %v", err)
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a file
func LoadFromFile(path string) (*Config, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(v)
}

// Load loads configuration with the following priority:
// 1. Custom path if provided (must exist)
// 2. Current directory .commitbuddy.yaml
// 3. Home directory ~/.commitbuddy.yaml
// 4. Built-in defaults
// COMMITBUDDY_* environment variables override file values in every case.
func Load(customPath string) (*Config, error) {
	loadDotEnv()

	if customPath != "" {
		return LoadFromFile(customPath)
	}

	for _, candidate := range searchPaths() {
		if _, err := os.Stat(candidate); err == nil {
			return LoadFromFile(candidate)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to access %s: %w", candidate, err)
		}
	}

	log.Debug("No %s found, using defaults", FileName)
	return decode(newViper())
}

func searchPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, FileName))
	}
	return paths
}
