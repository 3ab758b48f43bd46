package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

const DefaultPath = "config/config.toml"

// Duration lets TOML carry values like "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type RegistryConfig struct {
	BaseURL string   `toml:"base_url" validate:"required,url"`
	Timeout Duration `toml:"timeout"`
}

type GraphConfig struct {
	OutputDir         string `toml:"output_dir" validate:"required"`
	FileName          string `toml:"file_name" validate:"required"`
	PersonMarker      string `toml:"person_marker" validate:"required"`
	InstitutionMarker string `toml:"institution_marker" validate:"required"`
	Communities       string `toml:"communities" validate:"omitempty,oneof=lpa components"`
}

// OutputPath is where the serialized graph is written.
func (g GraphConfig) OutputPath() string {
	return filepath.Join(g.OutputDir, g.FileName)
}

type ServerConfig struct {
	Addr             string `toml:"addr" validate:"required,hostname_port"`
	Page             string `toml:"page" validate:"required"`
	WriteDefaultPage bool   `toml:"write_default_page"`
}

type CacheConfig struct {
	RedisURL string   `toml:"redis_url" validate:"omitempty,url"`
	TTL      Duration `toml:"ttl"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type LLMConfig struct {
	Provider string `toml:"provider" validate:"omitempty,oneof=openai claude gemini ollama"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
}

type SummaryPrompts struct {
	Ego string `toml:"ego"`
}

type LogConfig struct {
	Level  string `toml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format string `toml:"format" validate:"omitempty,oneof=console json"`
}

type Config struct {
	Registry RegistryConfig `toml:"registry"`
	Graph    GraphConfig    `toml:"graph"`
	Server   ServerConfig   `toml:"server"`
	Cache    CacheConfig    `toml:"cache"`
	Memgraph MemgraphConfig `toml:"memgraph"`
	LLM      LLMConfig      `toml:"llm"`
	Summary  SummaryPrompts `toml:"summary"`
	Log      LogConfig      `toml:"log"`
}

func Default() *Config {
	return &Config{
		Registry: RegistryConfig{
			BaseURL: "https://api-v3.mojepanstwo.pl",
		},
		Graph: GraphConfig{
			OutputDir:         "webpage",
			FileName:          "ego.json",
			PersonMarker:      "osoba",
			InstitutionMarker: "podmiot",
		},
		Server: ServerConfig{
			Addr:             "127.0.0.1:8000",
			Page:             "ego.html",
			WriteDefaultPage: true,
		},
		Cache: CacheConfig{
			TTL: Duration{24 * time.Hour},
		},
		Summary: SummaryPrompts{
			Ego: DefaultEgoPrompt,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads path on top of Default. A missing file is not an error; the
// defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables. lookup is
// os.LookupEnv outside of tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	set("EGO_REGISTRY_URL", &c.Registry.BaseURL)
	set("EGO_OUTPUT_DIR", &c.Graph.OutputDir)
	set("EGO_ADDR", &c.Server.Addr)
	set("EGO_LOG_LEVEL", &c.Log.Level)
	set("REDIS_URL", &c.Cache.RedisURL)
	set("MEMGRAPH_URI", &c.Memgraph.URI)
	set("MEMGRAPH_USER", &c.Memgraph.User)
	set("MEMGRAPH_PASSWORD", &c.Memgraph.Password)
	set("LLM_PROVIDER", &c.LLM.Provider)
	set("LLM_MODEL", &c.LLM.Model)
	set("LLM_API_KEY", &c.LLM.APIKey)
	set("LLM_BASE_URL", &c.LLM.BaseURL)
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
