package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Index drivers.
const (
	IndexDriverOpenSearch = "opensearch"
	IndexDriverRedis      = "redis"
)

// Storage drivers.
const (
	StorageDriverS3    = "s3"
	StorageDriverMinIO = "minio"
)

// Vision providers.
const (
	VisionProviderRekognition = "rekognition"
	VisionProviderOpenAI      = "openai"
)

// ConfigPathEnv overrides config file discovery.
const ConfigPathEnv = "PHOTOINDEX_CONFIG"

// Config holds the photoindex configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	AWS     AWSConfig     `yaml:"aws"`
	Index   IndexConfig   `yaml:"index"`
	Storage StorageConfig `yaml:"storage"`
	Vision  VisionConfig  `yaml:"vision"`
	Intent  IntentConfig  `yaml:"intent"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Search  SearchConfig  `yaml:"search"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds local HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// AuthConfig holds API key settings for the local HTTP surface.
type AuthConfig struct {
	APIKeys  []string `yaml:"api_keys"` // empty = auth disabled
	Required bool     `yaml:"required"` // refuse to start without a non-blank key
}

// HasKeys reports whether at least one non-blank API key is configured.
func (a *AuthConfig) HasKeys() bool {
	for _, k := range a.APIKeys {
		if strings.TrimSpace(k) != "" {
			return true
		}
	}
	return false
}

// AWSConfig holds shared AWS SDK settings.
type AWSConfig struct {
	Region string `yaml:"region"`
}

// IndexConfig holds search index settings.
type IndexConfig struct {
	Driver           string           `yaml:"driver"` // opensearch, redis (default: opensearch)
	Name             string           `yaml:"name"`
	ReadinessTimeout int              `yaml:"readiness_timeout_sec"`
	OpenSearch       OpenSearchConfig `yaml:"opensearch"`
	Redis            RedisConfig      `yaml:"redis"`
}

// OpenSearchConfig holds OpenSearch connection settings.
type OpenSearchConfig struct {
	Addrs    []string `yaml:"addrs"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
	Service  string   `yaml:"service"` // SigV4 signing name (default: es)
	Sign     *bool    `yaml:"sign"`    // SigV4 signing (default: true)
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addrs     []string `yaml:"addrs"`
	Username  string   `yaml:"username"`
	Password  string   `yaml:"password"`
	DB        int      `yaml:"db"`
	KeyPrefix string   `yaml:"key_prefix"`
}

// StorageConfig holds object storage settings.
type StorageConfig struct {
	Driver  string      `yaml:"driver"` // s3, minio (default: s3)
	BaseURL string      `yaml:"base_url"`
	MinIO   MinIOConfig `yaml:"minio"`
}

// MinIOConfig holds S3-compatible endpoint settings.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Region    string `yaml:"region"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// VisionConfig holds label detection settings.
type VisionConfig struct {
	Provider string       `yaml:"provider"` // rekognition, openai (default: rekognition)
	OpenAI   OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig holds OpenAI-compatible vision model settings.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Prompt  string `yaml:"prompt"`
}

// IntentConfig identifies the conversational bot.
type IntentConfig struct {
	BotID      string `yaml:"bot_id"`
	BotAliasID string `yaml:"bot_alias_id"`
	LocaleID   string `yaml:"locale_id"`
	SessionID  string `yaml:"session_id"` // empty: fresh session per request
}

// IngestConfig holds ingestion settings.
type IngestConfig struct {
	AllowMissingCustomLabels bool `yaml:"allow_missing_custom_labels"`
}

// SearchConfig holds query settings.
type SearchConfig struct {
	Parallel       *bool `yaml:"parallel"` // default: true
	MaxConcurrency int   `yaml:"max_concurrency"`
}

// Load reads configuration from a YAML file by environment name (local, lambda, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, expanding ${VAR} references, then
// applies defaults and validates.
func Parse(data []byte) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.AWS.Region == "" {
		c.AWS.Region = "us-east-1"
	}
	if c.Index.Driver == "" {
		c.Index.Driver = IndexDriverOpenSearch
	}
	if c.Index.Name == "" {
		c.Index.Name = "photos"
	}
	if c.Index.ReadinessTimeout <= 0 {
		c.Index.ReadinessTimeout = 10
	}
	if c.Index.OpenSearch.Service == "" {
		c.Index.OpenSearch.Service = "es"
	}
	if c.Index.OpenSearch.Sign == nil {
		c.Index.OpenSearch.Sign = boolPtr(true)
	}
	if c.Index.Redis.KeyPrefix == "" {
		c.Index.Redis.KeyPrefix = "photoindex:"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = StorageDriverS3
	}
	if c.Vision.Provider == "" {
		c.Vision.Provider = VisionProviderRekognition
	}
	if c.Intent.LocaleID == "" {
		c.Intent.LocaleID = "en_US"
	}
	if c.Search.Parallel == nil {
		c.Search.Parallel = boolPtr(true)
	}
	if c.Search.MaxConcurrency <= 0 {
		c.Search.MaxConcurrency = 4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	if !c.Auth.HasKeys() {
		switch {
		case c.Auth.Required:
			return fmt.Errorf("auth.api_keys must contain a non-blank key when auth.required is set")
		case len(c.Auth.APIKeys) > 0:
			return fmt.Errorf("auth.api_keys lists only blank keys (unset variable?)")
		}
	}

	switch c.Index.Driver {
	case IndexDriverOpenSearch:
		if len(c.Index.OpenSearch.Addrs) == 0 {
			return fmt.Errorf("index.opensearch.addrs is required")
		}
	case IndexDriverRedis:
		if len(c.Index.Redis.Addrs) == 0 {
			return fmt.Errorf("index.redis.addrs is required")
		}
	default:
		return fmt.Errorf("index.driver must be %q or %q, got %q",
			IndexDriverOpenSearch, IndexDriverRedis, c.Index.Driver)
	}

	switch c.Storage.Driver {
	case StorageDriverS3:
	case StorageDriverMinIO:
		if c.Storage.MinIO.Endpoint == "" {
			return fmt.Errorf("storage.minio.endpoint is required")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q",
			StorageDriverS3, StorageDriverMinIO, c.Storage.Driver)
	}
	if c.Storage.BaseURL == "" {
		return fmt.Errorf("storage.base_url is required")
	}

	switch c.Vision.Provider {
	case VisionProviderRekognition:
	case VisionProviderOpenAI:
		if c.Vision.OpenAI.Model == "" {
			return fmt.Errorf("vision.openai.model is required")
		}
	default:
		return fmt.Errorf("vision.provider must be %q or %q, got %q",
			VisionProviderRekognition, VisionProviderOpenAI, c.Vision.Provider)
	}

	return nil
}

func boolPtr(b bool) *bool { return &b }

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	if path := os.Getenv(ConfigPathEnv); path != "" {
		return path
	}

	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
