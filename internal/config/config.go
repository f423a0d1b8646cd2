package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Mail      MailConfig      `yaml:"mail"`
	Admin     AdminConfig     `yaml:"admin"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Assistant AssistantConfig `yaml:"assistant"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Blog      BlogConfig      `yaml:"blog"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	// In a container, listen on all interfaces
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// StorageConfig holds document-store configuration
type StorageConfig struct {
	Type          string `yaml:"type"` // "aws" or "local"
	LocalPath     string `yaml:"local_path"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	AWSRegion     string `yaml:"aws_region"`
	AWSProfile    string `yaml:"aws_profile"` // Empty string uses default credential chain (IAM role on ECS)
}

// GetAWSProfile returns the AWS profile, with environment variable override
func (c StorageConfig) GetAWSProfile() string {
	if envProfile := os.Getenv("AWS_PROFILE_OVERRIDE"); envProfile != "" {
		if envProfile == "none" || envProfile == "iam" {
			return ""
		}
		return envProfile
	}
	// On ECS/Lambda, don't use a profile - use IAM role
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return ""
	}
	return c.AWSProfile
}

// MailConfig holds the outbound mail relay (AWS SES) configuration
type MailConfig struct {
	Region         string `yaml:"region"`
	AccessKey      string `yaml:"access_key"`
	SecretKey      string `yaml:"secret_key"`
	FromName       string `yaml:"from_name"`
	FromEmail      string `yaml:"from_email"`
	ToEmail        string `yaml:"to_email"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c MailConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// AdminConfig holds the admin review surface configuration.
// A single shared bearer secret is the whole auth model.
type AdminConfig struct {
	Secret string `yaml:"secret"`
}

// RateLimitConfig holds submission rate-limit settings
type RateLimitConfig struct {
	WindowMinutes int    `yaml:"window_minutes"`
	MaxPerWindow  int    `yaml:"max_per_window"`
	RedisURL      string `yaml:"redis_url"` // empty = in-memory limiter
}

// Window returns the trailing window as a duration
func (c RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

// AssistantConfig holds local LLM (Ollama) settings
type AssistantConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c AssistantConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// KnowledgeConfig holds Pinecone vector index settings
type KnowledgeConfig struct {
	APIKey         string `yaml:"api_key"`
	IndexHost      string `yaml:"index_host"`
	Namespace      string `yaml:"namespace"`
	TopK           int    `yaml:"top_k"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Enabled        bool   `yaml:"enabled"`
}

// Timeout returns the configured timeout as a duration
func (c KnowledgeConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BlogConfig holds the external blog feed settings
type BlogConfig struct {
	FeedURL        string `yaml:"feed_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c BlogConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.LocalPath == "" {
		cfg.Storage.LocalPath = "./data/store"
	}
	if cfg.Storage.AWSRegion == "" {
		cfg.Storage.AWSRegion = "us-east-1"
	}
	if cfg.Mail.Region == "" {
		cfg.Mail.Region = "us-east-1"
	}
	if cfg.Mail.TimeoutSeconds == 0 {
		cfg.Mail.TimeoutSeconds = 10
	}
	if cfg.Mail.FromName == "" {
		cfg.Mail.FromName = "Portfolio Contact"
	}
	if cfg.RateLimit.WindowMinutes == 0 {
		cfg.RateLimit.WindowMinutes = 15
	}
	if cfg.RateLimit.MaxPerWindow == 0 {
		cfg.RateLimit.MaxPerWindow = 3
	}
	if cfg.Assistant.BaseURL == "" {
		cfg.Assistant.BaseURL = "http://localhost:11435"
	}
	if cfg.Assistant.Model == "" {
		cfg.Assistant.Model = "phi"
	}
	if cfg.Assistant.TimeoutSeconds == 0 {
		cfg.Assistant.TimeoutSeconds = 8
	}
	if cfg.Knowledge.TopK == 0 {
		cfg.Knowledge.TopK = 5
	}
	if cfg.Knowledge.TimeoutSeconds == 0 {
		cfg.Knowledge.TimeoutSeconds = 5
	}
	if cfg.Blog.TimeoutSeconds == 0 {
		cfg.Blog.TimeoutSeconds = 15
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It automatically loads a .env file (if present) before reading env vars,
// so secrets can live in .env locally and in real env vars on ECS.
func LoadFromEnv(path string) (*Config, error) {
	// Load .env file if it exists (no error if missing)
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables if present
	if v := os.Getenv("ADMIN_SECRET"); v != "" {
		cfg.Admin.Secret = v
	}
	if v := os.Getenv("AWS_SES_ACCESS_KEY"); v != "" {
		cfg.Mail.AccessKey = v
	}
	if v := os.Getenv("AWS_SES_SECRET_KEY"); v != "" {
		cfg.Mail.SecretKey = v
	}
	if v := os.Getenv("AWS_SES_REGION"); v != "" {
		cfg.Mail.Region = v
	}
	if v := os.Getenv("EMAIL_FROM"); v != "" {
		cfg.Mail.FromEmail = v
	}
	if v := os.Getenv("EMAIL_TO"); v != "" {
		cfg.Mail.ToEmail = v
	}
	if v := os.Getenv("DYNAMODB_TABLE"); v != "" {
		cfg.Storage.DynamoDBTable = v
		cfg.Storage.Type = "aws"
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RateLimit.RedisURL = v
	}
	if v := os.Getenv("PINECONE_API_KEY"); v != "" {
		cfg.Knowledge.APIKey = v
	}
	if v := os.Getenv("PINECONE_INDEX_HOST"); v != "" {
		cfg.Knowledge.IndexHost = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" {
		cfg.Assistant.BaseURL = v
	}
	if v := os.Getenv("BLOG_FEED_URL"); v != "" {
		cfg.Blog.FeedURL = v
	}

	return cfg, nil
}
