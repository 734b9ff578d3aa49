package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	go_ora "github.com/sijms/go-ora/v2"
	"github.com/spf13/viper"
)

// Supported LLM providers
const (
	LLMProviderGoogleAI = "googleai"
	LLMProviderOpenAI   = "openai"
	LLMProviderOllama   = "ollama"
)

type Config struct {
	Server     ServerConfig
	Logger     LoggerConfig
	LLM        LLMConfig
	Storage    StorageConfig
	Redis      RedisConfig
	DB         DBConfig
	Session    SessionConfig
	Extraction ExtractionConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

type LoggerConfig struct {
	Env   string
	Level string
}

type LLMConfig struct {
	Provider    string
	Model       string
	VisionModel string // model used for document text extraction; defaults to Model
	APIKey      string
	ServerURL   string // ollama only
	Timeout     time.Duration
	Temperature float64
}

type StorageConfig struct {
	Bucket          string
	CredentialsFile string
	UploadURLExpiry time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type SessionConfig struct {
	JWTSecret string
	TTL       time.Duration
}

type ExtractionConfig struct {
	MaxBytes int
	CacheTTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 60)
	v.SetDefault("server.write_timeout", 120)
	v.SetDefault("server.body_limit", 16*1024*1024)
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("llm.provider", LLMProviderGoogleAI)
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("llm.timeout", 60)
	v.SetDefault("llm.temperature", 0.4)
	v.SetDefault("storage.upload_url_expiry", 15)
	v.SetDefault("redis.db", 0)
	v.SetDefault("db.port", 1521)
	v.SetDefault("session.ttl", 120)
	v.SetDefault("extraction.max_bytes", 10*1024*1024)
	v.SetDefault("extraction.cache_ttl", 60)
}

// LoadConfig reads config.yaml (if present) and environment overrides.
// Environment keys use the upper-cased path with "_" separators, e.g. LLM_API_KEY.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimit:    v.GetInt("server.body_limit"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		LLM: LLMConfig{
			Provider:    strings.ToLower(v.GetString("llm.provider")),
			Model:       v.GetString("llm.model"),
			VisionModel: v.GetString("llm.vision_model"),
			APIKey:      v.GetString("llm.api_key"),
			ServerURL:   v.GetString("llm.server_url"),
			Timeout:     time.Duration(v.GetInt("llm.timeout")) * time.Second,
			Temperature: v.GetFloat64("llm.temperature"),
		},
		Storage: StorageConfig{
			Bucket:          v.GetString("storage.bucket"),
			CredentialsFile: v.GetString("storage.credentials_file"),
			UploadURLExpiry: time.Duration(v.GetInt("storage.upload_url_expiry")) * time.Minute,
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		DB: DBConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Session: SessionConfig{
			JWTSecret: v.GetString("session.jwt_secret"),
			TTL:       time.Duration(v.GetInt("session.ttl")) * time.Minute,
		},
		Extraction: ExtractionConfig{
			MaxBytes: v.GetInt("extraction.max_bytes"),
			CacheTTL: time.Duration(v.GetInt("extraction.cache_ttl")) * time.Minute,
		},
	}

	// The bucket name keeps its historical variable name.
	if bucket := os.Getenv("GCS_BUCKET_NAME"); bucket != "" {
		cfg.Storage.Bucket = bucket
	}
	if cfg.LLM.VisionModel == "" {
		cfg.LLM.VisionModel = cfg.LLM.Model
	}
	return cfg
}

// Validate reports configuration problems that make the server unusable.
// A missing storage bucket is not one of them: upload requests fail individually.
func (c *Config) Validate() error {
	var problems []string

	switch c.LLM.Provider {
	case LLMProviderGoogleAI, LLMProviderOpenAI:
		if c.LLM.APIKey == "" {
			problems = append(problems, fmt.Sprintf("llm.api_key is required for provider %q", c.LLM.Provider))
		}
	case LLMProviderOllama:
		if c.LLM.ServerURL == "" {
			problems = append(problems, "llm.server_url is required for provider \"ollama\"")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported llm.provider %q", c.LLM.Provider))
	}
	if c.LLM.Model == "" {
		problems = append(problems, "llm.model is required")
	}
	if c.Session.JWTSecret == "" {
		problems = append(problems, "session.jwt_secret is required")
	}
	if c.Redis.Address == "" {
		problems = append(problems, "redis.address is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// DatabaseEnabled reports whether the attempt archive should be wired.
func (c *Config) DatabaseEnabled() bool {
	return c.DB.Host != ""
}

// GetDSN builds a go-ora connection URL; credentials are escaped by the driver.
func (c *Config) GetDSN() string {
	return go_ora.BuildUrl(c.DB.Host, c.DB.Port, c.DB.DBName, c.DB.User, c.DB.Password, nil)
}
