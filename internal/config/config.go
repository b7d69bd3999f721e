package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Gemini  GeminiConfig
	Storage StorageConfig
	Batch   BatchConfig
	Report  ReportConfig
}

type ServerConfig struct {
	Port        string
	Env         string
	CORSOrigins string
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	Timeout         time.Duration
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
	MaxFiles    int
}

// BatchConfig controls how a multi-file request paces its calls to the LLM.
type BatchConfig struct {
	Pacing         string
	PacingInterval time.Duration
	Burst          int
	Timeout        time.Duration
}

type ReportConfig struct {
	ValidateMinimums bool
}

const (
	PacingFixed     = "fixed"
	PacingRateLimit = "ratelimit"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "5001")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")
	v.SetDefault("GEMINI_TEMPERATURE", 0.2)
	v.SetDefault("GEMINI_MAX_OUTPUT_TOKENS", 4096)
	v.SetDefault("GEMINI_TIMEOUT", "60s")

	v.SetDefault("UPLOAD_PATH", "./uploads")
	v.SetDefault("MAX_FILE_SIZE", 10485760)
	v.SetDefault("MAX_FILES", 50)

	v.SetDefault("BATCH_PACING", PacingFixed)
	v.SetDefault("BATCH_PACING_INTERVAL", "1s")
	v.SetDefault("BATCH_BURST", 1)
	v.SetDefault("BATCH_TIMEOUT", "15m")

	v.SetDefault("VALIDATE_MINIMUMS", false)
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using environment and default values.")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return FromViper(v)
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	pacing := strings.ToLower(strings.TrimSpace(v.GetString("BATCH_PACING")))
	if pacing != PacingRateLimit {
		pacing = PacingFixed
	}

	return &Config{
		Server: ServerConfig{
			Port:        v.GetString("PORT"),
			Env:         v.GetString("ENV"),
			CORSOrigins: v.GetString("CORS_ORIGINS"),
		},
		Log: LogConfig{
			JSON:  v.GetBool("LOG_JSON"),
			Debug: v.GetBool("LOG_DEBUG"),
		},
		Gemini: GeminiConfig{
			APIKey:          strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
			Model:           strings.TrimSpace(v.GetString("GEMINI_MODEL")),
			Temperature:     float32(v.GetFloat64("GEMINI_TEMPERATURE")),
			MaxOutputTokens: v.GetInt32("GEMINI_MAX_OUTPUT_TOKENS"),
			Timeout:         v.GetDuration("GEMINI_TIMEOUT"),
		},
		Storage: StorageConfig{
			UploadPath:  v.GetString("UPLOAD_PATH"),
			MaxFileSize: v.GetInt64("MAX_FILE_SIZE"),
			MaxFiles:    v.GetInt("MAX_FILES"),
		},
		Batch: BatchConfig{
			Pacing:         pacing,
			PacingInterval: v.GetDuration("BATCH_PACING_INTERVAL"),
			Burst:          v.GetInt("BATCH_BURST"),
			Timeout:        v.GetDuration("BATCH_TIMEOUT"),
		},
		Report: ReportConfig{
			ValidateMinimums: v.GetBool("VALIDATE_MINIMUMS"),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}
