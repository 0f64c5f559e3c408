package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Transcriber backends
const (
	TranscriberDemo       = "demo"
	TranscriberAssemblyAI = "assemblyai"
	TranscriberWhisper    = "whisper"
)

// Bounds accepted for per-request processing options
const (
	MinChunkLength     = 10
	MaxChunkLength     = 60
	MinMaxSummaryWords = 100
	MaxMaxSummaryWords = 1000
)

// Config holds application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Storage     StorageConfig
	Media       MediaConfig
	Transcriber TranscriberConfig
	Assembly    AssemblyAIConfig
	LLM         LLMConfig
	Minutes     MinutesConfig
	Export      ExportConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	MaxUploadMB     int64    `envconfig:"MAX_UPLOAD_MB" default:"500"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled     bool   `envconfig:"ENABLED" default:"false"`
	Host        string `envconfig:"HOST" default:"localhost"`
	Port        string `envconfig:"PORT" default:"5432"`
	User        string `envconfig:"USER" default:"postgres"`
	Password    string `envconfig:"PASSWORD" default:"postgres"`
	Name        string `envconfig:"NAME" default:"meeting_minutes"`
	SSLMode     string `envconfig:"SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled     bool          `envconfig:"ENABLED" default:"false"`
	Host        string        `envconfig:"HOST" default:"localhost"`
	Port        string        `envconfig:"PORT" default:"6379"`
	Password    string        `envconfig:"PASSWORD" default:""`
	DB          int           `envconfig:"DB" default:"0"`
	ProgressTTL time.Duration `envconfig:"PROGRESS_TTL" default:"1h"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool          `envconfig:"ENABLED" default:"false"`
	Type            string        `envconfig:"TYPE" default:"minio"` // "minio" or "s3"
	Endpoint        string        `envconfig:"ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string        `envconfig:"ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string        `envconfig:"SECRET_KEY" default:"minioadmin"`
	BucketName      string        `envconfig:"BUCKET" default:"meeting-minutes"`
	UseSSL          bool          `envconfig:"USE_SSL" default:"false"`
	PublicURL       string        `envconfig:"PUBLIC_URL" default:""`
	URLExpiry       time.Duration `envconfig:"URL_EXPIRY" default:"24h"`
}

// MediaConfig holds transcoding configuration
type MediaConfig struct {
	FFmpegPath  string        `envconfig:"FFMPEG_PATH" default:"ffmpeg"`
	FFprobePath string        `envconfig:"FFPROBE_PATH" default:"ffprobe"`
	TempDir     string        `envconfig:"TEMP_DIR" default:""`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"10m"`
}

// TranscriberConfig selects and tunes the speech recognition backend
type TranscriberConfig struct {
	Backend    string        `envconfig:"BACKEND" default:"demo"`
	ModelSize  string        `envconfig:"MODEL_SIZE" default:"base"`
	Timeout    time.Duration `envconfig:"TIMEOUT" default:"15m"`
	WhisperURL string        `envconfig:"WHISPER_URL" default:"http://localhost:8000"`
	APIKey     string        `envconfig:"API_KEY" default:""`
}

// AssemblyAIConfig holds AssemblyAI credentials
type AssemblyAIConfig struct {
	APIKey string `envconfig:"API_KEY" default:""`
}

// LLMConfig holds the text generation backend configuration
type LLMConfig struct {
	BaseURL        string        `envconfig:"BASE_URL" default:"http://localhost:8001"`
	APIKey         string        `envconfig:"API_KEY" default:""`
	Model          string        `envconfig:"MODEL" default:"qwen2.5-7b-instruct"`
	MaxConcurrency int           `envconfig:"MAX_CONCURRENCY" default:"2"`
	CallTimeout    time.Duration `envconfig:"CALL_TIMEOUT" default:"2m"`
	DemoMode       bool          `envconfig:"DEMO_MODE" default:"false"`
}

// ExportConfig tunes rendered documents
type ExportConfig struct {
	// PDFFont is a TrueType file embedded so PDFs can show non-Latin text
	PDFFont string `envconfig:"PDF_FONT" default:""`
}

// MinutesConfig holds defaults applied when a request omits an option
type MinutesConfig struct {
	ChunkLength     int      `envconfig:"CHUNK_LENGTH" default:"30"`
	MaxSummaryWords int      `envconfig:"MAX_SUMMARY_WORDS" default:"500"`
	Formats         []string `envconfig:"FORMATS" default:"JSON,HTML"`
}

var validModelSizes = map[string]bool{"tiny": true, "base": true, "small": true, "medium": true, "large": true}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	sections := []struct {
		prefix string
		spec   interface{}
	}{
		{"", &config.Server},
		{"DB", &config.Database},
		{"REDIS", &config.Redis},
		{"STORAGE", &config.Storage},
		{"MEDIA", &config.Media},
		{"TRANSCRIBER", &config.Transcriber},
		{"ASSEMBLYAI", &config.Assembly},
		{"LLM", &config.LLM},
		{"MINUTES", &config.Minutes},
		{"EXPORT", &config.Export},
	}
	for _, s := range sections {
		if err := envconfig.Process(s.prefix, s.spec); err != nil {
			return nil, fmt.Errorf("failed to process %s config: %w", strings.ToLower(s.prefix), err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Transcriber.Backend {
	case TranscriberDemo, TranscriberWhisper:
	case TranscriberAssemblyAI:
		if c.Assembly.APIKey == "" {
			return fmt.Errorf("ASSEMBLYAI_API_KEY is required when TRANSCRIBER_BACKEND=assemblyai")
		}
	default:
		return fmt.Errorf("unknown TRANSCRIBER_BACKEND %q", c.Transcriber.Backend)
	}
	if !validModelSizes[c.Transcriber.ModelSize] {
		return fmt.Errorf("TRANSCRIBER_MODEL_SIZE must be one of tiny, base, small, medium, large")
	}
	if c.LLM.MaxConcurrency < 1 {
		return fmt.Errorf("LLM_MAX_CONCURRENCY must be at least 1")
	}
	if c.Minutes.ChunkLength < MinChunkLength || c.Minutes.ChunkLength > MaxChunkLength {
		return fmt.Errorf("MINUTES_CHUNK_LENGTH must be between %d and %d", MinChunkLength, MaxChunkLength)
	}
	if c.Minutes.MaxSummaryWords < MinMaxSummaryWords || c.Minutes.MaxSummaryWords > MaxMaxSummaryWords {
		return fmt.Errorf("MINUTES_MAX_SUMMARY_WORDS must be between %d and %d", MinMaxSummaryWords, MaxMaxSummaryWords)
	}
	if c.Export.PDFFont != "" {
		if _, err := os.Stat(c.Export.PDFFont); err != nil {
			return fmt.Errorf("EXPORT_PDF_FONT: %w", err)
		}
	}
	return nil
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
