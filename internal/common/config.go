package common

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	Extract  ExtractConfig
	OCR      OCRConfig
	Analysis AnalysisConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
	Workers         int
	QueueSize       int
}

// StorageConfig holds the statement directory and artifact store settings
type StorageConfig struct {
	PDFDir       string
	ProcessedDir string
	Driver       string // "fs" | "sqlite"
	SQLitePath   string
}

// ExtractConfig holds table-location and parsing settings
type ExtractConfig struct {
	// PageIndex is the 0-indexed page carrying the summary table; page 9
	// (index 8) is the stable convention for this document family.
	PageIndex int
	// TableMarker identifies the table page when the fixed index misses.
	TableMarker string
	// EmitPlaceholder controls whether an unparsable document yields the
	// canned placeholder rows instead of an empty artifact.
	EmitPlaceholder bool
}

// OCRConfig holds rasterization and OCR settings
type OCRConfig struct {
	Pdftoppm    string
	DPI         int
	Language    string
	TessdataDir string
}

// AnalysisConfig holds the text-generation collaborator settings
type AnalysisConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// LoadConfig loads configuration from a .env file (if present) and the
// environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("MTS_HTTP_ADDR", ":8080"),
			ShutdownTimeout: getEnvAsDuration("MTS_SHUTDOWN_TIMEOUT", 10*time.Second),
			Workers:         getEnvAsInt("MTS_WORKERS", 4),
			QueueSize:       getEnvAsInt("MTS_QUEUE_SIZE", 64),
		},
		Storage: StorageConfig{
			PDFDir:       getEnv("MTS_PDF_DIR", "data/pdf"),
			ProcessedDir: getEnv("MTS_PROCESSED_DIR", "data/processed"),
			Driver:       getEnv("MTS_STORE_DRIVER", "fs"),
			SQLitePath:   getEnv("MTS_SQLITE_PATH", "data/mts-cache.db"),
		},
		Extract: ExtractConfig{
			PageIndex:       getEnvAsInt("MTS_PAGE_INDEX", 8),
			TableMarker:     getEnv("MTS_TABLE_MARKER", "Summary of Receipts and Outlays"),
			EmitPlaceholder: getEnvAsBool("MTS_EMIT_PLACEHOLDER", false),
		},
		OCR: OCRConfig{
			Pdftoppm:    getEnv("MTS_PDFTOPPM", "pdftoppm"),
			DPI:         getEnvAsInt("MTS_OCR_DPI", 300),
			Language:    getEnv("MTS_OCR_LANG", "eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
		},
		Analysis: AnalysisConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o"),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.3),
			MaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 1000),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration.
func (c *Config) Validate() error {
	if c.Storage.PDFDir == "" {
		return NewAppError("CONFIG_ERROR", "MTS_PDF_DIR is required", ErrInvalidInput)
	}
	if c.Storage.Driver != "fs" && c.Storage.Driver != "sqlite" {
		return NewAppError("CONFIG_ERROR", "MTS_STORE_DRIVER must be fs or sqlite", ErrInvalidInput)
	}
	if c.Extract.PageIndex < 0 {
		return NewAppError("CONFIG_ERROR", "MTS_PAGE_INDEX must be >= 0", ErrInvalidInput)
	}
	return nil
}
