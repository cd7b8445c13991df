package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server ServerConfig
	Ollama OllamaConfig
	Speech SpeechConfig
	Engine EngineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8000"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// OllamaConfig holds the primary extraction service configuration
type OllamaConfig struct {
	BaseURL     string        `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	Model       string        `envconfig:"OLLAMA_MODEL" default:"llama3.2:3b"`
	Timeout     time.Duration `envconfig:"OLLAMA_TIMEOUT" default:"30s"`
	Temperature float64       `envconfig:"OLLAMA_TEMPERATURE" default:"0.3"`
	NumPredict  int           `envconfig:"OLLAMA_NUM_PREDICT" default:"500"`
	// RetryMaxElapsed bounds retry attempts on connection failures. The
	// session loop must never be blocked past Timeout + RetryMaxElapsed.
	RetryMaxElapsed time.Duration `envconfig:"OLLAMA_RETRY_MAX_ELAPSED" default:"5s"`
}

// SpeechConfig holds speech-to-text configuration. An empty API key
// disables audio transcription; text fragments still work.
type SpeechConfig struct {
	AssemblyAIKey string `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	LanguageCode  string `envconfig:"SPEECH_LANGUAGE" default:""`
}

// EngineConfig holds the extraction engine word lists. Defaults match the
// shipped heuristics; override via comma-separated env values.
type EngineConfig struct {
	PlaceholderPhrases []string `envconfig:"ENGINE_PLACEHOLDER_PHRASES" default:"name will,task description,what was decided,do something,nothing,none,n/a,example,placeholder"`
	ParkingBlacklist   []string `envconfig:"ENGINE_PARKING_BLACKLIST" default:"nothing,none,n/a,parking,items,item,lot"`
	GenericSpeakers    []string `envconfig:"ENGINE_GENERIC_SPEAKERS" default:"name,we,person"`
	KnownSpeakers      []string `envconfig:"ENGINE_KNOWN_SPEAKERS" default:"Sarah,John,Alex,Maria,Mike"`
}

// Load loads configuration from environment variables, reading a .env
// file first when one exists
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Ollama.BaseURL == "" {
		return fmt.Errorf("OLLAMA_URL is required")
	}
	if c.Ollama.Model == "" {
		return fmt.Errorf("OLLAMA_MODEL is required")
	}
	if c.Ollama.Timeout <= 0 {
		return fmt.Errorf("OLLAMA_TIMEOUT must be positive")
	}
	return nil
}

// ServerAddr returns the host:port the server binds to
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
