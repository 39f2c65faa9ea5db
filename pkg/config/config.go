package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMongo    = "mongo"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Groq   GroqConfig
	SMTP   SMTPConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"5000"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	BodyLimit       string   `envconfig:"BODY_LIMIT" default:"2M"`
}

// StoreConfig holds document store configuration. Driver selects which of
// the Postgres, Mongo or in-memory repositories backs the summaries.
type StoreConfig struct {
	Driver         string        `envconfig:"STORE_DRIVER" default:"postgres"`
	DatabaseURL    string        `envconfig:"DATABASE_URL"`
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" default:"postgres"`
	Password       string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name           string        `envconfig:"DB_NAME" default:"meetings"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns       int           `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns       int           `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate    bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
	MongoURI       string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017/meetings"`
	MongoDatabase  string        `envconfig:"MONGO_DATABASE" default:"meetings"`
	ConnectTimeout time.Duration `envconfig:"STORE_CONNECT_TIMEOUT" default:"30s"`
}

// GroqConfig holds settings for the chat completion provider
type GroqConfig struct {
	APIKey      string        `envconfig:"GROQ_API_KEY"`
	BaseURL     string        `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model       string        `envconfig:"GROQ_MODEL" default:"llama3-8b-8192"`
	MaxTokens   int           `envconfig:"GROQ_MAX_TOKENS" default:"800"`
	Temperature float32       `envconfig:"GROQ_TEMPERATURE" default:"0.8"`
	TopP        float32       `envconfig:"GROQ_TOP_P" default:"1.0"`
	Timeout     time.Duration `envconfig:"GROQ_TIMEOUT" default:"60s"`
}

// SMTPConfig holds SMTP relay configuration
type SMTPConfig struct {
	Host    string        `envconfig:"SMTP_HOST"`
	Port    int           `envconfig:"SMTP_PORT" default:"587"`
	User    string        `envconfig:"SMTP_USER"`
	Pass    string        `envconfig:"SMTP_PASS"`
	From    string        `envconfig:"FROM_EMAIL"`
	Timeout time.Duration `envconfig:"SMTP_TIMEOUT" default:"15s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	config, err := LoadStore()
	if err != nil {
		return nil, err
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadStore reads the environment without requiring the API-only settings,
// for tools that only touch the store
func LoadStore() (*Config, error) {
	// A missing .env is fine; the process environment still applies.
	_ = godotenv.Load()

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Groq.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY is required")
	}
	switch c.Store.Driver {
	case StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be one of %s, %s, %s (got %q)",
			StoreDriverPostgres, StoreDriverMongo, StoreDriverMemory, c.Store.Driver)
	}
	if c.SMTP.Port <= 0 {
		return fmt.Errorf("SMTP_PORT must be positive")
	}
	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// GetServerAddr returns the listen address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// GetDatabaseDSN returns the database connection string. DATABASE_URL wins
// over the individual DB_* settings.
func (c *Config) GetDatabaseDSN() string {
	if c.Store.DatabaseURL != "" {
		return c.Store.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Store.Host,
		c.Store.Port,
		c.Store.User,
		c.Store.Password,
		c.Store.Name,
		c.Store.SSLMode,
	)
}

// FromAddress returns the sender address, falling back to the SMTP user
func (s SMTPConfig) FromAddress() string {
	if s.From != "" {
		return s.From
	}
	return s.User
}

// ImplicitTLS reports whether the relay expects TLS from the first byte
func (s SMTPConfig) ImplicitTLS() bool {
	return s.Port == 465
}
