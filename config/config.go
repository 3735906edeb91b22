package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting of the blog
type Config struct {
	Addr            string        `yaml:"addr"`
	DatabaseURL     string        `yaml:"database_url"`
	SessionSecret   string        `yaml:"session_secret"`
	SessionStore    string        `yaml:"session_store"`
	SessionLifetime time.Duration `yaml:"session_lifetime"`
	BcryptCost      int           `yaml:"bcrypt_cost"`
	GuardPostEdits  bool          `yaml:"guard_post_edits"`
	CookieSecure    bool          `yaml:"cookie_secure"`
}

// Default returns the settings used when nothing overrides them
func Default() Config {
	return Config{
		Addr:            ":5000",
		DatabaseURL:     "inkwell.db",
		SessionStore:    "data/sessions",
		SessionLifetime: 24 * time.Hour,
		BcryptCost:      bcrypt.DefaultCost,
	}
}

// Load builds the configuration from defaults, a .env file, the optional
// YAML file at path and finally the environment.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if cfg.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return Config{}, err
		}
		log.Printf("SESSION_SECRET is not set; using a random secret, sessions will not survive a restart")
		cfg.SessionSecret = secret
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookupEnv("DATABASE_URL"); ok {
		c.DatabaseURL = v
	}
	if v, ok := lookupEnv("SESSION_SECRET"); ok {
		c.SessionSecret = v
	}
	// An empty SESSION_STORE is meaningful: it keeps sessions in memory.
	if v, ok := os.LookupEnv("SESSION_STORE"); ok {
		c.SessionStore = strings.TrimSpace(v)
	}
	if v, ok := lookupEnv("SESSION_LIFETIME"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SESSION_LIFETIME: %w", err)
		}
		c.SessionLifetime = d
	}
	if v, ok := lookupEnv("BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		c.BcryptCost = n
	}
	if v, ok := lookupEnv("GUARD_POST_EDITS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid GUARD_POST_EDITS: %w", err)
		}
		c.GuardPostEdits = b
	}
	if v, ok := lookupEnv("COOKIE_SECURE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid COOKIE_SECURE: %w", err)
		}
		c.CookieSecure = b
	}
	return nil
}

// Validate checks the settings that would otherwise fail at first use
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database_url is required"))
	}
	if len(c.SessionSecret) < 16 {
		errs = append(errs, errors.New("session_secret must be at least 16 bytes"))
	}
	if c.SessionLifetime <= 0 {
		errs = append(errs, errors.New("session_lifetime must be positive"))
	}
	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	return errors.Join(errs...)
}

func lookupEnv(key string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", false
	}
	return value, true
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}
