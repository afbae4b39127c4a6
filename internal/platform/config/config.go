package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendFile      = "file"
	BackendRedis     = "redis"
	BackendFirestore = "firestore"
)

// DefaultStoreKey is the key the profile record lives under.
const DefaultStoreKey = "userProfile"

// Config holds process configuration resolved from the environment.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Firebase FirebaseConfig
	QR       QRConfig
	LogLevel string
}

// ServerConfig controls the local HTTP listener.
type ServerConfig struct {
	Host        string
	Port        string
	CORSOrigins []string
}

// Addr returns host:port for http.Server.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// StoreConfig selects and configures the profile store.
type StoreConfig struct {
	Backend    string
	Key        string
	DataDir    string
	RedisURL   string
	Collection string
}

// FirebaseConfig is only read when the firestore backend is selected.
type FirebaseConfig struct {
	ProjectID       string
	CredentialsFile string
}

// QRConfig holds rendering defaults.
type QRConfig struct {
	Size int
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	qrSize, err := getEnvAsInt("QR_SIZE", 200)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("HOST", "127.0.0.1"),
			Port:        getEnv("PORT", "8080"),
			CORSOrigins: getEnvAsList("CORS_ORIGINS"),
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(getEnv("STORE_BACKEND", BackendFile)),
			Key:        getEnv("STORE_KEY", DefaultStoreKey),
			DataDir:    getEnv("DATA_DIR", defaultDataDir()),
			RedisURL:   getEnv("REDIS_URL", ""),
			Collection: getEnv("FIRESTORE_COLLECTION", "profiles"),
		},
		Firebase: FirebaseConfig{
			ProjectID:       firstNonEmpty(os.Getenv("FIREBASE_PROJECT_ID"), os.Getenv("GOOGLE_CLOUD_PROJECT")),
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		},
		QR:       QRConfig{Size: qrSize},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backend has what it needs.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("PORT is required")
	}
	if c.Store.Key == "" {
		return errors.New("STORE_KEY must not be empty")
	}
	if c.QR.Size < 64 || c.QR.Size > 1024 {
		return fmt.Errorf("QR_SIZE must be between 64 and 1024, got %d", c.QR.Size)
	}
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.DataDir == "" {
			return errors.New("DATA_DIR is required for the file backend")
		}
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return errors.New("REDIS_URL is required for the redis backend")
		}
	case BackendFirestore:
		if c.Firebase.ProjectID == "" {
			return errors.New("FIREBASE_PROJECT_ID is required for the firestore backend")
		}
		if c.Store.Collection == "" {
			return errors.New("FIRESTORE_COLLECTION must not be empty")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	return nil
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "contact-card")
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func getEnvAsList(key string) []string {
	var out []string
	for part := range strings.SplitSeq(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
