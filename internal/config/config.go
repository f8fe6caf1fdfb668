package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fittrack-go/pkg/logger"
)

const (
	StorageBackendPostgres  = "postgres"
	StorageBackendFirestore = "firestore"

	AuthProviderFirebase = "firebase"
	AuthProviderSupabase = "supabase"
)

type Config struct {
	HTTPPort    string
	Env         string
	CORSOrigins []string
	Storage     StorageConfig
	DB          DBConfig
	Auth        AuthConfig
	Summary     SummaryConfig
	Nutrition   NutritionConfig
	Sentry      SentryConfig
}

type StorageConfig struct {
	Backend            string
	FirestoreProjectID string
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	Provider          string
	FirebaseProjectID string
	SupabaseURL       string
	SupabaseKey       string
	Timeout           time.Duration
	SkipAuth          bool
	MockUserID        string
	MockUserEmail     string
	MockUserName      string
	MockUserAvatar    string
}

type SummaryConfig struct {
	CacheTTL        time.Duration
	RefreshQueue    int
	RolloverEnabled bool
	WatchSnapshots  bool
}

type NutritionConfig struct {
	GeminiAPIKey  string
	GeminiModel   string
	MaxImageBytes int
}

type SentryConfig struct {
	DSN         string
	Environment string
	Release     string
	SampleRate  float64
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	env := getEnv("ENV", "development")
	cfg := Config{
		HTTPPort:    getEnv("HTTP_PORT", "8080"),
		Env:         env,
		CORSOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		Storage: StorageConfig{
			Backend:            strings.ToLower(getEnv("STORAGE_BACKEND", StorageBackendPostgres)),
			FirestoreProjectID: getEnv("FIRESTORE_PROJECT_ID", getEnv("GOOGLE_CLOUD_PROJECT", "")),
		},
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "fittrack"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			Provider:          strings.ToLower(getEnv("AUTH_PROVIDER", AuthProviderFirebase)),
			FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", getEnv("FIRESTORE_PROJECT_ID", "")),
			SupabaseURL:       getEnv("SUPABASE_URL", ""),
			SupabaseKey:       getEnv("SUPABASE_PUBLISHABLE_KEY", ""),
			Timeout:           getEnvDuration("AUTH_TIMEOUT", 5*time.Second),
			SkipAuth:          getEnvBool("AUTH_SKIP", false),
			MockUserID:        getEnv("AUTH_MOCK_USER_ID", "00000000-0000-0000-0000-000000000001"),
			MockUserEmail:     getEnv("AUTH_MOCK_USER_EMAIL", ""),
			MockUserName:      getEnv("AUTH_MOCK_USER_NAME", ""),
			MockUserAvatar:    getEnv("AUTH_MOCK_USER_AVATAR_URL", ""),
		},
		Summary: SummaryConfig{
			CacheTTL:        getEnvDuration("SUMMARY_CACHE_TTL", time.Minute),
			RefreshQueue:    getEnvInt("SUMMARY_REFRESH_QUEUE", 64),
			RolloverEnabled: getEnvBool("SUMMARY_ROLLOVER_ENABLED", true),
			WatchSnapshots:  getEnvBool("SUMMARY_WATCH_SNAPSHOTS", true),
		},
		Nutrition: NutritionConfig{
			GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			MaxImageBytes: getEnvInt("NUTRITION_MAX_IMAGE_BYTES", 5*1024*1024),
		},
		Sentry: SentryConfig{
			DSN:         getEnv("SENTRY_DSN", ""),
			Environment: getEnv("SENTRY_ENVIRONMENT", env),
			Release:     getEnv("SENTRY_RELEASE", ""),
			SampleRate:  getEnvFloat("SENTRY_TRACES_SAMPLE_RATE", 0),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case StorageBackendPostgres:
	case StorageBackendFirestore:
		if c.Storage.FirestoreProjectID == "" {
			return fmt.Errorf("FIRESTORE_PROJECT_ID is required for firestore storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend)
	}

	switch c.Auth.Provider {
	case AuthProviderFirebase, AuthProviderSupabase:
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
