package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store names for the four physical databases.
const (
	StorePublic    = "public"
	StoreStudent   = "student"
	StoreTeacher   = "teacher"
	StoreAuthority = "authority"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	// Stores holds one database configuration per physical store. The
	// public store owns credentials; the three role stores own profiles.
	Stores  StoresConfig
	Redis   RedisConfig
	Session SessionConfig
	CORS    CORSConfig
	Log     LogConfig
	Notices NoticesConfig
}

type StoresConfig struct {
	Public    DatabaseConfig
	Student   DatabaseConfig
	Teacher   DatabaseConfig
	Authority DatabaseConfig

	// OpTimeout bounds every single store round trip. A timeout during the
	// profile half of a registration is handled like any other hard failure.
	OpTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs the signed session tokens issued at login.
type SessionConfig struct {
	Secret     string
	Expiry     time.Duration
	CookieName string
	Issuer     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// NoticesConfig tunes the notice board cache.
type NoticesConfig struct {
	CacheTTL time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Stores = StoresConfig{
		Public:    loadDatabase(v, "PUBLIC"),
		Student:   loadDatabase(v, "STUDENT"),
		Teacher:   loadDatabase(v, "TEACHER"),
		Authority: loadDatabase(v, "AUTHORITY"),
		OpTimeout: parseDuration(v.GetString("STORE_OP_TIMEOUT"), 5*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		Secret:     v.GetString("SESSION_SECRET"),
		Expiry:     parseDuration(v.GetString("SESSION_EXPIRY"), 30*time.Minute),
		CookieName: v.GetString("SESSION_COOKIE_NAME"),
		Issuer:     v.GetString("SESSION_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Notices = NoticesConfig{
		CacheTTL: parseDuration(v.GetString("NOTICES_CACHE_TTL"), 5*time.Minute),
	}

	return cfg, nil
}

func loadDatabase(v *viper.Viper, prefix string) DatabaseConfig {
	return DatabaseConfig{
		Host:         v.GetString(prefix + "_DB_HOST"),
		Port:         v.GetInt(prefix + "_DB_PORT"),
		User:         v.GetString(prefix + "_DB_USER"),
		Password:     v.GetString(prefix + "_DB_PASSWORD"),
		Name:         v.GetString(prefix + "_DB_NAME"),
		SSLMode:      v.GetString(prefix + "_DB_SSL_MODE"),
		MaxOpenConns: v.GetInt(prefix + "_DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt(prefix + "_DB_MAX_IDLE_CONNS"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8000)
	v.SetDefault("API_PREFIX", "")

	for prefix, name := range map[string]string{
		"PUBLIC":    "school_public",
		"STUDENT":   "school_students",
		"TEACHER":   "school_teachers",
		"AUTHORITY": "school_authority",
	} {
		v.SetDefault(prefix+"_DB_HOST", "localhost")
		v.SetDefault(prefix+"_DB_PORT", 5432)
		v.SetDefault(prefix+"_DB_USER", "postgres")
		v.SetDefault(prefix+"_DB_PASSWORD", "postgres")
		v.SetDefault(prefix+"_DB_NAME", name)
		v.SetDefault(prefix+"_DB_SSL_MODE", "disable")
		v.SetDefault(prefix+"_DB_MAX_OPEN_CONNS", 10)
		v.SetDefault(prefix+"_DB_MAX_IDLE_CONNS", 5)
	}
	v.SetDefault("STORE_OP_TIMEOUT", "5s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "dev_secret")
	v.SetDefault("SESSION_EXPIRY", "30m")
	v.SetDefault("SESSION_COOKIE_NAME", "portal_session")
	v.SetDefault("SESSION_ISSUER", "school-portal")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("NOTICES_CACHE_TTL", "5m")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
