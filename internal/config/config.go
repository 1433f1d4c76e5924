package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App      AppConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Mail     MailConfig
	Media    MediaConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
	StoreDriver string
	// TimeZone is used to interpret form date/times without an offset and
	// to compute calendar-day event filters.
	TimeZone *time.Location
}

type LogConfig struct {
	Level string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
	SlowQueryThreshold    time.Duration

	MigrationsDir string
	RunMigrations bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration
}

func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Host) != ""
}

func (c RedisConfig) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return c.Host + ":" + port
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

type MailConfig struct {
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	From              string
	ContactRecipients []string
	Workers           int
	// RateLimit caps outbound messages per second. Zero means unlimited.
	RateLimit int
}

func (c MailConfig) SMTPEnabled() bool {
	return strings.TrimSpace(c.SMTPHost) != ""
}

type MediaConfig struct {
	Dir     string
	BaseURL string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	num := func(key string, def int) int {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			invalid = append(invalid, key)
			return def
		}
		return v
	}
	flag := func(key string, def bool) bool {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
		StoreDriver: strings.ToLower(opt("STORE_DRIVER", StoreDriverPostgres)),
		TimeZone:    time.UTC,
	}
	if tz := opt("APP_TIMEZONE", ""); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			invalid = append(invalid, "APP_TIMEZONE")
		} else {
			cfg.App.TimeZone = loc
		}
	}
	switch cfg.App.StoreDriver {
	case StoreDriverPostgres, StoreDriverMemory:
	default:
		invalid = append(invalid, "STORE_DRIVER")
	}

	cfg.Log = LogConfig{Level: opt("LOG_LEVEL", "info")}

	cfg.Database = DatabaseConfig{
		DBHost:                opt("DB_HOST", "localhost"),
		DBPort:                opt("DB_PORT", "5432"),
		DBName:                opt("DB_NAME", ""),
		DBUser:                opt("DB_USER", ""),
		DBPassword:            strings.TrimSpace(getenv("DB_PASSWORD")),
		DBSSLMode:             opt("DB_SSL_MODE", "disable"),
		ConnectTimeout:        dur("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(num("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(num("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   dur("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   dur("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: dur("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		SlowQueryThreshold:    dur("DB_SLOW_QUERY_THRESHOLD", 200*time.Millisecond),
		MigrationsDir:         opt("MIGRATIONS_DIR", ""),
		RunMigrations:         flag("RUN_MIGRATIONS", false),
	}
	if cfg.App.StoreDriver == StoreDriverPostgres {
		if cfg.Database.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
		if cfg.Database.DBUser == "" {
			missing = append(missing, "DB_USER")
		}
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST", ""),
		Port:     opt("REDIS_PORT", "6379"),
		Password: strings.TrimSpace(getenv("REDIS_PASSWORD")),
		DB:       num("REDIS_DB", 0),
		CacheTTL: dur("CACHE_TTL", 5*time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  dur("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: dur("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.Mail = MailConfig{
		SMTPHost:          opt("SMTP_HOST", ""),
		SMTPPort:          num("SMTP_PORT", 587),
		SMTPUser:          opt("SMTP_USER", ""),
		SMTPPassword:      strings.TrimSpace(getenv("SMTP_PASSWORD")),
		From:              opt("CONTACT_FROM", "no-reply@skillified.local"),
		ContactRecipients: splitList(getenv("CONTACT_RECIPIENTS")),
		Workers:           num("MAIL_WORKERS", 2),
		RateLimit:         num("SMTP_RATE_LIMIT", 0),
	}

	cfg.Media = MediaConfig{
		Dir:     opt("MEDIA_DIR", "media"),
		BaseURL: strings.TrimRight(opt("MEDIA_BASE_URL", "/media"), "/"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func (c Config) IsDevelopment() bool {
	return c.App.Environment == "" || c.App.Environment == "development" || c.App.Environment == "local"
}
