package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	YouTube      YouTubeConfig
	Research     ResearchConfig
	Throttle     ThrottleConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CREATORLIFT_APP_ENV" required:"true"`
	Port         string `envconfig:"CREATORLIFT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CREATORLIFT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CREATORLIFT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CREATORLIFT_DB_DSN"`
	Driver string `envconfig:"CREATORLIFT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CREATORLIFT_DB_HOST"`
	LegacyPort     int    `envconfig:"CREATORLIFT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CREATORLIFT_DB_USER"`
	LegacyPassword string `envconfig:"CREATORLIFT_DB_PASSWORD"`
	LegacyName     string `envconfig:"CREATORLIFT_DB_NAME"`
	LegacySSLMode  string `envconfig:"CREATORLIFT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CREATORLIFT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CREATORLIFT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CREATORLIFT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CREATORLIFT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CREATORLIFT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CREATORLIFT_REDIS_ADDR"`
	Password     string        `envconfig:"CREATORLIFT_REDIS_PASSWORD"`
	DB           int           `envconfig:"CREATORLIFT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CREATORLIFT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CREATORLIFT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CREATORLIFT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CREATORLIFT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CREATORLIFT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// YouTubeConfig carries the Data API v3 credential and client tuning knobs.
type YouTubeConfig struct {
	APIKey      string        `envconfig:"CREATORLIFT_YOUTUBE_API_KEY"`
	BaseURL     string        `envconfig:"CREATORLIFT_YOUTUBE_BASE_URL" default:"https://www.googleapis.com/youtube/v3"`
	HTTPTimeout time.Duration `envconfig:"CREATORLIFT_YOUTUBE_HTTP_TIMEOUT" default:"15s"`
}

// IsConfigured reports whether a usable API credential is present.
func (y YouTubeConfig) IsConfigured() bool {
	return strings.TrimSpace(y.APIKey) != ""
}

// DefaultSnapshotMaxAge is the freshness window for cached research
// snapshots when no override is configured.
const DefaultSnapshotMaxAge = 48 * time.Hour

// ResearchConfig tunes the demand/competition engine's budgets.
type ResearchConfig struct {
	DailyQuotaLimit int           `envconfig:"CREATORLIFT_RESEARCH_DAILY_QUOTA_LIMIT" default:"9000"`
	UserDailyLimit  int           `envconfig:"CREATORLIFT_RESEARCH_USER_DAILY_LIMIT" default:"10"`
	SnapshotMaxAge  time.Duration `envconfig:"CREATORLIFT_RESEARCH_SNAPSHOT_MAX_AGE" default:"48h"`
}

// ThrottleConfig governs the per-IP surface throttle on the research trigger.
type ThrottleConfig struct {
	Window  time.Duration `envconfig:"CREATORLIFT_THROTTLE_WINDOW" default:"1m"`
	IPLimit int           `envconfig:"CREATORLIFT_THROTTLE_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CREATORLIFT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CREATORLIFT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
