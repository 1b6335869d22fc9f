package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // containers often ship without zoneinfo

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	Env     string // dev|prod
	Release string
	// attendance "today" starts at midnight in this zone
	TimeZone string

	LogLevel  string
	SentryDSN string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr   string
	RedisDB     int
	FeedChannel string

	JWTSecret string
	JWTTTL    time.Duration

	IdempTTLSecs int

	ChatPurgeEvery time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getdur(k string, d time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if n, err := time.ParseDuration(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the environment, after applying a .env file if one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort: getenv("APP_PORT", "8080"),
		Env:     getenv("ENV", "dev"),
		Release: getenv("RELEASE", "dev"),

		TimeZone: getenv("TZ_NAME", "Europe/Oslo"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		SentryDSN: os.Getenv("SENTRY_DSN"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "krysselista"),
		MySQLUser: getenv("MYSQL_USER", "krysselista"),
		MySQLPass: getenv("MYSQL_PASS", "krysselista"),

		RedisAddr:   getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:     getint("REDIS_DB", 0),
		FeedChannel: getenv("FEED_CHANNEL", "krysselista"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    getdur("JWT_TTL", 12*time.Hour),

		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		ChatPurgeEvery: getdur("CHAT_PURGE_EVERY", 10*time.Minute),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("invalid TZ_NAME %q: %w", c.TimeZone, err)
	}
	if c.IdempTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS must be positive")
	}
	// a zero interval would panic in time.NewTicker
	if c.ChatPurgeEvery <= 0 {
		return errors.New("CHAT_PURGE_EVERY must be positive")
	}
	return nil
}

// Location resolves TimeZone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps timestamps comparable
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
