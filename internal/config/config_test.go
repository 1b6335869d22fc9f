package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("TZ_NAME", "")
	c := Load()
	if c.AppPort != "8080" {
		t.Fatalf("AppPort = %q", c.AppPort)
	}
	if c.RedisDB != 0 {
		t.Fatalf("RedisDB = %d", c.RedisDB)
	}
	if c.JWTTTL != 12*time.Hour {
		t.Fatalf("JWTTTL = %v", c.JWTTTL)
	}
	if c.TimeZone != "Europe/Oslo" {
		t.Fatalf("TimeZone = %q", c.TimeZone)
	}
	if c.ChatPurgeEvery != 10*time.Minute {
		t.Fatalf("ChatPurgeEvery = %v", c.ChatPurgeEvery)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("REDIS_DB", "3")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "notanumber")
	c := Load()
	if c.RedisDB != 3 {
		t.Fatalf("RedisDB = %d", c.RedisDB)
	}
	if c.JWTTTL != 30*time.Minute {
		t.Fatalf("JWTTTL = %v", c.JWTTTL)
	}
	if c.IdempTTLSecs != 300 {
		t.Fatalf("bad int should keep default, got %d", c.IdempTTLSecs)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			AppPort: "8080", MySQLHost: "db", MySQLPort: "3306", MySQLDB: "k", MySQLUser: "u",
			JWTSecret: strings.Repeat("s", 16), JWTTTL: time.Hour,
			IdempTTLSecs: 300, ChatPurgeEvery: 10 * time.Minute,
		}
	}
	if err := valid().Validate(); err != nil {
		t.Fatalf("valid config: %v", err)
	}

	c := valid()
	c.MySQLHost = ""
	if err := c.Validate(); err == nil {
		t.Fatal("missing host should fail")
	}
	c = valid()
	c.MySQLPort = "not-a-port"
	if err := c.Validate(); err == nil {
		t.Fatal("bad port should fail")
	}
	c = valid()
	c.JWTSecret = "short"
	if err := c.Validate(); err == nil {
		t.Fatal("short secret should fail")
	}
	c = valid()
	c.TimeZone = "Mars/Olympus"
	if err := c.Validate(); err == nil {
		t.Fatal("unknown zone should fail")
	}
	for _, d := range []time.Duration{0, -time.Minute} {
		c = valid()
		c.ChatPurgeEvery = d
		if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "CHAT_PURGE_EVERY") {
			t.Fatalf("purge interval %v: err = %v", d, err)
		}
	}
	for _, n := range []int{0, -5} {
		c = valid()
		c.IdempTTLSecs = n
		if err := c.Validate(); err == nil || !strings.Contains(err.Error(), "IDEMPOTENCY_TTL_SECONDS") {
			t.Fatalf("idempotency ttl %d: err = %v", n, err)
		}
	}
}

func TestLoad_ZeroIntervalsFailValidation(t *testing.T) {
	t.Setenv("MYSQL_HOST", "db")
	t.Setenv("MYSQL_DB", "krysselista")
	t.Setenv("MYSQL_USER", "app")
	t.Setenv("MYSQL_PORT", "3306")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("JWT_SECRET", strings.Repeat("k", 32))
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("TZ_NAME", "UTC")
	t.Setenv("IDEMPOTENCY_TTL_SECONDS", "300")
	t.Setenv("CHAT_PURGE_EVERY", "0s")
	if err := Load().Validate(); err == nil {
		t.Fatal("CHAT_PURGE_EVERY=0s must not pass validation")
	}
}

func TestLocation(t *testing.T) {
	c := &Config{TimeZone: "Europe/Oslo"}
	if got := c.Location().String(); got != "Europe/Oslo" {
		t.Fatalf("Location = %q", got)
	}
	c.TimeZone = "Mars/Olympus"
	if c.Location() != time.UTC {
		t.Fatalf("unknown zone should fall back to UTC")
	}
}

func TestMySQLDSN(t *testing.T) {
	c := &Config{MySQLUser: "u", MySQLPass: "p", MySQLHost: "h", MySQLPort: "3306", MySQLDB: "d"}
	want := "u:p@tcp(h:3306)/d?parseTime=true&loc=UTC&charset=utf8mb4"
	if got := c.MySQLDSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
