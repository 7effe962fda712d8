package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig drives the Redis throttle in front of the credential
// endpoints (login, bootstrap, reset).  An attempt spends one token from the
// bucket of the client address and one from the bucket of the email it
// names; each bucket earns a token back every RefillInterval.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int           // attempts allowed back to back
	RefillInterval time.Duration // time to earn one attempt back
	KeyStrategy    string        // ip, email or ip_email
	Prefix         string
}

func LoadRateLimitConfig() RateLimitConfig {
	c := RateLimitConfig{
		Enabled:        envBool("RATE_LIMIT_ENABLED", true),
		Capacity:       envInt("RATE_LIMIT_CAPACITY", 10),
		RefillInterval: envDur("RATE_LIMIT_REFILL_INTERVAL", 6*time.Second),
		KeyStrategy:    strings.ToLower(envStr("RATE_LIMIT_KEY_STRATEGY", "ip_email")),
		Prefix:         envStr("RATE_LIMIT_PREFIX", "lmb:rl"),
	}
	if c.Capacity < 1 {
		c.Capacity = 1
	}
	if c.RefillInterval < time.Millisecond {
		c.RefillInterval = time.Second
	}
	return c
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	if n, err := strconv.Atoi(os.Getenv(k)); err == nil {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	if dur, err := time.ParseDuration(os.Getenv(k)); err == nil {
		return dur
	}
	return d
}
