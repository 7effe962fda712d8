package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lmb/maintenance-tracker/internal/config"
)

// throttleScript spends one token from every bucket in KEYS, or from none of
// them when any is empty.  A bucket is stored as its theoretical arrival
// time in milliseconds and is empty once that time runs more than capacity
// intervals ahead of now.
//
// ARGV: now_ms, interval_ms, capacity.  Returns {allowed, remaining, retry_ms}.
var throttleScript = redis.NewScript(`
local now = tonumber(ARGV[1])
local interval = tonumber(ARGV[2])
local capacity = tonumber(ARGV[3])
local window = interval * capacity

local next_tat = {}
local remaining = capacity
local wait = 0
for i, key in ipairs(KEYS) do
	local tat = tonumber(redis.call('GET', key)) or now
	if tat < now then tat = now end
	tat = tat + interval
	local ahead = tat - now
	if ahead > window then
		wait = math.max(wait, ahead - window)
	else
		remaining = math.min(remaining, math.floor((window - ahead) / interval))
	end
	next_tat[i] = tat
end

if wait > 0 then
	return {0, 0, wait}
end
for i, key in ipairs(KEYS) do
	redis.call('SET', key, next_tat[i], 'PX', next_tat[i] - now)
end
return {1, remaining, 0}
`)

type credentialLimiter struct {
	cfg config.RateLimitConfig
	rdb *redis.Client
	log logrus.FieldLogger
	now func() time.Time
}

// NewCredentialLimiter throttles credential guessing per client address and
// per account email.  Without a Redis client, or when disabled, it is a
// passthrough.  Redis errors fail open.
func NewCredentialLimiter(cfg config.RateLimitConfig, rdb *redis.Client, log logrus.FieldLogger) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	l := &credentialLimiter{cfg: cfg, rdb: rdb, log: log.WithField("component", "ratelimit"), now: time.Now}
	return l.middleware
}

func (l *credentialLimiter) middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		email, err := attemptEmail(c.Request())
		if err != nil {
			return err
		}
		keys := l.keys(c.RealIP(), email)

		res, err := throttleScript.Run(c.Request().Context(), l.rdb, keys,
			l.now().UnixMilli(), l.cfg.RefillInterval.Milliseconds(), l.cfg.Capacity).Int64Slice()
		if err != nil || len(res) != 3 {
			l.log.WithError(err).WithField("keys", keys).Warn("throttle unavailable, allowing attempt")
			return next(c)
		}

		h := c.Response().Header()
		h.Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Capacity))
		h.Set("X-RateLimit-Remaining", strconv.FormatInt(res[1], 10))
		if res[0] == 1 {
			return next(c)
		}

		secs := (res[2] + 999) / 1000
		h.Set("Retry-After", strconv.FormatInt(secs, 10))
		l.log.WithFields(logrus.Fields{"keys": keys, "retry_ms": res[2]}).Info("credential attempt throttled")
		return c.JSON(http.StatusTooManyRequests, echo.Map{
			"error":       "Too many attempts, try again later",
			"retry_after": secs,
		})
	}
}

// keys returns the buckets an attempt spends from.  An attempt that names no
// email only spends from the address bucket.
func (l *credentialLimiter) keys(ip, email string) []string {
	if ip == "" {
		ip = "unknown"
	}
	byIP := l.cfg.Prefix + ":ip:" + ip
	if email == "" {
		return []string{byIP}
	}
	byEmail := l.cfg.Prefix + ":email:" + email
	switch l.cfg.KeyStrategy {
	case "ip":
		return []string{byIP}
	case "email":
		return []string{byEmail}
	default:
		return []string{byIP, byEmail}
	}
}

// attemptEmail returns the lower-cased email named in a JSON request body
// and leaves the body readable for the handler.
func attemptEmail(req *http.Request) (string, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return "", nil
	}
	raw, err := io.ReadAll(req.Body)
	if err != nil {
		return "", err
	}
	req.Body = io.NopCloser(bytes.NewReader(raw))

	var body struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(raw, &body) != nil {
		return "", nil
	}
	return strings.ToLower(strings.TrimSpace(body.Email)), nil
}
