package middleware

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/kruger-gateway/internal/config"
	"github.com/iliyamo/kruger-gateway/internal/logging"
	"github.com/iliyamo/kruger-gateway/internal/metrics"
)

// attemptScript drains a leaky credit bucket for one client. The level
// refills continuously at ARGV[3] credits per second up to ARGV[2]. A normal
// attempt (ARGV[6] == 0) is admitted only when the level covers ARGV[4]; a
// penalty (ARGV[6] == 1) is always charged and may push the level below zero,
// which keeps a client that keeps failing locked out for longer.
// Returns {admitted, level, wait_ms}.
var attemptScript = redis.NewScript(`
local now_ms   = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local per_sec  = tonumber(ARGV[3])
local cost     = tonumber(ARGV[4])
local ttl_ms   = tonumber(ARGV[5])
local penalty  = tonumber(ARGV[6]) == 1

local saved = redis.call('HMGET', KEYS[1], 'level', 'at_ms')
local level = tonumber(saved[1]) or capacity
local at_ms = tonumber(saved[2]) or now_ms

if now_ms > at_ms then
	level = math.min(capacity, level + (now_ms - at_ms) * per_sec / 1000)
end

local admitted = 0
local wait_ms = 0
if penalty then
	level = math.max(-capacity, level - cost)
elseif level >= cost then
	admitted = 1
	level = level - cost
else
	wait_ms = math.ceil((cost - level) * 1000 / per_sec)
end

redis.call('HSET', KEYS[1], 'level', tostring(level), 'at_ms', now_ms)
redis.call('PEXPIRE', KEYS[1], ttl_ms)
return { admitted, math.floor(level), wait_ms }
`)

// NewAuthLimiter throttles credential endpoints per client. Every attempt
// costs one credit; an attempt rejected with 401 costs cfg.FailurePenalty
// more, so password guessing slows down much faster than ordinary use.
// Without Redis the limiter is a no-op; a Redis error lets the request
// through.
func NewAuthLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return passthrough
	}
	perSec := refillPerSecond(cfg)

	run := func(c echo.Context, key string, cost int, penalty bool) (admitted bool, level, waitMs int64, err error) {
		flag := 0
		if penalty {
			flag = 1
		}
		vals, err := attemptScript.Run(c.Request().Context(), rdb, []string{key},
			time.Now().UnixMilli(), cfg.Capacity, perSec, cost, cfg.TTL.Milliseconds(), flag).Result()
		if err != nil {
			return false, 0, 0, err
		}
		arr, ok := vals.([]any)
		if !ok || len(arr) != 3 {
			return false, 0, 0, fmt.Errorf("unexpected limiter result %#v", vals)
		}
		return asInt64(arr[0]) == 1, asInt64(arr[1]), asInt64(arr[2]), nil
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := buildRateKey(cfg, c)

			admitted, level, waitMs, err := run(c, key, 1, false)
			if err != nil {
				logging.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(max(level, 0), 10))
			if cfg.Debug {
				h.Set("X-RateLimit-Key", key)
			}

			if !admitted {
				secs := retryAfterSeconds(waitMs)
				h.Set("Retry-After", strconv.Itoa(secs))
				metrics.RateLimited.Inc()
				if cfg.Debug {
					logging.Debug().Str("key", key).Int64("wait_ms", waitMs).Msg("rate limited")
				}
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":       "too many requests, please try again later",
					"retry_after": secs,
				})
			}

			err = next(c)
			if cfg.FailurePenalty > 0 && failedCredentials(c, err) {
				if _, _, _, perr := run(c, key, cfg.FailurePenalty, true); perr != nil {
					logging.Warn().Err(perr).Str("key", key).Msg("rate limiter penalty not recorded")
				}
			}
			return err
		}
	}
}

// refillPerSecond converts the configured refill step into a continuous rate.
func refillPerSecond(cfg config.RateLimitConfig) float64 {
	if cfg.RefillInterval <= 0 || cfg.RefillTokens <= 0 {
		return 1
	}
	return float64(cfg.RefillTokens) / cfg.RefillInterval.Seconds()
}

func retryAfterSeconds(waitMs int64) int {
	if waitMs <= 0 {
		return 1
	}
	return int(math.Ceil(float64(waitMs) / 1000.0))
}

// failedCredentials reports whether the handler rejected the credentials.
func failedCredentials(c echo.Context, err error) bool {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code == http.StatusUnauthorized
	}
	return c.Response().Status == http.StatusUnauthorized
}

func asInt64(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case float64:
		return int64(t)
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// buildRateKey keys the bucket by client address. The credential routes are
// anonymous, so there is no user to key on. "ip" shares one bucket between
// register and login; any other strategy gives each route its own.
func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	if strings.EqualFold(cfg.KeyStrategy, "ip") {
		return strings.Join([]string{cfg.Prefix, "auth", ip}, ":")
	}
	route := strings.TrimPrefix(c.Path(), "/api/auth/")
	return strings.Join([]string{cfg.Prefix, "auth", route, ip}, ":")
}
