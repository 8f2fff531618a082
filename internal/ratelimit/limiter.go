// Package ratelimit provides a Redis-backed sliding window limiter and
// the gin middleware that applies it per client IP.
package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "ratelimit:"

// Each admitted request adds one member scored by its arrival time in
// milliseconds. Members older than the window are trimmed first.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window_start = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local window_ms = tonumber(ARGV[4])

redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

local current = redis.call('ZCARD', key)
if current < limit then
	local counter = redis.call('INCR', key .. ':seq')
	redis.call('ZADD', key, now, now .. ':' .. counter)
	local expire_seconds = math.ceil(window_ms / 1000)
	redis.call('EXPIRE', key, expire_seconds)
	redis.call('EXPIRE', key .. ':seq', expire_seconds)
	return {1, limit - current - 1, 0}
end

local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
local reset_at = 0
if oldest and #oldest >= 2 then
	reset_at = tonumber(oldest[2]) + window_ms
end
return {0, 0, reset_at}
`)

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allower decides whether one more request under key fits the limit.
type Allower interface {
	Allow(ctx context.Context, key string) (*Result, error)
}

type Limiter struct {
	client    redis.UniversalClient
	keyPrefix string
	limit     int
	window    time.Duration
}

var _ Allower = (*Limiter)(nil)

func NewLimiter(client redis.UniversalClient, keyPrefix string, limit int, window time.Duration) *Limiter {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Limiter{
		client:    client,
		keyPrefix: keyPrefix,
		limit:     limit,
		window:    window,
	}
}

func (l *Limiter) Allow(ctx context.Context, key string) (*Result, error) {
	now := time.Now()
	windowStart := now.Add(-l.window)

	reply, err := slidingWindowScript.Run(
		ctx,
		l.client,
		[]string{l.keyPrefix + key},
		now.UnixMilli(),
		windowStart.UnixMilli(),
		l.limit,
		l.window.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, fmt.Errorf("failed to run rate limit script: %w", err)
	}
	if len(reply) != 3 {
		return nil, fmt.Errorf("unexpected rate limit reply length: %d", len(reply))
	}

	resetAt := now.Add(l.window)
	if reply[2] > 0 {
		resetAt = time.UnixMilli(reply[2])
	}
	return &Result{
		Allowed:   reply[0] == 1,
		Limit:     l.limit,
		Remaining: int(reply[1]),
		ResetAt:   resetAt,
	}, nil
}

func formatUnix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
