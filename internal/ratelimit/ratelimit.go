// Package ratelimit 使用保存在 redis 中的固定窗口计数器限制公开表单的提交频率。
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "proofpage:rl"

// Decision 是一次 Allow 调用的结果。
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter 判断 key 标识的调用方是否可以继续。
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// fixedWindow 递增计数，并在首次命中时开启窗口。
// 返回 {计数, 窗口剩余毫秒数}。
var fixedWindow = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return { count, ttl }
`)

// RedisLimiter 允许每个 key 在每个窗口内命中 limit 次。
type RedisLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

// NewRedisLimiter 返回基于 client 的限流器。
func NewRedisLimiter(client redis.Scripter, limit int, window time.Duration) *RedisLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, limit: limit, window: window}
}

// Allow 实现 Limiter。
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	vals, err := fixedWindow.Run(ctx, l.client, []string{keyPrefix + ":" + key}, l.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	if len(vals) != 2 {
		return Decision{}, fmt.Errorf("unexpected limiter result %v", vals)
	}
	return decide(l.limit, vals[0], time.Duration(vals[1])*time.Millisecond), nil
}

func decide(limit int, count int64, ttl time.Duration) Decision {
	d := Decision{Limit: limit, Remaining: limit - int(count)}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	d.Allowed = count <= int64(limit)
	if !d.Allowed {
		d.RetryAfter = ttl
	}
	return d
}

// NewRedisClient 连接 addr 并执行 ping。
func NewRedisClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	if addr == "" {
		return nil, errors.New("redis address is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// KeyFunc 从请求推导限流 key。
type KeyFunc func(c *gin.Context) string

// ByIPAndRoute 以客户端 IP 加匹配到的路由及其参数作为 key。
func ByIPAndRoute(c *gin.Context) string {
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return ip + ":" + c.Request.Method + " " + c.Request.URL.Path
}

// Middleware 使用 l 执行限流。limiter 为 nil 时不限流，限流器出错时放行请求。
// denied 负责渲染拒绝响应，为 nil 时直接返回纯文本 429。
func Middleware(l Limiter, key KeyFunc, logger *zap.Logger, denied gin.HandlerFunc) gin.HandlerFunc {
	if l == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if key == nil {
		key = ByIPAndRoute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		k := key(c)
		decision, err := l.Allow(c.Request.Context(), k)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.String("key", k), zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if decision.Allowed {
			c.Next()
			return
		}

		secs := int(math.Ceil(decision.RetryAfter.Seconds()))
		if secs < 0 {
			secs = 0
		}
		c.Header("Retry-After", strconv.Itoa(secs))
		logger.Info("rate limited", zap.String("key", k), zap.Int("retry_after", secs))

		c.Status(http.StatusTooManyRequests)
		if denied != nil {
			denied(c)
		} else {
			c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		}
		c.Abort()
	}
}
