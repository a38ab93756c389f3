package middleware

import (
	"sync"
	"time"

	"bimber/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type RateLimiterOptions struct {
	Capacity    int
	RefillEvery time.Duration
	IdleTTL     time.Duration
	// Now mặc định là time.Now
	Now func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter là token bucket theo IP client, bucket không dùng sẽ bị dọn định kỳ
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	opts     RateLimiterOptions
	now      func() time.Time
	stop     chan struct{}
	done     chan struct{}
	once     sync.Once
}

func NewRateLimiter(opts RateLimiterOptions) *RateLimiter {
	if opts.Capacity <= 0 {
		opts.Capacity = 10
	}
	if opts.RefillEvery <= 0 {
		opts.RefillEvery = 12 * time.Second
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 10 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		opts:     opts,
		now:      opts.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go rl.janitor()
	return rl
}

// Allow lấy một token của ip
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Every(rl.opts.RefillEvery), rl.opts.Capacity)}
		rl.visitors[ip] = v
	}
	now := rl.now()
	v.lastSeen = now
	rl.mu.Unlock()
	return v.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			response.TooManyRequests(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) janitor() {
	defer close(rl.done)
	ticker := time.NewTicker(rl.opts.IdleTTL / 2)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.opts.IdleTTL)
	evicted := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			evicted++
		}
	}
	return evicted
}

func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Stop dừng goroutine dọn dẹp, gọi nhiều lần vẫn an toàn
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
	<-rl.done
}
