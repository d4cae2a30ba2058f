package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func TestInMemoryRateLimiter_Burst(t *testing.T) {
	// 1 token per minute refill, burst of 3
	limiter := NewInMemoryRateLimiter(rate.Every(time.Minute), 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "key")
		if err != nil {
			t.Fatalf("Allow failed: %v", err)
		}
		if !allowed {
			t.Errorf("Expected request %d within burst to be allowed", i+1)
		}
	}

	allowed, err := limiter.Allow(ctx, "key")
	if err != nil {
		t.Fatalf("Allow failed: %v", err)
	}
	if allowed {
		t.Error("Expected request beyond burst to be blocked")
	}
}

func TestInMemoryRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewInMemoryRateLimiter(rate.Every(time.Minute), 1)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "alice"); !allowed {
		t.Error("Expected alice's first request to be allowed")
	}
	if allowed, _ := limiter.Allow(ctx, "alice"); allowed {
		t.Error("Expected alice's second request to be blocked")
	}
	if allowed, _ := limiter.Allow(ctx, "bob"); !allowed {
		t.Error("Expected bob's bucket to be untouched by alice")
	}
}

func TestRateLimit_Blocks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewInMemoryRateLimiter(rate.Every(time.Minute), 2)
	router := gin.New()
	router.Use(RateLimit(limiter))

	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Request %d: expected status 200, got %d", i+1, w.Code)
		}
	}

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header on a blocked request")
	}
}

func TestRateLimit_KeyedByPlayer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewInMemoryRateLimiter(rate.Every(time.Minute), 1)
	router := gin.New()

	// A session middleware stand-in: the player comes from a header so
	// each request can impersonate a different player.
	router.Use(func(c *gin.Context) {
		if playerID := c.GetHeader("X-Test-Player"); playerID != "" {
			c.Set(PlayerIDKey, playerID)
		}
		c.Next()
	})
	router.Use(RateLimit(limiter))

	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	send := func(playerID string) int {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("X-Test-Player", playerID)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	if code := send("player-1"); code != http.StatusOK {
		t.Errorf("Expected player-1's first request to pass, got %d", code)
	}
	if code := send("player-1"); code != http.StatusTooManyRequests {
		t.Errorf("Expected player-1's second request to be blocked, got %d", code)
	}
	if code := send("player-2"); code != http.StatusOK {
		t.Errorf("Expected player-2 to have a separate budget, got %d", code)
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(ctx context.Context, key string) (bool, error) {
	return false, context.DeadlineExceeded
}

func TestRateLimit_LimiterFailureAllows(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RateLimit(failingLimiter{}))

	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// A broken limiter must not take the API down.
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 when the limiter errors, got %d", w.Code)
	}
}
