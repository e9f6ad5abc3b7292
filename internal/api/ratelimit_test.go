package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(mw gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func hit(r *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_Memory(t *testing.T) {
	r := newLimitedRouter(RateLimitMiddleware(0.0001, 2))

	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)

	w := hit(r, "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "1", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"error":"Rate limit exceeded"}`, w.Body.String())

	// buckets are per client
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.2:1234").Code)
}

func TestRateLimitMiddleware_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	r := newLimitedRouter(RedisRateLimitMiddleware(client, 0, 1, time.Hour))

	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)
	w := hit(r, "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "3600", w.Header().Get("Retry-After"))

	require.Equal(t, http.StatusOK, hit(r, "10.0.0.2:1234").Code)

	keys := mr.Keys()
	require.Len(t, keys, 2)
	ttl := mr.TTL(keys[0])
	require.True(t, ttl > 0 && ttl <= time.Hour+time.Second, "ttl %v", ttl)
}

func TestRateLimitMiddleware_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	r := newLimitedRouter(RedisRateLimitMiddleware(client, 1, 1, time.Second))
	require.Equal(t, http.StatusInternalServerError, hit(r, "10.0.0.1:1234").Code)
}

func TestRateLimitMiddleware_NilRedisFallsBackToMemory(t *testing.T) {
	r := newLimitedRouter(RedisRateLimitMiddleware(nil, 0.0001, 1, time.Second))
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, hit(r, "10.0.0.1:1234").Code)
}

func TestRateLimitMiddleware_RedisCounterAlwaysExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	// a counter left behind without a TTL
	key := fmt.Sprintf("rl:ip:10.0.0.1:%d", time.Now().Unix()/3600)
	require.NoError(t, mr.Set(key, "3"))
	require.Zero(t, mr.TTL(key))

	r := newLimitedRouter(RedisRateLimitMiddleware(client, 0, 10, time.Hour))
	require.Equal(t, http.StatusOK, hit(r, "10.0.0.1:1234").Code)

	got, err := mr.Get(key)
	require.NoError(t, err)
	require.Equal(t, "4", got)
	require.True(t, mr.TTL(key) > 0, "ttl %v", mr.TTL(key))
}

func TestClientKey_UsesClientIP(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/ping", nil)
	c.Request.RemoteAddr = "10.0.0.9:4321"
	c.Set(ContextUserIDKey, "someone")

	require.Equal(t, "ip:10.0.0.9", clientKey(c))
}
