package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ghaggin/portal/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(config.Redis{Addr: mr.Addr()})
	t.Cleanup(func() { store.Close() })

	require.Nil(t, store.Ping(context.Background()))
	return store, mr
}

func TestRedisStore_commitFindDelete(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	store, mr := testRedisStore(t)

	require.Nil(store.Commit("abc", []byte("payload"), time.Now().Add(time.Hour)))

	b, found, err := store.Find("abc")
	require.Nil(err)
	assert.True(found)
	assert.Equal([]byte("payload"), b)
	assert.True(mr.Exists(redisKeyPrefix + "abc"))

	require.Nil(store.Delete("abc"))
	_, found, err = store.Find("abc")
	require.Nil(err)
	assert.False(found)
}

func TestRedisStore_missing(t *testing.T) {
	store, _ := testRedisStore(t)

	b, found, err := store.FindCtx(context.Background(), "nope")
	assert.Nil(t, err)
	assert.False(t, found)
	assert.Nil(t, b)
}

func TestRedisStore_expiry(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	store, mr := testRedisStore(t)

	require.Nil(store.CommitCtx(context.Background(), "abc", []byte("payload"), time.Now().Add(time.Minute)))

	ttl := mr.TTL(redisKeyPrefix + "abc")
	assert.True(ttl > 55*time.Second && ttl <= time.Minute, "ttl %s", ttl)

	mr.FastForward(2 * time.Minute)

	_, found, err := store.Find("abc")
	require.Nil(err)
	assert.False(found)
}

func TestRedisStore_sessionManager(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	store, mr := testRedisStore(t)

	sm := testSessionManager()
	sm.impl.Store = store

	login := sm.Wrap(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		require.Nil(sm.SetAuthenticated(r.Context(), "opaque-token", "alice"))
	}))

	rr := httptest.NewRecorder()
	login.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", nil))

	cookies := rr.Result().Cookies()
	require.Len(cookies, 1)

	keys := mr.Keys()
	require.Len(keys, 1)
	assert.True(strings.HasPrefix(keys[0], redisKeyPrefix))

	var token string
	read := sm.Wrap(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		s, err := sm.Get(r.Context())
		require.Nil(err)
		token = s.Token
	}))

	req := httptest.NewRequest(http.MethodGet, "/main", nil)
	req.AddCookie(cookies[0])
	read.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal("opaque-token", token)
}
