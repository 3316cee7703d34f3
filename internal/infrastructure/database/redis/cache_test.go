package redis

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/turtacn/GeoRose/internal/infrastructure/monitoring/logging"
	pkgerrors "github.com/turtacn/GeoRose/pkg/errors"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")

type RenderCacheMockSuite struct {
	suite.Suite
	mock  redismock.ClientMock
	cache RenderCache
}

func (s *RenderCacheMockSuite) SetupTest() {
	db, mock := redismock.NewClientMock()
	s.mock = mock
	client := newClientWithRDB(db, ClientConfig{}, logging.NewNopLogger())
	s.cache = NewRenderCache(client, logging.NewNopLogger(), WithPrefix("test:"), WithTTL(time.Hour))
}

func (s *RenderCacheMockSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *RenderCacheMockSuite) TestGet_Hit() {
	s.mock.ExpectGet("test:png:k1").SetVal(string(pngBytes))

	data, err := s.cache.Get(context.Background(), "k1")
	s.NoError(err)
	s.Equal(pngBytes, data)
}

func (s *RenderCacheMockSuite) TestGet_Miss() {
	s.mock.ExpectGet("test:png:k1").RedisNil()

	_, err := s.cache.Get(context.Background(), "k1")
	s.Equal(ErrCacheMiss, err)
	s.True(pkgerrors.IsNotFound(err))
}

func (s *RenderCacheMockSuite) TestGet_Error() {
	s.mock.ExpectGet("test:png:k1").SetErr(stderrors.New("connection reset"))

	_, err := s.cache.Get(context.Background(), "k1")
	s.Error(err)
	s.True(pkgerrors.IsCode(err, pkgerrors.ErrCodeCacheError))
}

func (s *RenderCacheMockSuite) TestSet_UsesConfiguredTTL() {
	s.mock.ExpectSet("test:png:k1", pngBytes, time.Hour).SetVal("OK")

	s.NoError(s.cache.Set(context.Background(), "k1", pngBytes))
}

func (s *RenderCacheMockSuite) TestDelete() {
	s.mock.ExpectDel("test:png:k1").SetVal(1)

	s.NoError(s.cache.Delete(context.Background(), "k1"))
}

func (s *RenderCacheMockSuite) TestGetOrRender_Hit() {
	s.mock.ExpectGet("test:png:k1").SetVal(string(pngBytes))

	data, hit, err := s.cache.GetOrRender(context.Background(), "k1", func(context.Context) ([]byte, error) {
		s.Fail("render must not run on a hit")
		return nil, nil
	})
	s.NoError(err)
	s.True(hit)
	s.Equal(pngBytes, data)
}

func (s *RenderCacheMockSuite) TestGetOrRender_ReadErrorFallsBack() {
	s.mock.ExpectGet("test:png:k1").SetErr(stderrors.New("timeout"))
	s.mock.ExpectSet("test:png:k1", pngBytes, time.Hour).SetVal("OK")

	data, hit, err := s.cache.GetOrRender(context.Background(), "k1", func(context.Context) ([]byte, error) {
		return pngBytes, nil
	})
	s.NoError(err)
	s.False(hit)
	s.Equal(pngBytes, data)
}

func (s *RenderCacheMockSuite) TestGetOrRender_RenderError() {
	s.mock.ExpectGet("test:png:k1").RedisNil()

	_, _, err := s.cache.GetOrRender(context.Background(), "k1", func(context.Context) ([]byte, error) {
		return nil, stderrors.New("render failed")
	})
	s.EqualError(err, "render failed")
}

func TestRenderCacheMockSuite(t *testing.T) {
	suite.Run(t, new(RenderCacheMockSuite))
}

func newMiniredisCache(t *testing.T) (*miniredis.Miniredis, RenderCache) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(ClientConfig{Addr: mr.Addr()}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRenderCache(client, nil, WithTTL(10*time.Minute))
}

func TestGetOrRender_StoresOnMiss(t *testing.T) {
	mr, cache := newMiniredisCache(t)
	ctx := context.Background()

	var calls int32
	render := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		return pngBytes, nil
	}

	data, hit, err := cache.GetOrRender(ctx, "abc", render)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, pngBytes, data)

	stored, err := mr.Get("georose:png:abc")
	require.NoError(t, err)
	assert.Equal(t, string(pngBytes), stored)
	assert.Equal(t, 10*time.Minute, mr.TTL("georose:png:abc"))

	data, hit, err = cache.GetOrRender(ctx, "abc", render)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, pngBytes, data)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrRender_ConcurrentMissesRenderOnce(t *testing.T) {
	_, cache := newMiniredisCache(t)

	var calls int32
	render := func(context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		time.Sleep(200 * time.Millisecond)
		return pngBytes, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, _, err := cache.GetOrRender(context.Background(), "same", render)
			assert.NoError(t, err)
			assert.Equal(t, pngBytes, data)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGetOrRender_StoresAfterCallerCancels(t *testing.T) {
	mr, cache := newMiniredisCache(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	data, hit, err := cache.GetOrRender(ctx, "cancelled", func(context.Context) ([]byte, error) {
		cancel()
		return pngBytes, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, pngBytes, data)

	stored, err := mr.Get("georose:png:cancelled")
	require.NoError(t, err)
	assert.Equal(t, string(pngBytes), stored)
}

func TestGetOrRender_RedisDown(t *testing.T) {
	mr, cache := newMiniredisCache(t)
	mr.Close()

	data, hit, err := cache.GetOrRender(context.Background(), "k", func(context.Context) ([]byte, error) {
		return pngBytes, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, pngBytes, data)
}

func TestExpiry_Jitter(t *testing.T) {
	c := &redisRenderCache{ttl: time.Hour, ttlJitter: 0.1}
	for i := 0; i < 50; i++ {
		d := c.expiry()
		assert.GreaterOrEqual(t, d, 54*time.Minute)
		assert.LessOrEqual(t, d, 66*time.Minute)
	}
	c.ttlJitter = 0
	assert.Equal(t, time.Hour, c.expiry())
}

//Personal.AI order the ending
