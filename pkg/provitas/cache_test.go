package provitas

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"indash/entities"
	"indash/pkg/query/querytest"
	"indash/pkg/query/repository"
)

func TestCacheMemoizesPerDistrict(t *testing.T) {
	fake := querytest.New().
		On("ID_KABU = '3201'", repository.Row{"PADI": 5.8, "JAGUNG": "4.9", "KEDELAI": 1.6})
	c := NewCache(fake, zap.NewNop(), nil)

	p := c.Get(context.Background(), "3201012001")
	require.NotNil(t, p)
	assert.Equal(t, entities.CropProductivity{Rice: 5.8, Corn: 4.9, Soybean: 1.6}, *p)

	p = c.Get(context.Background(), "320101")
	require.NotNil(t, p)
	assert.Equal(t, 5.8, p.Rice)
	assert.Equal(t, 1, fake.Count("provitas_kab"))
	assert.Equal(t, 1, c.Len())
}

func TestCacheAboveDistrictLevel(t *testing.T) {
	fake := querytest.New()
	c := NewCache(fake, zap.NewNop(), nil)
	assert.Nil(t, c.Get(context.Background(), "32"))
	assert.Nil(t, c.Get(context.Background(), "1"))
	assert.Empty(t, fake.Calls())
}

func TestCacheDoesNotStoreFailures(t *testing.T) {
	fake := querytest.New().Fail("provitas_kab", errors.New("connection reset"))
	c := NewCache(fake, zap.NewNop(), nil)

	assert.Nil(t, c.Get(context.Background(), "3201"))
	assert.Nil(t, c.Get(context.Background(), "3201"))
	assert.Equal(t, 2, fake.Count("provitas_kab"))
	assert.Zero(t, c.Len())
}

func TestCacheNotFound(t *testing.T) {
	fake := querytest.New()
	c := NewCache(fake, zap.NewNop(), nil)
	assert.Nil(t, c.Get(context.Background(), "9999"))
	assert.Zero(t, c.Len())
}

func TestCacheConcurrentReaders(t *testing.T) {
	fake := querytest.New().On("ID_KABU = '3201'", repository.Row{"PADI": 6.0})
	c := NewCache(fake, zap.NewNop(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := c.Get(context.Background(), "3201")
			if assert.NotNil(t, p) {
				assert.Equal(t, 6.0, p.Rice)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, c.Len())
	assert.LessOrEqual(t, fake.Count("provitas_kab"), 32)
}

func TestCacheSharedLookupSurvivesCancelledCaller(t *testing.T) {
	fake := querytest.New()
	release := fake.Block("provitas_kab", repository.Row{"PADI": 5.8, "JAGUNG": 4.9, "KEDELAI": 1.6})
	c := NewCache(fake, zap.NewNop(), nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	first := make(chan *entities.CropProductivity, 1)
	go func() { first <- c.Get(ctxA, "3201012001") }()
	require.Eventually(t, func() bool { return fake.Count("provitas_kab") == 1 }, time.Second, time.Millisecond)

	second := make(chan *entities.CropProductivity, 1)
	go func() { second <- c.Get(context.Background(), "320101") }()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	select {
	case p := <-first:
		assert.Nil(t, p)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}

	release()
	select {
	case p := <-second:
		require.NotNil(t, p)
		assert.Equal(t, 5.8, p.Rice)
	case <-time.After(time.Second):
		t.Fatal("second caller did not return")
	}
	assert.Equal(t, 1, fake.Count("provitas_kab"))
	assert.Equal(t, 1, c.Len())
}
