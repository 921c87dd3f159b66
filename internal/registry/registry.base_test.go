package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"marketplace_analytics/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("users", 1)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = r.Register("users", 2)
	require.NoError(t, err)
	assert.False(t, isNew, "đăng ký lại phải là ghi đè")

	v, ok := r.Get("users")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, err = r.Register("", 3)
	assert.ErrorIs(t, err, common.ErrRequiredField)
}

func TestRegistry_MustGet(t *testing.T) {
	r := NewRegistry[string]()
	_, err := r.MustGet("listings")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, _ = r.Register("listings", "col")
	v, err := r.MustGet("listings")
	require.NoError(t, err)
	assert.Equal(t, "col", v)
}

func TestRegistry_NamesAndClearAll(t *testing.T) {
	r := NewRegistry[int]()
	_, _ = r.Register("tenders", 1)
	_, _ = r.Register("orders", 2)
	assert.Equal(t, []string{"orders", "tenders"}, r.Names())

	_, err := r.ClearAll(func(int) error { return errors.New("fail") })
	assert.Error(t, err)
	assert.Len(t, r.Names(), 2, "cleanup lỗi thì không xóa")

	count, err := r.ClearAll(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Empty(t, r.Names())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = r.Register(fmt.Sprintf("k%d", i), i)
			_, _ = r.Get("k0")
		}(i)
	}
	wg.Wait()
	assert.Len(t, r.Names(), 50)
}
