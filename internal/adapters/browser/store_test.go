package browser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutGet(t *testing.T) {
	s := NewStore()

	_, err := s.Get("missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `no screenshot named "missing"`)

	s.Put("login-page", []byte{0x89, 0x50, 0x4e, 0x47})
	png, err := s.Get("login-page")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, png)
}

func TestStoreOverwrite(t *testing.T) {
	s := NewStore()
	s.Put("page", []byte{1})
	s.Put("page", []byte{2})

	png, err := s.Get("page")
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, png)
	assert.Equal(t, []string{"page"}, s.Names())
}

func TestStoreNamesSorted(t *testing.T) {
	s := NewStore()
	s.Put("zeta", []byte{1})
	s.Put("alpha", []byte{2})
	s.Put("mid", []byte{3})

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, s.Names())
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Put("shared", []byte{0xff})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Get("shared")
			_ = s.Names()
		}()
	}
	wg.Wait()
}
