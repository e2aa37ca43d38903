package outbox

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutbox_FIFO(t *testing.T) {
	o := New[[]byte](3)
	assert.True(t, o.Offer([]byte("a")))
	assert.True(t, o.Offer([]byte("b")))
	assert.Equal(t, 2, o.Len())

	assert.Equal(t, "a", string(<-o.C()))
	assert.Equal(t, "b", string(<-o.C()))
}

func TestOutbox_DropOldest(t *testing.T) {
	o := New[[]byte](2)
	o.Offer([]byte("1"))
	o.Offer([]byte("2"))
	assert.False(t, o.Offer([]byte("3")))

	assert.Equal(t, int64(1), o.Dropped())
	assert.Equal(t, "2", string(<-o.C()))
	assert.Equal(t, "3", string(<-o.C()))
}

func TestOutbox_MinimumSize(t *testing.T) {
	o := New[[]byte](0)
	o.Offer([]byte("x"))
	o.Offer([]byte("y"))
	assert.Equal(t, 1, o.Len())
	assert.Equal(t, "y", string(<-o.C()))
}

func TestOutbox_ConcurrentNeverBlocks(t *testing.T) {
	o := New[[]byte](8)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				o.Offer([]byte{byte(j)})
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8, o.Len())
	assert.Equal(t, int64(8000-8), o.Dropped())
}
