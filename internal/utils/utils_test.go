package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBatchBuffer(t *testing.T) {
	b := NewBatchBuffer[int](2)
	assert.Nil(t, b.GetAndClear())

	b.Add(1)
	assert.False(t, b.Full())
	b.Add(2)
	assert.True(t, b.Full())

	assert.Equal(t, []int{1, 2}, b.GetAndClear())
	assert.Equal(t, 0, b.Size())
}

func TestBatchBufferConcurrentAdd(t *testing.T) {
	b := NewBatchBuffer[int](0)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b.Add(i)
		}(i)
	}
	wg.Wait()

	assert.Len(t, b.GetAndClear(), 50)
}

func TestInFlightTracker(t *testing.T) {
	tr := NewInFlightTracker()

	assert.True(t, tr.Track("req-1"))
	assert.False(t, tr.Track("req-1"))
	assert.True(t, tr.Track("req-2"))

	tr.Release("req-1")
	assert.True(t, tr.Track("req-1"))
}

func TestDeserializeFromJSON(t *testing.T) {
	var v struct {
		ID string `json:"id"`
	}
	assert.NoError(t, DeserializeFromJSON([]byte(`{"id":"abc"}`), &v))
	assert.Equal(t, "abc", v.ID)
	assert.Error(t, DeserializeFromJSON([]byte(`{`), &v))
}
