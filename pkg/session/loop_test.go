package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopRunsActionsInOrder(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	var got []int
	for i := 0; i < 50; i++ {
		i := i
		require.True(t, loop.Post(func() { got = append(got, i) }))
	}
	require.NoError(t, loop.Do(func() {}))

	require.Len(t, got, 50)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestLoopSerializesConcurrentCallers(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = loop.Do(func() { counter++ })
			}
		}()
	}
	wg.Wait()

	var final int
	require.NoError(t, loop.Do(func() { final = counter }))
	assert.Equal(t, 2000, final)
}

func TestLoopPostFromInsideAction(t *testing.T) {
	loop := NewLoop()
	defer loop.Close()

	var order []string
	done := make(chan struct{})
	require.NoError(t, loop.Do(func() {
		order = append(order, "outer")
		loop.Post(func() {
			order = append(order, "inner")
			close(done)
		})
	}))
	<-done

	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestLoopClose(t *testing.T) {
	loop := NewLoop()
	loop.Close()
	loop.Close()

	assert.False(t, loop.Post(func() {}))
	assert.ErrorIs(t, loop.Do(func() {}), ErrLoopClosed)
}
