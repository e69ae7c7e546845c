package state

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type draft struct {
	Step string
	N    int
}

func TestMemorySetOverwrites(t *testing.T) {
	m := NewMemory[draft]()
	m.Set(1, draft{Step: "a", N: 1})
	m.Set(1, draft{Step: "b", N: 2})

	got, ok := m.Get(1)
	require.True(t, ok)
	assert.Equal(t, draft{Step: "b", N: 2}, got)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryTakeRemoves(t *testing.T) {
	m := NewMemory[draft]()
	m.Set(7, draft{Step: "x"})

	got, ok := m.Take(7)
	require.True(t, ok)
	assert.Equal(t, "x", got.Step)
	assert.False(t, m.InProgress(7))

	_, ok = m.Take(7)
	assert.False(t, ok)
}

func TestMemoryClearIsIdempotent(t *testing.T) {
	m := NewMemory[draft]()
	m.Clear(3)
	m.Set(3, draft{})
	m.Clear(3)
	m.Clear(3)
	assert.False(t, m.InProgress(3))
	assert.Zero(t, m.Len())
}

func TestMemoryClearIfMatchesValue(t *testing.T) {
	m := NewMemory[draft]()
	m.Set(5, draft{Step: "new"})

	assert.False(t, m.ClearIf(5, func(d draft) bool { return d.Step == "old" }))
	assert.True(t, m.InProgress(5))
	assert.True(t, m.ClearIf(5, func(d draft) bool { return d.Step == "new" }))
	assert.False(t, m.InProgress(5))
	assert.False(t, m.ClearIf(5, func(draft) bool { return true }))
}

func TestMemoryTakeHasSingleWinner(t *testing.T) {
	m := NewMemory[draft]()
	m.Set(42, draft{Step: "rename"})

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := m.Take(42); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners.Load())
}
