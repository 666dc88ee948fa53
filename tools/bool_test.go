package tools

import (
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
)

func TestNewAtomicBool(t *testing.T) {
	ab := NewAtomicBool(false)
	assert.Falsef(t, ab.Value(), "expect ab.Value to be initialized to false")

	assert.Falsef(t, ab.ResetIfTrue(), "expect ab.ResetIfTrue to return false")
	assert.Truef(t, ab.SetIfFalse(), "expect ab.SetIfFalse to return true")

	assert.Truef(t, ab.Value(), "expect ab.Value to be true")
	assert.Equalf(t, "true", ab.String(), "expect string form to be true")

	assert.Falsef(t, ab.SetIfFalse(), "expect ab.SetIfFalse to return false")
	assert.Truef(t, ab.ResetIfTrue(), "expect ab.ResetIfTrue to return true")

	assert.Falsef(t, ab.Value(), "expect ab.Value to be false")
}

func TestNewAtomicBool_True(t *testing.T) {
	ab := NewAtomicBool(true)
	assert.Truef(t, ab.Value(), "expect ab.Value to be initialized to true")
	assert.Falsef(t, ab.SetIfFalse(), "expect ab.SetIfFalse to return false")
}

func TestAtomicBool_SingleWinner(t *testing.T) {
	ab := NewAtomicBool(false)
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ab.SetIfFalse() {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equalf(t, 1, winners, "expect exactly one go-routine to flip the flag")
}
