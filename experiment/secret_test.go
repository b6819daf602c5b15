package experiment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretValidatorAcceptsEvenOnce(t *testing.T) {
	v := NewSecretValidator()

	require.True(t, v.Validate(2))
	assert.False(t, v.Validate(2), "a spent secret must stay rejected")
	assert.False(t, v.Validate(2))
}

func TestSecretValidatorRejectsOddForever(t *testing.T) {
	v := NewSecretValidator()

	for i := 0; i < 3; i++ {
		assert.False(t, v.Validate(3), "odd secrets are rejected on every attempt")
	}

	// Odd secrets are never recorded, so the even neighbor is unaffected.
	assert.True(t, v.Validate(4))
}

func TestSecretValidatorIndependentSecrets(t *testing.T) {
	v := NewSecretValidator()

	require.True(t, v.Validate(0))
	require.True(t, v.Validate(2))
	require.True(t, v.Validate(100))
	assert.False(t, v.Validate(0))
	assert.False(t, v.Validate(100))
}

func TestSecretValidatorConcurrentSpend(t *testing.T) {
	v := NewSecretValidator()

	const callers = 32
	var wg sync.WaitGroup
	accepted := make(chan uint64, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Everyone races on the same secret; exactly one caller wins.
			if v.Validate(42) {
				accepted <- 42
			}
		}()
	}
	wg.Wait()
	close(accepted)

	var wins int
	for range accepted {
		wins++
	}
	assert.Equal(t, 1, wins)
}
