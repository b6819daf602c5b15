package experiment

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRegistration(t *testing.T) {
	s := NewSession()

	assert.False(t, s.IsRegistered(0))

	s.RegisterUser(0)
	assert.True(t, s.IsRegistered(0))
	assert.Empty(t, s.Predictions(0), "a fresh registration has no predictions")
	assert.False(t, s.IsRegistered(1))
}

func TestSessionAddPrediction(t *testing.T) {
	s := NewSession()
	s.RegisterUser(7)

	s.AddPrediction(7, 3)
	s.AddPrediction(7, 1)
	s.AddPrediction(7, 4)

	assert.Equal(t, []int{3, 1, 4}, s.Predictions(7))
}

func TestSessionReRegisterClearsPredictions(t *testing.T) {
	s := NewSession()
	s.RegisterUser(0)
	s.AddPrediction(0, 9)

	s.RegisterUser(0)
	assert.True(t, s.IsRegistered(0))
	assert.Empty(t, s.Predictions(0))
}

func TestSessionPredictionsReturnsCopy(t *testing.T) {
	s := NewSession()
	s.RegisterUser(0)
	s.AddPrediction(0, 1)

	preds := s.Predictions(0)
	preds[0] = 99

	assert.Equal(t, []int{1}, s.Predictions(0))
}

func TestSessionFlushIntoConcatenates(t *testing.T) {
	history := make(map[int][]int)

	first := NewSession()
	first.RegisterUser(0)
	first.RegisterUser(1)
	first.AddPrediction(0, 5)
	first.AddPrediction(1, 7)
	first.FlushInto(history)

	require.Equal(t, []int{5}, history[0])
	require.Equal(t, []int{7}, history[1])

	// A later session's data is appended behind the earlier run's.
	second := NewSession()
	second.RegisterUser(0)
	second.AddPrediction(0, 8)
	second.FlushInto(history)

	assert.Equal(t, []int{5, 8}, history[0])
	assert.Equal(t, []int{7}, history[1])
}

func TestSessionSnapshotIsIndependent(t *testing.T) {
	s := NewSession()
	s.RegisterUser(0)
	s.AddPrediction(0, 1)

	snap := s.Snapshot()
	snap[0][0] = 42
	snap[5] = []int{6}

	assert.Equal(t, []int{1}, s.Predictions(0))
	assert.False(t, s.IsRegistered(5))
}

func TestSessionConcurrentAppends(t *testing.T) {
	s := NewSession()
	s.RegisterUser(0)

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			s.AddPrediction(0, v)
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Predictions(0), n)
}
