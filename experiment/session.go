package experiment

import "sync"

// Session is the mutable state of one active experiment run. A user id is
// registered in the session iff it has an entry in the prediction map, even
// while that entry is still empty: registration and having submitted
// predictions are distinct states.
//
// All methods are safe for concurrent use. The session's lock covers only the
// prediction map; session lifetime (creation, flush, teardown) is driven by
// the coordinator under its own lock.
type Session struct {
	mu          sync.Mutex
	predictions map[int][]int
}

// NewSession creates an empty session with no registered users.
func NewSession() *Session {
	return &Session{predictions: make(map[int][]int)}
}

// RegisterUser adds id to the session with an empty prediction list.
// Registering an already-registered id resets its list.
func (s *Session) RegisterUser(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.predictions[id] = nil
}

// IsRegistered reports whether id has an entry in this session.
func (s *Session) IsRegistered(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.predictions[id]
	return ok
}

// AddPrediction appends value to id's prediction list. Callers are expected
// to check IsRegistered first; this is the established calling convention and
// is not enforced here.
func (s *Session) AddPrediction(id, value int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.predictions[id] = append(s.predictions[id], value)
}

// Predictions returns a copy of id's prediction list in submission order.
func (s *Session) Predictions(id int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	preds := s.predictions[id]
	out := make([]int, len(preds))
	copy(out, preds)
	return out
}

// FlushInto appends every prediction list into dst, concatenating with
// whatever dst already holds for each id. Used on session stop to fold the
// run into the historical archive.
func (s *Session) FlushInto(dst map[int][]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, preds := range s.predictions {
		dst[id] = append(dst[id], preds...)
	}
}

// Snapshot returns a deep copy of the prediction map.
func (s *Session) Snapshot() map[int][]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int][]int, len(s.predictions))
	for id, preds := range s.predictions {
		cp := make([]int, len(preds))
		copy(cp, preds)
		out[id] = cp
	}
	return out
}
