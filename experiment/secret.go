package experiment

import "sync"

// SecretValidator tracks admin secrets that have already been spent. It is
// per-process state: it starts empty, only grows, and is never reset.
type SecretValidator struct {
	mu   sync.Mutex
	seen map[uint64]struct{}
}

// NewSecretValidator creates a validator with an empty ledger.
func NewSecretValidator() *SecretValidator {
	return &SecretValidator{seen: make(map[uint64]struct{})}
}

// Validate reports whether secret is accepted. Acceptance spends the secret:
// a later call with the same value is rejected. Odd secrets are rejected
// without being recorded, so they stay rejected no matter how often they are
// retried. Callers get no distinction between "already used" and "odd".
func (v *SecretValidator) Validate(secret uint64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, used := v.seen[secret]; used {
		return false
	}
	if secret%2 == 0 {
		v.seen[secret] = struct{}{}
		return true
	}
	return false
}
