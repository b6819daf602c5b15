// Package experiment implements the state of a single experiment run and the
// one-time admin secret validator.
//
// A Session holds the per-user prediction lists collected while an experiment
// is active. Sessions are created on admin start and dropped on admin stop;
// at most one exists at a time, owned by the coordinator. The session guards
// its prediction map with its own mutex so that prediction traffic does not
// contend with user registration on the coordinator lock.
//
// The SecretValidator enforces the one-time secret policy: a secret is
// accepted if and only if it is even and has never been evaluated before.
// Odd secrets are never remembered and are always rejected.
package experiment
