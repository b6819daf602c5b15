// Package coordinator mediates every operation on the experiment server's
// shared state: the durable user list, the zero-or-one active session, the
// historical prediction archive and the one-time secret ledger.
//
// # Locking
//
// The coordinator's mutex guards the user list, the session pointer and the
// historical archive. Any operation that checks session activity and then
// mutates session contents holds this lock for the whole check-then-act
// sequence, so a session can never be stopped out from under a submission.
// The session keeps its own lock for the prediction map (see the experiment
// package), so readers of session contents do not contend with registration.
//
// # Notifications
//
// StartSession and AnswerUser emit best-effort plain-text notifications to
// the users' registered callback endpoints. Delivery runs in background
// goroutines outside the coordinator lock; failures are logged at debug level
// and never surfaced to the triggering admin call.
package coordinator
