package coordinator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/urzavoge/zuev-1c/experiment"
	"github.com/urzavoge/zuev-1c/metrics"
)

// startMessage is sent to every registered user when a session begins.
const startMessage = "Experiment is started!"

// Config carries the coordinator's dependencies. Zero fields get working
// defaults.
type Config struct {
	// Notifier delivers outbound user notifications. Defaults to an
	// HTTPNotifier with the default timeout.
	Notifier Notifier

	// NotifyTimeout configures the default notifier; ignored when Notifier
	// is set explicitly.
	NotifyTimeout time.Duration

	// Log is the structured logger for coordinator operations.
	Log *slog.Logger
}

// Coordinator owns the experiment server's shared state. It holds zero or
// one active session: the session pointer doubles as the activity flag and
// is only touched under the coordinator lock.
type Coordinator struct {
	log      *slog.Logger
	notifier Notifier
	secrets  *experiment.SecretValidator

	mu      sync.Mutex
	users   []User
	session *experiment.Session
	history map[int][]int
}

// New creates a coordinator with no users, no active session and an empty
// secret ledger.
func New(cfg *Config) *Coordinator {
	if cfg == nil {
		cfg = &Config{}
	}
	log := cfg.Log
	if log == nil {
		log = slog.Default()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = NewHTTPNotifier(cfg.NotifyTimeout, log)
	}

	return &Coordinator{
		log:      log,
		notifier: notifier,
		secrets:  experiment.NewSecretValidator(),
		history:  make(map[int][]int),
	}
}

// RegisterUser appends a user with the given callback address and returns
// the assigned id. Registration always succeeds; addresses are stored as
// given. Users registered mid-session join only the next session.
func (c *Coordinator) RegisterUser(address string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := len(c.users)
	c.users = append(c.users, User{ID: id, Address: address})

	metrics.UsersRegistered.Inc()
	c.log.Info("user registered", "id", id, "address", address)
	return id
}

// UserCount returns the number of users registered so far.
func (c *Coordinator) UserCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.users)
}

// SessionActive reports whether an experiment is currently running.
func (c *Coordinator) SessionActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// SubmitPrediction appends value to id's prediction list in the active
// session. Rejected when no session is active or id is not registered in it.
func (c *Coordinator) SubmitPrediction(id, value int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ErrNoActiveSession
	}
	if !c.session.IsRegistered(id) {
		return ErrUnknownUser
	}
	c.session.AddPrediction(id, value)

	metrics.PredictionsStored.Inc()
	return nil
}

// GetPredictions returns the textual rendering of id's predictions collected
// so far this session. Rejected under the same conditions as submission.
func (c *Coordinator) GetPredictions(id int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return "", ErrNoActiveSession
	}
	if !c.session.IsRegistered(id) {
		return "", ErrUnknownUser
	}
	return renderPredictions(c.session.Predictions(id)), nil
}

// StartSession validates the secret, creates a session and registers every
// currently-known user into it. Each user is notified in the background.
// The lifecycle guard runs before the secret check, so starting while a
// session is active does not spend the secret.
func (c *Coordinator) StartSession(secret uint64) error {
	c.mu.Lock()
	if c.session != nil {
		c.mu.Unlock()
		return ErrSessionActive
	}
	if !c.secrets.Validate(secret) {
		c.mu.Unlock()
		metrics.SecretsRejected.Inc()
		return ErrInvalidSecret
	}

	sess := experiment.NewSession()
	addrs := make([]string, 0, len(c.users))
	for _, u := range c.users {
		sess.RegisterUser(u.ID)
		addrs = append(addrs, u.Address)
	}
	c.session = sess
	c.mu.Unlock()

	metrics.SessionsStarted.Inc()
	c.log.Info("session started", "users", len(addrs))

	for _, addr := range addrs {
		go c.notifier.Notify(context.Background(), addr, startMessage)
	}
	return nil
}

// StopSession validates the secret, flushes the session's predictions into
// the historical archive and drops the session.
func (c *Coordinator) StopSession(secret uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return ErrNoActiveSession
	}
	if !c.secrets.Validate(secret) {
		metrics.SecretsRejected.Inc()
		return ErrInvalidSecret
	}

	c.session.FlushInto(c.history)
	c.session = nil

	metrics.SessionsStopped.Inc()
	c.log.Info("session stopped")
	return nil
}

// AnswerUser sends text to the given user's callback endpoint. Rejected when
// no session is active, the secret is rejected, or id is out of range.
// Delivery is best-effort and runs in the background.
func (c *Coordinator) AnswerUser(secret uint64, id int, text string) error {
	c.mu.Lock()
	if c.session == nil {
		c.mu.Unlock()
		return ErrNoActiveSession
	}
	if !c.secrets.Validate(secret) {
		c.mu.Unlock()
		metrics.SecretsRejected.Inc()
		return ErrInvalidSecret
	}
	if id < 0 || id >= len(c.users) {
		c.mu.Unlock()
		return ErrUnknownUser
	}
	addr := c.users[id].Address
	c.mu.Unlock()

	go c.notifier.Notify(context.Background(), addr, text)
	return nil
}

// ListWaiters returns, for every user registered in the active session, the
// textual rendering of their predictions.
func (c *Coordinator) ListWaiters(secret uint64) (map[int]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil, ErrNoActiveSession
	}
	if !c.secrets.Validate(secret) {
		metrics.SecretsRejected.Inc()
		return nil, ErrInvalidSecret
	}
	return renderAll(c.session.Snapshot()), nil
}

// GetStat returns the active session's predictions alongside the historical
// archive. With no session active the current map is empty, so the archive
// stays inspectable between runs.
func (c *Coordinator) GetStat(secret uint64) (Stats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.secrets.Validate(secret) {
		metrics.SecretsRejected.Inc()
		return Stats{}, ErrInvalidSecret
	}

	st := Stats{
		Current:    map[int]string{},
		Historical: renderAll(c.history),
	}
	if c.session != nil {
		st.Current = renderAll(c.session.Snapshot())
	}
	return st, nil
}
