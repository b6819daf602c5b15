package coordinator

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/urzavoge/zuev-1c/metrics"
)

// Notifier delivers best-effort plain-text messages to a user's callback
// endpoint. Implementations must swallow delivery failures: the triggering
// operation has already succeeded by the time a notification goes out.
type Notifier interface {
	Notify(ctx context.Context, address, message string)
}

// HTTPNotifier posts notifications to http://<address>/notify using a
// short-lived client with a hard timeout, so a dead user endpoint can never
// wedge a background goroutine.
type HTTPNotifier struct {
	client *http.Client
	log    *slog.Logger
}

const defaultNotifyTimeout = 5 * time.Second

// NewHTTPNotifier creates a notifier with the given per-request timeout.
// A non-positive timeout falls back to the default.
func NewHTTPNotifier(timeout time.Duration, log *slog.Logger) *HTTPNotifier {
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &HTTPNotifier{
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Notify posts message to the user's /notify endpoint. Errors are logged and
// dropped.
func (n *HTTPNotifier) Notify(ctx context.Context, address, message string) {
	url := "http://" + address + "/notify"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(message))
	if err != nil {
		metrics.NotificationsFailed.Inc()
		n.log.Debug("building notify request failed", "address", address, "err", err)
		return
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := n.client.Do(req)
	if err != nil {
		metrics.NotificationsFailed.Inc()
		n.log.Debug("notify failed", "address", address, "err", err)
		return
	}
	resp.Body.Close()
	metrics.NotificationsSent.Inc()
}
