// Package restarter notifies the game server about finished rebuilds.
package restarter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.trai.ch/fxdev/internal/core/domain"
	"go.trai.ch/fxdev/internal/core/ports"
)

var _ ports.Restarter = (*Notifier)(nil)

// Notifier debounces rebuild completions into restart requests against the
// game server's HTTP endpoint. One notifier serves one watch session.
type Notifier struct {
	logger   ports.Logger
	client   *http.Client
	url      string
	resource string
	timeout  time.Duration
	debounce time.Duration

	mu           sync.Mutex
	lastNotified time.Time
}

// NewNotifier creates a notifier for the given resource.
func NewNotifier(logger ports.Logger, settings domain.RestartSettings, resource string) *Notifier {
	return &Notifier{
		logger:   logger,
		client:   &http.Client{},
		url:      settings.URL,
		resource: resource,
		timeout:  settings.Timeout,
		debounce: settings.Debounce,
	}
}

// BuildCompleted reports a finished rebuild. Failed rebuilds never notify
// and never touch the debounce window, so the next successful rebuild fires
// immediately. The request runs in the background, BuildCompleted never
// blocks.
func (n *Notifier) BuildCompleted(failed bool) {
	if failed {
		return
	}

	n.mu.Lock()
	now := time.Now()
	if now.Sub(n.lastNotified) < n.debounce {
		n.mu.Unlock()
		return
	}
	n.lastNotified = now
	n.mu.Unlock()

	go n.send()
}

// send fires a single restart request. Nothing here can block or fail a
// rebuild, every outcome ends in a log line.
func (n *Notifier) send() {
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	requestURL, err := restartURL(n.url, n.resource)
	if err != nil {
		n.logger.Warn(fmt.Sprintf("invalid restart URL %s: %v", n.url, err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		n.logger.Warn(fmt.Sprintf("failed to build restart request: %v", err))
		return
	}

	resp, err := n.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			n.logger.Warn(fmt.Sprintf("restart request timed out after %s", n.timeout))
			return
		}
		n.logger.Warn(fmt.Sprintf("restart request failed: %v", err))
		return
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		n.logger.Warn(fmt.Sprintf("restart request for %s returned status %d", n.resource, resp.StatusCode))
		return
	}

	n.logger.Info(fmt.Sprintf("requested restart of resource %s", n.resource))
}

// restartURL appends the resource query parameter to the configured endpoint.
func restartURL(endpoint, resource string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("resource", resource)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
