// Package geolocate implements the location provider over a device-reported
// sample feed. Devices post their position fixes and failures; the provider
// retains the latest fix per user and fans new fixes out to watchers.
package geolocate

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"yatra/internal/domain/entity"
	"yatra/internal/domain/lifecycle"
	"yatra/internal/domain/service"

	"github.com/google/uuid"
)

// Provider implements service.LocationProvider from reported samples.
type Provider struct {
	logger *slog.Logger

	mu    sync.Mutex
	users map[uuid.UUID]*userFeed
}

type userFeed struct {
	latest   *entity.LocationSample
	lastErr  *service.LocationError
	watchers map[int]*watchHandle
	nextID   int
	waiters  map[int]chan waitResult
	nextWait int
}

type waitResult struct {
	sample entity.LocationSample
	err    *service.LocationError
}

// watchHandle serializes callback delivery against cancellation. Once Cancel
// returns, no further callback can fire.
type watchHandle struct {
	mu     sync.Mutex
	fn     func(entity.LocationSample)
	done   bool
	remove func()
}

func (h *watchHandle) deliver(sample entity.LocationSample) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.done {
		return
	}
	h.fn(sample)
}

// Cancel stops callbacks. Waits out any in-flight delivery, so the
// no-callback-after-cancel guarantee holds. Safe to call more than once.
func (h *watchHandle) Cancel() {
	h.mu.Lock()
	h.done = true
	h.mu.Unlock()
	h.remove()
}

// NewProvider creates an empty location feed provider.
func NewProvider(logger *slog.Logger) *Provider {
	return &Provider{
		logger: logger,
		users:  make(map[uuid.UUID]*userFeed),
	}
}

// Report records a fresh fix for the user, clears any previous positioning
// error, wakes pending RequestOnce calls and fans out to watchers.
func (p *Provider) Report(userID uuid.UUID, sample entity.LocationSample) {
	if sample.CapturedAt.IsZero() {
		sample.CapturedAt = time.Now()
	}

	p.mu.Lock()
	feed := p.feedLocked(userID)
	feed.latest = &sample
	feed.lastErr = nil

	for id, ch := range feed.waiters {
		ch <- waitResult{sample: sample}
		delete(feed.waiters, id)
	}

	handles := make([]*watchHandle, 0, len(feed.watchers))
	for _, h := range feed.watchers {
		handles = append(handles, h)
	}
	p.mu.Unlock()

	// Deliver outside the provider lock so callbacks may call back in.
	for _, h := range handles {
		h.deliver(sample)
	}
}

// ReportError records a positioning failure for the user and fails pending
// RequestOnce calls. Watchers are not notified; failures surface as state.
func (p *Provider) ReportError(userID uuid.UUID, locErr *service.LocationError) {
	p.mu.Lock()
	feed := p.feedLocked(userID)
	feed.lastErr = locErr
	// The failure invalidates the cached fix; serving it after the error
	// would hide the failure from RequestOnce callers.
	feed.latest = nil

	for id, ch := range feed.waiters {
		ch <- waitResult{err: locErr}
		delete(feed.waiters, id)
	}
	p.mu.Unlock()

	p.logger.Warn("positioning failure reported",
		slog.String("user_id", userID.String()),
		slog.String("code", string(locErr.Code)))
}

// RequestOnce returns a sufficiently fresh fix, waiting for the next report
// when the cache is stale. Failures are returned as *service.LocationError.
func (p *Provider) RequestOnce(ctx context.Context, userID uuid.UUID, opts service.LocationOptions) (entity.LocationSample, error) {
	now := time.Now()

	p.mu.Lock()
	feed := p.feedLocked(userID)

	if feed.latest != nil && (opts.MaxCacheAge <= 0 || feed.latest.Age(now) <= opts.MaxCacheAge) {
		sample := *feed.latest
		p.mu.Unlock()
		return sample, nil
	}
	if feed.lastErr != nil {
		err := feed.lastErr
		p.mu.Unlock()
		return entity.LocationSample{}, err
	}

	ch := make(chan waitResult, 1)
	id := feed.nextWait
	feed.nextWait++
	feed.waiters[id] = ch
	p.mu.Unlock()

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = lifecycle.DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		if res.err != nil {
			return entity.LocationSample{}, res.err
		}
		return res.sample, nil
	case <-timer.C:
		p.dropWaiter(userID, id)
		return entity.LocationSample{}, &service.LocationError{
			Code:    service.LocationTimeout,
			Message: "no position fix arrived in time",
		}
	case <-ctx.Done():
		p.dropWaiter(userID, id)
		return entity.LocationSample{}, &service.LocationError{
			Code:    service.LocationPositionUnavailable,
			Message: ctx.Err().Error(),
		}
	}
}

// Watch registers fn for every new fix of the user.
func (p *Provider) Watch(userID uuid.UUID, _ service.LocationOptions, fn func(entity.LocationSample)) (service.Subscription, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	feed := p.feedLocked(userID)
	id := feed.nextID
	feed.nextID++

	h := &watchHandle{fn: fn}
	h.remove = func() {
		p.mu.Lock()
		delete(feed.watchers, id)
		p.mu.Unlock()
	}
	feed.watchers[id] = h

	return h, nil
}

// LastError returns the most recent positioning failure, or nil after a
// successful fix.
func (p *Provider) LastError(userID uuid.UUID) *service.LocationError {
	p.mu.Lock()
	defer p.mu.Unlock()

	feed, ok := p.users[userID]
	if !ok {
		return nil
	}
	return feed.lastErr
}

func (p *Provider) feedLocked(userID uuid.UUID) *userFeed {
	feed, ok := p.users[userID]
	if !ok {
		feed = &userFeed{
			watchers: make(map[int]*watchHandle),
			waiters:  make(map[int]chan waitResult),
		}
		p.users[userID] = feed
	}
	return feed
}

func (p *Provider) dropWaiter(userID uuid.UUID, id int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if feed, ok := p.users[userID]; ok {
		delete(feed.waiters, id)
	}
}
