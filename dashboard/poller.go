// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/election-dashboard/models"
)

var (
	ErrAlreadyRunning  = errors.New("poller already running")
	ErrInvalidInterval = errors.New("poll interval must be positive")
)

// DefaultAuditLimit is how many audit entries are kept when none is configured
const DefaultAuditLimit = 20

// Source is the remote collaborator that produces election data.
// Implementations must be safe for concurrent use.
type Source interface {
	Tallies(ctx context.Context, filter models.RegionFilter) ([]models.TallyRecord, error)
	AuditLog(ctx context.Context) ([]models.AuditEntry, error)
	RegionResults(ctx context.Context) ([]models.RegionResult, error)
}

// Poller keeps an up-to-date ViewState by fetching from a Source on a
// fixed interval and whenever the region filter changes.
//
// Every started fetch cycle takes a new cycle number. A completed
// sub-fetch is applied only if its cycle is still the latest one, so a
// slow response from a superseded cycle, or one that lands after Stop,
// never overwrites newer state.
type Poller struct {
	src        Source
	auditLimit int
	timeout    time.Duration
	now        func() time.Time

	mu       sync.Mutex
	state    models.ViewState
	version  uint64
	cycle    uint64
	filter   models.RegionFilter
	running  bool
	stopTick chan struct{}
	tickDone chan struct{}
	subs     []*subscriber

	// latest cycle still fetching, 0 when none
	busyCycle  uint64
	busyFilter models.RegionFilter

	notifyMu  sync.Mutex
	delivered uint64

	inflight sync.WaitGroup
}

// NewPoller creates a poller reading from src. auditLimit <= 0 uses
// DefaultAuditLimit; timeout <= 0 disables the per-request deadline.
func NewPoller(src Source, auditLimit int, timeout time.Duration) *Poller {
	if auditLimit <= 0 {
		auditLimit = DefaultAuditLimit
	}
	return &Poller{
		src:        src,
		auditLimit: auditLimit,
		timeout:    timeout,
		now:        time.Now,
		filter:     models.RegionFilter(models.FilterAll),
		state: models.ViewState{
			Tallies:       []models.TallyRecord{},
			AuditEntries:  []models.AuditEntry{},
			RegionResults: []models.RegionResult{},
			RegionFilter:  models.RegionFilter(models.FilterAll),
		},
	}
}

// Subscribe registers fn to receive new ViewState values in publication
// order. fn runs on a delivery goroutine owned by the subscription, never
// while the poller holds a lock, so it may call back into the Poller
// (including Stop). If fn falls behind, intermediate values are skipped
// and only the latest is delivered.
func (p *Poller) Subscribe(fn func(models.ViewState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, &subscriber{fn: fn})
}

// Snapshot returns the current ViewState
func (p *Poller) Snapshot() models.ViewState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Filter returns the region filter used by the next cycle
func (p *Poller) Filter() models.RegionFilter {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// Running reports whether the poll loop is active
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Start fetches immediately and then once per interval until Stop is called
func (p *Poller) Start(filter models.RegionFilter, interval time.Duration) error {
	if interval <= 0 {
		return ErrInvalidInterval
	}

	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrAlreadyRunning
	}
	p.running = true
	p.filter = filter
	stop := make(chan struct{})
	done := make(chan struct{})
	p.stopTick = stop
	p.tickDone = done
	p.mu.Unlock()

	slog.Info("poller started", "filter", filter, "interval", interval)

	go p.loop(interval, stop, done)
	return nil
}

func (p *Poller) loop(interval time.Duration, stop, done chan struct{}) {
	defer close(done)

	p.triggerCycle(false)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.triggerCycle(true)
		case <-stop:
			return
		}
	}
}

// Stop cancels the poll loop. Requests already in flight are left to
// finish, but their results are discarded.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.cycle++
	next := p.state
	next.Loading = false
	p.publishLocked(next)
	stop, done := p.stopTick, p.tickDone
	p.mu.Unlock()

	close(stop)
	<-done
	p.notify()

	slog.Info("poller stopped")
}

// SetFilter switches the region filter. While polling, it starts exactly
// one new cycle with the new filter, superseding any pending cycle.
func (p *Poller) SetFilter(filter models.RegionFilter) {
	p.mu.Lock()
	p.filter = filter
	running := p.running
	p.mu.Unlock()

	slog.Info("region filter changed", "filter", filter)

	if running {
		p.triggerCycle(false)
	}
}

// FetchSnapshot runs one fetch cycle with filter and waits for all three
// sub-fetches. Each successful sub-fetch replaces its own part of the
// ViewState; failures leave the previous values in place. The returned
// error joins every sub-fetch failure.
func (p *Poller) FetchSnapshot(ctx context.Context, filter models.RegionFilter) error {
	p.mu.Lock()
	p.filter = filter
	cycle := p.beginCycleLocked()
	p.inflight.Add(1)
	p.mu.Unlock()

	defer p.inflight.Done()

	p.notify()
	return p.runCycle(ctx, cycle, filter)
}

// Refresh is FetchSnapshot with whatever filter is current when the cycle
// starts. The filter is read and the cycle allocated under one lock, so a
// concurrent SetFilter is either used by this cycle or supersedes it.
func (p *Poller) Refresh(ctx context.Context) error {
	p.mu.Lock()
	filter := p.filter
	cycle := p.beginCycleLocked()
	p.inflight.Add(1)
	p.mu.Unlock()

	defer p.inflight.Done()

	p.notify()
	return p.runCycle(ctx, cycle, filter)
}

// triggerCycle starts an asynchronous cycle using the current filter,
// unless the poller has been stopped in the meantime. With skipIfBusy, a
// cycle still fetching the same filter is left to finish instead.
func (p *Poller) triggerCycle(skipIfBusy bool) {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	if skipIfBusy && p.busyCycle == p.cycle && p.busyFilter == p.filter {
		busy := p.busyCycle
		p.mu.Unlock()
		slog.Debug("skipping tick, previous cycle still fetching", "cycle", busy)
		return
	}
	filter := p.filter
	cycle := p.beginCycleLocked()
	p.inflight.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.inflight.Done()
		p.notify()
		if err := p.runCycle(context.Background(), cycle, filter); err != nil {
			slog.Warn("fetch cycle incomplete", "cycle", cycle, "error", err)
		}
	}()
}

// beginCycleLocked takes the next cycle number for p.filter and marks the
// state as loading. p.mu must be held.
func (p *Poller) beginCycleLocked() uint64 {
	p.cycle++
	p.busyCycle = p.cycle
	p.busyFilter = p.filter
	next := p.state
	next.Loading = true
	next.Cycle = p.cycle
	p.publishLocked(next)
	return p.cycle
}

func (p *Poller) runCycle(ctx context.Context, cycle uint64, filter models.RegionFilter) error {
	errs := make([]error, 3)

	var g errgroup.Group
	g.Go(func() error {
		errs[0] = p.fetchTallies(ctx, cycle, filter)
		return errs[0]
	})
	g.Go(func() error {
		errs[1] = p.fetchAudit(ctx, cycle)
		return errs[1]
	})
	g.Go(func() error {
		errs[2] = p.fetchRegionResults(ctx, cycle)
		return errs[2]
	})
	err := g.Wait()

	p.apply(cycle, func(s *models.ViewState) {
		s.Loading = false
	})

	p.mu.Lock()
	if p.busyCycle == cycle {
		p.busyCycle = 0
	}
	p.mu.Unlock()

	if err == nil {
		return nil
	}
	return errors.Join(errs...)
}

func (p *Poller) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func (p *Poller) fetchTallies(ctx context.Context, cycle uint64, filter models.RegionFilter) error {
	ctx, cancel := p.requestContext(ctx)
	defer cancel()

	tallies, err := p.src.Tallies(ctx, filter)
	if err != nil {
		slog.Error("failed to fetch tallies", "cycle", cycle, "filter", filter, "error", err)
		return fmt.Errorf("tallies: %w", err)
	}

	tallies = slices.Clone(tallies)
	derived := ComputeDerived(tallies)
	applied := p.apply(cycle, func(s *models.ViewState) {
		s.Tallies = tallies
		s.TotalVotes = derived.TotalVotes
		s.RegionFilter = filter
		s.LastRefreshedAt = p.now()
	})
	if !applied {
		slog.Debug("discarded stale tallies", "cycle", cycle)
	}
	return nil
}

func (p *Poller) fetchAudit(ctx context.Context, cycle uint64) error {
	ctx, cancel := p.requestContext(ctx)
	defer cancel()

	entries, err := p.src.AuditLog(ctx)
	if err != nil {
		slog.Error("failed to fetch audit log", "cycle", cycle, "error", err)
		return fmt.Errorf("audit log: %w", err)
	}

	recent := RecentAudit(entries, p.auditLimit)
	applied := p.apply(cycle, func(s *models.ViewState) {
		s.AuditEntries = recent
		s.LastRefreshedAt = p.now()
	})
	if !applied {
		slog.Debug("discarded stale audit log", "cycle", cycle)
	}
	return nil
}

func (p *Poller) fetchRegionResults(ctx context.Context, cycle uint64) error {
	ctx, cancel := p.requestContext(ctx)
	defer cancel()

	results, err := p.src.RegionResults(ctx)
	if err != nil {
		slog.Error("failed to fetch region results", "cycle", cycle, "error", err)
		return fmt.Errorf("region results: %w", err)
	}

	results = slices.Clone(results)
	applied := p.apply(cycle, func(s *models.ViewState) {
		s.RegionResults = results
		s.LastRefreshedAt = p.now()
	})
	if !applied {
		slog.Debug("discarded stale region results", "cycle", cycle)
	}
	return nil
}

// apply publishes a modified copy of the state if cycle is still the
// latest started cycle. It reports whether the change was applied.
func (p *Poller) apply(cycle uint64, mutate func(*models.ViewState)) bool {
	p.mu.Lock()
	if cycle != p.cycle {
		p.mu.Unlock()
		return false
	}
	next := p.state
	mutate(&next)
	next.Cycle = cycle
	p.publishLocked(next)
	p.mu.Unlock()

	p.notify()
	return true
}

// publishLocked replaces the current state. p.mu must be held.
func (p *Poller) publishLocked(next models.ViewState) {
	p.state = next
	p.version++
}

// notify hands the latest state to every subscriber, skipping versions
// that have already been handed over by a concurrent call. Subscribers
// are not called here.
func (p *Poller) notify() {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	state, version, subs := p.state, p.version, p.subs
	p.mu.Unlock()

	if version <= p.delivered {
		return
	}
	p.delivered = version

	for _, sub := range subs {
		sub.offer(state)
	}
}

// subscriber holds the newest undelivered state for one callback. A
// delivery goroutine runs only while there is something to deliver.
type subscriber struct {
	fn func(models.ViewState)

	mu         sync.Mutex
	pending    models.ViewState
	hasPending bool
	delivering bool
}

func (s *subscriber) offer(state models.ViewState) {
	s.mu.Lock()
	s.pending = state
	s.hasPending = true
	start := !s.delivering
	s.delivering = true
	s.mu.Unlock()

	if start {
		go s.deliver()
	}
}

func (s *subscriber) deliver() {
	for {
		s.mu.Lock()
		if !s.hasPending {
			s.delivering = false
			s.mu.Unlock()
			return
		}
		state := s.pending
		s.hasPending = false
		s.mu.Unlock()

		s.fn(state)
	}
}

// wait blocks until every started cycle has finished
func (p *Poller) wait() {
	p.inflight.Wait()
}

// RecentAudit returns at most limit entries from the end of entries,
// newest first. The source lists entries in append order.
func RecentAudit(entries []models.AuditEntry, limit int) []models.AuditEntry {
	start := 0
	if limit > 0 && len(entries) > limit {
		start = len(entries) - limit
	}

	recent := make([]models.AuditEntry, 0, len(entries)-start)
	for i := len(entries) - 1; i >= start; i-- {
		recent = append(recent, entries[i])
	}
	return recent
}
