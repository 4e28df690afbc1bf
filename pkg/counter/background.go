package counter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// ClockTicker writes the current wall-clock time into a ShardedCounter's
// atomic clock once a second. Decoupling the clock from the hot path this
// way means GetOrCreate never makes a syscall: it trades up to a second of
// staleness for a lock-free relaxed load on every request.
type ClockTicker struct {
	counter *ShardedCounter
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewClockTicker returns a ClockTicker for counter. Call Start to begin
// ticking.
func NewClockTicker(counter *ShardedCounter) *ClockTicker {
	return &ClockTicker{counter: counter, stop: make(chan struct{})}
}

// Start begins the once-a-second clock update in a background goroutine.
// It returns immediately.
func (t *ClockTicker) Start(ctx context.Context) {
	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.stop:
				return
			case now := <-ticker.C:
				t.counter.setClock(uint64(now.Unix()))
			}
		}
	}()
}

// Stop halts the ticker and waits for its goroutine to exit.
func (t *ClockTicker) Stop() {
	close(t.stop)
	t.wg.Wait()
}

// Sweeper periodically walks every partition of a ShardedCounter, trimming
// expired buckets and recovering partitions left poisoned by a prior
// panic. It is scheduled with a cron expression rather than a plain ticker
// so that deployments wanting an off-cadence sweep (e.g. aligned to a
// specific minute) can express it without code changes.
type Sweeper struct {
	counter *ShardedCounter
	cron    *cron.Cron
	logger  *slog.Logger
	mu      sync.Mutex
	running bool
	onSweep atomic.Pointer[func(SweepStats)]
}

// NewSweeper returns a Sweeper for counter. The schedule argument is not
// stored; the schedule that takes effect is the one passed to Start, which
// may be a standard cron expression or a "@every <duration>" spec such as
// "@every 60s". An empty schedule given to Start disables the sweeper, and
// Stop still behaves correctly on such an unstarted Sweeper.
func NewSweeper(counter *ShardedCounter, schedule string, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		counter: counter,
		cron:    cron.New(),
		logger:  logger.With("component", "counter.sweeper"),
	}
}

// OnSweep registers a callback invoked with the stats of every completed
// sweep cycle, used to feed metrics without this package depending on the
// metrics package directly.
func (s *Sweeper) OnSweep(fn func(SweepStats)) {
	s.onSweep.Store(&fn)
}

// Start validates the sweeper's schedule and begins running it. Schedule
// validation happens before the cron scheduler is started so a malformed
// schedule is reported synchronously rather than silently never firing.
func (s *Sweeper) Start(ctx context.Context, schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if schedule == "" {
		s.logger.Info("sweep schedule not configured, skipping sweeper")
		return nil
	}

	// cron.New()'s default parser accepts both plain 5-field cron
	// expressions and "@every <duration>" shorthand, so a single AddFunc
	// call both validates and schedules the sweep.
	if _, err := s.cron.AddFunc(schedule, func() {
		s.runSweep()
	}); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("sweeper started", "schedule", schedule)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

func (s *Sweeper) runSweep() {
	start := time.Now()
	stats := s.counter.sweepOnce()
	s.logger.Debug("sweep completed",
		"duration", time.Since(start),
		"buckets_dropped", stats.BucketsDropped,
		"keys_dropped", stats.KeysDropped,
		"poisoned_partitions", stats.PoisonedPartitions,
	)

	if onSweep := s.onSweep.Load(); onSweep != nil {
		(*onSweep)(stats)
	}
}

// Stop stops the sweeper and waits for any in-flight sweep to finish. The
// wait happens with mu released: runSweep never needs mu (onSweep is read
// atomically), but holding mu across the wait would still deadlock Start's
// early return path and IsRunning for the wait's duration with no benefit.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cron == nil || !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	done := s.cron.Stop()
	<-done.Done()
	s.logger.Info("sweeper stopped")
}

// IsRunning reports whether the sweeper's cron schedule is active.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
