package tracking

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultTickInterval is the wall-clock time between ticks.
const DefaultTickInterval = time.Second

// RunnerOptions configures a Runner
type RunnerOptions struct {
	TickInterval time.Duration
	// StartPaused keeps the timer from advancing trains until Resume.
	StartPaused bool
	// Now is the clock stamped on each tick; defaults to time.Now.
	Now func() time.Time
}

// Runner owns the simulation state and advances it on a fixed interval.
// Exactly one transition runs at a time; readers get the last committed
// State through Snapshot or a subscription.
type Runner struct {
	net      Network
	interval time.Duration
	now      func() time.Time

	tickMu  sync.Mutex
	current atomic.Pointer[State]
	paused  atomic.Bool

	subMu sync.Mutex
	subs  map[chan *State]struct{}
}

// NewRunner seeds a runner with the initial train set.
func NewRunner(net Network, initial State, opts RunnerOptions) *Runner {
	if opts.TickInterval <= 0 {
		opts.TickInterval = DefaultTickInterval
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	r := &Runner{
		net:      net,
		interval: opts.TickInterval,
		now:      opts.Now,
		subs:     map[chan *State]struct{}{},
	}
	r.current.Store(&initial)
	r.paused.Store(opts.StartPaused)
	return r
}

// Interval returns the configured tick interval.
func (r *Runner) Interval() time.Duration { return r.interval }

// Snapshot returns the latest committed state.
func (r *Runner) Snapshot() *State { return r.current.Load() }

// Pause stops ticks from advancing trains. State is kept as is.
func (r *Runner) Pause() {
	if !r.paused.Swap(true) {
		log.WithField("tick", r.Snapshot().Tick).Info("simulation paused")
	}
}

// Resume restarts ticking after Pause.
func (r *Runner) Resume() {
	if r.paused.Swap(false) {
		log.WithField("tick", r.Snapshot().Tick).Info("simulation resumed")
	}
}

// Paused reports whether ticks are suspended.
func (r *Runner) Paused() bool { return r.paused.Load() }

// Step performs one transition regardless of the paused flag and returns
// the committed state.
func (r *Runner) Step() *State {
	return r.tick()
}

// Run ticks until ctx is done. It returns ctx.Err().
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	log.WithField("interval", r.interval).Info("simulation started")
	for {
		select {
		case <-ctx.Done():
			log.WithField("tick", r.Snapshot().Tick).Info("simulation stopped")
			return ctx.Err()
		case <-ticker.C:
			if r.paused.Load() {
				continue
			}
			r.tick()
		}
	}
}

func (r *Runner) tick() *State {
	r.tickMu.Lock()
	defer r.tickMu.Unlock()
	next := r.current.Load().Advance(r.net, r.now())
	r.current.Store(&next)
	r.publish(&next)
	return &next
}

// Subscribe returns a channel receiving every committed state. Slow
// subscribers miss ticks rather than block the simulation. Call cancel to
// unsubscribe.
func (r *Runner) Subscribe(buffer int) (<-chan *State, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan *State, buffer)
	r.subMu.Lock()
	r.subs[ch] = struct{}{}
	r.subMu.Unlock()
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			r.subMu.Lock()
			delete(r.subs, ch)
			r.subMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (r *Runner) publish(s *State) {
	r.subMu.Lock()
	defer r.subMu.Unlock()
	for ch := range r.subs {
		select {
		case ch <- s:
		default:
			log.WithField("tick", s.Tick).Debug("subscriber lagging, tick dropped")
		}
	}
}
