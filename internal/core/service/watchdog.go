package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/domain"
	"github.com/ABDELMSK/projet-si-management-sub000/internal/core/ports"
)

// WatchdogState is the observer-visible state of the expiry watchdog.
type WatchdogState int

const (
	// WatchQuiet: more than the warning threshold remains.
	WatchQuiet WatchdogState = iota
	// WatchWarning: the session expires within the warning threshold.
	WatchWarning
	// WatchStopped: the watchdog has been stopped or has fired expiry.
	WatchStopped
)

// Watchdog polls the session store once per interval, raises a countdown
// warning when the remaining lifetime drops below the threshold, and forces
// exactly one expiry when it reaches zero. Its lifetime is tied to the
// authenticated session: the owner starts it after login/replay and stops it
// on logout, so timers never leak across login cycles.
type Watchdog struct {
	store ports.SessionStore
	log   zerolog.Logger

	interval  time.Duration
	threshold time.Duration
	renewal   time.Duration
	now       func() time.Time

	onWarning func(remaining time.Duration)
	onExpired func()

	mu      sync.Mutex
	state   WatchdogState
	fired   bool
	started bool

	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// WatchdogOption customises a Watchdog at construction time.
type WatchdogOption func(*Watchdog)

// WithWatchdogClock overrides the time source. Intended for tests.
func WithWatchdogClock(now func() time.Time) WatchdogOption {
	return func(w *Watchdog) { w.now = now }
}

// WithInterval overrides the polling interval.
func WithInterval(d time.Duration) WatchdogOption {
	return func(w *Watchdog) { w.interval = d }
}

// NewWatchdog builds a watchdog over the given store. onWarning is invoked on
// every poll while in the warning window with the strictly decreasing
// remaining time; there is only ever one warning stream, re-entering the
// window does not start another. onExpired is invoked exactly once; the
// polling loop terminates itself after firing, so the callback must not call
// Stop synchronously.
func NewWatchdog(store ports.SessionStore, log zerolog.Logger, onWarning func(remaining time.Duration), onExpired func(), opts ...WatchdogOption) *Watchdog {
	w := &Watchdog{
		store:     store,
		log:       log,
		interval:  domain.PollInterval,
		threshold: domain.WarningThreshold,
		renewal:   domain.RenewalWindow,
		now:       time.Now,
		onWarning: onWarning,
		onExpired: onExpired,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start launches the polling loop. Calling Start twice is an error in the
// caller; the second call is ignored.
func (w *Watchdog) Start() {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.mu.Unlock()

	go w.run()
}

func (w *Watchdog) run() {
	defer close(w.doneCh)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			if w.tick() {
				return
			}
		}
	}
}

// tick runs one poll. It returns true when the watchdog is finished.
func (w *Watchdog) tick() bool {
	sess, ok, err := w.store.Read()
	if err != nil {
		w.log.Error().Err(err).Msg("watchdog: session read failed")
		return false
	}
	if !ok {
		// Session ended elsewhere; the owner will call Stop shortly.
		return false
	}

	remaining := sess.Remaining(w.now())
	switch {
	case remaining <= 0:
		return w.expire()
	case remaining <= w.threshold:
		w.mu.Lock()
		if w.state == WatchStopped {
			w.mu.Unlock()
			return true
		}
		if w.state != WatchWarning {
			w.log.Info().Dur("remaining", remaining).Msg("session expiry warning")
		}
		w.state = WatchWarning
		fn := w.onWarning
		w.mu.Unlock()
		if fn != nil {
			fn(remaining)
		}
		return false
	default:
		w.mu.Lock()
		if w.state == WatchWarning {
			w.state = WatchQuiet
		}
		w.mu.Unlock()
		return false
	}
}

func (w *Watchdog) expire() bool {
	w.mu.Lock()
	if w.fired || w.state == WatchStopped {
		w.mu.Unlock()
		return true
	}
	w.fired = true
	w.state = WatchStopped
	fn := w.onExpired
	w.mu.Unlock()

	w.log.Warn().Msg("session expired")
	if fn != nil {
		fn()
	}
	return true
}

// Extend pushes the stored expiry forward by the renewal window and returns
// the watchdog to Quiet. No network round trip happens here; a token the
// backend has since revoked is caught by the next 401.
func (w *Watchdog) Extend() error {
	sess, ok, err := w.store.Read()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotAuthenticated
	}
	if err := w.store.Save(sess.Token, w.now().Add(w.renewal)); err != nil {
		return err
	}

	w.mu.Lock()
	if w.state == WatchWarning {
		w.state = WatchQuiet
	}
	w.mu.Unlock()

	w.log.Info().Msg("session extended")
	return nil
}

// Decline answers the warning negatively: the session is expired immediately
// rather than at the end of the countdown.
func (w *Watchdog) Decline() {
	w.expire()
}

// State returns the current watchdog state.
func (w *Watchdog) State() WatchdogState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Stop tears the polling loop down. Idempotent; safe to call whether or not
// Start was ever called.
func (w *Watchdog) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.mu.Lock()
	w.state = WatchStopped
	started := w.started
	w.mu.Unlock()
	if started {
		<-w.doneCh
	}
}
