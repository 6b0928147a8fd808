package session

import "time"

// StoreOption configures the session store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	ttl           time.Duration
	sweepInterval time.Duration
	maxSessions   int
}

func defaultStoreOptions() *storeOptions {
	return &storeOptions{
		ttl:           30 * time.Minute,
		sweepInterval: time.Minute,
		maxSessions:   0, // 0 = unlimited
	}
}

// WithTTL sets how long an idle session survives. Every Update pushes
// the deadline forward by this duration.
// Default: 30 minutes.
func WithTTL(d time.Duration) StoreOption {
	return func(o *storeOptions) {
		o.ttl = d
	}
}

// WithSweepInterval sets how often the background janitor removes
// expired sessions. Zero disables the janitor; expired sessions are
// then only removed on access or via SweepExpired.
// Default: 1 minute.
func WithSweepInterval(d time.Duration) StoreOption {
	return func(o *storeOptions) {
		o.sweepInterval = d
	}
}

// WithMaxSessions caps the number of live sessions. When the cap is
// reached, the session closest to expiry is evicted to make room.
// Zero means unlimited.
// Default: 0 (unlimited).
func WithMaxSessions(n int) StoreOption {
	return func(o *storeOptions) {
		o.maxSessions = n
	}
}
