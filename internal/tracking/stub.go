package tracking

import (
	"context"
	"sync"
)

// StubTracker is an in-memory API for tests. With no configured update it
// behaves like a silent tracker.
type StubTracker struct {
	mu      sync.Mutex
	Update  *StatusUpdate // Returned by CheckDeliveryStatus for any number
	Err     error         // Returned by both methods when set
	Pushed  []string      // Tracking numbers pushed upstream
	Checked []string      // Tracking numbers polled
}

// CheckDeliveryStatus returns the configured update
func (s *StubTracker) CheckDeliveryStatus(_ context.Context, trackingNumber string) (*StatusUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Checked = append(s.Checked, trackingNumber)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Update, nil
}

// PushStatus records the push
func (s *StubTracker) PushStatus(_ context.Context, trackingNumber, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Pushed = append(s.Pushed, trackingNumber)
	return nil
}
