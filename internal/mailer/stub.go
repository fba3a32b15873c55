package mailer

import (
	"errors"
	"sync"
)

// ErrSendFailed is returned by a stub configured to fail
var ErrSendFailed = errors.New("email send failed")

// StubMailer records sent messages instead of dispatching them
type StubMailer struct {
	mu   sync.Mutex
	Fail bool // When set, Send returns ErrSendFailed
	Sent []Message
}

// Send records the message, or fails when so configured
func (s *StubMailer) Send(msg *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrSendFailed
	}
	s.Sent = append(s.Sent, *msg)
	return nil
}
