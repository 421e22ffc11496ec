package session

import "time"

// AfterFunc runs fn after d unless the session is closed first.
// The returned function cancels the timer and reports whether it was still pending.
func (s *Session) AfterFunc(d time.Duration, fn func()) (stop func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() bool { return false }
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		_, live := s.timers[t]
		delete(s.timers, t)
		dead := s.closed || s.ctx.Err() != nil
		s.mu.Unlock()

		if live && !dead {
			fn()
		}
	})
	s.timers[t] = struct{}{}

	return func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.timers[t]; !ok {
			return false
		}
		delete(s.timers, t)
		return t.Stop()
	}
}

// PendingTimers returns the number of timers that have not fired yet.
func (s *Session) PendingTimers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// ScheduleTermination arranges for the host terminate action to run after d.
// Only one termination is ever scheduled per session; later calls return false.
func (s *Session) ScheduleTermination(d time.Duration) bool {
	s.mu.Lock()
	if s.closed || s.terminating {
		s.mu.Unlock()
		return false
	}
	s.terminating = true
	s.mu.Unlock()

	s.logger.Debug("Termination scheduled", "delay", d)
	s.AfterFunc(d, func() {
		s.logger.Debug("Terminating session")
		if s.onTerminate != nil {
			s.onTerminate()
		}
	})
	return true
}

// Terminating reports whether a termination has been scheduled.
func (s *Session) Terminating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminating
}
