package observable

import "sync"

type subscription struct {
	fn     func()
	active bool
}

// subscribers is an ordered list of change callbacks.
type subscribers struct {
	mu   sync.Mutex
	list []*subscription
}

func (s *subscribers) add(fn func()) func() {
	sub := &subscription{fn: fn, active: true}

	s.mu.Lock()
	s.list = append(s.list, sub)
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if !sub.active {
			return
		}
		sub.active = false
		for i, v := range s.list {
			if v == sub {
				s.list = append(s.list[:i:i], s.list[i+1:]...)
				break
			}
		}
	}
}

// notify calls every active subscriber in subscription order. The list is
// snapshotted first; a subscriber cancelled by an earlier callback in the same
// pass is skipped.
func (s *subscribers) notify() {
	s.mu.Lock()
	snapshot := make([]*subscription, len(s.list))
	copy(snapshot, s.list)
	s.mu.Unlock()

	for _, sub := range snapshot {
		s.mu.Lock()
		active := sub.active
		s.mu.Unlock()
		if active {
			sub.fn()
		}
	}
}

func (s *subscribers) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}
