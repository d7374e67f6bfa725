package generator

import "fmt"

// candidateSet is an insertion-ordered string set. Members are never removed
// or edited, so a snapshot is just a capped view of items.
type candidateSet struct {
	index map[string]struct{}
	items []string
	limit int
	err   error
}

func newCandidateSet(limit int) *candidateSet {
	return &candidateSet{index: make(map[string]struct{}, 64), limit: limit}
}

// add inserts c unless present. After the limit is hit the error sticks and
// further adds are ignored.
func (s *candidateSet) add(c string) {
	if s.err != nil {
		return
	}
	if _, ok := s.index[c]; ok {
		return
	}
	if s.limit > 0 && len(s.items) >= s.limit {
		s.err = fmt.Errorf("%w: more than %d candidates", ErrLimitExceeded, s.limit)
		return
	}
	s.index[c] = struct{}{}
	s.items = append(s.items, c)
}

// snapshot returns the current members. Later adds never show up in it.
func (s *candidateSet) snapshot() []string {
	return s.items[:len(s.items):len(s.items)]
}

func (s *candidateSet) len() int { return len(s.items) }
