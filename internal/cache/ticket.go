package cache

import "sync"

// ProcessingTicket tracks in-flight work for a cache key so concurrent
// requests for the same document wait on a single execution instead of
// racing duplicate extractions, the Go analogue of the original's
// threading.Event-based ticket.
type ProcessingTicket struct {
	done chan struct{}
	once sync.Once
}

func newProcessingTicket() *ProcessingTicket {
	return &ProcessingTicket{done: make(chan struct{})}
}

// Wait blocks until the ticket's work is marked complete.
func (t *ProcessingTicket) Wait() <-chan struct{} {
	return t.done
}

// markComplete releases all waiters. Safe to call more than once.
func (t *ProcessingTicket) markComplete() {
	t.once.Do(func() { close(t.done) })
}

// tickets tracks in-flight ProcessingTickets by cache key.
type tickets struct {
	mu      sync.Mutex
	inFlight map[string]*ProcessingTicket
}

func newTickets() *tickets {
	return &tickets{inFlight: make(map[string]*ProcessingTicket)}
}

// IsProcessing reports whether key currently has an in-flight ticket.
func (t *tickets) IsProcessing(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inFlight[key]
	return ok
}

// MarkProcessing registers key as in-flight, returning its ticket and
// whether this call created it. Both the lookup and the insertion happen
// under the same lock, so exactly one caller among any number racing on the
// same key ever sees created == true; everyone else gets the winner's
// ticket and must wait on it rather than proceed.
func (t *tickets) MarkProcessing(key string) (ticket *ProcessingTicket, created bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.inFlight[key]; ok {
		return existing, false
	}
	ticket = newProcessingTicket()
	t.inFlight[key] = ticket
	return ticket, true
}

// MarkComplete releases waiters on key's ticket and removes it from the
// in-flight set.
func (t *tickets) MarkComplete(key string) {
	t.mu.Lock()
	ticket, ok := t.inFlight[key]
	if ok {
		delete(t.inFlight, key)
	}
	t.mu.Unlock()
	if ok {
		ticket.markComplete()
	}
}
