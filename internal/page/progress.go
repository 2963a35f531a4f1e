package page

import (
	"sync"
	"time"
)

// ProgressRetention is how long a finished upload stays readable.
const ProgressRetention = 10 * time.Minute

// Progress is the state of a session's latest upload.
type Progress struct {
	Percent float64 `json:"percent"`
	Done    bool    `json:"done"`
	Error   string  `json:"error,omitempty"`
}

type tracked struct {
	Progress
	finishedAt time.Time
}

// Tracker records upload progress per session in memory. Finished entries
// are dropped once they are older than the retention.
type Tracker struct {
	mu        sync.Mutex
	state     map[string]tracked
	retention time.Duration
	now       func() time.Time
}

// NewTracker constructs an empty Tracker keeping finished uploads for retention.
func NewTracker(retention time.Duration) *Tracker {
	return &Tracker{
		state:     make(map[string]tracked),
		retention: retention,
		now:       time.Now,
	}
}

func (t *Tracker) expired(p tracked, now time.Time) bool {
	return p.Done && now.Sub(p.finishedAt) > t.retention
}

// prune must be called with mu held.
func (t *Tracker) prune(now time.Time) {
	for sid, p := range t.state {
		if t.expired(p, now) {
			delete(t.state, sid)
		}
	}
}

func (t *Tracker) start(sid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.prune(t.now())
	t.state[sid] = tracked{}
}

// set never lowers the recorded percentage.
func (t *Tracker) set(sid string, pct float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.state[sid]
	if pct > p.Percent {
		p.Percent = pct
	}
	t.state[sid] = p
}

func (t *Tracker) finish(sid string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.state[sid]
	p.Done = true
	p.finishedAt = t.now()
	if err != nil {
		p.Error = err.Error()
	} else {
		p.Percent = 100
	}
	t.state[sid] = p
}

// Get returns the progress of sid's latest upload.
func (t *Tracker) Get(sid string) (Progress, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, ok := t.state[sid]
	if !ok {
		return Progress{}, false
	}
	if t.expired(p, t.now()) {
		delete(t.state, sid)
		return Progress{}, false
	}
	return p.Progress, true
}

func (t *Tracker) forget(sid string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.state, sid)
}
