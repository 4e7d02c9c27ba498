package clock

import (
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Posted is a Clock whose due timers are handed to a post function instead
// of running on the timer goroutine. Event-loop hosts post the timer into
// their own queue and call Fire from the loop, so every callback runs on the
// loop goroutine.
type Posted struct {
	mu   sync.RWMutex
	post func(*PostedTimer)
}

// NewPosted creates a posted clock. post may be nil until the host loop exists.
func NewPosted(post func(*PostedTimer)) *Posted {
	return &Posted{post: post}
}

// SetPost replaces the post function
func (p *Posted) SetPost(post func(*PostedTimer)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.post = post
}

func (p *Posted) Now() time.Time {
	return time.Now()
}

func (p *Posted) AfterFunc(d time.Duration, f func()) Timer {
	t := &PostedTimer{fn: f}
	t.wall = time.AfterFunc(d, func() {
		if t.stopped.Load() {
			return
		}
		p.mu.RLock()
		post := p.post
		p.mu.RUnlock()
		if post == nil {
			log.Printf("clock: dropping timer, no event loop attached")
			return
		}
		post(t)
	})
	return t
}

// PostedTimer is a timer created by Posted
type PostedTimer struct {
	fn      func()
	wall    *time.Timer
	stopped atomic.Bool
}

func (t *PostedTimer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	if t.wall != nil {
		t.wall.Stop()
	}
	return true
}

// Fire runs the callback unless the timer was stopped after it was posted
func (t *PostedTimer) Fire() {
	if t.stopped.CompareAndSwap(false, true) {
		t.fn()
	}
}
