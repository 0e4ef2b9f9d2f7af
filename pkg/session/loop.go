package session

import (
	"errors"
	"sync"
)

var ErrLoopClosed = errors.New("session loop is closed")

// Loop runs posted actions one at a time, in FIFO order, on a single
// goroutine. Everything that touches session state goes through it.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

func NewLoop() *Loop {
	l := &Loop{
		wake:    make(chan struct{}, 1),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

// Do runs fn on the loop and waits for it to return.
// Calling Do from inside an action deadlocks; use Post there.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopClosed
	}
	select {
	case <-finished:
		return nil
	case <-l.stopped:
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopClosed
		}
	}
}

// Post queues fn without waiting for it to run. It never blocks and
// reports false once the loop has been closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.queue = append(l.queue, fn)

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Close stops the loop once the action in progress returns. Actions still
// queued are dropped. Close must not be called from inside an action.
func (l *Loop) Close() {
	l.mu.Lock()
	if !l.closed {
		l.closed = true
		close(l.wake)
	}
	l.mu.Unlock()
	<-l.stopped
}

func (l *Loop) run() {
	defer close(l.stopped)
	for range l.wake {
		for {
			fn, ok := l.next()
			if !ok {
				break
			}
			fn()
		}
	}
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed || len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}
