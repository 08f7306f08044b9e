// Package dispatch runs submitted jobs one at a time, in submission order.
package dispatch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var (
	ErrStopped    = errors.New("dispatch: engine stopped")
	ErrInvalidJob = errors.New("dispatch: job has no run func")
)

type Job struct {
	Kind string
	Run  func(ctx context.Context) error
}

type Outcome struct {
	ID   uint64
	Kind string
	Err  error
}

type queued struct {
	id  uint64
	job Job
}

type Engine struct {
	mu        sync.Mutex
	queue     []queued
	out       chan Outcome
	wakeup    chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	started   bool
	stopped   bool
	nextID    uint64
	inflight  int
	discarded uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		queue:  make([]queued, 0),
		out:    make(chan Outcome, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// C delivers one Outcome per executed job. It is closed after Stop.
func (e *Engine) C() <-chan Outcome {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	go e.loop()
}

// Stop cancels the running job's context, discards queued jobs and waits for
// the worker to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	e.cancel()
	close(e.stopCh)
	started := e.started
	e.mu.Unlock()
	if started {
		<-e.doneCh
		return
	}
	close(e.out)
}

// Submit enqueues job behind every job submitted before it.
func (e *Engine) Submit(job Job) (uint64, error) {
	if job.Run == nil {
		return 0, ErrInvalidJob
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return 0, ErrStopped
	}

	e.nextID++
	id := e.nextID
	e.queue = append(e.queue, queued{id: id, job: job})
	e.signalWakeup()
	return id, nil
}

// Pending counts jobs whose outcome has not been published yet.
func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue) + e.inflight
}

// Discarded counts jobs dropped from the queue by Stop.
func (e *Engine) Discarded() uint64 {
	return atomic.LoadUint64(&e.discarded)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	for {
		next, ok := e.pop()
		if !ok {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				e.drain()
				return
			}
		}

		err := next.job.Run(e.ctx)
		outcome := Outcome{ID: next.id, Kind: next.job.Kind, Err: err}
		select {
		case e.out <- outcome:
			e.finish()
		case <-e.stopCh:
			e.finish()
			e.drain()
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) pop() (queued, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped || len(e.queue) == 0 {
		return queued{}, false
	}
	next := e.queue[0]
	e.queue[0] = queued{}
	e.queue = e.queue[1:]
	e.inflight++
	return next, true
}

func (e *Engine) finish() {
	e.mu.Lock()
	e.inflight--
	e.mu.Unlock()
}

func (e *Engine) drain() {
	e.mu.Lock()
	defer e.mu.Unlock()
	atomic.AddUint64(&e.discarded, uint64(len(e.queue)))
	e.queue = nil
}
