// Package workpool runs CPU-bound jobs on a fixed set of goroutines so that a
// burst of expensive calls (bcrypt) cannot occupy every scheduler thread.
package workpool

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
)

var ErrClosed = errors.New("workpool: closed")

type job struct {
	fn   func()
	err  error
	done chan struct{}
}

// Pool is a fixed-size worker pool. The zero value is not usable; call New.
type Pool struct {
	size    int
	jobs    chan *job
	stopped chan struct{}
	log     zerolog.Logger
}

// New creates a pool with size workers. If size <= 0, runtime.NumCPU() is used.
func New(size int, log zerolog.Logger) *Pool {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	return &Pool{
		size:    size,
		jobs:    make(chan *job),
		stopped: make(chan struct{}),
		log:     log,
	}
}

// Size reports the number of workers.
func (p *Pool) Size() int { return p.size }

// Start launches the workers. They exit when ctx is cancelled, after which Do
// returns ErrClosed.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		go p.runWorker(ctx, i)
	}
	go func() {
		<-ctx.Done()
		close(p.stopped)
	}()
}

// Do runs fn on a worker and waits for it to return. Waiting for a free worker
// is abandoned when ctx is done; once fn started it always runs to completion.
func (p *Pool) Do(ctx context.Context, fn func()) error {
	select {
	case <-p.stopped:
		return ErrClosed
	default:
	}

	j := &job{fn: fn, done: make(chan struct{})}
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return ErrClosed
	}
	<-j.done
	return j.err
}

func (p *Pool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-p.jobs:
			p.run(id, j)
		}
	}
}

func (p *Pool) run(id int, j *job) {
	defer close(j.done)
	defer func() {
		if r := recover(); r != nil {
			j.err = fmt.Errorf("workpool: job panicked: %v", r)
			p.log.Error().Int("worker_id", id).Interface("panic", r).Msg("job panicked")
		}
	}()
	j.fn()
}
