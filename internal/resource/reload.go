// Package resource runs the startup resource reload whose progress the splash
// overlay displays.
package resource

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// Task is one step of a reload. Weight is its share of the progress bar;
// non-positive weights count as 1.
type Task struct {
	Name   string
	Weight float32
	Run    func(ctx context.Context) error
}

// Reload runs its tasks in order on a worker goroutine. Progress may be read
// from any goroutine.
type Reload struct {
	tasks       []Task
	total       float32
	minDuration time.Duration

	// float32 bits of the completed weight fraction
	completed atomic.Uint32
	finished  atomic.Bool
	startedAt atomic.Int64

	mu   sync.Mutex
	err  error
	done chan struct{}
	once sync.Once

	now func() time.Time
}

// NewReload creates a reload that reports 100% no sooner than minDuration
// after Start.
func NewReload(minDuration time.Duration, tasks ...Task) *Reload {
	r := &Reload{
		tasks:       tasks,
		minDuration: minDuration,
		done:        make(chan struct{}),
		now:         time.Now,
	}
	for i := range r.tasks {
		if r.tasks[i].Weight <= 0 {
			r.tasks[i].Weight = 1
		}
		r.total += r.tasks[i].Weight
	}
	return r
}

// Start launches the worker. Calls after the first are ignored.
func (r *Reload) Start(ctx context.Context) {
	r.once.Do(func() {
		r.startedAt.Store(r.now().UnixNano())
		go r.run(ctx)
	})
}

func (r *Reload) run(ctx context.Context) {
	defer close(r.done)
	defer r.finished.Store(true)

	var sum float32
	for _, t := range r.tasks {
		if err := ctx.Err(); err != nil {
			r.setErr(err)
			break
		}
		start := r.now()
		if err := t.Run(ctx); err != nil {
			log.Printf("reload: task %q failed: %v", t.Name, err)
			r.setErr(fmt.Errorf("%s: %w", t.Name, err))
		} else {
			log.Printf("reload: %s took %v", t.Name, r.now().Sub(start))
		}
		sum += t.Weight
		r.completed.Store(math.Float32bits(sum / r.total))
	}
	r.completed.Store(math.Float32bits(1))
}

func (r *Reload) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
}

// Progress returns the completed fraction in [0, 1]. It never decreases and
// reaches 1 only once every task has run and the minimum duration has passed.
func (r *Reload) Progress() float32 {
	p := math.Float32frombits(r.completed.Load())
	if r.finished.Load() && r.minElapsed() {
		return 1
	}
	return min(p, 0.99)
}

func (r *Reload) minElapsed() bool {
	started := r.startedAt.Load()
	if started == 0 {
		return false
	}
	return r.now().Sub(time.Unix(0, started)) >= r.minDuration
}

// Done is closed when every task has run.
func (r *Reload) Done() <-chan struct{} {
	return r.done
}

// Err returns the first task error, if any.
func (r *Reload) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
