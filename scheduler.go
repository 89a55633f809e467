package cpfuture

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Scheduler is the collaborator the continuation dispatcher submits
// continuation bodies to, keyed by ExecutionPolicy and an optional
// NamedThread. The task graph, worker pools, and thread spawner are
// external collaborators this library only depends on through this
// interface, one per ExecutionPolicy.
type Scheduler interface {
	// Submit arranges for fn to run according to policy and thread. fn runs
	// asynchronously, except for AnyThread which may run fn inline on the
	// calling goroutine.
	Submit(policy ExecutionPolicy, thread NamedThread, fn func())
}

// DefaultScheduler is a goroutine-based Scheduler: it stands in for an
// external task graph, worker pools, and dedicated-thread spawner, using a
// dedicated goroutine draining a task queue per NamedThread value, plus
// x/sync/semaphore-bounded worker pools standing in for ThreadPool and
// LargeThreadPool.
type DefaultScheduler struct {
	poolSize      int64
	largePoolSize int64

	pool      *semaphore.Weighted
	largePool *semaphore.Weighted

	mu      sync.Mutex
	threads map[NamedThread]*namedQueue

	Metrics SchedulerMetrics
}

type namedQueue struct {
	tasks chan func()
	once  sync.Once
}

// NewDefaultScheduler builds a DefaultScheduler. poolSize and
// largePoolSize bound ThreadPool and LargeThreadPool concurrency
// respectively; a value <= 0 defaults to 32 and 8.
func NewDefaultScheduler(poolSize, largePoolSize int64) *DefaultScheduler {
	if poolSize <= 0 {
		poolSize = 32
	}
	if largePoolSize <= 0 {
		largePoolSize = 8
	}
	return &DefaultScheduler{
		poolSize:      poolSize,
		largePoolSize: largePoolSize,
		pool:          semaphore.NewWeighted(poolSize),
		largePool:     semaphore.NewWeighted(largePoolSize),
		threads:       make(map[NamedThread]*namedQueue),
	}
}

// defaultScheduler is the package-level Scheduler used whenever an
// Options value doesn't name one explicitly.
var defaultScheduler = NewDefaultScheduler(0, 0)

// Submit implements Scheduler. thread only affects MainThread dispatch: it
// selects which of several dedicated, FIFO-ordered goroutines a
// continuation lands on, so continuations pinned to the same name never
// run concurrently with each other. Thread/ThreadPool/LargeThreadPool
// dispatch ignores thread; naming is only meaningful for MainThread.
//
// Submit does not wait for fn, except that AnyThread runs fn inline and a
// MainThread submission waits while that name's queue already holds 256
// pending tasks.
func (s *DefaultScheduler) Submit(policy ExecutionPolicy, thread NamedThread, fn func()) {
	s.Metrics.recordSubmit(policy)
	wrapped := func() {
		defer s.Metrics.recordComplete(policy)
		fn()
	}
	switch policy {
	case AnyThread:
		wrapped()
	case MainThread:
		s.namedQueueFor(thread).tasks <- wrapped
	case Thread, ThreadIfForkSafe:
		go wrapped()
	case ThreadPool:
		s.submitBounded(s.pool, wrapped)
	case LargeThreadPool:
		s.submitBounded(s.largePool, wrapped)
	default:
		go wrapped()
	}
}

func (s *DefaultScheduler) submitBounded(sem *semaphore.Weighted, fn func()) {
	go func() {
		if err := sem.Acquire(context.Background(), 1); err != nil {
			// context.Background() never cancels; Acquire only errs if the
			// context is done, so this is unreachable in practice.
			fn()
			return
		}
		defer sem.Release(1)
		fn()
	}()
}

func (s *DefaultScheduler) namedQueueFor(name NamedThread) *namedQueue {
	s.mu.Lock()
	q, ok := s.threads[name]
	if !ok {
		q = &namedQueue{tasks: make(chan func(), 256)}
		s.threads[name] = q
	}
	s.mu.Unlock()

	q.once.Do(func() {
		go func() {
			for task := range q.tasks {
				task()
			}
		}()
	})
	return q
}
