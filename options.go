package cpfuture

// ExecutionPolicy selects which goroutine(s) a continuation body runs on.
type ExecutionPolicy int

const (
	// AnyThread runs the continuation inline, on whichever goroutine
	// observes or causes the predecessor's completion. Defaults to this
	// policy if unset.
	AnyThread ExecutionPolicy = iota

	// MainThread runs the continuation on the dedicated goroutine backing
	// DefaultScheduler's queue for the call's NamedThread (the unnamed
	// queue when none is set).
	MainThread

	// Thread spawns a dedicated goroutine for this continuation only.
	Thread

	// ThreadIfForkSafe behaves like Thread; Go has no fork-safety
	// distinction to make, so it is a plain alias kept for parity with
	// hosts that do.
	ThreadIfForkSafe

	// ThreadPool runs the continuation on DefaultScheduler's bounded
	// worker pool.
	ThreadPool

	// LargeThreadPool runs the continuation on a separate bounded worker
	// pool (8 workers by default in DefaultScheduler, against ThreadPool's
	// 32), for continuations expected to block longer.
	LargeThreadPool
)

// NamedThread optionally pins MainThread dispatch to one named queue; each
// distinct name gets its own queue, and other policies ignore it. The zero
// value means "unnamed" (the policy's default queue).
type NamedThread string

// FailMode selects how AllWithMode treats sibling rejections. It is a
// plain argument to AllWithMode rather than an Options field, since it
// only ever applies to that one combinator.
type FailMode int

const (
	// Fast rejects the combined future as soon as any input rejects,
	// without waiting on the remaining inputs. Defaults to this mode if
	// unset.
	Fast FailMode = iota

	// Full waits for every input to settle before rejecting, so all
	// inputs are guaranteed to have run their continuations.
	Full
)

// Options configures a single Then*/Async call: execution policy, named
// thread, and an optional lifetime owner or cancellation binding. It is a
// monotonic builder: each With* method returns a modified copy, never
// mutating the receiver.
type Options struct {
	policy       ExecutionPolicy
	thread       NamedThread
	owner        any
	cancellation CancellationHandle
	scheduler    Scheduler
	timer        TimerService
}

// DefaultOptions returns the zero-value Options: AnyThread policy, no named
// thread, no owner, default Scheduler/TimerService.
func DefaultOptions() Options {
	return Options{}
}

// WithPolicy returns a copy of o with Policy set.
func (o Options) WithPolicy(policy ExecutionPolicy) Options {
	o.policy = policy
	return o
}

// WithThread returns a copy of o with NamedThread set.
func (o Options) WithThread(thread NamedThread) Options {
	o.thread = thread
	return o
}

// WithOwner returns a copy of o gated by owner's lifetime: the continuation
// resolves to [LifetimeExpired] instead of running if owner no longer
// exists by the time the predecessor settles. owner's type must satisfy one
// of the capabilities NewLifetimeMonitor recognizes; see lifetime.go. A
// non-nil owner lacking both capabilities panics immediately, here at call
// time, rather than later on whatever goroutine the scheduler eventually
// runs the gated continuation on.
func (o Options) WithOwner(owner any) Options {
	validateOwnerCapability(owner)
	o.owner = owner
	return o
}

// WithCancellation returns a copy of o that binds the new promise created
// by the Then* call into handle's group.
func (o Options) WithCancellation(handle CancellationHandle) Options {
	o.cancellation = handle
	return o
}

func (o Options) hasCancellation() bool {
	return o.cancellation.state != nil
}

// WithScheduler returns a copy of o that submits continuation work through
// scheduler instead of the package-level default.
func (o Options) WithScheduler(scheduler Scheduler) Options {
	o.scheduler = scheduler
	return o
}

// WithTimer returns a copy of o that uses timer instead of the
// package-level default for any Wait call made with these Options.
func (o Options) WithTimer(timer TimerService) Options {
	o.timer = timer
	return o
}

func (o Options) resolvedScheduler() Scheduler {
	if o.scheduler != nil {
		return o.scheduler
	}
	return defaultScheduler
}

func (o Options) resolvedTimer() TimerService {
	if o.timer != nil {
		return o.timer
	}
	return defaultTimerService
}
