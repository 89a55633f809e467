// Package cpfuture provides a continuation-passing asynchronous value type:
// a [Promise] is created by a producer, its paired [Future] is chained
// through zero or more continuations via the Then* family of functions, each
// scheduled under a chosen [ExecutionPolicy] and, optionally, a named
// thread. Every stage produces a [Result], so failures propagate down a
// chain without panicking.
//
// # Architecture
//
// [Promise]/[Future] are thin handles over a shared, reference-counted
// [promiseState]: a one-shot publication slot plus a completion event. Each
// Then* call builds a new Promise/Future pair and submits a scheduling task
// to a [Scheduler], which re-dispatches the continuation body under the
// requested [ExecutionPolicy] once the predecessor's completion event fires.
//
// Because Go methods cannot introduce their own type parameters, the eight
// continuation shapes described by the design (cross product of {Value,
// Result} input and {Unit, Value, Result, Future} output) are exposed as
// eight free generic functions (ThenValue, ThenValueVoid, ThenValueErr,
// ThenValueFuture, ThenResult, ThenResultVoid, ThenResultErr,
// ThenResultFuture), all implemented over one internal dispatcher.
//
// # Cancellation
//
// A [CancellationHandle] groups promises so they can be cancelled together.
// Binding races freely with normal completion; after Cancel returns, every
// bound promise is in a final state, but whether it is the cancelled error
// or a normal result depends on which one reached the promise first.
//
// # Lifetime monitoring
//
// ThenValue and friends accept an Options.Owner; if set, the continuation is
// gated by a [LifetimeMonitor] that resolves to [LifetimeExpired] instead of
// invoking user code when the owner no longer exists.
//
// # Thread safety
//
// Every exported type is safe for concurrent use. Promise.Set/Cancel may be
// called from any goroutine; Future.Then*/Get may likewise be called from
// any goroutine, but a single continuation body is only ever invoked once,
// on whichever goroutine the chosen ExecutionPolicy selects.
package cpfuture
