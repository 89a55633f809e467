package cpfuture

import "time"

// TimerService is the one-shot tick service external collaborator that
// [Wait] is built over.
type TimerService interface {
	// AfterFunc arranges for fn to run once, after d elapses. The
	// returned stop cancels the pending call if it hasn't fired yet.
	AfterFunc(d time.Duration, fn func()) (stop func())
}

// DefaultTimerService implements TimerService over the standard library's
// time.AfterFunc, standing in for the external tick service.
type DefaultTimerService struct{}

// AfterFunc implements TimerService.
func (DefaultTimerService) AfterFunc(d time.Duration, fn func()) (stop func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

var defaultTimerService TimerService = DefaultTimerService{}

// Wait returns a Future that resolves with Ok(struct{}{}) after delaySeconds
// elapses. opts.WithTimer substitutes the TimerService; every other
// Options field is ignored; Wait is not bound to any CancellationHandle
// or execution policy of its own. Callers that want cancellation or a
// specific execution policy compose it with a Then* call afterward instead
// of Wait special-casing those fields.
func Wait(delaySeconds float64, opts Options) Future[struct{}] {
	p, f := NewPromise[struct{}]()
	opts.resolvedTimer().AfterFunc(time.Duration(delaySeconds*float64(time.Second)), func() {
		p.SetValue(struct{}{})
	})
	return f
}
