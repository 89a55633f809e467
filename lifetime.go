package cpfuture

import (
	"context"
	"fmt"
)

// Liveness is the capability an owner type can implement to participate in
// lifetime monitoring without using a context.Context: a type that can
// answer "am I still alive?" cheaply and safely from any goroutine.
type Liveness interface {
	// Alive reports whether the owner is still usable. Once it returns
	// false it must never return true again.
	Alive() bool
}

// LifetimeMonitor is a weak capability over an owner object of type T: Pin
// attempts to upgrade to a strong guard (the owner itself, plus a liveness
// bit) that is valid for the duration of one continuation call.
//
// Go has no compile-time template specialization, so this package rejects
// unsupported owner types at [NewLifetimeMonitor] call time with a panic
// instead of at compile time. For Then*'s gating the same check runs in
// Options.WithOwner, before the Then* call and not at scheduling time, so a
// shape violation is caught during registration rather than later when the
// continuation would run.
type LifetimeMonitor[T any] struct {
	owner T
	alive func() bool
}

// NewLifetimeMonitor builds a monitor over owner. owner must implement
// [Liveness] or be a context.Context; any other type panics, since this
// package cannot otherwise answer whether owner is still alive.
func NewLifetimeMonitor[T any](owner T) LifetimeMonitor[T] {
	switch v := any(owner).(type) {
	case Liveness:
		return LifetimeMonitor[T]{owner: owner, alive: v.Alive}
	case context.Context:
		return LifetimeMonitor[T]{owner: owner, alive: func() bool { return v.Err() == nil }}
	default:
		panic(fmt.Sprintf("cpfuture: owner type %T has no lifetime capability: implement Liveness or pass a context.Context", owner))
	}
}

// validateOwnerCapability panics if owner is non-nil and implements neither
// [Liveness] nor context.Context. Options.WithOwner calls this so an
// unsupported owner type is rejected where it is supplied, not later when
// the continuation it gates happens to be scheduled.
func validateOwnerCapability(owner any) {
	if owner == nil {
		return
	}
	switch owner.(type) {
	case Liveness, context.Context:
		return
	default:
		panic(fmt.Sprintf("cpfuture: owner type %T has no lifetime capability: implement Liveness or pass a context.Context", owner))
	}
}

// Pin attempts to upgrade the monitor to a strong guard. ok is false if the
// owner is no longer alive; in that case owner's zero value is returned and
// must not be used.
func (m LifetimeMonitor[T]) Pin() (owner T, ok bool) {
	if m.alive == nil {
		return m.owner, true
	}
	if !m.alive() {
		var zero T
		return zero, false
	}
	return m.owner, true
}

// ownerAlive is the untyped form used by the continuation dispatcher, which
// only ever needs a yes/no answer and never needs to hand the owner back to
// the user (Options.Owner is not passed into the continuation body). A nil
// owner means "no owner set", and always pins successfully. The default
// panic below is unreachable in practice: Options.WithOwner already rejects
// any owner that would land here by the time a continuation is scheduled.
func ownerAlive(owner any) bool {
	if owner == nil {
		return true
	}
	switch v := owner.(type) {
	case Liveness:
		return v.Alive()
	case context.Context:
		return v.Err() == nil
	default:
		panic(fmt.Sprintf("cpfuture: owner type %T has no lifetime capability: implement Liveness or pass a context.Context", owner))
	}
}
