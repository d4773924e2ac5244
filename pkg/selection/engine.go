package selection

import (
	"errors"
)

// ErrNoDomain is returned when an [Engine] is configured without a [Domain].
var ErrNoDomain = errors.New("selection domain is required")

// Mode tells who owns the current value of an [Engine].
type Mode int

const (
	// Uncontrolled engines own their value; [Engine.Select] writes it.
	Uncontrolled Mode = iota
	// Controlled engines mirror the host's controlling value.
	Controlled
)

func (m Mode) String() string {
	switch m {
	case Uncontrolled:
		return "uncontrolled"
	case Controlled:
		return "controlled"
	}

	return "unknown"
}

// SelectFunc is notified with the requested value and the value that was
// current immediately before the request.
type SelectFunc[T any] func(next, prev T)

// Config configures a new [Engine].
type Config[T any] struct {
	// Initial seeds the value when set. It is never tracked afterwards.
	Initial *T
	// Controlling hands control to the host while it is a member of Domain.
	Controlling *T
	// Domain is required.
	Domain Domain[T]
	// OnSelect is called for every [Engine.Select] and [Engine.Force].
	OnSelect SelectFunc[T]
}

// Engine holds a single selected value under the dual-state rules described
// in the package documentation.
type Engine[T any] struct {
	domain      Domain[T]
	controlling *T
	onSelect    SelectFunc[T]
	current     T
	mode        Mode
}

// New creates an [Engine] and runs the first reconciliation.
func New[T any](cfg Config[T]) (*Engine[T], error) {
	if cfg.Domain == nil {
		return nil, ErrNoDomain
	}

	e := &Engine[T]{
		domain:      cfg.Domain,
		controlling: clone(cfg.Controlling),
		onSelect:    cfg.OnSelect,
	}

	switch {
	case cfg.Initial != nil:
		e.current = *cfg.Initial
	case cfg.Controlling != nil:
		e.current = *cfg.Controlling
	default:
		e.current = cfg.Domain.Default()
	}

	e.reconcile()

	return e, nil
}

// Value returns the current value.
func (e *Engine[T]) Value() T {
	return e.current
}

// Mode returns the current [Mode].
func (e *Engine[T]) Mode() Mode {
	return e.mode
}

// Controlled is shorthand for Mode() == Controlled.
func (e *Engine[T]) Controlled() bool {
	return e.mode == Controlled
}

// Domain returns the active [Domain].
func (e *Engine[T]) Domain() Domain[T] {
	return e.domain
}

// Contains reports whether v is a member of the active domain.
func (e *Engine[T]) Contains(v T) bool {
	return e.domain.Contains(v)
}

// SetOnSelect replaces the notification callback.
func (e *Engine[T]) SetOnSelect(fn SelectFunc[T]) {
	e.onSelect = fn
}

// SetControlling updates the controlling value. Reconciliation only runs
// when v differs from the previous controlling value.
func (e *Engine[T]) SetControlling(v *T) {
	if e.sameControlling(v) {
		return
	}

	e.controlling = clone(v)
	e.reconcile()
}

// SetDomain replaces the domain. Reconciliation only runs when the domain
// changed.
func (e *Engine[T]) SetDomain(d Domain[T]) error {
	return e.Update(e.controlling, d)
}

// Update replaces both the controlling value and the domain, reconciling
// once if either changed.
func (e *Engine[T]) Update(v *T, d Domain[T]) error {
	if d == nil {
		return ErrNoDomain
	}

	changed := !sameDomain(e.domain, d)

	e.domain = d
	if !e.sameControlling(v) {
		e.controlling = clone(v)
		changed = true
	}

	if changed {
		e.reconcile()
	}

	return nil
}

// Select requests next as the new value and returns the previous one.
// Controlled engines keep their value; the host decides through OnSelect.
func (e *Engine[T]) Select(next T) T {
	prev := e.current
	if e.mode == Uncontrolled {
		e.current = next
	}

	e.notify(next, prev)

	return prev
}

// Force writes next regardless of [Mode] and notifies the host. It is meant
// for corrections the host cannot be allowed to veto.
func (e *Engine[T]) Force(next T) T {
	prev := e.current
	e.current = next

	e.notify(next, prev)

	return prev
}

func (e *Engine[T]) notify(next, prev T) {
	if e.onSelect != nil {
		e.onSelect(next, prev)
	}
}

func (e *Engine[T]) reconcile() {
	if e.controlling != nil && e.domain.Contains(*e.controlling) {
		e.current = *e.controlling
		e.mode = Controlled

		return
	}

	e.mode = Uncontrolled
}

func (e *Engine[T]) sameControlling(v *T) bool {
	switch {
	case v == nil && e.controlling == nil:
		return true
	case v == nil || e.controlling == nil:
		return false
	}

	return e.domain.Equal(*v, *e.controlling)
}

// clone copies the pointed-to value so the engine never shares the host's
// variable.
func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}

	c := *v

	return &c
}
