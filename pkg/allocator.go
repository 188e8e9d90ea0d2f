package volt

import "github.com/pkg/errors"

// Allocator is the allocation-accounting collaborator contract every
// component constructor threads through. Go has a garbage collector, so no
// component in this module needs a custom allocator to function; the
// interface exists so a caller instrumenting allocation counts (arena
// accounting, leak tracking in tests) can substitute their own.
// DefaultAllocator below is the no-op implementation every component falls
// back to when none is supplied.
type Allocator interface {
	// Alloc reserves n "units" of bookkeeping capacity. It never fails under
	// DefaultAllocator; a custom allocator tracking a budget may return
	// ErrAllocationFailed.
	Alloc(n int) error

	// Release returns n units of capacity previously reserved by Alloc.
	Release(n int)
}

// ErrAllocationFailed is returned by an Allocator.Alloc implementation that
// enforces a budget and has exhausted it.
var ErrAllocationFailed = errors.New("volt: allocation failed")

// DefaultAllocator is the zero-cost Allocator every component uses when the
// caller passes nil. It never refuses an allocation.
type DefaultAllocator struct{}

func (DefaultAllocator) Alloc(int) error { return nil }
func (DefaultAllocator) Release(int)     {}

// BudgetedAllocator is a reference Allocator that enforces a maximum
// outstanding unit count, useful in tests that want to exercise the
// ErrAllocationFailed path.
type BudgetedAllocator struct {
	Limit       int
	outstanding int
}

func (b *BudgetedAllocator) Alloc(n int) error {
	if b.outstanding+n > b.Limit {
		return errors.Wrapf(ErrAllocationFailed, "requested %d, limit %d, outstanding %d", n, b.Limit, b.outstanding)
	}
	b.outstanding += n
	return nil
}

func (b *BudgetedAllocator) Release(n int) {
	b.outstanding -= n
	if b.outstanding < 0 {
		b.outstanding = 0
	}
}

// DisposeHook is an optional per-item cleanup hook: disposing a collection
// built with a DisposeHook disposes each item too.
type DisposeHook[T any] func(item T)

// DisposeTokens runs hook over every token in toks if hook is non-nil. The
// Token type itself holds no external resources, so in practice this is a
// no-op unless a caller supplies one (e.g. to decrement an Allocator budget
// per token).
func DisposeTokens(toks []Token, hook DisposeHook[Token]) {
	if hook == nil {
		return
	}
	for _, t := range toks {
		hook(t)
	}
}
