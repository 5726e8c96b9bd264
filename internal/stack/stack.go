// Package stack provides a growable stack shared by nested recursive calls,
// where each call owns the entries it pushed and gives them back on return.
//
// A typical recursive user opens a scope on entry and releases it with defer:
//
//	scope := s.Scope()
//	defer scope.Release()
//	if m != nil {
//		scope.Push(m)
//	}
//	recurse(child, scope.Stack())
//
// The deferred Release runs on every way out of the function, including early
// returns and panics, so the stack a caller sees after the call is exactly the
// stack it passed in.
package stack

// Stack is a LIFO collection whose entries are shared, not copied, between
// nesting levels.
type Stack[T any] struct {
	items []T
}

// New creates a stack holding items, bottom first.
func New[T any](items ...T) *Stack[T] {
	return &Stack[T]{items: append([]T(nil), items...)}
}

// Items returns the current entries, bottom first. The slice aliases the
// stack's storage and is only valid until the next Push or Release.
func (s *Stack[T]) Items() []T {
	return s.items
}

// Len returns the number of entries.
func (s *Stack[T]) Len() int {
	return len(s.items)
}

// Scope opens a scope on s that owns no entries yet.
func (s *Stack[T]) Scope() *Scope[T] {
	return &Scope[T]{stack: s}
}

// Scope is a guard over a Stack that remembers how many trailing entries it
// pushed.
type Scope[T any] struct {
	stack  *Stack[T]
	pushed int
}

// Push appends v to the underlying stack. The entry belongs to this scope.
func (sc *Scope[T]) Push(v T) {
	sc.stack.items = append(sc.stack.items, v)
	sc.pushed++
}

// Stack returns the shared stack, for matching and for nested scopes.
func (sc *Scope[T]) Stack() *Stack[T] {
	return sc.stack
}

// Pushed returns the number of entries this scope still owns.
func (sc *Scope[T]) Pushed() int {
	return sc.pushed
}

// Release pops every entry pushed through this scope and nothing else.
// Releasing twice is harmless.
func (sc *Scope[T]) Release() {
	var zero T
	items := sc.stack.items
	for ; sc.pushed > 0; sc.pushed-- {
		items[len(items)-1] = zero
		items = items[:len(items)-1]
	}
	sc.stack.items = items
}
