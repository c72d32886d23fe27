package sprig

import (
	"errors"
	"fmt"
)

var (
	// ErrSingularTransform is returned when inverting a transform whose
	// determinant is zero (or not finite).
	ErrSingularTransform = errors.New("sprig: transform is not invertible")

	// ErrOwnership is matched by every *OwnershipError.
	ErrOwnership = errors.New("sprig: node already has a parent")

	// ErrCycle is returned when attaching a node under itself or one of its
	// descendants.
	ErrCycle = errors.New("sprig: adding child would create a cycle")

	// ErrQuit is returned by Scene.Update after a frame script's quit step.
	// Run treats it as a normal exit.
	ErrQuit = errors.New("sprig: quit requested")

	ErrNilNode         = errors.New("sprig: nil node")
	ErrDisposed        = errors.New("sprig: node is disposed")
	ErrNotChild        = errors.New("sprig: node is not a child of this parent")
	ErrIndexOutOfRange = errors.New("sprig: child index out of range")
)

// OwnershipError reports an attempt to attach a node that is already owned by
// another parent. Detach it first, or use Node.Reparent.
type OwnershipError struct {
	Child  *Node
	Owner  *Node
	Target *Node
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("sprig: cannot add %q to %q: already a child of %q",
		e.Child.Name, e.Target.Name, e.Owner.Name)
}

// Is makes errors.Is(err, ErrOwnership) true.
func (e *OwnershipError) Is(target error) bool {
	return target == ErrOwnership
}

// NonFiniteError reports a NaN or infinite matrix element.
type NonFiniteError struct {
	Index int
	Value float64
}

func (e *NonFiniteError) Error() string {
	return fmt.Sprintf("sprig: transform element %d is not finite (%v)", e.Index, e.Value)
}
