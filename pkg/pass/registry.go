package pass

import (
	"fmt"
	"reflect"
)

// MaxPasses is the number of passes a Registry can hold. Pass i is selected by bit i of
// a 64 bit mask; the highest bit is reserved so that it can stand for "no pass".
const MaxPasses = 63

// CapacityError is returned when registering more than MaxPasses passes.
type CapacityError struct {
	Name     string
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("pass registry is full (%d passes), can't register %q", e.Capacity, e.Name)
}

// Registry is the ordered list of passes. The position of a pass is its bit index in
// the selection mask and the order in which it runs. A Registry is assembled once at
// startup and never changes afterwards.
type Registry struct {
	passes []RenderPass
}

// NewRegistry creates a registry holding passes in the given order.
func NewRegistry(passes ...RenderPass) (*Registry, error) {
	r := &Registry{}
	for _, p := range passes {
		if _, err := r.Register(p); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends p and returns its index.
func (r *Registry) Register(p RenderPass) (int, error) {
	if p == nil {
		return 0, fmt.Errorf("can't register a nil pass")
	}
	if len(r.passes) >= MaxPasses {
		return 0, &CapacityError{Name: p.Name(), Capacity: MaxPasses}
	}
	for _, existing := range r.passes {
		if samePass(existing, p) {
			return 0, fmt.Errorf("pass %q is already registered", p.Name())
		}
	}

	r.passes = append(r.passes, p)
	return len(r.passes) - 1, nil
}

// Len returns the number of registered passes.
func (r *Registry) Len() int {
	return len(r.passes)
}

// At returns the pass at index i.
func (r *Registry) At(i int) RenderPass {
	return r.passes[i]
}

// Passes returns a copy of the registered passes in registry order.
func (r *Registry) Passes() []RenderPass {
	return append([]RenderPass(nil), r.passes...)
}

// Names returns the names of all passes in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.passes))
	for i, p := range r.passes {
		names[i] = p.Name()
	}
	return names
}

// samePass reports whether a and b are the same pass instance. Only pointer based
// passes can be identified, value passes never compare equal.
func samePass(a, b RenderPass) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != reflect.Ptr || vb.Kind() != reflect.Ptr {
		return false
	}
	return va.Type() == vb.Type() && va.Pointer() == vb.Pointer()
}
