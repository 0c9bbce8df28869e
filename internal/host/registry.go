package host

import (
	"errors"
	"fmt"
	"io"

	"github.com/elliotchance/orderedmap/v2"
)

var (
	ErrDuplicate     = errors.New("component already registered")
	ErrNotRegistered = errors.New("component not registered")
	ErrWrongType     = errors.New("component has unexpected type")
	ErrNilComponent  = errors.New("component is nil")
)

// Registry is the table the host fills with collaborators before building
// the controller. Registration order is kept so Close can tear things
// down in reverse.
type Registry struct {
	entries *orderedmap.OrderedMap[string, any]
}

func NewRegistry() *Registry {
	return &Registry{entries: orderedmap.NewOrderedMap[string, any]()}
}

func (r *Registry) Register(name string, component any) error {
	if component == nil {
		return fmt.Errorf("%w: %s", ErrNilComponent, name)
	}
	if _, ok := r.entries.Get(name); ok {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	r.entries.Set(name, component)
	return nil
}

func (r *Registry) Lookup(name string) (any, bool) {
	return r.entries.Get(name)
}

func (r *Registry) Names() []string {
	return r.entries.Keys()
}

func (r *Registry) Len() int {
	return r.entries.Len()
}

// Resolve fetches name and asserts it to T.
func Resolve[T any](r *Registry, name string) (T, error) {
	var zero T
	v, ok := r.entries.Get(name)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotRegistered, name)
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is %T", ErrWrongType, name, v)
	}
	return t, nil
}

// Close closes every registered io.Closer, newest first, and joins the
// errors.
func (r *Registry) Close() error {
	keys := r.entries.Keys()
	var errs []error
	for i := len(keys) - 1; i >= 0; i-- {
		v, _ := r.entries.Get(keys[i])
		if c, ok := v.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, fmt.Errorf("close %s: %w", keys[i], err))
			}
		}
	}
	return errors.Join(errs...)
}
