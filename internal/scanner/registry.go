package scanner

import (
	"fmt"
	"sort"

	"github.com/QTest-hq/classscan/internal/resolver"
	"github.com/QTest-hq/classscan/internal/token"
)

// DefaultMethodScanner is the registry name of the base method scanner.
const DefaultMethodScanner = "method"

// Registry selects method sub-scanners by name at runtime.
type Registry struct {
	factories map[string]MethodFactory[MethodScanner]
}

// NewRegistry creates a registry holding the built-in method scanners.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]MethodFactory[MethodScanner])}

	r.Register(DefaultMethodScanner, func(tokens []token.Token, className string, imports resolver.ImportMap) MethodScanner {
		return NewMethod(tokens, className, imports)
	})
	r.Register("signature", func(tokens []token.Token, className string, imports resolver.ImportMap) MethodScanner {
		return NewSignature(tokens, className, imports)
	})

	return r
}

// Register adds or replaces a named factory.
func (r *Registry) Register(name string, factory MethodFactory[MethodScanner]) {
	r.factories[name] = factory
}

// Get returns the factory registered under name. An empty name selects the
// base method scanner.
func (r *Registry) Get(name string) (MethodFactory[MethodScanner], error) {
	if name == "" {
		name = DefaultMethodScanner
	}
	factory, ok := r.factories[name]
	if !ok || factory == nil {
		return nil, fmt.Errorf("%w: %q", ErrScannerType, name)
	}
	return factory, nil
}

// Names lists registered scanner names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Method builds the named sub-scanner for the method selected by ref.
func (r *Registry) Method(s *ClassScanner, ref MemberRef, name string) (MethodScanner, error) {
	factory, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	return MethodWith(s, ref, factory)
}
