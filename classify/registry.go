package classify

import (
	"strings"
	"sync"

	"github.com/aponysus/outcome/internal"
)

// Built-in classifier registry names.
const (
	ClassifierHTTP    = "http"
	ClassifierLenient = "lenient"
)

// Registry is a thread-safe name → StatusClassifier map.
type Registry struct {
	mu sync.RWMutex
	m  map[string]StatusClassifier
}

func NewRegistry() *Registry {
	return &Registry{m: make(map[string]StatusClassifier)}
}

// NewDefaultRegistry returns a Registry holding the built-in classifiers.
func NewDefaultRegistry() *Registry {
	reg := NewRegistry()
	RegisterBuiltins(reg)
	return reg
}

// RegisterBuiltins registers the built-in classifiers into reg.
func RegisterBuiltins(reg *Registry) {
	if reg == nil {
		return
	}
	reg.Register(ClassifierHTTP, HTTPClassifier{})
	reg.Register(ClassifierLenient, LenientClassifier{})
}

// Register associates name with c. Empty names and nil classifiers are ignored.
func (r *Registry) Register(name string, c StatusClassifier) {
	if r == nil {
		return
	}
	name = strings.TrimSpace(name)
	if name == "" || internal.IsTypedNil(c) {
		return
	}

	r.mu.Lock()
	if r.m == nil {
		r.m = make(map[string]StatusClassifier)
	}
	r.m[name] = c
	r.mu.Unlock()
}

func (r *Registry) Get(name string) (StatusClassifier, bool) {
	if r == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	r.mu.RLock()
	c, ok := r.m[name]
	r.mu.RUnlock()
	return c, ok && c != nil
}
