package metamodel

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Registry holds packages by namespace URI in registration order.
type Registry struct {
	mu       sync.RWMutex
	packages []*Package
	byURI    map[string]*Package
}

// DefaultRegistry is the process-wide registry consulted by the nsuri directive.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry holding the given packages.
func NewRegistry(pkgs ...*Package) *Registry {
	r := &Registry{byURI: make(map[string]*Package)}
	r.Register(pkgs...)

	return r
}

// Register adds packages to the registry. A package whose namespace URI is already
// registered replaces the previous one at its original position.
// It reports whether any registry content changed.
func (r *Registry) Register(pkgs ...*Package) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	changed := false

	for _, p := range pkgs {
		if p == nil {
			continue
		}

		prev, ok := r.byURI[p.NsURI]
		if ok && prev == p {
			continue
		}

		changed = true
		r.byURI[p.NsURI] = p

		if ok {
			for i := range r.packages {
				if r.packages[i] == prev {
					r.packages[i] = p
				}
			}

			continue
		}

		r.packages = append(r.packages, p)

		log.Debug().Str("nsuri", p.NsURI).Str("package", p.Name).Msg("package registered")
	}

	return changed
}

// Lookup returns the package registered under the given namespace URI.
func (r *Registry) Lookup(nsURI string) (*Package, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byURI[nsURI]

	return p, ok
}

// Packages returns a snapshot of the registered packages in registration order.
func (r *Registry) Packages() []*Package {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Package(nil), r.packages...)
}

// ConcreteClassifiers returns every non-abstract classifier, in registration order
// and then declaration order.
func (r *Registry) ConcreteClassifiers() []*Classifier {
	var result []*Classifier

	for _, p := range r.Packages() {
		for _, c := range p.Classifiers {
			if !c.Abstract {
				result = append(result, c)
			}
		}
	}

	return result
}

// Classifier resolves a classifier by id.
func (r *Registry) Classifier(id ClassifierID) (*Classifier, bool) {
	p, ok := r.Lookup(id.NsURI)
	if !ok {
		return nil, false
	}

	return p.Classifier(id.Name)
}
