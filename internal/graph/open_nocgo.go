//go:build !cgo

package graph

import "fmt"

// Open returns the store for backend. Binaries built without cgo only
// support the memory backend.
func Open(backend, _ string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemStore(), nil
	case BackendKuzu:
		return nil, fmt.Errorf("graph: the kuzu backend requires a cgo build")
	}
	return nil, fmt.Errorf("graph: unknown backend %q", backend)
}
