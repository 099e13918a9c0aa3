//go:build cgo

package graph

import "fmt"

// Open returns the store for backend: "memory" (or empty) or "kuzu". A kuzu
// store is in-memory when path is empty.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemStore(), nil
	case BackendKuzu:
		if path == "" {
			return NewKuzuStore()
		}
		return NewKuzuFileStore(path)
	}
	return nil, fmt.Errorf("graph: unknown backend %q", backend)
}
