package agent

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Factory is a constructor that creates an Agent with the given options.
type Factory func(opts ...Option) Agent

// Registry maps specializations to their factory constructors and keeps
// the agents it has spawned.
type Registry struct {
	mu        sync.Mutex
	factories map[Specialization]Factory
	spawned   []Agent
}

// NewRegistry creates a Registry pre-registered with all framework agents.
func NewRegistry() *Registry {
	r := &Registry{
		factories: make(map[Specialization]Factory),
	}
	r.factories[SpecNextJS] = func(opts ...Option) Agent { return NewNextJSAgent(opts...) }
	r.factories[SpecReact] = func(opts ...Option) Agent { return NewReactAgent(opts...) }
	r.factories[SpecVue] = func(opts ...Option) Agent { return NewVueAgent(opts...) }
	r.factories[SpecUIDesign] = func(opts ...Option) Agent { return NewUIDesignAgent(opts...) }
	return r
}

// Register adds or replaces the factory for spec.
func (r *Registry) Register(spec Specialization, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[spec] = f
}

// Specializations returns the registered specializations, sorted.
func (r *Registry) Specializations() []Specialization {
	r.mu.Lock()
	defer r.mu.Unlock()
	specs := make([]Specialization, 0, len(r.factories))
	for s := range r.factories {
		specs = append(specs, s)
	}
	slices.Sort(specs)
	return specs
}

// Spawn creates and initializes a single agent by specialization.
func (r *Registry) Spawn(spec Specialization, opts ...Option) (Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	factory, ok := r.factories[spec]
	if !ok {
		return nil, fmt.Errorf("no factory registered for specialization %q", spec)
	}
	ag := factory(opts...)
	ag.Initialize()
	r.spawned = append(r.spawned, ag)
	return ag, nil
}

// SpawnAll creates and initializes one agent per registered
// specialization, in sorted order.
func (r *Registry) SpawnAll(opts ...Option) ([]Agent, error) {
	var agents []Agent
	for _, spec := range r.Specializations() {
		ag, err := r.Spawn(spec, opts...)
		if err != nil {
			return nil, err
		}
		agents = append(agents, ag)
	}
	return agents, nil
}

// Spawned returns the agents spawned so far, in spawn order.
func (r *Registry) Spawned() []Agent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.spawned)
}

// ForFramework resolves a framework or specialization name such as
// "Next.js", "nextjs", "react" or "ui" to a specialization.
func ForFramework(name string) (Specialization, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(".", "", "-", "_", " ", "_").Replace(n)
	switch n {
	case "nextjs", "next":
		return SpecNextJS, nil
	case "react":
		return SpecReact, nil
	case "vue", "vuejs":
		return SpecVue, nil
	case "ui", "ui_design", "design", "design_system":
		return SpecUIDesign, nil
	}
	return "", fmt.Errorf("no agent handles framework %q", name)
}

// ProjectOperation names the operation that scaffolds a whole project for
// spec.
func ProjectOperation(spec Specialization) string {
	switch spec {
	case SpecNextJS:
		return "generate_nextjs_app"
	case SpecReact:
		return "generate_react_app"
	case SpecVue:
		return "generate_vue_app"
	case SpecUIDesign:
		return "create_design_system"
	}
	return ""
}
