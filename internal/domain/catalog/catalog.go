// Package catalog holds the fixed registry of service definitions. The
// registry recognizes exactly ten service names, each with a constant
// skill-weight vector; Service instances are materialized lazily and cached
// once per name by the engine.
package catalog

import "github.com/okian/souk/pkg/container"

// Dimensions of the skill vector, in scan order.
const (
	IdxTechnical = iota
	IdxCommunication
	IdxCreativity
	IdxEfficiency
	IdxAttention
	Dimensions
)

// Service is an immutable service definition: the per-dimension skill
// weights and the precomputed scoring denominator 100 x sum(weights).
type Service struct {
	Name        string
	Weights     [Dimensions]int
	Denominator float64
}

var serviceNames = []string{
	"paint", "web_dev", "graphic_design", "data_entry", "tutoring",
	"cleaning", "writing", "photography", "plumbing", "electrical",
}

var serviceWeights = [][Dimensions]int{
	{70, 60, 50, 85, 90},
	{95, 75, 85, 80, 90},
	{75, 85, 95, 70, 85},
	{50, 50, 30, 95, 95},
	{80, 95, 70, 90, 75},
	{40, 60, 40, 90, 85},
	{70, 85, 90, 80, 95},
	{85, 80, 90, 75, 90},
	{85, 65, 60, 90, 85},
	{90, 65, 70, 95, 95},
}

var registry = buildRegistry()

func buildRegistry() *container.Map[[Dimensions]int] {
	m := container.NewMap[[Dimensions]int](32)
	for i, name := range serviceNames {
		m.Put(name, serviceWeights[i])
	}
	return m
}

// Valid reports whether name is a recognized service type.
func Valid(name string) bool {
	return registry.ContainsKey(name)
}

// Names returns the recognized service names in registry order.
func Names() []string {
	names := make([]string, len(serviceNames))
	copy(names, serviceNames)
	return names
}

// New materializes the definition for name. Intended as the factory for the
// engine's per-name cache; callers validate the name first.
func New(name string) *Service {
	s := &Service{Name: name}
	weights, ok := registry.Get(name)
	if !ok {
		return s
	}
	s.Weights = weights
	sum := 0
	for _, w := range weights {
		sum += w
	}
	s.Denominator = 100.0 * float64(sum)
	return s
}
