package gamedata

import (
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
)

// DefaultScenario is the scenario used when none is requested.
const DefaultScenario = "classic"

// ScenarioRegistry holds loaded scenarios and provides lookup utilities.
type ScenarioRegistry struct {
	scenarios map[string]*Scenario
	all       []Scenario
}

// NewScenarioRegistry creates a registry from loaded scenarios.
func NewScenarioRegistry(scenarios []Scenario) *ScenarioRegistry {
	registry := &ScenarioRegistry{
		scenarios: make(map[string]*Scenario),
		all:       scenarios,
	}
	for i := range scenarios {
		registry.scenarios[scenarios[i].ID] = &scenarios[i]
	}
	return registry
}

// LoadScenarioRegistry loads and creates a registry from the embedded scenarios.yaml.
func LoadScenarioRegistry() (*ScenarioRegistry, error) {
	scenarios, err := LoadScenarios()
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, errors.New("no scenarios loaded from scenarios.yaml")
	}
	return NewScenarioRegistry(scenarios), nil
}

// MustLoadScenarioRegistry loads a registry, panicking on error.
func MustLoadScenarioRegistry() *ScenarioRegistry {
	return must.M1(LoadScenarioRegistry())
}

// GetByID returns the scenario with the given ID, or nil if not found.
func (r *ScenarioRegistry) GetByID(id string) *Scenario {
	return r.scenarios[id]
}

// Lookup returns the scenario with the given ID or an error naming the known ones.
func (r *ScenarioRegistry) Lookup(id string) (*Scenario, error) {
	if s := r.scenarios[id]; s != nil {
		return s, nil
	}
	return nil, errors.Errorf("unknown scenario %q (known: %v)", id, r.IDs())
}

// IDs returns the scenario IDs in file order.
func (r *ScenarioRegistry) IDs() []string {
	ids := make([]string, 0, len(r.all))
	for _, s := range r.all {
		ids = append(ids, s.ID)
	}
	return ids
}

// All returns all scenarios.
func (r *ScenarioRegistry) All() []Scenario {
	return r.all
}

// Count returns the number of scenarios in the registry.
func (r *ScenarioRegistry) Count() int {
	return len(r.all)
}
