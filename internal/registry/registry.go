// Package registry provides a global registry for hunter and prey policy
// factories. Policies register themselves in init() functions, allowing the
// episode runner and the CLI to discover and instantiate them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/evasion/internal/evasion"
)

// Policy is the part shared by hunter and prey policies.
type Policy interface {
	// ID returns a unique identifier (e.g., "boxer", "flee").
	// Used for CLI flags and stored episode outcomes.
	ID() string

	// Description returns a one-line summary for listings.
	Description() string

	// Reset prepares the policy for a new episode. Randomised policies
	// reseed from seed so episodes replay exactly.
	Reset(seed int64)
}

// Hunter decides the hunter's wall actions. The hunter's motion is pure
// physics; only building and removal are chosen.
type Hunter interface {
	Policy

	// Act returns the action for the next tick given the current state.
	Act(s evasion.Snapshot) evasion.HunterAction
}

// Prey decides the prey's next step.
type Prey interface {
	Policy

	// Move returns the step for the next tick. A nil result leaves the
	// choice to the environment's default random walk.
	Move(s evasion.Snapshot) *evasion.Point
}

// PolicyInfo contains metadata about a registered policy.
type PolicyInfo struct {
	ID          string
	Description string
}

// HunterFactory creates a new hunter policy instance.
type HunterFactory func() Hunter

// PreyFactory creates a new prey policy instance.
type PreyFactory func() Prey

// catalog holds the factories of one policy kind.
type catalog[T Policy] struct {
	kind         string
	mu           sync.RWMutex
	factories    map[string]func() T
	descriptions map[string]string
}

func newCatalog[T Policy](kind string) *catalog[T] {
	return &catalog[T]{
		kind:         kind,
		factories:    make(map[string]func() T),
		descriptions: make(map[string]string),
	}
}

func (c *catalog[T]) register(id string, f func() T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.factories[id]; exists {
		panic(fmt.Sprintf("registry: %s %q already registered", c.kind, id))
	}

	c.factories[id] = f

	// Get description by creating a temporary instance
	c.descriptions[id] = f().Description()
}

func (c *catalog[T]) list() []PolicyInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]PolicyInfo, 0, len(c.factories))
	for id := range c.factories {
		result = append(result, PolicyInfo{
			ID:          id,
			Description: c.descriptions[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

func (c *catalog[T]) create(id string) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.factories[id]
	if !ok {
		var zero T
		return zero, fmt.Errorf("registry: unknown %s %q", c.kind, id)
	}
	return f(), nil
}

func (c *catalog[T]) exists(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.factories[id]
	return ok
}

var (
	hunters = newCatalog[Hunter]("hunter")
	preys   = newCatalog[Prey]("prey")
)

// RegisterHunter adds a hunter factory to the registry.
// Panics if a hunter with the same ID is already registered.
func RegisterHunter(id string, f HunterFactory) {
	hunters.register(id, f)
}

// RegisterPrey adds a prey factory to the registry.
// Panics if a prey with the same ID is already registered.
func RegisterPrey(id string, f PreyFactory) {
	preys.register(id, f)
}

// Hunters returns all registered hunter policies, sorted by ID.
func Hunters() []PolicyInfo {
	return hunters.list()
}

// Preys returns all registered prey policies, sorted by ID.
func Preys() []PolicyInfo {
	return preys.list()
}

// CreateHunter instantiates a new hunter policy by its ID.
func CreateHunter(id string) (Hunter, error) {
	return hunters.create(id)
}

// CreatePrey instantiates a new prey policy by its ID.
func CreatePrey(id string) (Prey, error) {
	return preys.create(id)
}

// HunterExists checks if a hunter policy with the given ID is registered.
func HunterExists(id string) bool {
	return hunters.exists(id)
}

// PreyExists checks if a prey policy with the given ID is registered.
func PreyExists(id string) bool {
	return preys.exists(id)
}
