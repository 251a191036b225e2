// Package policies contains the built-in hunter and prey strategies. Each
// registers itself with the registry on import.
package policies

import (
	"github.com/vovakirdan/evasion/internal/registry"
)

func init() {
	registry.RegisterHunter("idle", func() registry.Hunter { return &Idle{} })
	registry.RegisterHunter("random", func() registry.Hunter { return NewRandom() })
	registry.RegisterHunter("boxer", func() registry.Hunter { return &Boxer{} })

	registry.RegisterPrey("drift", func() registry.Prey { return &Drift{} })
	registry.RegisterPrey("still", func() registry.Prey { return &Still{} })
	registry.RegisterPrey("flee", func() registry.Prey { return &Flee{} })
}
