package specs

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

type FuelSpec struct {
	Capacity float64 `yaml:"capacity"`
	BurnRate float64 `yaml:"burn_rate"` // units per second at full throttle
}

// WaypointSpec is one leg endpoint on the tow route. Reaching it triggers
// the named scene action.
type WaypointSpec struct {
	Name   string  `yaml:"name"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Action string  `yaml:"action"`
}

// TierSpec maps an elapsed-time ceiling to a score. Tiers are evaluated in
// ascending MaxTime order; the first one the run beats wins.
type TierSpec struct {
	Name    string  `yaml:"name"`
	MaxTime float64 `yaml:"max_time"`
	Score   int16   `yaml:"score"`
}

// FinaleSpec names the final animation for a driver and tier. Driver 0
// matches any driver.
type FinaleSpec struct {
	Driver    int    `yaml:"driver"`
	Tier      string `yaml:"tier"`
	Animation string `yaml:"animation"`
}

type MissionSpec struct {
	Name            string         `yaml:"name"`
	Speed           float64        `yaml:"speed"`
	Fuel            FuelSpec       `yaml:"fuel"`
	IntroAction     string         `yaml:"intro_action"`
	OutOfFuelAction string         `yaml:"out_of_fuel_action"`
	Route           []WaypointSpec `yaml:"route"`
	Tiers           []TierSpec     `yaml:"tiers"`
	Finales         []FinaleSpec   `yaml:"finales"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("specs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("specs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadMissionSpec loads and validates a mission spec file.
func LoadMissionSpec(filename string) (*MissionSpec, error) {
	spec, err := LoadSpec[MissionSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("specs: %s: %w", filename, err)
	}
	sort.SliceStable(spec.Tiers, func(i, j int) bool {
		return spec.Tiers[i].MaxTime < spec.Tiers[j].MaxTime
	})
	return &spec, nil
}

func (s *MissionSpec) validate() error {
	if s.Fuel.Capacity <= 0 {
		return fmt.Errorf("fuel capacity must be positive")
	}
	if s.Fuel.BurnRate <= 0 {
		return fmt.Errorf("fuel burn rate must be positive")
	}
	if s.Speed <= 0 {
		return fmt.Errorf("speed must be positive")
	}
	if s.IntroAction == "" {
		return fmt.Errorf("intro_action is required")
	}
	if len(s.Route) == 0 {
		return fmt.Errorf("route must have at least one waypoint")
	}
	for i, wp := range s.Route {
		if wp.Action == "" {
			return fmt.Errorf("route waypoint %d (%s) has no action", i, wp.Name)
		}
	}
	if len(s.Tiers) == 0 {
		return fmt.Errorf("at least one score tier is required")
	}
	return nil
}

// Tier resolves the score tier for an elapsed run time. Runs slower than
// every tier fall into the last (slowest) tier.
func (s *MissionSpec) Tier(elapsed float64) TierSpec {
	for _, t := range s.Tiers {
		if elapsed <= t.MaxTime {
			return t
		}
	}
	return s.Tiers[len(s.Tiers)-1]
}

// Finale resolves the final animation for a driver and tier. An exact
// driver match wins over a driver-0 wildcard.
func (s *MissionSpec) Finale(driver int, tier string) string {
	wildcard := ""
	for _, f := range s.Finales {
		if f.Tier != tier {
			continue
		}
		if f.Driver == driver {
			return f.Animation
		}
		if f.Driver == 0 && wildcard == "" {
			wildcard = f.Animation
		}
	}
	return wildcard
}
