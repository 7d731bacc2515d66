package specs

import "testing"

func TestLoadDefaultMissionSpec(t *testing.T) {
	spec, err := LoadMissionSpec("towtrack.yaml")
	if err != nil {
		t.Fatalf("LoadMissionSpec failed: %v", err)
	}

	if spec.Name != "towtrack" {
		t.Fatalf("unexpected name %q", spec.Name)
	}
	if spec.Fuel.Capacity <= 0 || spec.Fuel.BurnRate <= 0 {
		t.Fatalf("fuel spec not positive: %+v", spec.Fuel)
	}
	if len(spec.Route) < 2 {
		t.Fatalf("expected at least two waypoints, got %d", len(spec.Route))
	}
	for i, wp := range spec.Route {
		if wp.Action == "" {
			t.Fatalf("waypoint %d has no action", i)
		}
	}
}

func TestTierResolution(t *testing.T) {
	spec, err := LoadMissionSpec("towtrack.yaml")
	if err != nil {
		t.Fatalf("LoadMissionSpec failed: %v", err)
	}

	cases := []struct {
		name    string
		elapsed float64
		tier    string
	}{
		{"fast", 30, "fast"},
		{"boundary_fast", 45, "fast"},
		{"mid", 60, "mid"},
		{"slow", 120, "slow"},
		{"slower_than_everything", 1000, "slow"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := spec.Tier(c.elapsed)
			if got.Name != c.tier {
				t.Fatalf("elapsed=%v: got tier %q want %q", c.elapsed, got.Name, c.tier)
			}
		})
	}
}

func TestFinaleResolution(t *testing.T) {
	spec := &MissionSpec{
		Finales: []FinaleSpec{
			{Driver: 0, Tier: "fast", Animation: "any_fast"},
			{Driver: 2, Tier: "fast", Animation: "driver2_fast"},
		},
	}

	if got := spec.Finale(2, "fast"); got != "driver2_fast" {
		t.Fatalf("exact driver match should win, got %q", got)
	}
	if got := spec.Finale(4, "fast"); got != "any_fast" {
		t.Fatalf("wildcard should apply for unmatched driver, got %q", got)
	}
	if got := spec.Finale(4, "mid"); got != "" {
		t.Fatalf("unknown tier should resolve to empty, got %q", got)
	}
}
