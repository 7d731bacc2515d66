package path

import "testing"

func twoLegRoute() []Waypoint {
	return []Waypoint{
		{Name: "crash_site", X: 10, Y: 0},
		{Name: "garage", X: 10, Y: 10},
	}
}

func TestFollowerCrossesWaypointsInOrder(t *testing.T) {
	f := NewFollower(twoLegRoute(), 10)
	f.SetThrottle(1)

	if crossed := f.Update(0.5); len(crossed) != 0 {
		t.Fatalf("crossed too early: %v", crossed)
	}
	crossed := f.Update(0.5)
	if len(crossed) != 1 || crossed[0] != 0 {
		t.Fatalf("expected first waypoint, got %v", crossed)
	}
	crossed = f.Update(1.0)
	if len(crossed) != 1 || crossed[0] != 1 {
		t.Fatalf("expected second waypoint, got %v", crossed)
	}
	if !f.Done() {
		t.Fatalf("route should be done")
	}
}

func TestFollowerLargeStepCrossesSeveral(t *testing.T) {
	f := NewFollower(twoLegRoute(), 10)
	f.SetThrottle(1)

	crossed := f.Update(10)
	if len(crossed) != 2 || crossed[0] != 0 || crossed[1] != 1 {
		t.Fatalf("expected both waypoints in order, got %v", crossed)
	}
}

func TestFollowerInputs(t *testing.T) {
	cases := []struct {
		name     string
		throttle float64
		steer    float64
		dt       float64
		moves    bool
	}{
		{"no_throttle", 0, 0, 1, false},
		{"negative_throttle_clamped", -2, 0, 1, false},
		{"full_throttle", 1, 0, 0.1, true},
		{"hard_steer_still_moves", 1, 1, 0.1, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := NewFollower(twoLegRoute(), 10)
			f.SetThrottle(c.throttle)
			f.SetSteer(c.steer)
			f.Update(c.dt)
			x, y := f.Position()
			moved := x != 0 || y != 0
			if moved != c.moves {
				t.Fatalf("moved=%v want %v (pos %v,%v)", moved, c.moves, x, y)
			}
		})
	}
}

func TestFollowerStopAndReset(t *testing.T) {
	f := NewFollower(twoLegRoute(), 10)
	f.SetThrottle(1)
	f.Update(1.0)

	f.Stop()
	x, y := f.Position()
	f.Update(1.0)
	if nx, ny := f.Position(); nx != x || ny != y {
		t.Fatalf("moved after Stop")
	}

	f.Reset()
	f.SetStart(0, 0)
	if f.Done() {
		t.Fatalf("reset follower should not be done")
	}
	f.SetThrottle(1)
	crossed := f.Update(0.1)
	if len(crossed) != 0 {
		t.Fatalf("fresh run should not cross a waypoint instantly, got %v", crossed)
	}
}
