// Package path provides a minimal waypoint-route follower for actors whose
// movement is driven by throttle input. It only tracks progress along the
// route; collision and placement belong to the surrounding simulation.
package path

import "math"

type Waypoint struct {
	Name string
	X    float64
	Y    float64
}

// Follower advances a position along a fixed route at throttle-scaled speed
// and reports each waypoint as it is crossed.
type Follower struct {
	route    []Waypoint
	speed    float64
	x, y     float64
	next     int
	throttle float64
	steer    float64
}

func NewFollower(route []Waypoint, speed float64) *Follower {
	f := &Follower{
		route: append([]Waypoint(nil), route...),
		speed: speed,
	}
	return f
}

// SetStart places the follower at a position without touching route progress.
func (f *Follower) SetStart(x, y float64) {
	if f == nil {
		return
	}
	f.x, f.y = x, y
}

func (f *Follower) SetThrottle(v float64) {
	if f == nil {
		return
	}
	f.throttle = clamp(v, 0, 1)
}

// SetSteer records steering input. Hard steering bleeds off forward speed.
func (f *Follower) SetSteer(v float64) {
	if f == nil {
		return
	}
	f.steer = clamp(v, -1, 1)
}

// Stop zeroes the inputs, leaving position and progress untouched.
func (f *Follower) Stop() {
	if f == nil {
		return
	}
	f.throttle = 0
	f.steer = 0
}

// Reset rewinds route progress to the first waypoint.
func (f *Follower) Reset() {
	if f == nil {
		return
	}
	f.next = 0
	f.throttle = 0
	f.steer = 0
}

// Done reports whether every waypoint has been crossed.
func (f *Follower) Done() bool {
	return f == nil || f.next >= len(f.route)
}

// Position returns the current location.
func (f *Follower) Position() (x, y float64) {
	if f == nil {
		return 0, 0
	}
	return f.x, f.y
}

// Update advances by dt seconds and returns the indexes of waypoints crossed
// this tick, in route order. A single large step can cross several.
func (f *Follower) Update(dt float64) []int {
	if f == nil || dt <= 0 || f.Done() || f.throttle <= 0 {
		return nil
	}

	travel := f.speed * f.throttle * (1 - 0.5*math.Abs(f.steer)) * dt

	var crossed []int
	for travel > 0 && !f.Done() {
		wp := f.route[f.next]
		dx := wp.X - f.x
		dy := wp.Y - f.y
		dist := math.Hypot(dx, dy)
		if dist <= travel {
			f.x, f.y = wp.X, wp.Y
			crossed = append(crossed, f.next)
			f.next++
			travel -= dist
			continue
		}
		f.x += dx / dist * travel
		f.y += dy / dist * travel
		travel = 0
	}
	return crossed
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
