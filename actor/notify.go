package actor

import "github.com/milk9111/towtruck/script"

// Notification is the closed set of events the tow truck reacts to. Dispatch
// happens in Notify through a single type switch; each variant carries only
// what its handler needs.
type Notification interface {
	notification()
}

// Click is a player interaction request. Driver selects the score slot for
// the run; zero defaults to slot 1.
type Click struct {
	Driver int
}

// ControlID identifies a control-panel input channel.
type ControlID int

const (
	ControlThrottle ControlID = iota
	ControlSteer
)

// Control is steering or throttle input from the control panel.
type Control struct {
	Control ControlID
	Value   float64
}

// EndAnim reports that a previously issued animation finished playing.
type EndAnim struct {
	ID script.ObjectID
}

// EndPathSegment reports arrival at a route waypoint.
type EndPathSegment struct {
	Waypoint int
}

// EndAction reports that a previously issued scene action completed.
type EndAction struct {
	ID script.ObjectID
}

func (Click) notification()          {}
func (Control) notification()        {}
func (EndAnim) notification()        {}
func (EndPathSegment) notification() {}
func (EndAction) notification()      {}
