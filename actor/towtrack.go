// Package actor implements the tow truck mini-game actor: a notification
// driven controller that sequences scene actions along a tow route, burns
// fuel while driving, and keeps a persisted best-score record per driver.
package actor

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/milk9111/towtruck/savegame"
	"github.com/milk9111/towtruck/script"
	"github.com/milk9111/towtruck/specs"
)

// Phase is the actor's position in its encounter sequence.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingInput
	PhaseDriving
	PhasePlayingAction
	PhaseFinalAnimation
)

// ScenePlayer plays named scene actions and animations. Completions come
// back as EndAction/EndAnim notifications.
type ScenePlayer interface {
	Play(id script.ObjectID) error
	Stop(id script.ObjectID)
}

// Mover is the narrow slice of path-following the actor steers.
type Mover interface {
	SetThrottle(v float64)
	SetSteer(v float64)
	Stop()
}

// StateStore is the save-game mechanism the mission record plugs into.
type StateStore interface {
	Find(k savegame.Kind) (savegame.State, bool)
	Register(s savegame.State)
	Save() error
}

type Config struct {
	Spec   *specs.MissionSpec
	Scene  ScenePlayer
	Mover  Mover
	States StateStore

	// Now stamps encounter start times. Defaults to wall-clock seconds.
	Now func() int32
}

// TowTrack is the tow truck actor. All handlers run on the simulation's
// update goroutine; nothing here blocks or spawns.
type TowTrack struct {
	spec   *specs.MissionSpec
	scene  ScenePlayer
	mover  Mover
	states StateStore
	now    func() int32

	state    *MissionState
	phase    Phase
	driverID int

	leg           int
	introPlayed   bool
	pendingFinale bool
	finalTier     specs.TierSpec

	fuel     float64
	elapsed  float64
	throttle float64

	lastAction    script.ObjectID
	lastAnimation script.ObjectID
}

func NewTowTrack(cfg Config) (*TowTrack, error) {
	if cfg.Spec == nil {
		return nil, fmt.Errorf("actor: mission spec is required")
	}
	if cfg.Scene == nil {
		return nil, fmt.Errorf("actor: scene player is required")
	}
	if cfg.Mover == nil {
		return nil, fmt.Errorf("actor: mover is required")
	}
	now := cfg.Now
	if now == nil {
		now = func() int32 { return int32(time.Now().Unix()) }
	}
	return &TowTrack{
		spec:   cfg.Spec,
		scene:  cfg.Scene,
		mover:  cfg.Mover,
		states: cfg.States,
		now:    now,
	}, nil
}

func (t *TowTrack) Phase() Phase                   { return t.phase }
func (t *TowTrack) Driver() int                    { return t.driverID }
func (t *TowTrack) Fuel() float64                  { return t.fuel }
func (t *TowTrack) Elapsed() float64               { return t.elapsed }
func (t *TowTrack) LastAction() script.ObjectID    { return t.lastAction }
func (t *TowTrack) LastAnimation() script.ObjectID { return t.lastAnimation }

// State returns the mission record, creating or loading it on first use.
func (t *TowTrack) State() *MissionState {
	t.ensureState()
	return t.state
}

// Notify dispatches one event against the current phase. It reports whether
// the event was consumed; unexpected or mismatched events are ignored.
func (t *TowTrack) Notify(n Notification) bool {
	if t == nil {
		return false
	}
	switch n := n.(type) {
	case Click:
		return t.handleClick(n)
	case Control:
		return t.handleControl(n)
	case EndAnim:
		return t.handleEndAnim(n)
	case EndPathSegment:
		return t.handlePathSegment(n)
	case EndAction:
		return t.handleEndAction(n)
	}
	return false
}

// Update advances the encounter clock and burns fuel while driving. Fuel
// exhaustion ends the run with a zero score before any final animation.
func (t *TowTrack) Update(dt float64) {
	if t == nil || dt <= 0 || t.phase == PhaseIdle {
		return
	}
	t.elapsed += dt

	if t.phase != PhaseDriving {
		return
	}
	burn := t.spec.Fuel.BurnRate * (0.25 + 0.75*t.throttle)
	t.fuel -= burn * dt
	if t.fuel <= 0 {
		t.fuel = 0
		t.outOfFuel()
	}
}

// Exit terminates any active encounter immediately. In-flight actions are
// stopped, the outstanding identifiers cleared, and the mission record kept.
func (t *TowTrack) Exit() {
	if t == nil || t.phase == PhaseIdle {
		return
	}
	if t.lastAction != script.None {
		t.scene.Stop(t.lastAction)
	}
	if t.lastAnimation != script.None {
		t.scene.Stop(t.lastAnimation)
	}
	t.leave()
}

func (t *TowTrack) handleClick(n Click) bool {
	if t.phase != PhaseIdle {
		return false
	}
	t.ensureState()

	driver := n.Driver
	if driver == 0 {
		driver = 1
	}
	t.driverID = driver

	t.state.InProgress = true
	t.state.StartTime = t.now()
	t.state.Attempts = bump(t.state.Attempts)

	t.fuel = t.spec.Fuel.Capacity
	t.elapsed = 0
	t.throttle = 0
	t.leg = 0
	t.introPlayed = false
	t.pendingFinale = false

	t.phase = PhasePlayingAction
	if !t.playAction(script.ObjectID(t.spec.IntroAction)) {
		// No intro to wait for, go straight to the wheel.
		t.phase = PhaseAwaitingInput
		t.introPlayed = true
	}
	return true
}

func (t *TowTrack) handleControl(n Control) bool {
	switch t.phase {
	case PhaseAwaitingInput:
		switch n.Control {
		case ControlThrottle:
			if n.Value <= 0 {
				return false
			}
			t.throttle = clamp01(n.Value)
			t.mover.SetThrottle(t.throttle)
			t.phase = PhaseDriving
			return true
		case ControlSteer:
			t.mover.SetSteer(n.Value)
			return true
		}
	case PhaseDriving:
		switch n.Control {
		case ControlThrottle:
			t.throttle = clamp01(n.Value)
			t.mover.SetThrottle(t.throttle)
			return true
		case ControlSteer:
			t.mover.SetSteer(n.Value)
			return true
		}
	}
	return false
}

func (t *TowTrack) handleEndAnim(n EndAnim) bool {
	if t.lastAnimation == script.None || n.ID != t.lastAnimation {
		return false
	}
	t.lastAnimation = script.None
	if t.phase == PhaseFinalAnimation {
		t.scoreAndLeave(t.finalTier)
	}
	return true
}

func (t *TowTrack) handlePathSegment(n EndPathSegment) bool {
	if t.phase != PhaseDriving {
		return false
	}
	if n.Waypoint < 0 || n.Waypoint >= len(t.spec.Route) {
		return false
	}
	wp := t.spec.Route[n.Waypoint]
	t.leg = n.Waypoint + 1
	t.activateSceneActions(wp)
	return true
}

// activateSceneActions fires the scene action for a reached waypoint and
// pauses driving until it completes.
func (t *TowTrack) activateSceneActions(wp specs.WaypointSpec) {
	t.mover.Stop()
	last := t.leg >= len(t.spec.Route)
	if t.playAction(script.ObjectID(wp.Action)) {
		t.pendingFinale = last
		t.phase = PhasePlayingAction
		return
	}
	if last {
		t.playFinale()
	}
}

func (t *TowTrack) handleEndAction(n EndAction) bool {
	if t.lastAction == script.None || n.ID != t.lastAction {
		return false
	}
	t.lastAction = script.None

	if t.phase != PhasePlayingAction {
		return true
	}
	switch {
	case !t.introPlayed:
		t.introPlayed = true
		t.phase = PhaseAwaitingInput
	case t.pendingFinale:
		t.playFinale()
	default:
		t.phase = PhaseDriving
		t.mover.SetThrottle(t.throttle)
	}
	return true
}

func (t *TowTrack) playFinale() {
	tier := t.spec.Tier(t.elapsed)
	anim := t.spec.Finale(t.driverID, tier.Name)
	if anim != "" && t.playAnimation(script.ObjectID(anim)) {
		t.finalTier = tier
		t.phase = PhaseFinalAnimation
		return
	}
	t.scoreAndLeave(tier)
}

func (t *TowTrack) outOfFuel() {
	t.state.Failures = bump(t.state.Failures)
	t.state.LastScore = 0
	t.state.RecordScore(t.driverID, 0)
	t.saveState()

	if t.lastAction != script.None {
		t.scene.Stop(t.lastAction)
	}
	// Fire-and-forget cue; its completion arrives after we are idle and is
	// ignored like any unmatched notification.
	if id := script.ObjectID(t.spec.OutOfFuelAction); id != script.None {
		if err := t.scene.Play(id); err != nil {
			log.Printf("towtrack: out-of-fuel cue %s: %v", id, err)
		}
	}
	t.leave()
}

func (t *TowTrack) scoreAndLeave(tier specs.TierSpec) {
	t.state.LastScore = tier.Score
	t.state.Completions = bump(t.state.Completions)

	idx := int16(0)
	for i, tr := range t.spec.Tiers {
		if tr.Name == tier.Name {
			idx = int16(i)
			break
		}
	}
	if t.state.BestTier < 0 || idx < t.state.BestTier {
		t.state.BestTier = idx
	}

	t.state.RecordScore(t.driverID, tier.Score)
	t.saveState()
	t.leave()
}

func (t *TowTrack) leave() {
	t.mover.Stop()
	t.lastAction = script.None
	t.lastAnimation = script.None
	t.pendingFinale = false
	t.introPlayed = false
	t.throttle = 0
	t.leg = 0
	if t.state != nil {
		t.state.InProgress = false
	}
	t.phase = PhaseIdle
}

func (t *TowTrack) playAction(id script.ObjectID) bool {
	if id == script.None || t.lastAction != script.None {
		return false
	}
	if err := t.scene.Play(id); err != nil {
		log.Printf("towtrack: play action %s: %v", id, err)
		return false
	}
	t.lastAction = id
	return true
}

func (t *TowTrack) playAnimation(id script.ObjectID) bool {
	if id == script.None || t.lastAnimation != script.None {
		return false
	}
	if err := t.scene.Play(id); err != nil {
		log.Printf("towtrack: play animation %s: %v", id, err)
		return false
	}
	t.lastAnimation = id
	return true
}

func (t *TowTrack) ensureState() {
	if t.state != nil {
		return
	}
	if t.states != nil {
		if s, ok := t.states.Find(MissionStateKind); ok {
			if ms, ok := s.(*MissionState); ok {
				t.state = ms
				return
			}
		}
	}
	t.state = NewMissionState()
	if t.states != nil {
		t.states.Register(t.state)
	}
}

func (t *TowTrack) saveState() {
	if t.states == nil {
		return
	}
	if err := t.states.Save(); err != nil {
		log.Printf("towtrack: save mission state: %v", err)
	}
}

func bump(v int16) int16 {
	if v == math.MaxInt16 {
		return v
	}
	return v + 1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
