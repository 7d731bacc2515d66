package script

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ObjectID names a pre-authored scene action or animation. The player's only
// contract with callers is "play this identifier" and "report its completion".
type ObjectID string

const None ObjectID = ""

// LoadFunc resolves an identifier to tengo source. The default loader reads
// the embedded scripts.
type LoadFunc func(name string) ([]byte, error)

const lifecycleDispatchScript = `
if __phase == "start" {
	on_start(__cue)
} else if __phase == "finish" {
	on_finish(__cue)
}
`

type playback struct {
	id        ObjectID
	remaining float64
}

type runtime struct {
	compiled *tengo.Compiled
	duration float64
}

// Player runs named scene-action scripts. Scripts declare a `duration`
// global in seconds and `on_start`/`on_finish` lifecycle functions; the
// player invokes on_start when an action is issued, counts the duration
// down in Update, and invokes on_finish when it elapses.
type Player struct {
	load    LoadFunc
	cue     func(name string)
	cache   map[ObjectID]*runtime
	playing []*playback
}

func NewPlayer(load LoadFunc) *Player {
	if load == nil {
		load = LoadScript
	}
	return &Player{
		load:  load,
		cache: map[ObjectID]*runtime{},
	}
}

// SetCueSink routes `cue(...)` calls made by scripts (sound and scene cues)
// to the surrounding system. Without a sink cues are dropped.
func (p *Player) SetCueSink(fn func(name string)) {
	if p == nil {
		return
	}
	p.cue = fn
}

// Play issues an action. Reissuing an identifier that is already playing
// restarts its clock without rerunning on_start.
func (p *Player) Play(id ObjectID) error {
	if p == nil || id == None {
		return fmt.Errorf("script: play of empty identifier")
	}

	rt, err := p.getRuntime(id)
	if err != nil {
		return err
	}

	for _, pb := range p.playing {
		if pb.id == id {
			pb.remaining = rt.duration
			return nil
		}
	}

	if err := p.runPhase(rt, "start"); err != nil {
		return fmt.Errorf("script: %s on_start: %w", id, err)
	}
	p.playing = append(p.playing, &playback{id: id, remaining: rt.duration})
	return nil
}

// Playing reports whether an identifier has an in-flight playback.
func (p *Player) Playing(id ObjectID) bool {
	if p == nil {
		return false
	}
	for _, pb := range p.playing {
		if pb.id == id {
			return true
		}
	}
	return false
}

// Stop cancels an in-flight playback without running on_finish.
func (p *Player) Stop(id ObjectID) {
	if p == nil || id == None {
		return
	}
	kept := p.playing[:0]
	for _, pb := range p.playing {
		if pb.id != id {
			kept = append(kept, pb)
		}
	}
	p.playing = kept
}

// StopAll cancels every in-flight playback.
func (p *Player) StopAll() {
	if p == nil {
		return
	}
	p.playing = nil
}

// Invalidate drops a cached compilation so the next Play recompiles from
// source. Used by the hot-reload watcher.
func (p *Player) Invalidate(id ObjectID) {
	if p == nil {
		return
	}
	delete(p.cache, id)
}

// Update advances playbacks by dt seconds and returns the identifiers that
// completed this tick, in issue order.
func (p *Player) Update(dt float64) []ObjectID {
	if p == nil || len(p.playing) == 0 {
		return nil
	}

	var done []ObjectID
	kept := p.playing[:0]
	for _, pb := range p.playing {
		pb.remaining -= dt
		if pb.remaining > 0 {
			kept = append(kept, pb)
			continue
		}
		if rt, ok := p.cache[pb.id]; ok {
			if err := p.runPhase(rt, "finish"); err != nil {
				fmt.Printf("script: %s on_finish error: %v\n", pb.id, err)
			}
		}
		done = append(done, pb.id)
	}
	p.playing = kept
	return done
}

func (p *Player) getRuntime(id ObjectID) (*runtime, error) {
	if rt, ok := p.cache[id]; ok && rt != nil {
		return rt, nil
	}

	src, err := p.load(string(id) + ".tengo")
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", id, err)
	}

	script := tengo.NewScript(append(src, []byte("\n"+lifecycleDispatchScript)...))
	_ = script.Add("__phase", "")
	_ = script.Add("__cue", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile %s: %w", id, err)
	}

	rt := &runtime{compiled: compiled, duration: 1}
	if err := p.runPhase(rt, "noop"); err != nil {
		return nil, fmt.Errorf("script: probe %s: %w", id, err)
	}
	if compiled.IsDefined("duration") {
		if d := compiled.Get("duration").Float(); d > 0 {
			rt.duration = d
		}
	}

	p.cache[id] = rt
	return rt, nil
}

func (p *Player) runPhase(rt *runtime, phase string) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__cue", p.cueEngine()); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (p *Player) cueEngine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["cue"] = &tengo.UserFunction{Name: "cue", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		if p.cue != nil {
			p.cue(name)
		}
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
