// Package game hosts the tow truck mini-game: it owns the actor and its
// collaborators and pumps their outputs back into the actor as notifications,
// in dispatch order, on a single cooperative update loop.
package game

import (
	"fmt"
	"log"

	"github.com/milk9111/towtruck/actor"
	"github.com/milk9111/towtruck/path"
	"github.com/milk9111/towtruck/savegame"
	"github.com/milk9111/towtruck/script"
	"github.com/milk9111/towtruck/specs"
)

type Config struct {
	SpecFile string // mission spec, defaults to towtrack.yaml
	SavePath string
	Watch    bool // hot-reload changed scene scripts
}

type Game struct {
	Truck    *actor.TowTrack
	Player   *script.Player
	Follower *path.Follower
	Registry *savegame.Registry

	spec    *specs.MissionSpec
	watcher *script.Watcher
	pending []actor.Notification
}

func New(cfg Config) (*Game, error) {
	specFile := cfg.SpecFile
	if specFile == "" {
		specFile = "towtrack.yaml"
	}
	spec, err := specs.LoadMissionSpec(specFile)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	registry := savegame.NewRegistry(cfg.SavePath)
	if cfg.SavePath != "" {
		// A broken save file never blocks play; the mission state starts fresh.
		if err := registry.Load(); err != nil {
			log.Printf("game: load save %s: %v", cfg.SavePath, err)
		}
	}

	player := script.NewPlayer(nil)
	player.SetCueSink(func(name string) {
		log.Printf("game: cue %s", name)
	})

	route := make([]path.Waypoint, 0, len(spec.Route))
	for _, wp := range spec.Route {
		route = append(route, path.Waypoint{Name: wp.Name, X: wp.X, Y: wp.Y})
	}
	follower := path.NewFollower(route, spec.Speed)

	truck, err := actor.NewTowTrack(actor.Config{
		Spec:   spec,
		Scene:  player,
		Mover:  follower,
		States: registry,
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	g := &Game{
		Truck:    truck,
		Player:   player,
		Follower: follower,
		Registry: registry,
		spec:     spec,
	}

	if cfg.Watch {
		w, err := script.NewWatcher("script/scripts")
		if err != nil {
			log.Printf("game: script watcher unavailable: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

// Queue schedules a notification for the next Update. Events are delivered
// in the order queued; the game never reorders them.
func (g *Game) Queue(n actor.Notification) {
	if g == nil || n == nil {
		return
	}
	g.pending = append(g.pending, n)
}

// Update runs one cooperative tick: queued input first, then the encounter
// clock, then waypoint crossings, then script completions.
func (g *Game) Update(dt float64) {
	if g == nil {
		return
	}

	g.drainWatcher()

	queued := g.pending
	g.pending = nil
	for _, n := range queued {
		if click, ok := n.(actor.Click); ok && g.Truck.Phase() == actor.PhaseIdle {
			g.resetRoute()
			g.Truck.Notify(click)
			continue
		}
		g.Truck.Notify(n)
	}

	g.Truck.Update(dt)

	for _, idx := range g.Follower.Update(dt) {
		g.Truck.Notify(actor.EndPathSegment{Waypoint: idx})
	}

	for _, id := range g.Player.Update(dt) {
		if id == g.Truck.LastAnimation() {
			g.Truck.Notify(actor.EndAnim{ID: id})
			continue
		}
		g.Truck.Notify(actor.EndAction{ID: id})
	}
}

// Idle reports whether no encounter is active and nothing is still playing.
func (g *Game) Idle() bool {
	return g == nil || (g.Truck.Phase() == actor.PhaseIdle && !g.anyPlaying())
}

// Close releases the script watcher, if one is running.
func (g *Game) Close() error {
	if g == nil || g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) resetRoute() {
	g.Follower.Reset()
	g.Follower.SetStart(0, 0)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case id, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: reloading script %s", id)
			g.Player.Invalidate(id)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("game: script watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) anyPlaying() bool {
	for _, wp := range g.spec.Route {
		if g.Player.Playing(script.ObjectID(wp.Action)) {
			return true
		}
	}
	if g.Player.Playing(script.ObjectID(g.spec.IntroAction)) {
		return true
	}
	if g.Player.Playing(script.ObjectID(g.spec.OutOfFuelAction)) {
		return true
	}
	for _, f := range g.spec.Finales {
		if g.Player.Playing(script.ObjectID(f.Animation)) {
			return true
		}
	}
	return false
}
