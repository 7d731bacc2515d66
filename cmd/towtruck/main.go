// Command towtruck runs one headless encounter of the tow mini-game and
// prints the score table. It exists to exercise the module outside the
// surrounding simulation.
package main

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"

	"github.com/milk9111/towtruck/actor"
	"github.com/milk9111/towtruck/game"
)

type config struct {
	SavePath string  `env:"TOWTRUCK_SAVE" envDefault:"towtruck.sav"`
	SpecFile string  `env:"TOWTRUCK_SPEC" envDefault:"towtrack.yaml"`
	Driver   int     `env:"TOWTRUCK_DRIVER" envDefault:"1"`
	Throttle float64 `env:"TOWTRUCK_THROTTLE" envDefault:"1.0"`
	Watch    bool    `env:"TOWTRUCK_WATCH" envDefault:"false"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("towtruck: parse config: %v", err)
	}

	g, err := game.New(game.Config{
		SpecFile: cfg.SpecFile,
		SavePath: cfg.SavePath,
		Watch:    cfg.Watch,
	})
	if err != nil {
		log.Fatalf("towtruck: %v", err)
	}
	defer g.Close()

	g.Queue(actor.Click{Driver: cfg.Driver})

	const dt = 1.0 / 60.0
	throttled := false
	for tick := 0; tick < 60*600; tick++ {
		g.Update(dt)
		if !throttled && g.Truck.Phase() == actor.PhaseAwaitingInput {
			g.Queue(actor.Control{Control: actor.ControlThrottle, Value: cfg.Throttle})
			throttled = true
		}
		if throttled && g.Idle() {
			break
		}
	}

	st := g.Truck.State()
	fmt.Printf("driver %d: last score %d (fuel left %.1f, %.1fs)\n",
		cfg.Driver, st.LastScore, g.Truck.Fuel(), g.Truck.Elapsed())
	fmt.Println("best scores:")
	for id := 1; id <= 5; id++ {
		fmt.Printf("  driver %d: %d\n", id, st.HighScore(id))
	}
}
