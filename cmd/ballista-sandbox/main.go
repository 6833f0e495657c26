// Command ballista-sandbox is a terminal playground for the projectile
// simulation: a small map, a firing battery on the left, targets on the
// right, and live trajectories rendered at a fixed tick. Useful for
// eyeballing trajectory and splash behavior without a full game client.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/veyra/ballista/constants"
	"github.com/veyra/ballista/effects"
	"github.com/veyra/ballista/gmath"
	"github.com/veyra/ballista/projectile"
	"github.com/veyra/ballista/stats"
	"github.com/veyra/ballista/world"
)

const (
	mapTilesW = 48
	mapTilesH = 24

	frameTime = 33 // simulation ticks per frame, ~30 FPS
)

var weaponRotation = []string{"mortar", "cannon", "lancer", "howitzer", "flamer", "emp-cannon"}

type flash struct {
	x, y  int
	ch    rune
	style tcell.Style
	until time.Time
}

func main() {
	logFile, err := os.Create("ballista-sandbox.log")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: slog.LevelDebug}))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.HideCursor()

	sr := beep.SampleRate(44100)
	audio := speaker.Init(sr, sr.N(time.Second/10)) == nil

	terrain := world.NewHeightmap(mapTilesW, mapTilesH)
	arena := world.NewArena()
	index := world.NewRTreeIndex(arena)
	queue := effects.NewQueue()

	sim, err := projectile.New(arena, index, terrain, projectile.Options{
		Seed:    uint64(time.Now().UnixNano()),
		Logger:  logger,
		Effects: queue,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	arsenal := stats.Default()

	battery := spawnObject(arena, index, 0, 4*constants.TileUnits, mapTilesH/2*constants.TileUnits, world.KindStructure)
	var targets []world.Handle
	for i := 0; i < 4; i++ {
		h := spawnObject(arena, index, 1,
			(mapTilesW-6)*constants.TileUnits,
			(4+5*int32(i))*constants.TileUnits, world.KindUnit)
		targets = append(targets, h)
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			events <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()

	var flashes []flash
	weaponIdx := 0
	targetIdx := 0
	running := true
	for running {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					running = false
				case ev.Rune() == ' ':
					w := arsenal.Get(weaponRotation[weaponIdx])
					_, ferr := sim.Fire(projectile.FireRequest{
						Weapon:   w,
						Player:   0,
						Attacker: battery,
						Target:   targets[targetIdx],
					})
					if ferr != nil {
						logger.Error("fire failed", slog.Any("error", ferr))
					}
					targetIdx = (targetIdx + 1) % len(targets)
				case ev.Rune() == 'w':
					weaponIdx = (weaponIdx + 1) % len(weaponRotation)
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			sim.Update(frameTime)

			now := time.Now()
			for _, ev := range queue.Drain() {
				if f, ok := effectFlash(ev, now); ok {
					flashes = append(flashes, f)
				}
				if audio {
					playEffect(sr, ev)
				}
			}

			screen.Clear()
			drawFrame(screen, sim, arena, weaponRotation[weaponIdx])
			kept := flashes[:0]
			for _, f := range flashes {
				if now.Before(f.until) {
					screen.SetContent(f.x, f.y, f.ch, nil, f.style)
					kept = append(kept, f)
				}
			}
			flashes = kept
			screen.Show()
		}
	}
}

func spawnObject(arena *world.Arena, index *world.RTreeIndex, player int, x, y int32, kind world.Kind) world.Handle {
	obj := &world.Object{
		Kind:         kind,
		Player:       player,
		Pos:          gmath.Vector3{X: x, Y: y},
		PrevPos:      gmath.Vector3{X: x, Y: y},
		HP:           400,
		OrigHP:       400,
		Damageable:   true,
		HitRadius:    constants.TileUnits / 3,
		Footprint:    gmath.Vector2{X: constants.TileUnits / 2, Y: constants.TileUnits / 2},
		Height:       40,
		MuzzleHeight: 32,
		Power:        100,
		Points:       100,
	}
	h := arena.Add(obj)
	index.Insert(obj)
	return h
}

func drawFrame(screen tcell.Screen, sim *projectile.Simulation, arena *world.Arena, weapon string) {
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)
	hot := tcell.StyleDefault.Foreground(tcell.ColorOrange)
	unit := tcell.StyleDefault.Foreground(tcell.ColorGreen)

	arena.ForEach(func(obj *world.Object) {
		ch := 'o'
		style := unit
		if obj.Kind == world.KindStructure {
			ch = '#'
		}
		if !obj.Alive() {
			ch = 'x'
			style = dim
		}
		screen.SetContent(int(obj.Pos.X/constants.TileUnits), int(obj.Pos.Y/constants.TileUnits), ch, nil, style)
	})

	for p := sim.First(); p != nil; p = sim.Next() {
		if p.State() != projectile.InFlight {
			continue
		}
		pos := p.Position()
		screen.SetContent(int(pos.X/constants.TileUnits), int(pos.Y/constants.TileUnits), '*', nil, hot)
	}

	status := fmt.Sprintf(" weapon: %-12s  live: %-3d  [space] fire  [w] weapon  [q] quit ", weapon, sim.Len())
	for i, r := range status {
		screen.SetContent(i, mapTilesH+1, r, nil, dim)
	}
}

func effectFlash(ev effects.Event, now time.Time) (flash, bool) {
	x := int(ev.Pos.X / constants.TileUnits)
	y := int(ev.Pos.Y / constants.TileUnits)
	switch ev.Kind {
	case effects.Explosion, effects.MissFlash:
		return flash{x, y, '@', tcell.StyleDefault.Foreground(tcell.ColorRed), now.Add(200 * time.Millisecond)}, true
	case effects.WaterSplash:
		return flash{x, y, '~', tcell.StyleDefault.Foreground(tcell.ColorBlue), now.Add(200 * time.Millisecond)}, true
	case effects.Fire:
		return flash{x, y, '^', tcell.StyleDefault.Foreground(tcell.ColorYellow), now.Add(500 * time.Millisecond)}, true
	case effects.SmokeTrail, effects.FlameTrail:
		return flash{x, y, '.', tcell.StyleDefault.Foreground(tcell.ColorGray), now.Add(150 * time.Millisecond)}, true
	}
	return flash{}, false
}

func playEffect(sr beep.SampleRate, ev effects.Event) {
	var freq float64
	switch ev.Kind {
	case effects.ShotFired:
		freq = 440
	case effects.Explosion, effects.ImpactSound, effects.MissFlash:
		freq = 110
	case effects.Ricochet:
		freq = 880
	default:
		return
	}
	tone, err := generators.SineTone(sr, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sr.N(60*time.Millisecond), tone))
}
