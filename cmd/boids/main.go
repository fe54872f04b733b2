package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	golog "github.com/tochemey/goakt/v3/log"

	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/game"
	"github.com/lao-tseu-is-alive/go-flock-simulation/pkg/simulation"
)

func loadConfig() (*simulation.Config, error) {
	cfg := simulation.DefaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = simulation.LoadConfig(*configFlag); err != nil {
			return nil, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *modeFlag
		case "timing":
			cfg.Timing = *timingFlag
		case "order":
			cfg.UpdateOrder = *orderFlag
		case "boids":
			cfg.NumBoids = *boidsFlag
		case "seed":
			cfg.Seed = *seedFlag
		}
	})
	return cfg, cfg.Validate()
}

func run() error {
	level, err := simulation.ParseLogLevel(*logLevelFlag)
	if err != nil {
		return err
	}
	logger := golog.New(level, os.Stdout)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if *cpuProfileFlag != "" {
		stop, err := startCPUProfile(*cpuProfileFlag)
		if err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer stop()
	}

	sim, err := simulation.New(cfg, logger)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowTitle(fmt.Sprintf("Boids %s (%d)", sim.Mode(), cfg.NumBoids))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(game.New(sim, *debugFlag))
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
