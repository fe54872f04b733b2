package main

import "flag"

var (
	configFlag = flag.String("config", "", "JSON configuration file, defaults apply when empty")

	// overrides, applied on top of the configuration file when set
	modeFlag   = flag.String("mode", "", "2d triangles or 3d segments with a free camera")
	timingFlag = flag.String("timing", "", "variable (one step per frame) or fixed")
	orderFlag  = flag.String("order", "", "sequential or snapshot agent updates")
	boidsFlag  = flag.Int("boids", 0, "number of boids")
	seedFlag   = flag.Uint64("seed", 0, "random seed, 0 for a random one")

	debugFlag      = flag.Bool("debug", false, "show FPS and flock statistics overlay")
	cpuProfileFlag = flag.String("cpuprofile", "", "write a CPU profile to this file")
	logLevelFlag   = flag.String("log-level", "info", "debug, info, warning or error")
)
