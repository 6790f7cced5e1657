package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/tamzrod/modbus-gripper/internal/config"
	"github.com/tamzrod/modbus-gripper/internal/gripper"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("usage: gripctl <config.yaml> <command> [arg]\n" +
			"commands: grip [force], release, move <percent>, stop, fast-stop,\n" +
			"          reference, calibrate, measure-stroke, status, position")
	}

	cfgPath := os.Args[1]
	command := os.Args[2]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	config.Normalize(cfg)

	// --------------------
	// Connect + reference
	// --------------------

	sess, closer, err := gripper.Build(cfg.Gripper)
	if err != nil {
		log.Fatalf("session build failed (endpoint=%s): %v", cfg.Gripper.Endpoint, err)
	}
	defer closer()

	log.Printf("session %s connected (endpoint=%s)", sess.PID(), cfg.Gripper.Endpoint)

	ctx := context.Background()

	// --------------------
	// Run one command
	// --------------------

	switch command {
	case "grip":
		force := 4
		if len(os.Args) > 3 {
			force = intArg(os.Args[3], "force")
		}
		err = sess.Grip(ctx, force)

	case "release":
		err = sess.Release(ctx)

	case "move":
		if len(os.Args) < 4 {
			log.Fatal("move requires a target percent (0 closed .. 100 open)")
		}
		err = sess.MoveTo(ctx, intArg(os.Args[3], "percent"))

	case "stop":
		err = sess.Stop()

	case "fast-stop":
		err = sess.FastStop()

	case "reference":
		err = sess.Reference()

	case "calibrate":
		err = sess.Calibrate()

	case "measure-stroke":
		err = sess.MeasureStroke()

	case "status":
		var st gripper.OperatingStatus
		st, err = sess.OperatingStatus()
		if err == nil {
			log.Printf("status: %s", st)
		}

	case "position":
		var pct int
		pct, err = sess.PositionPercent()
		if err == nil {
			log.Printf("position: %d%% open", pct)
		}

	default:
		log.Fatalf("unknown command %q", command)
	}

	if err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
}

func intArg(raw, name string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", name, raw)
	}
	return v
}
