// SPDX-License-Identifier: Unlicense OR MIT

// Command gesturesd wires the configured gesture.Detector to a
// busproto.ListenerServer, feeding it touch events read from stdin as
// a simple line-oriented protocol (one event per line:
// "device kind x y timestamp", kind one of down/move/up). Recognizer
// timeouts are funneled through the same goroutine that reads stdin (see
// queuedclock.go and run below), so touch feeding and timer fires never
// race on detector state. Verbosity and config path follow noisetorch's
// -v / flag.Parse CLI shape.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/a11y-gestures/gesturesd/gesture"
	"github.com/a11y-gestures/gesturesd/internal/busproto"
	"github.com/a11y-gestures/gesturesd/internal/config"
)

type cliOpts struct {
	verbose       bool
	configPath    string
	printDefaults bool
}

func parseCLIOpts() cliOpts {
	var opt cliOpts
	flag.BoolVar(&opt.verbose, "v", false, "Verbose output (print logs to stderr)")
	flag.StringVar(&opt.configPath, "config", "", "Path to gesturesd.toml (default: platform config dir)")
	flag.BoolVar(&opt.printDefaults, "print-defaults", false, "Print the built-in default config as TOML and exit")
	flag.Parse()
	return opt
}

func main() {
	opt := parseCLIOpts()

	if opt.verbose {
		log.SetOutput(os.Stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	if opt.printDefaults {
		if err := config.Encode(os.Stdout, gesture.DefaultConfig()); err != nil {
			fmt.Fprintf(os.Stderr, "gesturesd: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(opt.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gesturesd: %v\n", err)
		os.Exit(1)
	}

	clock := newQueuedClock()
	det := gesture.New(cfg, clock)
	defer det.Close()

	srv := busproto.NewListenerServer()

	listener := &gesture.Listener{
		Type:   gesture.SingleTap,
		States: gesture.Begin | gesture.Continued | gesture.Ended | gesture.Aborted,
		Callback: func(_ any, ev gesture.Event) {
			gt, states, ts, payload, err := busproto.MarshalGestureEvent(ev)
			if err != nil {
				log.Printf("gesturesd: marshal failed: %v", err)
				return
			}
			log.Printf("gesturesd: emit type=%d states=%d ts=%d payload=%v", gt, states, ts, payload)
		},
	}
	path := srv.Register(listener)
	det.AddListener(listener)
	log.Printf("gesturesd: single-tap listener registered at %s", path)

	log.Println("gesturesd: reading touch events from stdin (device kind x y timestamp)")
	if err := run(det, clock, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "gesturesd: %v\n", err)
		os.Exit(1)
	}
}

// run drains lines from r and fired timer callbacks from clock on a
// single select loop, so every call into det — whether triggered by a
// touch event or a recognizer timeout — happens on this one goroutine.
// It returns once r is exhausted.
func run(det *gesture.Detector, clock *queuedClock, r io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return <-scanErr
			}
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			ev, err := parseTouchEvent(line)
			if err != nil {
				log.Printf("gesturesd: skipping malformed line %q: %v", line, err)
				continue
			}
			det.FeedTouch(ev)
		case fn := <-clock.fire:
			fn()
		}
	}
}

func parseTouchEvent(line string) (gesture.TouchEvent, error) {
	fields := strings.Fields(line)
	if len(fields) != 5 {
		return gesture.TouchEvent{}, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	device, err := strconv.Atoi(fields[0])
	if err != nil {
		return gesture.TouchEvent{}, fmt.Errorf("device: %w", err)
	}
	var kind gesture.TouchKind
	switch fields[1] {
	case "down":
		kind = gesture.Down
	case "move":
		kind = gesture.Move
	case "up":
		kind = gesture.Up
	default:
		return gesture.TouchEvent{}, fmt.Errorf("unknown touch kind %q", fields[1])
	}
	x, err := strconv.Atoi(fields[2])
	if err != nil {
		return gesture.TouchEvent{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.Atoi(fields[3])
	if err != nil {
		return gesture.TouchEvent{}, fmt.Errorf("y: %w", err)
	}
	ts, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return gesture.TouchEvent{}, fmt.Errorf("timestamp: %w", err)
	}

	return gesture.TouchEvent{Device: device, Pos: gesture.Point{X: x, Y: y}, Kind: kind, Timestamp: ts}, nil
}
