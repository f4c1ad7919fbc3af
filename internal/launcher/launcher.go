// SPDX-License-Identifier: Unlicense OR MIT

// Package launcher is an illustrative process supervisor for the a11y
// bus daemon and a screen-reader helper process, restarting either if
// it exits unexpectedly. It has no interaction with the recognizer
// core; spec.md section 1 calls this surrounding environment "relevant
// only as an illustration", and SPEC_FULL.md section 4.8 keeps it on
// those terms. Grounded on at-spi-bus-launcher.c's spawn/watch/restart
// shape, reworked around os/exec and goroutines in place of
// g_spawn_async/g_child_watch_add.
package launcher

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"sync"
	"time"
)

// Process is one supervised child: a command line and how long to
// wait before restarting it after an unexpected exit.
type Process struct {
	Name         string
	Command      []string
	RestartDelay time.Duration
}

// Supervisor launches and restarts a fixed set of Processes until
// stopped, mirroring the bus launcher's "keep the a11y bus and the
// screen reader alive" responsibility.
type Supervisor struct {
	processes []Process
	wg        sync.WaitGroup
}

// New builds a Supervisor for procs. It does not start them.
func New(procs ...Process) *Supervisor {
	return &Supervisor{processes: procs}
}

// Run starts every process and blocks until ctx is cancelled, at which
// point every child is signalled to exit and Run waits for them.
func (s *Supervisor) Run(ctx context.Context) {
	for _, p := range s.processes {
		s.wg.Add(1)
		go s.supervise(ctx, p)
	}
	s.wg.Wait()
}

func (s *Supervisor) supervise(ctx context.Context, p Process) {
	defer s.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := s.runOnce(ctx, p); err != nil {
			log.Printf("launcher: %s exited: %v", p.Name, err)
		} else {
			log.Printf("launcher: %s exited cleanly", p.Name)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.RestartDelay):
		}
	}
}

func (s *Supervisor) runOnce(ctx context.Context, p Process) error {
	if len(p.Command) == 0 {
		return fmt.Errorf("launcher: %s has an empty command", p.Name)
	}

	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	log.Printf("launcher: starting %s (%v)", p.Name, p.Command)
	return cmd.Run()
}
