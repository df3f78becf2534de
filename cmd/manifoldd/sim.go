package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/metatopia/clock"
	"github.com/katalvlaran/metatopia/ecs"
	"github.com/katalvlaran/metatopia/manifold"
	"github.com/katalvlaran/metatopia/scene"
	"github.com/katalvlaran/metatopia/stream"
)

// commandQueue bounds the client commands waiting for the next tick.
const commandQueue = 64

type request struct {
	session uuid.UUID
	cmd     stream.Command
}

// simulation owns the world and the manifold's mutable state; only its run
// goroutine changes them. Client commands are queued and applied between
// ticks.
type simulation struct {
	m     *manifold.Manifold
	w     *ecs.World
	sched *ecs.Schedule
	fixed *clock.FixedTimestep
	clk   *clock.Clock

	view     *manifold.View
	tick     atomic.Uint64
	requests chan request
}

func newSimulation(b *scene.Built, rate float64, opts ...clock.Option) *simulation {
	var popts []ecs.PortalOption
	if b.HasFollow {
		popts = append(popts, ecs.WithFollow(b.Follow))
	}
	return &simulation{
		m:     b.Manifold,
		w:     b.World,
		sched: ecs.NewSchedule(ecs.NewPortalSystem(popts...), ecs.MovementSystem{}),
		fixed: clock.NewFixedTimestep(rate),
		clk:   clock.New(opts...),
		view:  b.Manifold.Snapshot(),

		requests: make(chan request, commandQueue),
	}
}

// advance runs as many fixed steps as dt calls for.
func (s *simulation) advance(dt time.Duration) {
	n := s.fixed.Advance(dt)
	step := s.fixed.Step().Seconds()
	for i := 0; i < n; i++ {
		view, err := s.sched.Run(s.w, s.m, step)
		if err != nil {
			manifold.Logger().Warn("manifoldd: tick failed", "tick", s.tick.Load(), "err", err)
		}
		s.view = view
		s.tick.Add(1)
	}
}

func (s *simulation) frame() stream.Frame {
	return stream.NewFrame(s.view, s.w, s.tick.Load())
}

func (s *simulation) ticks() uint64 { return s.tick.Load() }

// command queues a client request for the next tick. It runs on the
// client's read goroutine; a full queue drops the request.
func (s *simulation) command(session uuid.UUID, cmd stream.Command) {
	select {
	case s.requests <- request{session: session, cmd: cmd}:
	default:
		manifold.Logger().Warn("manifoldd: command dropped", "session", session.String())
	}
}

// applyPending applies every queued request.
func (s *simulation) applyPending() {
	for {
		select {
		case r := <-s.requests:
			s.apply(r)
		default:
			return
		}
	}
}

func (s *simulation) apply(r request) {
	if r.cmd.SetActiveChart == nil {
		return
	}
	id := manifold.ChartID(*r.cmd.SetActiveChart)
	if !s.m.SetActiveChart(id) {
		manifold.Logger().Warn("manifoldd: unknown chart requested", "session", r.session.String(), "chart", id.String())
	}
}

func (s *simulation) run(ctx context.Context, hub *stream.Hub, interval time.Duration) error {
	steps := time.NewTicker(s.fixed.Step())
	defer steps.Stop()
	frames := time.NewTicker(interval)
	defer frames.Stop()

	s.clk.Tick()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-steps.C:
			s.applyPending()
			s.advance(s.clk.Tick())
		case <-frames.C:
			if _, err := hub.Broadcast(s.frame()); err != nil {
				return err
			}
			manifold.Logger().Debug("manifoldd: frame", "tick", s.tick.Load(), "fps", s.clk.FPS(), "clients", hub.Len())
		}
	}
}
