package driver

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/pkg/errors"

	"termlife/src/universe"
)

func init() {
	SetLogOutput(io.Discard)
}

type frame struct {
	generation uint32
	living     uint32
	status     Status
}

type recorder struct {
	frames []frame
	err    error
}

func (r *recorder) Render(s universe.State, st Status) error {
	r.frames = append(r.frames, frame{s.Generation, s.Living, st})
	return r.err
}

func (r *recorder) last() frame {
	return r.frames[len(r.frames)-1]
}

type script []Command

func (s *script) Poll() Command {
	if len(*s) == 0 {
		return CommandNone
	}
	c := (*s)[0]
	*s = (*s)[1:]
	return c
}

func settle(t *testing.T, name string) universe.State {
	t.Helper()
	tmpl, ok := universe.TemplateByName(name)
	if !ok {
		t.Fatalf("no template %q", name)
	}
	s, err := universe.Settle(universe.DefaultOptions, tmpl)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

var fast = Options{Interval: 0}

func TestRunStopsOnExtinction(t *testing.T) {
	r := &recorder{}
	s, err := New(fast, settle(t, "single"), r, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Generation != 1 || s.Living != 0 {
		t.Fatalf("final state generation %v living %v", s.Generation, s.Living)
	}
	if len(r.frames) != 3 {
		t.Fatalf("rendered %v frames, expected 3", len(r.frames))
	}
	if f := r.last(); f.status.RunningMode != RunningStateFinished || f.status.Reason != ReasonExtinct {
		t.Fatalf("last frame status %+v", f.status)
	}
}

func TestRunStopsOnMaxSteps(t *testing.T) {
	r := &recorder{}
	o := fast
	o.MaxSteps = 3
	s, err := New(o, settle(t, "block"), r, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Generation != 3 || s.Living != 4 {
		t.Fatalf("final state generation %v living %v", s.Generation, s.Living)
	}
	if r.last().status.Reason != ReasonMaxSteps {
		t.Fatalf("reason %q", r.last().status.Reason)
	}
}

func TestRunStopsOnSaturation(t *testing.T) {
	r := &recorder{}
	st := settle(t, "block")
	st.Generation = math.MaxUint32 - 1
	s, err := New(fast, st, r, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !s.Saturated() {
		t.Fatalf("final generation %v", s.Generation)
	}
	if r.last().status.Reason != ReasonSaturated {
		t.Fatalf("reason %q", r.last().status.Reason)
	}
}

func TestRunQuit(t *testing.T) {
	r := &recorder{}
	in := &script{CommandQuit}
	s, err := New(fast, settle(t, "block"), r, in).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Generation != 1 {
		t.Fatalf("final generation %v, expected 1", s.Generation)
	}
	if r.last().status.Reason != ReasonQuit {
		t.Fatalf("reason %q", r.last().status.Reason)
	}
}

func TestRunPauseAndStep(t *testing.T) {
	r := &recorder{}
	in := &script{CommandTogglePause, CommandStep, CommandStep, CommandTogglePause, CommandQuit}
	s, err := New(fast, settle(t, "block"), r, in).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Generation != 4 {
		t.Fatalf("final generation %v, expected 4", s.Generation)
	}
	paused := 0
	for _, f := range r.frames {
		if f.status.RunningMode == RunningStatePaused {
			paused++
		}
	}
	if paused != 3 {
		t.Fatalf("rendered %v paused frames, expected 3", paused)
	}
}

func TestRunDoesNotAdvanceWhilePaused(t *testing.T) {
	r := &recorder{}
	in := &script{CommandTogglePause, CommandNone, CommandNone, CommandQuit}
	s, err := New(fast, settle(t, "block"), r, in).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if s.Generation != 1 {
		t.Fatalf("final generation %v, expected 1", s.Generation)
	}
}

func TestRunCancelled(t *testing.T) {
	r := &recorder{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := New(Options{Interval: time.Hour}, settle(t, "block"), r, nil).Run(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Generation != 1 {
		t.Fatalf("final generation %v, expected 1", s.Generation)
	}
	if r.last().status.Reason != ReasonCancelled {
		t.Fatalf("reason %q", r.last().status.Reason)
	}
}

func TestRunRenderError(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{err: boom}
	_, err := New(fast, settle(t, "block"), r, nil).Run(context.Background())
	if errors.Cause(err) != boom {
		t.Fatalf("error %v, expected boom", err)
	}
}

func TestRunRejectsInvalidState(t *testing.T) {
	g, err := universe.GridFromRows([][]universe.Cell{
		{0, 0, 0},
		{0, 1, 0},
		{0, 0, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	tests := map[string]universe.State{
		"living mismatch": {Grid: g},
		"no grid":         {},
	}
	for name, st := range tests {
		r := &recorder{}
		if _, err := New(fast, st, r, nil).Run(context.Background()); err == nil {
			t.Errorf("%s: expected error", name)
		}
		if len(r.frames) != 0 {
			t.Errorf("%s: rendered %v frames of an invalid state", name, len(r.frames))
		}
	}
}
