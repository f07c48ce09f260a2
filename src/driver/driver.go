package driver

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"termlife/src/universe"
)

//Command is the signal read from the Input once per frame
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandTogglePause
	CommandStep //advance one generation while paused
)

//The driver running status at the concrete moment
type RunningState int

const (
	RunningStateRun      = RunningState(0x1)
	RunningStatePaused   = RunningState(0x2)
	RunningStateFinished = RunningState(0x3)
)

//Reason explains why the driver has finished
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonExtinct   Reason = "extinct"
	ReasonSaturated Reason = "generation counter saturated"
	ReasonMaxSteps  Reason = "max steps reached"
	ReasonQuit      Reason = "quit"
	ReasonCancelled Reason = "cancelled"
)

//Status represents the driver status passed to the Renderer with every frame
type Status struct {
	RunningMode RunningState
	Reason      Reason
	Elapsed     time.Duration
}

//Renderer displays the read-only snapshot of the state
type Renderer interface {
	Render(s universe.State, st Status) error
}

//Input returns the pending command, it must not block
type Input interface {
	Poll() Command
}

//default options
const (
	DefInterval = time.Millisecond * 300
)

//Options represents the frame loop configuration
type Options struct {
	Interval time.Duration //delay between the generations
	MaxSteps uint32        //0 means no limit
}

var DefaultOptions = Options{
	Interval: DefInterval,
}

var logger = log.New(os.Stderr, "[driver] ", log.LstdFlags)

//SetLogOutput redirects the driver log, interactive mode sends it away from the terminal
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}

//Driver owns the current state and replaces it once per frame
type Driver struct {
	options Options
	state   universe.State
	r       Renderer
	in      Input
	start   time.Time
}

type noInput struct{}

func (noInput) Poll() Command { return CommandNone }

//New creates the driver, in can be nil when no commands are expected
func New(o Options, s universe.State, r Renderer, in Input) *Driver {
	if in == nil {
		in = noInput{}
	}
	return &Driver{options: o, state: s, r: r, in: in}
}

//State returns the current state
func (d *Driver) State() universe.State {
	return d.state
}

//Run renders and advances the state until a termination condition, a quit command or ctx cancellation
//the last state is returned together with the reason in the final frame
//a state whose living counter doesn't match the grid is rejected before the first frame
func (d *Driver) Run(ctx context.Context) (universe.State, error) {
	if err := d.state.Validate(); err != nil {
		return d.state, errors.Wrap(err, "[Run] invalid initial state")
	}
	d.start = time.Now()
	logger.Printf("started: %v x %v, living %v, interval %v", d.state.Grid.Width(), d.state.Grid.Height(), d.state.Living, d.options.Interval)
	paused := false
	timer := time.NewTimer(d.options.Interval)
	defer timer.Stop()
	for {
		if !paused {
			if err := d.render(RunningStateRun, ReasonNone); err != nil {
				return d.state, err
			}
			if reason := d.terminated(); reason != ReasonNone {
				return d.finish(reason)
			}
			d.state = universe.Advance(d.state)
		}

		switch d.in.Poll() {
		case CommandQuit:
			return d.finish(ReasonQuit)
		case CommandTogglePause:
			paused = !paused
			if paused {
				if err := d.render(RunningStatePaused, ReasonNone); err != nil {
					return d.state, err
				}
			}
		case CommandStep:
			if paused && d.terminated() == ReasonNone {
				d.state = universe.Advance(d.state)
				if err := d.render(RunningStatePaused, ReasonNone); err != nil {
					return d.state, err
				}
			}
		}

		select {
		case <-ctx.Done():
			return d.finish(ReasonCancelled)
		case <-timer.C:
			timer.Reset(d.options.Interval)
		}
	}
}

//terminated checks the termination conditions of the current state
func (d *Driver) terminated() Reason {
	switch {
	case d.state.Extinct():
		return ReasonExtinct
	case d.state.Saturated():
		return ReasonSaturated
	case d.options.MaxSteps != 0 && d.state.Generation >= d.options.MaxSteps:
		return ReasonMaxSteps
	}
	return ReasonNone
}

func (d *Driver) finish(reason Reason) (universe.State, error) {
	logger.Printf("finished at generation %v: %v, living %v", d.state.Generation, reason, d.state.Living)
	return d.state, d.render(RunningStateFinished, reason)
}

func (d *Driver) render(mode RunningState, reason Reason) error {
	st := Status{RunningMode: mode, Reason: reason, Elapsed: time.Since(d.start)}
	if err := d.r.Render(d.state, st); err != nil {
		return errors.Wrapf(err, "[Run] failed to render generation %v", d.state.Generation)
	}
	return nil
}
