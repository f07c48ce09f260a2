package view

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"termlife/src/driver"
	"termlife/src/universe"
)

const (
	headerView = "header"
	configView = "configuration"
	statusView = "status"
	fieldView  = "field"
	helpView   = "help"

	leftColumnWidth = 28
	minWindowHeight = 12
)

//views removed when the terminal is too small, only the header stays
var hiddenWhenSmall = []string{configView, statusView, fieldView, helpView}

type keyBindings struct {
	key     interface{}
	name    string
	descr   string
	command driver.Command
}

var (
	runningStateDescr = map[driver.RunningState]string{
		driver.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		driver.RunningStatePaused:   aurora.Colorize("paused", aurora.BlueFg).String(),
		driver.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}
)

//ConsoleUI is the interactive terminal view
//it implements driver.Renderer and driver.Input
type ConsoleUI struct {
	g     *gocui.Gui
	k     []keyBindings
	cmdCh chan driver.Command

	uo universe.Options
	do driver.Options

	mu     sync.Mutex
	state  universe.State
	status driver.Status

	liveFiller string
	deadFiller string
}

func NewConsoleUI(uo universe.Options, do driver.Options) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		cmdCh:      make(chan driver.Command, 8),
		uo:         uo,
		do:         do,
		liveFiller: aurora.Green("█").BgBrightGreen().String(),
		deadFiller: "░",
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, errors.Wrap(err, "[NewConsoleUI] failed to init terminal")
	}

	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", driver.CommandQuit},
		{'q', "Q", "Quit", driver.CommandQuit},
		{'p', "P", "Pause", driver.CommandTogglePause},
		{'n', "N", "Next step (paused)", driver.CommandStep},
	}
	t.g.SetManagerFunc(t.layout)

	if err = t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		cmd := kb.command
		h := func(_ *gocui.Gui, _ *gocui.View) error {
			t.send(cmd)
			if cmd == driver.CommandQuit {
				return gocui.ErrQuit
			}
			return nil
		}
		if err := t.g.SetKeybinding("", kb.key, gocui.ModNone, h); err != nil {
			return errors.Wrapf(err, "[initKeyBindings] key %v", kb.name)
		}
	}
	return nil
}

//send queues the command, it is dropped when the driver is behind
func (t *ConsoleUI) send(cmd driver.Command) {
	select {
	case t.cmdCh <- cmd:
	default:
	}
}

//Poll implements driver.Input
func (t *ConsoleUI) Poll() driver.Command {
	select {
	case cmd := <-t.cmdCh:
		return cmd
	default:
		return driver.CommandNone
	}
}

//Start runs the terminal main loop until the quit key
func (t *ConsoleUI) Start() error {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return errors.Wrap(err, "[Start] main loop failed")
	}
	return nil
}

//Close restores the terminal
func (t *ConsoleUI) Close() {
	t.g.Close()
}

//Render implements driver.Renderer
//the snapshot is stored and the views are redrawn from the gui goroutine
func (t *ConsoleUI) Render(s universe.State, st driver.Status) error {
	t.mu.Lock()
	t.state = s
	t.status = st
	t.mu.Unlock()
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g)
		t.renderStatus(g)
		return nil
	})
	return nil
}

func (t *ConsoleUI) snapshot() (universe.State, driver.Status) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state, t.status
}

func (t *ConsoleUI) renderField(g *gocui.Gui) {
	v, e := g.View(fieldView)
	if e != nil {
		return
	}
	s, _ := t.snapshot()
	if s.Grid == nil {
		return
	}
	v.Clear()

	maxW, maxH := v.Size()
	crop := s.Grid.Width() > maxW || s.Grid.Height() > maxH

	var b bytes.Buffer
	for i, l := range s.Grid.Rows() {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		if i != 0 {
			b.WriteByte('\n')
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The field size is larger than the viewing area").BgBlack().String())
			break
		}
		for j, e := range l {
			if j >= maxW {
				break
			}
			if e == universe.Alive {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui) {
	v, e := g.View(statusView)
	if e != nil {
		return
	}
	s, st := t.snapshot()
	v.Clear()
	_, _ = fmt.Fprintln(v, renderProp("Generation", "%v", s.Generation))
	_, _ = fmt.Fprintln(v, renderProp("Alive", "%v", s.Living))
	_, _ = fmt.Fprintln(v, renderProp("Mode", "%v", runningStateDescr[st.RunningMode]))
	if st.Reason != driver.ReasonNone {
		_, _ = fmt.Fprintln(v, renderProp("Reason", "%v", st.Reason))
	}
}

func (t *ConsoleUI) renderConfiguration(v *gocui.View) {
	v.Clear()
	steps := "unlimited"
	if t.do.MaxSteps != 0 {
		steps = fmt.Sprintf("%v steps", t.do.MaxSteps)
	}
	_, _ = fmt.Fprintln(v, renderProp("Dimension", "%v x %v", t.uo.Width, t.uo.Height))
	_, _ = fmt.Fprintln(v, renderProp("Density", "%v%%", t.uo.Density))
	_, _ = fmt.Fprintln(v, renderProp("Interval", "%v", t.do.Interval))
	_, _ = fmt.Fprintln(v, renderProp("Iterations", "%v", steps))
	_, _ = fmt.Fprintln(v, renderProp("Sweep", "%v", t.uo.Sweep))
}

func renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			return err
		}
		for _, name := range hiddenWhenSmall {
			_ = g.DeleteView(name)
		}
		return nil
	}
	if err := t.headerLayout(g, 3, "Conway's Game of Life"); err != nil {
		return err
	}

	if v, err := g.SetView(configView, 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
		t.renderConfiguration(v)
	}

	if v, err := g.SetView(statusView, 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}
	t.renderStatus(g)

	if v, err := g.SetView(fieldView, leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Field"
		v.Frame = true
	}
	t.renderField(g)

	if v, err := g.SetView(helpView, -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, t.helpLine())
	}
	return nil
}

func (t *ConsoleUI) helpLine() string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	for i, k := range t.k {
		if i != 0 {
			b.WriteString(", ")
		}
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) error {
	maxX, _ := g.Size()
	v, err := g.SetView(headerView, -1, -1, maxX+1, height)
	if err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.BgColor = gocui.ColorCyan
		v.FgColor = gocui.ColorBlack
	}
	v.Clear()
	pad := 0
	if maxX > len(text) {
		pad = (maxX - len(text)) / 2
	}
	_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	return nil
}
