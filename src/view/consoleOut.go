package view

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"

	"termlife/src/driver"
	"termlife/src/universe"
)

const (
	aliveGlyph = '#'
	deadGlyph  = ' '

	cursorHome = "\x1b[H"
	clearAll   = "\x1b[2J"
)

//ConsoleOut writes every frame as text: the bordered field followed by the status lines
type ConsoleOut struct {
	w     io.Writer
	a     aurora.Aurora
	home  bool //move the cursor home before each frame to redraw in place
	begun bool
}

func NewConsoleOut(w io.Writer, colors bool, home bool) *ConsoleOut {
	return &ConsoleOut{w: w, a: aurora.NewAurora(colors), home: home}
}

//Configuration prints the running configuration
func (c *ConsoleOut) Configuration(uo universe.Options, do driver.Options) error {
	steps := "unlimited"
	if do.MaxSteps != 0 {
		steps = fmt.Sprintf("%v steps", do.MaxSteps)
	}
	var b bytes.Buffer
	b.WriteString("Running configuration:\n")
	c.printHashData(&b, map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", uo.Width, uo.Height),
		"Interval":       do.Interval,
		"Max iterations": steps,
		"Density":        fmt.Sprintf("%v%%", uo.Density),
		"Sweep":          uo.Sweep,
	})
	_, err := c.w.Write(b.Bytes())
	return errors.Wrap(err, "[Configuration] write failed")
}

//Render implements driver.Renderer
func (c *ConsoleOut) Render(s universe.State, st driver.Status) error {
	var b bytes.Buffer
	if c.home {
		if !c.begun {
			b.WriteString(clearAll)
			c.begun = true
		}
		b.WriteString(cursorHome)
	}
	c.renderField(&b, s.Grid)
	b.WriteString(c.a.Blue(fmt.Sprintf("Generation:%v , Alive: %v", s.Generation, s.Living)).String())
	b.WriteByte('\n')
	switch st.RunningMode {
	case driver.RunningStatePaused:
		b.WriteString(c.a.Yellow("paused").String())
	case driver.RunningStateFinished:
		b.WriteString(c.a.Red(fmt.Sprintf("finished: %v", st.Reason)).String())
	default:
		b.WriteString(c.a.Green("running").String())
	}
	b.WriteByte('\n')
	b.WriteString(c.a.Cyan("Conway's Game of Life").String())
	b.WriteByte('\n')
	_, err := c.w.Write(b.Bytes())
	return errors.Wrapf(err, "[Render] write failed at generation %v", s.Generation)
}

func (c *ConsoleOut) renderField(b *bytes.Buffer, g *universe.Grid) {
	border := strings.Repeat("═", g.Width())
	b.WriteString("╔" + border + "╗\n")
	for _, l := range g.Rows() {
		b.WriteString("║")
		for _, e := range l {
			if e == universe.Alive {
				b.WriteByte(aliveGlyph)
			} else {
				b.WriteByte(deadGlyph)
			}
		}
		b.WriteString("║\n")
	}
	b.WriteString("╚" + border + "╝\n")
}

func (c *ConsoleOut) printHashData(b *bytes.Buffer, d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(b, "  %s: %v\n", propName, d[propName])
	}
}
