package universe

import (
	"sort"

	"github.com/pkg/errors"
)

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name  string   //template name
	Descr string   //template descr
	Cells [][2]int //array of [row, col] coordinates
}

var templates = map[string]Template{}

func init() {
	for _, t := range []Template{
		{"single", "one lonely cell, dies of underpopulation", [][2]int{{1, 1}}},
		{"pair", "two neighbours, both die", [][2]int{{1, 1}, {1, 2}}},
		{"ell", "three cells growing into a block", [][2]int{{1, 1}, {1, 2}, {2, 1}}},
		{"block", "still life 2x2", [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}},
		{"plus", "plus sign turning into a ring", [][2]int{{1, 2}, {2, 1}, {2, 2}, {2, 3}, {3, 2}}},
		{"blinker", "period 2 oscillator", [][2]int{{2, 1}, {2, 2}, {2, 3}}},
		{"glider", "moves one cell diagonally every 4 generations", [][2]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}},
	} {
		templates[t.Name] = t
	}
}

//Templates returns the built-in templates sorted by name
func Templates() []Template {
	l := make([]Template, 0, len(templates))
	for _, t := range templates {
		l = append(l, t)
	}
	sort.Slice(l, func(i, j int) bool { return l[i].Name < l[j].Name })
	return l
}

//TemplateByName looks up the built-in template
func TemplateByName(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

//Settle creates the generation 0 populated with the template
func Settle(o Options, t Template) (State, error) {
	if err := o.Validate(); err != nil {
		return State{}, errors.Wrap(err, "[Settle] bad options")
	}
	g := createGrid(o.Width, o.Height)
	for _, v := range t.Cells {
		if !g.inside(v[0], v[1]) {
			return State{}, errors.Errorf("[Settle] template %q cell %v,%v is outside %v x %v", t.Name, v[0], v[1], o.Width, o.Height)
		}
		g.set(v[0], v[1], Alive)
	}
	return NewState(g, o.Sweep), nil
}
