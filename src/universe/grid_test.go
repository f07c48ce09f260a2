package universe

import "testing"

func TestNewGrid(t *testing.T) {
	g, err := NewGrid(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 3 || g.Height() != 2 {
		t.Fatalf("dimension = %v x %v, expected 3 x 2", g.Width(), g.Height())
	}
	if g.Alive() != 0 {
		t.Fatal("new grid has live cells")
	}
	for _, d := range [][2]int{{0, 1}, {1, 0}, {-2, 3}} {
		if _, err := NewGrid(d[0], d[1]); err == nil {
			t.Errorf("NewGrid(%v, %v) expected error", d[0], d[1])
		}
	}
}

func TestGridFromRows(t *testing.T) {
	g, err := GridFromRows([][]Cell{
		{0, 1, 0},
		{1, 1, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 3 || g.Height() != 2 || g.Alive() != 3 {
		t.Fatalf("unexpected grid %v x %v with %v live cells", g.Width(), g.Height(), g.Alive())
	}
	if g.At(0, 1) != Alive || g.At(1, 2) != Dead {
		t.Fatal("cells are misplaced")
	}

	bad := map[string][][]Cell{
		"empty":      {},
		"empty row":  {{}},
		"ragged":     {{0, 1}, {1}},
		"not binary": {{0, 2}},
	}
	for name, rows := range bad {
		if _, err := GridFromRows(rows); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestGridAtOutside(t *testing.T) {
	g, _ := GridFromRows([][]Cell{{1, 1}, {1, 1}})
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if g.At(p[0], p[1]) != Dead {
			t.Errorf("At(%v, %v) outside the grid is alive", p[0], p[1])
		}
	}
}

func TestGridCloneAndRowsAreIndependent(t *testing.T) {
	g, _ := GridFromRows([][]Cell{{1, 0}, {0, 1}})
	c := g.Clone()
	c.set(0, 1, Alive)
	if g.At(0, 1) != Dead {
		t.Fatal("clone shares cells with the original")
	}
	rows := g.Rows()
	rows[1][0] = Alive
	if g.At(1, 0) != Dead {
		t.Fatal("rows share cells with the grid")
	}
	if g.Equal(c) {
		t.Fatal("different grids are equal")
	}
	if !g.Equal(g.Clone()) {
		t.Fatal("clone is not equal to the original")
	}
}

func TestSettleRejectsCellsOutside(t *testing.T) {
	if _, err := Settle(Options{Width: 2, Height: 2}, Template{Name: "far", Cells: [][2]int{{2, 0}}}); err == nil {
		t.Fatal("expected error")
	}
}

func TestTemplates(t *testing.T) {
	l := Templates()
	if len(l) == 0 {
		t.Fatal("no templates")
	}
	for i := 1; i < len(l); i++ {
		if l[i-1].Name >= l[i].Name {
			t.Fatalf("templates are not sorted: %v before %v", l[i-1].Name, l[i].Name)
		}
	}
	for _, tmpl := range l {
		s, err := Settle(DefaultOptions, tmpl)
		if err != nil {
			t.Fatalf("%s: %v", tmpl.Name, err)
		}
		if int(s.Living) != len(tmpl.Cells) {
			t.Fatalf("%s: living = %v, expected %v", tmpl.Name, s.Living, len(tmpl.Cells))
		}
	}
	if _, ok := TemplateByName("nope"); ok {
		t.Fatal("unknown template found")
	}
}
