package universe

import "github.com/pkg/errors"

//Grid is the fixed size field where cells are living
//cells are stored row by row in one buffer, index is row*width+col
type Grid struct {
	width  int
	height int
	cells  []Cell
}

//NewGrid allocates the dead grid with the given dimension
func NewGrid(width int, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("[NewGrid] invalid dimension %v x %v", width, height)
	}
	return createGrid(width, height), nil
}

//GridFromRows builds the grid from the rows of cells
//all rows must have the same length and contain Dead or Alive only
func GridFromRows(rows [][]Cell) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("[GridFromRows] empty grid")
	}
	g := createGrid(len(rows[0]), len(rows))
	for r, l := range rows {
		if len(l) != g.width {
			return nil, errors.Errorf("[GridFromRows] row %v has %v cells, expected %v", r, len(l), g.width)
		}
		for c, e := range l {
			if e != Dead && e != Alive {
				return nil, errors.Errorf("[GridFromRows] invalid cell value %v at %v,%v", e, r, c)
			}
			g.cells[g.index(r, c)] = e
		}
	}
	return g, nil
}

func createGrid(width int, height int) *Grid {
	return &Grid{width: width, height: height, cells: make([]Cell, width*height)}
}

//Width returns the number of columns
func (g *Grid) Width() int { return g.width }

//Height returns the number of rows
func (g *Grid) Height() int { return g.height }

//At returns the cell at row, col
//positions outside the grid are Dead
func (g *Grid) At(row int, col int) Cell {
	if !g.inside(row, col) {
		return Dead
	}
	return g.cells[g.index(row, col)]
}

//Clone returns an independent copy of the grid
func (g *Grid) Clone() *Grid {
	c := createGrid(g.width, g.height)
	copy(c.cells, g.cells)
	return c
}

//Alive counts the live cells by walking the entire grid
func (g *Grid) Alive() int {
	n := 0
	for _, e := range g.cells {
		n += int(e)
	}
	return n
}

//Rows returns a copy of the grid split into rows
func (g *Grid) Rows() [][]Cell {
	b := make([]Cell, len(g.cells))
	copy(b, g.cells)
	rows := make([][]Cell, g.height)
	for i := range rows {
		start := g.width * i
		rows[i] = b[start : start+g.width : start+g.width]
	}
	return rows
}

//Equal reports whether both grids have the same dimension and cells
func (g *Grid) Equal(o *Grid) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) set(row int, col int, e Cell) {
	g.cells[g.index(row, col)] = e
}

func (g *Grid) index(row int, col int) int {
	return row*g.width + col
}

func (g *Grid) inside(row int, col int) bool {
	return row >= 0 && col >= 0 && row < g.height && col < g.width
}
