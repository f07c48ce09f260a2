package universe

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

//State represents the universe at one generation
//a State is replaced as a whole by Advance, its Grid is never changed after creation
type State struct {
	Generation uint32
	Living     uint32 //always equals the number of Alive cells in Grid
	Sweep      Sweep
	Grid       *Grid
}

//NewState wraps the grid into a State of generation 0
func NewState(g *Grid, sweep Sweep) State {
	return State{Living: uint32(g.Alive()), Sweep: sweep, Grid: g}
}

//Validate checks that the live cells counter matches the grid
func (s State) Validate() error {
	if s.Grid == nil {
		return errors.New("[Validate] state has no grid")
	}
	if n := s.Grid.Alive(); uint32(n) != s.Living {
		return errors.Errorf("[Validate] living is %v, grid has %v live cells", s.Living, n)
	}
	return nil
}

//Extinct reports whether no cell is alive
func (s State) Extinct() bool {
	return s.Living == 0
}

//Saturated reports whether the generation counter can't be incremented anymore
func (s State) Saturated() bool {
	return s.Generation == math.MaxUint32
}

//Initialize creates the generation 0 with random data
//each swept cell is alive when the draw from [0, 100) is at least 100-Density
func Initialize(o Options, src Source) (State, error) {
	if err := o.Validate(); err != nil {
		return State{}, errors.Wrap(err, "[Initialize] bad options")
	}
	g := createGrid(o.Width, o.Height)
	s := State{Sweep: o.Sweep, Grid: g}
	rows, cols := o.Sweep.bounds(g)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if src.Intn(100) >= 100-o.Density {
				g.set(r, c, Alive)
				s.Living++
			}
		}
	}
	return s, nil
}

//CountAliveNeighbors returns the number of live cells around row, col
//coordinates outside the grid are skipped, the field doesn't wrap
func CountAliveNeighbors(row int, col int, g *Grid) int {
	n := 0
	for i := -1; i < 2; i++ {
		for j := -1; j < 2; j++ {
			//skip my position
			if i == 0 && j == 0 {
				continue
			}
			n += int(g.At(row+i, col+j))
		}
	}
	return n
}

//Advance calculates the next generation
//the next state of every cell depends on the input grid only, the input state is not changed
func Advance(s State) State {
	if s.Grid == nil {
		panic("universe: Advance called on a state without grid")
	}
	next := State{
		Generation: s.Generation + 1,
		Living:     s.Living,
		Sweep:      s.Sweep,
		Grid:       s.Grid.Clone(),
	}
	rows, cols := s.Sweep.bounds(s.Grid)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			alive := s.Grid.At(r, c) == Alive
			n := CountAliveNeighbors(r, c, s.Grid)
			if alive && n < 2 {
				//underpopulation
				next.kill(r, c)
			} else if alive && n > 3 {
				//overpopulation
				next.kill(r, c)
			} else if !alive && n == 3 {
				next.birth(r, c)
			}
		}
	}
	return next
}

//kill and birth keep Living in step with the grid
//a counter leaving [0, cells] means the input state was corrupt
func (s *State) kill(row int, col int) {
	if s.Living == 0 {
		panic(fmt.Sprintf("universe: living counter underflow at %v,%v, generation %v", row, col, s.Generation))
	}
	s.Grid.set(row, col, Dead)
	s.Living--
}

func (s *State) birth(row int, col int) {
	if uint64(s.Living) >= uint64(len(s.Grid.cells)) {
		panic(fmt.Sprintf("universe: living counter %v exceeds %v cells at %v,%v, generation %v", s.Living, len(s.Grid.cells), row, col, s.Generation))
	}
	s.Grid.set(row, col, Alive)
	s.Living++
}
