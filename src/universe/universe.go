package universe

import (
	"math/rand"

	"github.com/pkg/errors"
)

//Cell is the state of one grid position, Dead or Alive
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//Sweep selects which cells are updated by Advance and seeded by Initialize
type Sweep int

const (
	//SweepFull updates every cell of the grid
	SweepFull Sweep = iota
	//SweepLegacy never updates the last row and the last column
	//they keep their initial values and only act as neighbours
	SweepLegacy
)

func (s Sweep) String() string {
	if s == SweepLegacy {
		return "legacy"
	}
	return "full"
}

//default options
const (
	DefWidth   = 40
	DefHeight  = 20
	DefDensity = 20
)

//Options represents the configurable options of the universe
type Options struct {
	Width   int
	Height  int
	Density int //percent of cells alive after Initialize, 0..100
	Sweep   Sweep
}

var DefaultOptions = Options{
	Width:   DefWidth,
	Height:  DefHeight,
	Density: DefDensity,
	Sweep:   SweepFull,
}

//Validate checks the options before a grid is built
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return errors.Errorf("invalid dimension %v x %v", o.Width, o.Height)
	}
	if o.Density < 0 || o.Density > 100 {
		return errors.Errorf("density %v is out of range [0, 100]", o.Density)
	}
	return nil
}

//bounds returns the exclusive row and column limits covered by the sweep
func (s Sweep) bounds(g *Grid) (rows int, cols int) {
	rows, cols = g.height, g.width
	if s == SweepLegacy {
		rows--
		cols--
	}
	return
}

//Source produces uniform draws in [0, n)
//*rand.Rand satisfies it
type Source interface {
	Intn(n int) int
}

//NewSource returns a deterministic Source for the seed
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
