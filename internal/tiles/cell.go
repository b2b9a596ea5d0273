package tiles

import (
	"fmt"
	"sort"

	"github.com/jengzang/ridetiles/internal/spatial"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Cell identifies one slippy-map tile at the zoom level of the computation.
// Coordinates are signed so padding cells around the world edge stay representable.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// CellOf maps a coordinate to its cell at the given zoom level.
func CellOf(lat, lon float64, zoom int) (Cell, error) {
	if zoom < 0 || zoom > spatial.MaxZoom {
		return Cell{}, errors.Wrapf(ErrInvalidZoom, "zoom %d", zoom)
	}
	p := spatial.Point{Lat: lat, Lon: lon}
	if !p.Valid() {
		return Cell{}, errors.Wrapf(ErrInvalidCoordinate, "lat=%v lon=%v", lat, lon)
	}
	x, y := spatial.TileXY(lat, lon, zoom)
	return Cell{X: x, Y: y}, nil
}

// Bound returns the geographic bounds of the cell.
func (c Cell) Bound(zoom int) orb.Bound {
	return spatial.TileBound(c.X, c.Y, zoom)
}

// Neighbors returns the four edge-sharing neighbors: left, right, up, down.
func (c Cell) Neighbors() [4]Cell {
	return [4]Cell{
		{X: c.X - 1, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
		{X: c.X, Y: c.Y - 1},
		{X: c.X, Y: c.Y + 1},
	}
}

// Less orders cells row by row, top to bottom then left to right.
func (c Cell) Less(o Cell) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

func (c Cell) String() string {
	return fmt.Sprintf("%d/%d", c.X, c.Y)
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
}
