package editor

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"
	"github.com/kamstrup/intmap"

	"box-editor/math"
)

// maxGridCells caps the cells one box or query may touch. Boxes above the
// cap, or with non-finite bounds, go on the large list that every query
// returns.
const maxGridCells = 4096

// maxGridCoord bounds cell coordinates so they fit a cell key.
const maxGridCoord = 1 << 30

// grid is a uniform spatial index over the XZ ground plane. Each box is
// listed in every cell its footprint touches. The scene keeps it current on
// every mutation so stacking queries do not scan the whole scene.
type grid struct {
	cellSize float32
	cells    *intmap.Map[uint64, []*Box]
	occupied *intmap.Map[uint32, []uint64]
	large    *intmap.Map[uint32, *Box]
	all      *intmap.Map[uint32, *Box]
}

func newGrid(cellSize float32) *grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &grid{
		cellSize: cellSize,
		cells:    intmap.New[uint64, []*Box](64),
		occupied: intmap.New[uint32, []uint64](64),
		large:    intmap.New[uint32, *Box](8),
		all:      intmap.New[uint32, *Box](64),
	}
}

func cellKey(x, z int64) uint64 {
	return uint64(uint32(int32(x)))<<32 | uint64(uint32(int32(z)))
}

// cellRange returns the cells covered by area. ok is false when the area is
// not finite or covers more than maxGridCells cells.
func (g *grid) cellRange(area math.Box3) (x0, x1, z0, z1 int64, ok bool) {
	fx0 := float64(math32.Floor(area.Min.X / g.cellSize))
	fx1 := float64(math32.Floor(area.Max.X / g.cellSize))
	fz0 := float64(math32.Floor(area.Min.Z / g.cellSize))
	fz1 := float64(math32.Floor(area.Max.Z / g.cellSize))
	for _, f := range [...]float64{fx0, fx1, fz0, fz1} {
		if !(f > -maxGridCoord && f < maxGridCoord) {
			return 0, 0, 0, 0, false
		}
	}
	if fx1 < fx0 || fz1 < fz0 || (fx1-fx0+1)*(fz1-fz0+1) > maxGridCells {
		return 0, 0, 0, 0, false
	}
	return int64(fx0), int64(fx1), int64(fz0), int64(fz1), true
}

func (g *grid) insert(b *Box) {
	g.all.Put(b.id, b)
	x0, x1, z0, z1, ok := g.cellRange(b.Bounds())
	if !ok {
		g.large.Put(b.id, b)
		return
	}
	keys := make([]uint64, 0, (x1-x0+1)*(z1-z0+1))
	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			k := cellKey(x, z)
			list, _ := g.cells.Get(k)
			g.cells.Put(k, append(list, b))
			keys = append(keys, k)
		}
	}
	g.occupied.Put(b.id, keys)
}

func (g *grid) remove(b *Box) {
	g.all.Del(b.id)
	g.large.Del(b.id)
	keys, ok := g.occupied.Get(b.id)
	if !ok {
		return
	}
	for _, k := range keys {
		list, _ := g.cells.Get(k)
		list = slices.DeleteFunc(list, func(o *Box) bool { return o == b })
		if len(list) == 0 {
			g.cells.Del(k)
		} else {
			g.cells.Put(k, list)
		}
	}
	g.occupied.Del(b.id)
}

func (g *grid) update(b *Box) {
	g.remove(b)
	g.insert(b)
}

// query returns the boxes listed in any cell touched by area plus the large
// boxes, ordered by id. An area too big for the cells returns every box.
func (g *grid) query(area math.Box3) []*Box {
	var out []*Box
	x0, x1, z0, z1, ok := g.cellRange(area)
	if !ok {
		out = slices.Collect(g.all.Values())
	} else {
		seen := make(map[uint32]struct{})
		for x := x0; x <= x1; x++ {
			for z := z0; z <= z1; z++ {
				list, _ := g.cells.Get(cellKey(x, z))
				for _, b := range list {
					if _, dup := seen[b.id]; dup {
						continue
					}
					seen[b.id] = struct{}{}
					out = append(out, b)
				}
			}
		}
		out = append(out, slices.Collect(g.large.Values())...)
	}
	slices.SortFunc(out, func(a, b *Box) int { return cmp.Compare(a.id, b.id) })
	return out
}

func (g *grid) len() int { return g.all.Len() }
