package editor

import (
	"github.com/chewxy/math32"

	"box-editor/math"
)

const (
	DefaultStackTolerance = 0.05
	DefaultOverlapEpsilon = 0.0001
	DefaultCellSize       = 1.0
)

// StackingOptions tune contact detection. The same tolerance is used for
// discovery and for snapping a dropped box onto the one beneath it.
type StackingOptions struct {
	Tolerance      float32 `toml:"tolerance"`       // max vertical gap counted as contact
	OverlapEpsilon float32 `toml:"overlap_epsilon"` // min footprint overlap on each axis
	CellSize       float32 `toml:"cell_size"`       // spatial index cell edge
}

func DefaultStackingOptions() StackingOptions {
	return StackingOptions{
		Tolerance:      DefaultStackTolerance,
		OverlapEpsilon: DefaultOverlapEpsilon,
		CellSize:       DefaultCellSize,
	}
}

func (o StackingOptions) withDefaults() StackingOptions {
	d := DefaultStackingOptions()
	if o.Tolerance <= 0 {
		o.Tolerance = d.Tolerance
	}
	if o.OverlapEpsilon <= 0 {
		o.OverlapEpsilon = d.OverlapEpsilon
	}
	if o.CellSize <= 0 {
		o.CellSize = d.CellSize
	}
	return o
}

// Stacking answers which boxes rest on which. Results are computed from the
// current scene on every call and must not be kept across gestures.
type Stacking struct {
	scene *Scene
	opts  StackingOptions
}

func (st *Stacking) Options() StackingOptions { return st.opts }

// footprintOverlaps reports a strictly positive XZ overlap between a and b.
func (st *Stacking) footprintOverlaps(a, b math.Box3) bool {
	return a.OverlapX(b) > st.opts.OverlapEpsilon && a.OverlapZ(b) > st.opts.OverlapEpsilon
}

// RestsOn reports whether upper sits directly on top of lower.
func (st *Stacking) RestsOn(upper, lower *Box) bool {
	if upper == nil || lower == nil || upper == lower {
		return false
	}
	ub, lb := upper.Bounds(), lower.Bounds()
	if !st.footprintOverlaps(ub, lb) {
		return false
	}
	return math32.Abs(ub.Min.Y-lb.Max.Y) <= st.opts.Tolerance
}

// Discover returns every box resting on base, directly or through other
// stacked boxes, in breadth-first order. Base itself is not included.
func (st *Stacking) Discover(base *Box) []*Box {
	if base == nil || !st.scene.Contains(base) {
		return nil
	}
	visited := map[uint32]struct{}{base.id: {}}
	var out []*Box
	queue := []*Box{base}
	for len(queue) > 0 {
		lower := queue[0]
		queue = queue[1:]
		for _, cand := range st.scene.query(lower.Bounds()) {
			if _, ok := visited[cand.id]; ok {
				continue
			}
			if st.RestsOn(cand, lower) {
				visited[cand.id] = struct{}{}
				out = append(out, cand)
				queue = append(queue, cand)
			}
		}
	}
	return out
}

// RestingHeight returns the height a box with the given footprint settles
// at: the highest top among overlapping boxes not in exclude, or the ground.
func (st *Stacking) RestingHeight(footprint math.Box3, exclude map[*Box]bool) float32 {
	return st.supportBelow(footprint, math32.Inf(1), exclude)
}

// supportBelow is RestingHeight ignoring boxes whose top is above ceiling
// plus the contact tolerance.
func (st *Stacking) supportBelow(footprint math.Box3, ceiling float32, exclude map[*Box]bool) float32 {
	var height float32
	for _, cand := range st.scene.query(footprint) {
		if exclude[cand] {
			continue
		}
		cb := cand.Bounds()
		if cb.Max.Y > ceiling+st.opts.Tolerance {
			continue
		}
		if st.footprintOverlaps(footprint, cb) && cb.Max.Y > height {
			height = cb.Max.Y
		}
	}
	return height
}

// Settle returns how far each of boxes drops once base is gone. Boxes are
// taken in order, so a box lands on earlier boxes at their settled height
// or on anything else left beneath it.
func (st *Stacking) Settle(base *Box, boxes []*Box) []float32 {
	exclude := map[*Box]bool{base: true}
	for _, b := range boxes {
		exclude[b] = true
	}
	drops := make([]float32, len(boxes))
	settled := make([]math.Box3, 0, len(boxes))
	for i, b := range boxes {
		bounds := b.Bounds()
		floor := st.supportBelow(bounds, bounds.Min.Y, exclude)
		for _, sb := range settled {
			if sb.Max.Y <= bounds.Min.Y+st.opts.Tolerance && st.footprintOverlaps(bounds, sb) && sb.Max.Y > floor {
				floor = sb.Max.Y
			}
		}
		drops[i] = max(bounds.Min.Y-floor, 0)
		bounds.Min.Y -= drops[i]
		bounds.Max.Y -= drops[i]
		settled = append(settled, bounds)
	}
	return drops
}
