package editor

import (
	"slices"

	"github.com/kamstrup/intmap"

	"box-editor/math"
	"box-editor/scene"
)

// ChangeKind says what happened to a box in a scene notification.
type ChangeKind int

const (
	ChangeInserted ChangeKind = iota
	ChangeRemoved
	ChangeUpdated
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInserted:
		return "inserted"
	case ChangeRemoved:
		return "removed"
	default:
		return "updated"
	}
}

// Change is delivered to scene watchers after every mutation.
type Change struct {
	Kind  ChangeKind
	Box   *Box
	Index int // position in Objects() after an insert, before a remove
}

// Watcher observes scene mutations; list panels and selections use it.
type Watcher func(Change)

type watcherSlot struct {
	id int
	fn Watcher
}

// Scene is the ordered collection of placed boxes. Read access is public;
// mutation is reserved to commands in this package so that every change is
// recorded in History.
type Scene struct {
	objects  []*Box
	byID     *intmap.Map[uint32, *Box]
	index    *grid
	ledger   *Ledger
	stacking *Stacking

	watchers    []watcherSlot
	nextWatcher int
}

// NewScene creates an empty scene. A nil ledger gets a ledger without hook.
func NewScene(opts StackingOptions, ledger *Ledger) *Scene {
	if ledger == nil {
		ledger = NewLedger(nil)
	}
	opts = opts.withDefaults()
	s := &Scene{
		byID:   intmap.New[uint32, *Box](64),
		index:  newGrid(opts.CellSize),
		ledger: ledger,
	}
	s.stacking = &Stacking{scene: s, opts: opts}
	return s
}

// Objects returns the boxes in insertion order. The slice is a copy.
func (s *Scene) Objects() []*Box {
	return slices.Clone(s.objects)
}

func (s *Scene) Len() int { return len(s.objects) }

func (s *Scene) Get(id uint32) (*Box, bool) {
	return s.byID.Get(id)
}

func (s *Scene) Contains(b *Box) bool {
	if b == nil {
		return false
	}
	found, ok := s.byID.Get(b.id)
	return ok && found == b
}

// IndexOf returns the position of b in Objects(), or -1.
func (s *Scene) IndexOf(b *Box) int {
	return slices.Index(s.objects, b)
}

func (s *Scene) Ledger() *Ledger { return s.ledger }

// Stacking returns the stacking discovery bound to this scene.
func (s *Scene) Stacking() *Stacking { return s.stacking }

// Watch registers fn for change notifications and returns a func removing it.
func (s *Scene) Watch(fn Watcher) (cancel func()) {
	s.nextWatcher++
	id := s.nextWatcher
	s.watchers = append(s.watchers, watcherSlot{id: id, fn: fn})
	return func() {
		s.watchers = slices.DeleteFunc(s.watchers, func(w watcherSlot) bool { return w.id == id })
	}
}

func (s *Scene) notify(c Change) {
	for _, w := range slices.Clone(s.watchers) {
		w.fn(c)
	}
}

// query returns boxes whose cells intersect area, excluding nothing.
func (s *Scene) query(area math.Box3) []*Box {
	return s.index.query(area)
}

func (s *Scene) insertAt(b *Box, idx int) {
	if s.Contains(b) {
		return
	}
	if idx < 0 || idx > len(s.objects) {
		idx = len(s.objects)
	}
	s.objects = slices.Insert(s.objects, idx, b)
	s.byID.Put(b.id, b)
	s.index.insert(b)
	s.ledger.apply(b.Price())
	s.notify(Change{Kind: ChangeInserted, Box: b, Index: idx})
}

func (s *Scene) remove(b *Box) int {
	idx := s.IndexOf(b)
	if idx < 0 {
		return -1
	}
	s.objects = slices.Delete(s.objects, idx, idx+1)
	s.byID.Del(b.id)
	s.index.remove(b)
	s.ledger.apply(-b.Price())
	s.notify(Change{Kind: ChangeRemoved, Box: b, Index: idx})
	return idx
}

// mutate applies fn to b, keeping the index current. When priced is set the
// price difference goes to the ledger. Boxes outside the scene are mutated
// without bookkeeping.
func (s *Scene) mutate(b *Box, priced bool, fn func(*Box)) {
	if !s.Contains(b) {
		fn(b)
		return
	}
	before := 0.0
	if priced {
		before = b.Price()
	}
	fn(b)
	s.index.update(b)
	if priced {
		s.ledger.apply(b.Price() - before)
	}
	s.notify(Change{Kind: ChangeUpdated, Box: b, Index: s.IndexOf(b)})
}

func (s *Scene) setState(b *Box, st BoxState) {
	s.mutate(b, true, func(b *Box) { b.setState(st) })
}

func (s *Scene) setPosition(b *Box, p math.Vec3) {
	s.mutate(b, false, func(b *Box) { b.transform.Position = p })
}

func (s *Scene) setRotation(b *Box, q math.Quaternion) {
	s.mutate(b, false, func(b *Box) { b.transform.Rotation = q })
}

func (s *Scene) setMaterial(b *Box, f Face, m *scene.Material) {
	s.mutate(b, true, func(b *Box) { b.surfaces[f].Material = m })
}

func (s *Scene) setTurns(b *Box, f Face, turns int) {
	s.mutate(b, true, func(b *Box) { b.surfaces[f].Turns = turns })
}
