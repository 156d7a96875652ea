package world

import (
	"sync"

	"sectiongraph/internal/profiling"
)

// Listener receives world change notifications. Callbacks may arrive from any
// goroutine, one at a time and in the order the changes were made. They may
// read from the store but must not modify it.
type Listener interface {
	OnSectionLoaded(pos SectionPos)
	OnSectionUnloaded(pos SectionPos)
	OnSectionChanged(pos SectionPos, important bool)
}

// Store manages the loaded world sections.
type Store struct {
	sections map[SectionPos]*Section
	mu       sync.RWMutex
	modCount uint64 // increases on any section add/remove

	// notifyMu orders a change together with its notification so listeners
	// never see an unload before the matching load.
	notifyMu sync.Mutex

	listenersMu sync.RWMutex
	listeners   []Listener
}

// NewStore creates an empty section store.
func NewStore() *Store {
	return &Store{
		sections: make(map[SectionPos]*Section),
	}
}

// AddListener registers l for change notifications.
func (s *Store) AddListener(l Listener) {
	s.listenersMu.Lock()
	s.listeners = append(s.listeners, l)
	s.listenersMu.Unlock()
}

func (s *Store) notify(fn func(Listener)) {
	s.listenersMu.RLock()
	ls := s.listeners
	s.listenersMu.RUnlock()
	for _, l := range ls {
		fn(l)
	}
}

// HasSection reports whether a section is loaded at pos.
func (s *Store) HasSection(pos SectionPos) bool {
	s.mu.RLock()
	_, ok := s.sections[pos]
	s.mu.RUnlock()
	return ok
}

// AddSection installs a populated section. Returns false if one was already loaded.
func (s *Store) AddSection(sec *Section) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if _, ok := s.sections[sec.Pos]; ok {
		s.mu.Unlock()
		return false
	}
	s.sections[sec.Pos] = sec
	s.modCount++
	s.mu.Unlock()

	s.notify(func(l Listener) { l.OnSectionLoaded(sec.Pos) })
	return true
}

// RemoveSection unloads the section at pos.
func (s *Store) RemoveSection(pos SectionPos) bool {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if _, ok := s.sections[pos]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.sections, pos)
	s.modCount++
	s.mu.Unlock()

	s.notify(func(l Listener) { l.OnSectionUnloaded(pos) })
	return true
}

// Get returns the block at world coordinates. Unloaded space reads as air.
func (s *Store) Get(pos BlockPos) BlockType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sec := s.sections[pos.SectionPos()]
	if sec == nil {
		return BlockTypeAir
	}
	return sec.GetBlock(pos.Local())
}

// Set changes a block in a loaded section and notifies listeners about every
// section whose geometry may depend on it. Writes into unloaded sections are ignored.
func (s *Store) Set(pos BlockPos, b BlockType, important bool) bool {
	sp := pos.SectionPos()
	lx, ly, lz := pos.Local()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	sec := s.sections[sp]
	if sec == nil || !sec.SetBlock(lx, ly, lz, b) {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()

	dirty := []SectionPos{sp}
	// Border blocks also change the faces and connectivity seen by the neighbour.
	if lx == 0 {
		dirty = append(dirty, sp.Offset(West))
	} else if lx == SectionMask {
		dirty = append(dirty, sp.Offset(East))
	}
	if ly == 0 {
		dirty = append(dirty, sp.Offset(Down))
	} else if ly == SectionMask {
		dirty = append(dirty, sp.Offset(Up))
	}
	if lz == 0 {
		dirty = append(dirty, sp.Offset(North))
	} else if lz == SectionMask {
		dirty = append(dirty, sp.Offset(South))
	}

	s.notify(func(l Listener) {
		for _, p := range dirty {
			l.OnSectionChanged(p, important)
		}
	})
	return true
}

// Snapshot copies the section at pos together with a one block border from its
// neighbours. Returns nil if the section is not loaded.
func (s *Store) Snapshot(pos SectionPos) *Snapshot {
	defer profiling.Track("world.Store.Snapshot")()
	s.mu.RLock()
	defer s.mu.RUnlock()

	center := s.sections[pos]
	if center == nil {
		return nil
	}

	snap := &Snapshot{Pos: pos}
	origin := pos.Origin()
	for y := -1; y <= SectionSize; y++ {
		for z := -1; z <= SectionSize; z++ {
			for x := -1; x <= SectionSize; x++ {
				var b BlockType
				if inSection(x, y, z) {
					b = center.GetBlock(x, y, z)
				} else {
					wp := BlockPos{X: origin.X + x, Y: origin.Y + y, Z: origin.Z + z}
					if nb := s.sections[wp.SectionPos()]; nb != nil {
						b = nb.GetBlock(wp.Local())
					}
				}
				snap.blocks[snapshotIndex(x, y, z)] = b
			}
		}
	}
	return snap
}

// Positions returns the positions of all loaded sections.
func (s *Store) Positions() []SectionPos {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]SectionPos, 0, len(s.sections))
	for p := range s.sections {
		out = append(out, p)
	}
	return out
}

// Len returns the number of loaded sections.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sections)
}

// ModCount returns the current modification count of the section map.
func (s *Store) ModCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modCount
}

// EvictFarSections removes sections whose column lies outside radius (in sections)
// around (cx, cz). Returns the number removed.
func (s *Store) EvictFarSections(cx, cz, radius int) int {
	defer profiling.Track("world.EvictFarSections")()
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	var removed []SectionPos
	s.mu.Lock()
	for pos := range s.sections {
		dx := pos.X - cx
		dz := pos.Z - cz
		if dx*dx+dz*dz > radius*radius {
			delete(s.sections, pos)
			s.modCount++
			removed = append(removed, pos)
		}
	}
	s.mu.Unlock()

	for _, pos := range removed {
		s.notify(func(l Listener) { l.OnSectionUnloaded(pos) })
	}
	return len(removed)
}
