package world

import (
	"runtime"
	"sync"

	"sectiongraph/internal/profiling"
)

// Streamer generates sections around a moving point on background workers and
// installs them into the store, which in turn notifies render listeners.
type Streamer struct {
	jobs       chan SectionPos
	pending    map[SectionPos]struct{}
	pendingMu  sync.Mutex
	maxPending int

	maxJobsPerCall int
	maxSectionY    int

	// Cached column heights (sectionX, sectionZ) -> top section Y
	heightCache   map[[2]int]int
	heightCacheMu sync.RWMutex

	wg    sync.WaitGroup
	store *Store
	gen   TerrainGenerator
}

// NewStreamer creates a streamer writing into store. maxSectionY bounds the
// highest section generated in any column.
func NewStreamer(store *Store, gen TerrainGenerator, maxSectionY int) *Streamer {
	s := &Streamer{
		jobs:           make(chan SectionPos, 4096),
		pending:        make(map[SectionPos]struct{}),
		maxJobsPerCall: 2048,
		maxPending:     16384,
		maxSectionY:    maxSectionY,
		heightCache:    make(map[[2]int]int),
		store:          store,
		gen:            gen,
	}

	workers := max(runtime.NumCPU()/2, 1)
	for range workers {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Close stops the background workers and waits for them to exit.
func (s *Streamer) Close() {
	close(s.jobs)
	s.wg.Wait()
}

func (s *Streamer) worker() {
	defer s.wg.Done()
	for pos := range s.jobs {
		s.generateSync(pos)
		s.pendingMu.Lock()
		delete(s.pending, pos)
		s.pendingMu.Unlock()
	}
}

func (s *Streamer) generateSync(pos SectionPos) {
	if s.store.HasSection(pos) {
		return
	}
	sec := NewSection(pos)
	s.gen.PopulateSection(sec)
	s.store.AddSection(sec)
}

// columnTop returns the highest section Y worth generating for a column.
func (s *Streamer) columnTop(sx, sz int) int {
	key := [2]int{sx, sz}
	s.heightCacheMu.RLock()
	top, ok := s.heightCache[key]
	s.heightCacheMu.RUnlock()
	if ok {
		return top
	}

	h := s.gen.HeightAt(sx*SectionSize+SectionSize/2, sz*SectionSize+SectionSize/2)
	// one extra section of air above the surface keeps the sky open for culling
	top = min(max(floorDiv(h, SectionSize)+1, 0), s.maxSectionY)

	s.heightCacheMu.Lock()
	s.heightCache[key] = top
	s.heightCacheMu.Unlock()
	return top
}

// StreamAroundSync generates all sections within radius synchronously.
func (s *Streamer) StreamAroundSync(x, z float32, radius int) {
	defer profiling.Track("world.StreamAroundSync")()
	cx, cz := SectionCoord(x), SectionCoord(z)
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			top := s.columnTop(cx+dx, cz+dz)
			for sy := 0; sy <= top; sy++ {
				s.generateSync(SectionPos{X: cx + dx, Y: sy, Z: cz + dz})
			}
		}
	}
}

// StreamAroundAsync queues missing sections in rings of growing radius.
func (s *Streamer) StreamAroundAsync(x, z float32, radius int) {
	defer profiling.Track("world.StreamAroundAsync")()
	cx, cz := SectionCoord(x), SectionCoord(z)

	pushed := 0
	for r := 0; r <= radius && pushed < s.maxJobsPerCall; r++ {
		if r == 0 {
			pushed += s.enqueueColumn(cx, cz)
			continue
		}
		for d := -r; d <= r && pushed < s.maxJobsPerCall; d++ {
			pushed += s.enqueueColumn(cx+d, cz-r)
			pushed += s.enqueueColumn(cx+d, cz+r)
			if d != -r && d != r {
				pushed += s.enqueueColumn(cx-r, cz+d)
				pushed += s.enqueueColumn(cx+r, cz+d)
			}
		}
	}
}

func (s *Streamer) enqueueColumn(sx, sz int) int {
	enq := 0
	top := s.columnTop(sx, sz)
	for sy := 0; sy <= top; sy++ {
		if s.requestLimited(SectionPos{X: sx, Y: sy, Z: sz}) {
			enq++
		}
	}
	return enq
}

// requestLimited respects the pending cap and returns true if enqueued.
func (s *Streamer) requestLimited(pos SectionPos) bool {
	if s.store.HasSection(pos) {
		return false
	}

	s.pendingMu.Lock()
	if _, ok := s.pending[pos]; ok {
		s.pendingMu.Unlock()
		return false
	}
	if s.maxPending > 0 && len(s.pending) >= s.maxPending {
		s.pendingMu.Unlock()
		return false
	}
	s.pending[pos] = struct{}{}
	s.pendingMu.Unlock()

	select {
	case s.jobs <- pos:
		return true
	default:
		// queue full: rollback
		s.pendingMu.Lock()
		delete(s.pending, pos)
		s.pendingMu.Unlock()
		return false
	}
}

// EvictFar removes sections outside radius and prunes the height cache.
func (s *Streamer) EvictFar(x, z float32, radius int) int {
	cx, cz := SectionCoord(x), SectionCoord(z)
	removed := s.store.EvictFarSections(cx, cz, radius)

	s.heightCacheMu.Lock()
	for key := range s.heightCache {
		dx, dz := key[0]-cx, key[1]-cz
		if dx*dx+dz*dz > radius*radius {
			delete(s.heightCache, key)
		}
	}
	s.heightCacheMu.Unlock()
	return removed
}

// Pending returns the number of sections queued but not yet generated.
func (s *Streamer) Pending() int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending)
}
