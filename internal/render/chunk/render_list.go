package chunk

// RenderList is the visible sections of one region, in the order the
// traversal reached them.
type RenderList struct {
	Region   *RenderRegion
	Sections []*RenderSection
}

// SortedRenderLists groups the visible sections of a frame by region. Regions
// appear in the order their first section was visited, so nearer regions
// come first.
type SortedRenderLists struct {
	lists   []*RenderList
	byKey   map[RegionKey]int
	entries int
	pool    []*RenderList
}

func NewSortedRenderLists() *SortedRenderLists {
	return &SortedRenderLists{byKey: make(map[RegionKey]int)}
}

// Reset empties the lists, keeping their backing storage.
func (l *SortedRenderLists) Reset() {
	for _, rl := range l.lists {
		clear(rl.Sections)
		rl.Sections = rl.Sections[:0]
		rl.Region = nil
		l.pool = append(l.pool, rl)
	}
	clear(l.lists)
	l.lists = l.lists[:0]
	clear(l.byKey)
	l.entries = 0
}

// Add appends a visible section to its region's list.
func (l *SortedRenderLists) Add(s *RenderSection) {
	region := s.Region()
	idx, ok := l.byKey[region.Key()]
	if !ok {
		idx = len(l.lists)
		l.byKey[region.Key()] = idx
		l.lists = append(l.lists, l.newList(region))
	}
	rl := l.lists[idx]
	rl.Sections = append(rl.Sections, s)
	l.entries++
}

func (l *SortedRenderLists) newList(region *RenderRegion) *RenderList {
	if n := len(l.pool); n > 0 {
		rl := l.pool[n-1]
		l.pool[n-1] = nil
		l.pool = l.pool[:n-1]
		rl.Region = region
		return rl
	}
	return &RenderList{Region: region}
}

// Lists returns the per-region lists. The slice is only valid until the next Reset.
func (l *SortedRenderLists) Lists() []*RenderList {
	return l.lists
}

// SectionCount returns the number of sections across all lists.
func (l *SortedRenderLists) SectionCount() int {
	return l.entries
}

// RegionCount returns the number of regions with at least one visible section.
func (l *SortedRenderLists) RegionCount() int {
	return len(l.lists)
}
