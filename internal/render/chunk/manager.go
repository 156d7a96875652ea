package chunk

import (
	"cmp"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"sectiongraph/internal/config"
	"sectiongraph/internal/meshing"
	"sectiongraph/internal/profiling"
	"sectiongraph/internal/render/chunk/data"
	"sectiongraph/internal/task"
	"sectiongraph/internal/world"
)

// SnapshotSource supplies immutable copies of world sections for building.
type SnapshotSource interface {
	Snapshot(pos world.SectionPos) *world.Snapshot
}

// Scheduler runs build jobs off the render thread. *meshing.WorkerPool is the
// production implementation.
type Scheduler interface {
	SubmitJob(job meshing.MeshJob) error
	Shutdown()
}

// queueReporter is implemented by schedulers that expose their backlog.
type queueReporter interface {
	Workers() int
	GetQueueLength() int
}

// View is the per-frame input from the camera.
type View struct {
	Frame    int
	Camera   mgl32.Vec3
	Viewport Viewport
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger replaces log.Default.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithScheduler replaces the default worker pool. The manager takes ownership
// and shuts it down in Shutdown.
func WithScheduler(s Scheduler) Option {
	return func(m *Manager) { m.scheduler = s }
}

type sectionEventKind uint8

const (
	sectionLoaded sectionEventKind = iota
	sectionUnloaded
	sectionChanged
)

type sectionEvent struct {
	kind      sectionEventKind
	pos       world.SectionPos
	important bool
}

// Manager owns the render section graph. All methods except the world.Listener
// callbacks must be called from the render thread.
type Manager struct {
	settings  config.Settings
	source    SnapshotSource
	scheduler Scheduler
	logger    *log.Logger

	regions  map[RegionKey]*RenderRegion
	sections map[world.SectionPos]*RenderSection

	culler *OcclusionCuller
	lists  *SortedRenderLists
	seeds  []Seed

	results chan meshing.MeshResult

	eventsMu sync.Mutex
	events   []sectionEvent

	rebuildQueue   []*RenderSection
	importantQueue []*RenderSection

	globalBlockEntities  map[world.SectionPos][]data.BlockEntity
	visibleBlockEntities []data.BlockEntity
	visibleSprites       map[data.Sprite]struct{}

	camera    mgl32.Vec3
	frame     int
	inFlight  int
	submitted uint64
	applied   uint64
	discarded uint64
}

// NewManager creates an empty graph fed from source.
func NewManager(source SnapshotSource, settings config.Settings, opts ...Option) *Manager {
	m := &Manager{
		settings:            settings,
		source:              source,
		regions:             make(map[RegionKey]*RenderRegion),
		sections:            make(map[world.SectionPos]*RenderSection),
		culler:              NewOcclusionCuller(),
		lists:               NewSortedRenderLists(),
		results:             make(chan meshing.MeshResult, settings.QueueSize+settings.Workers),
		globalBlockEntities: make(map[world.SectionPos][]data.BlockEntity),
		visibleSprites:      make(map[data.Sprite]struct{}),
		frame:               -1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = log.Default()
	}
	if m.scheduler == nil {
		m.scheduler = meshing.NewWorkerPool(settings.Workers, settings.QueueSize, nil)
	}
	return m
}

func (m *Manager) OnSectionLoaded(pos world.SectionPos) {
	m.pushEvent(sectionEvent{kind: sectionLoaded, pos: pos})
}

func (m *Manager) OnSectionUnloaded(pos world.SectionPos) {
	m.pushEvent(sectionEvent{kind: sectionUnloaded, pos: pos})
}

func (m *Manager) OnSectionChanged(pos world.SectionPos, important bool) {
	m.pushEvent(sectionEvent{kind: sectionChanged, pos: pos, important: important})
}

func (m *Manager) pushEvent(e sectionEvent) {
	m.eventsMu.Lock()
	m.events = append(m.events, e)
	m.eventsMu.Unlock()
}

// Update runs one frame: world events, finished builds, visibility and build dispatch.
func (m *Manager) Update(view View) {
	defer profiling.Track("chunk.Manager.Update")()
	m.frame = view.Frame
	m.camera = view.Camera

	m.processEvents()
	m.ProcessBuildResults()
	m.updateVisibility(view)
	m.scheduleRebuilds()
}

func (m *Manager) processEvents() {
	m.eventsMu.Lock()
	events := m.events
	m.events = nil
	m.eventsMu.Unlock()

	for _, e := range events {
		switch e.kind {
		case sectionLoaded:
			m.AddSection(e.pos)
		case sectionUnloaded:
			m.RemoveSection(e.pos)
		case sectionChanged:
			m.ScheduleRebuild(e.pos, e.important)
		}
	}
}

// AddSection creates the render section for pos and links it into the graph.
// It returns false if the section already exists.
func (m *Manager) AddSection(pos world.SectionPos) bool {
	if _, ok := m.sections[pos]; ok {
		return false
	}

	key := RegionKeyFor(pos)
	region := m.regions[key]
	if region == nil {
		region = NewRenderRegion(key)
		m.regions[key] = region
	}

	s := NewRenderSection(region, pos.X, pos.Y, pos.Z)
	region.AddSection(s)
	m.sections[pos] = s

	for _, d := range world.AllDirections {
		if adj := m.sections[pos.Offset(d)]; adj != nil {
			s.SetAdjacentNode(d, adj)
			adj.SetAdjacentNode(d.Opposite(), s)
		}
	}

	s.SetPendingUpdate(UpdateRebuild)
	return true
}

// RemoveSection unlinks and disposes the section at pos. Empty regions are deleted.
func (m *Manager) RemoveSection(pos world.SectionPos) bool {
	s := m.sections[pos]
	if s == nil {
		return false
	}

	for _, d := range world.AllDirections {
		if adj := s.Adjacent(d); adj != nil {
			adj.SetAdjacentNode(d.Opposite(), nil)
			s.SetAdjacentNode(d, nil)
		}
	}

	region := s.Region()
	region.RemoveSection(s)
	s.Delete()
	delete(m.sections, pos)
	delete(m.globalBlockEntities, pos)

	if region.IsEmpty() {
		region.Delete()
		delete(m.regions, region.Key())
	}
	return true
}

// ScheduleRebuild marks a section for rebuilding. Importance is kept until the build is dispatched.
func (m *Manager) ScheduleRebuild(pos world.SectionPos, important bool) bool {
	s := m.sections[pos]
	if s == nil {
		return false
	}
	update := UpdateRebuild
	if important {
		update = UpdateImportantRebuild
	}
	s.SetPendingUpdate(s.PendingUpdate().Merge(update))
	return true
}

func (m *Manager) updateVisibility(view View) {
	defer profiling.Track("chunk.Manager.updateVisibility")()

	m.lists.Reset()
	clear(m.rebuildQueue)
	m.rebuildQueue = m.rebuildQueue[:0]
	clear(m.importantQueue)
	m.importantQueue = m.importantQueue[:0]
	clear(m.visibleBlockEntities)
	m.visibleBlockEntities = m.visibleBlockEntities[:0]
	clear(m.visibleSprites)

	cameraSection := cameraSectionPos(view.Camera)
	params := CullParams{
		Camera:            view.Camera,
		CameraSection:     cameraSection,
		SearchDistance:    m.settings.SearchDistance(),
		OcclusionDisabled: !m.settings.OcclusionCulling,
		OutwardOnly:       m.settings.OutwardCulling,
	}

	seeds := m.collectSeeds(view, cameraSection, params)
	m.culler.Traverse(seeds, view.Viewport, params, view.Frame, m.visit)
}

func (m *Manager) visit(s *RenderSection) {
	m.lists.Add(s)

	switch s.PendingUpdate() {
	case UpdateImportantRebuild:
		m.importantQueue = append(m.importantQueue, s)
	case UpdateRebuild:
		m.rebuildQueue = append(m.rebuildQueue, s)
	}

	m.visibleBlockEntities = append(m.visibleBlockEntities, s.CulledBlockEntities()...)
	for _, sprite := range s.AnimatedSprites() {
		m.visibleSprites[sprite] = struct{}{}
	}
}

func cameraSectionPos(camera mgl32.Vec3) world.SectionPos {
	return world.SectionPos{
		X: world.SectionCoord(camera.X()),
		Y: world.SectionCoord(camera.Y()),
		Z: world.SectionCoord(camera.Z()),
	}
}

// collectSeeds starts the traversal in the camera's section. If that section
// is not loaded, every loaded section of the nearest layer that is in range and
// in view becomes a seed, entered from the side the camera is on.
func (m *Manager) collectSeeds(view View, camera world.SectionPos, params CullParams) []Seed {
	clear(m.seeds)
	m.seeds = m.seeds[:0]

	if s := m.sections[camera]; s != nil {
		m.seeds = append(m.seeds, Seed{Section: s, Incoming: world.AllDirectionSet})
		return m.seeds
	}

	y := min(max(camera.Y, m.settings.MinSectionY), m.settings.MaxSectionY)
	incoming := world.AllDirectionSet
	switch {
	case camera.Y > m.settings.MaxSectionY:
		incoming = world.Up.Bit()
	case camera.Y < m.settings.MinSectionY:
		incoming = world.Down.Bit()
	}

	r := m.settings.RenderDistance
	for z := camera.Z - r; z <= camera.Z+r; z++ {
		for x := camera.X - r; x <= camera.X+r; x++ {
			s := m.sections[world.SectionPos{X: x, Y: y, Z: z}]
			if s == nil || !isWithinDistance(s, params) || !isInViewport(s, view.Viewport) {
				continue
			}
			m.seeds = append(m.seeds, Seed{Section: s, Incoming: incoming})
		}
	}

	slices.SortFunc(m.seeds, func(a, b Seed) int {
		return cmp.Compare(
			a.Section.SquaredDistance(view.Camera.X(), view.Camera.Y(), view.Camera.Z()),
			b.Section.SquaredDistance(view.Camera.X(), view.Camera.Y(), view.Camera.Z()))
	})
	return m.seeds
}

func (m *Manager) scheduleRebuilds() {
	defer profiling.Track("chunk.Manager.scheduleRebuilds")()

	// Important rebuilds ignore the per-frame budget.
	for _, s := range m.importantQueue {
		if err := m.dispatch(s); errors.Is(err, meshing.ErrQueueFull) || errors.Is(err, meshing.ErrPoolClosed) {
			return
		}
	}

	cx, cy, cz := m.camera.X(), m.camera.Y(), m.camera.Z()
	slices.SortStableFunc(m.rebuildQueue, func(a, b *RenderSection) int {
		return cmp.Compare(a.SquaredDistance(cx, cy, cz), b.SquaredDistance(cx, cy, cz))
	})

	budget := m.settings.BuildsPerFrame
	for _, s := range m.rebuildQueue {
		if budget <= 0 {
			return
		}
		err := m.dispatch(s)
		switch {
		case err == nil:
			budget--
		case errors.Is(err, meshing.ErrQueueFull), errors.Is(err, meshing.ErrPoolClosed):
			return
		}
	}
}

var errNotLoaded = errors.New("chunk: section not loaded in world")

// dispatch submits a build for s. Any build already in flight is cancelled
// first. On failure the section stays pending and is retried on a later frame.
func (m *Manager) dispatch(s *RenderSection) error {
	snap := m.source.Snapshot(s.Position())
	if snap == nil {
		return errNotLoaded
	}

	if old := s.BuildCancellationToken(); old != nil {
		old.Cancel()
		s.SetBuildCancellationToken(nil)
	}

	token := task.NewCancellationToken()
	err := m.scheduler.SubmitJob(meshing.MeshJob{
		Pos:        s.Position(),
		Snapshot:   snap,
		Token:      token,
		Frame:      m.frame,
		ResultChan: m.results,
	})
	if err != nil {
		if m.settings.Debug {
			m.logger.Printf("chunk: submit build for %v: %v", s.Position(), err)
		}
		return err
	}

	s.SetBuildCancellationToken(token)
	s.SetLastSubmittedFrame(m.frame)
	s.SetPendingUpdate(UpdateNone)
	m.inFlight++
	m.submitted++
	return nil
}

// ProcessBuildResults applies every finished build without blocking and
// returns how many were applied.
func (m *Manager) ProcessBuildResults() int {
	defer profiling.Track("chunk.Manager.ProcessBuildResults")()
	applied := 0
	for {
		select {
		case r := <-m.results:
			m.inFlight--
			if m.applyResult(r) {
				applied++
			}
		default:
			return applied
		}
	}
}

// applyResult installs r on its section unless the build was superseded,
// cancelled, failed, or the section went away while it was running.
func (m *Manager) applyResult(r meshing.MeshResult) bool {
	s := m.sections[r.Pos]
	switch {
	case s == nil || s.IsDisposed(),
		r.Token == nil || s.BuildCancellationToken() != r.Token,
		r.Token.IsCancelled(),
		r.Error != nil,
		r.Frame < s.LastBuiltFrame():
		m.discarded++
		if m.settings.Debug {
			m.logger.Printf("chunk: discarded build result for %v (err=%v)", r.Pos, r.Error)
		}
		return false
	}

	s.SetInfo(r.Info)
	s.SetBuildCancellationToken(nil)
	s.SetLastBuiltFrame(r.Frame)

	if global := s.GlobalBlockEntities(); len(global) > 0 {
		m.globalBlockEntities[r.Pos] = global
	} else {
		delete(m.globalBlockEntities, r.Pos)
	}
	m.applied++
	return true
}

// Section returns the render section at pos, or nil.
func (m *Manager) Section(pos world.SectionPos) *RenderSection {
	return m.sections[pos]
}

// Region returns the region with the given key, or nil.
func (m *Manager) Region(key RegionKey) *RenderRegion {
	return m.regions[key]
}

func (m *Manager) SectionCount() int {
	return len(m.sections)
}

func (m *Manager) RegionCount() int {
	return len(m.regions)
}

// IsSectionVisible reports whether the last traversal reached pos.
func (m *Manager) IsSectionVisible(pos world.SectionPos) bool {
	s := m.sections[pos]
	return s != nil && m.frame >= 0 && s.LastVisibleFrame() == m.frame
}

// RenderLists returns the visible sections of the current frame grouped by region.
func (m *Manager) RenderLists() *SortedRenderLists {
	return m.lists
}

// GlobalBlockEntities returns block entities that are drawn regardless of visibility.
func (m *Manager) GlobalBlockEntities() []data.BlockEntity {
	var out []data.BlockEntity
	for _, list := range m.globalBlockEntities {
		out = append(out, list...)
	}
	return out
}

// VisibleBlockEntities returns the culled block entities of visible sections.
func (m *Manager) VisibleBlockEntities() []data.BlockEntity {
	return m.visibleBlockEntities
}

// VisibleSprites returns the animated sprites of visible sections, sorted.
func (m *Manager) VisibleSprites() []data.Sprite {
	out := make([]data.Sprite, 0, len(m.visibleSprites))
	for s := range m.visibleSprites {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// InFlight returns the number of submitted builds whose results have not been received.
func (m *Manager) InFlight() int {
	return m.inFlight
}

// DebugStrings describes the graph for overlays and logs. Schedulers that
// report their backlog add a line about the worker pool.
func (m *Manager) DebugStrings() []string {
	lines := []string{
		fmt.Sprintf("Sections: %d (%d regions)", len(m.sections), len(m.regions)),
		fmt.Sprintf("Visible: %d sections in %d regions", m.lists.SectionCount(), m.lists.RegionCount()),
		fmt.Sprintf("Builds: %d in flight, %d queued, %d important", m.inFlight, len(m.rebuildQueue), len(m.importantQueue)),
		fmt.Sprintf("Results: %d submitted, %d applied, %d discarded", m.submitted, m.applied, m.discarded),
	}
	if q, ok := m.scheduler.(queueReporter); ok {
		lines = append(lines, fmt.Sprintf("Pool: %d workers, %d jobs waiting", q.Workers(), q.GetQueueLength()))
	}
	return lines
}

// Shutdown stops the scheduler and disposes every section.
func (m *Manager) Shutdown() {
	m.scheduler.Shutdown()
	for key, region := range m.regions {
		region.Delete()
		delete(m.regions, key)
	}
	clear(m.sections)
	clear(m.globalBlockEntities)
	m.lists.Reset()
}
