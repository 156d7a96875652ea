package meshing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"sectiongraph/internal/profiling"
	"sectiongraph/internal/render/chunk/data"
	"sectiongraph/internal/task"
	"sectiongraph/internal/world"
)

var (
	// ErrQueueFull is returned by SubmitJob when the pool cannot take more work this frame.
	ErrQueueFull = errors.New("meshing: job queue full")
	// ErrPoolClosed is returned by SubmitJob after Shutdown.
	ErrPoolClosed = errors.New("meshing: pool closed")
)

// BuildFunc turns a snapshot into render state. Build is the default.
type BuildFunc func(snap *world.Snapshot, token *task.CancellationToken) (*data.BuiltSectionInfo, error)

// MeshJob represents a section build request
type MeshJob struct {
	Pos      world.SectionPos
	Snapshot *world.Snapshot
	Token    *task.CancellationToken
	Frame    int
	// Result channel - will be sent the result when done
	ResultChan chan<- MeshResult
}

// MeshResult contains the result of a build
type MeshResult struct {
	Pos   world.SectionPos
	Token *task.CancellationToken
	Frame int
	Info  *data.BuiltSectionInfo
	Error error
}

// WorkerPool manages goroutines for section builds
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	build    BuildFunc
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new build worker pool. A nil build uses Build.
func NewWorkerPool(workers int, queueSize int, build BuildFunc) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())
	if build == nil {
		build = Build
	}

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  max(workers, 1),
		build:    build,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := range pool.workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob queues a job without blocking.
func (p *WorkerPool) SubmitJob(job MeshJob) error {
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}
	select {
	case p.jobQueue <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

// worker is the worker goroutine that processes build jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := p.run(id, job)
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// run executes one job. Skipping cancelled work early is only an optimisation:
// the receiver still checks the token on completion.
func (p *WorkerPool) run(id int, job MeshJob) (result MeshResult) {
	defer profiling.Track("meshing.WorkerPool.run")()
	result = MeshResult{Pos: job.Pos, Token: job.Token, Frame: job.Frame}

	if job.Token != nil && job.Token.IsCancelled() {
		result.Error = ErrCancelled
		return result
	}

	defer func() {
		if r := recover(); r != nil {
			// A failed build renders nothing until the next rebuild.
			log.Printf("meshing: worker %d: build of section %v failed: %v", id, job.Pos, r)
			result.Info = data.Empty
			result.Error = nil
		}
	}()

	info, err := p.build(job.Snapshot, job.Token)
	switch {
	case errors.Is(err, ErrCancelled):
		result.Error = err
	case err != nil:
		log.Printf("meshing: worker %d: %v", id, fmt.Errorf("build section %v: %w", job.Pos, err))
		result.Info = data.Empty
	default:
		result.Info = info
	}
	return result
}

// Shutdown stops the workers and waits for them to exit. Queued jobs are dropped.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// GetQueueLength returns the number of jobs waiting for a worker.
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}
