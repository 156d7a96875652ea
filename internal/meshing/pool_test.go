package meshing

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sectiongraph/internal/render/chunk/data"
	"sectiongraph/internal/task"
	"sectiongraph/internal/world"
)

func receive(t *testing.T, ch <-chan MeshResult) MeshResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for mesh result")
		return MeshResult{}
	}
}

func TestPoolBuildsJobs(t *testing.T) {
	pool := NewWorkerPool(2, 8, nil)
	defer pool.Shutdown()

	results := make(chan MeshResult, 4)
	tok := task.NewCancellationToken()
	pos := world.SectionPos{X: 1, Y: 2, Z: 3}
	snap := world.NewSnapshot(pos, func(x, y, z int) world.BlockType { return world.BlockTypeStone })

	require.NoError(t, pool.SubmitJob(MeshJob{Pos: pos, Snapshot: snap, Token: tok, Frame: 7, ResultChan: results}))

	r := receive(t, results)
	require.NoError(t, r.Error)
	assert.Equal(t, pos, r.Pos)
	assert.Same(t, tok, r.Token)
	assert.Equal(t, 7, r.Frame)
	assert.True(t, r.Info.Flags.Has(data.FlagSolidGeometry))
}

func TestPoolReportsCancelledJobs(t *testing.T) {
	pool := NewWorkerPool(1, 8, nil)
	defer pool.Shutdown()

	results := make(chan MeshResult, 1)
	tok := task.NewCancellationToken()
	tok.Cancel()
	require.NoError(t, pool.SubmitJob(MeshJob{Token: tok, ResultChan: results}))

	r := receive(t, results)
	assert.ErrorIs(t, r.Error, ErrCancelled)
	assert.Nil(t, r.Info)
}

func TestPoolTreatsFailuresAsEmpty(t *testing.T) {
	build := func(*world.Snapshot, *task.CancellationToken) (*data.BuiltSectionInfo, error) {
		panic("section unloaded mid-read")
	}
	failing := func(*world.Snapshot, *task.CancellationToken) (*data.BuiltSectionInfo, error) {
		return nil, errors.New("boom")
	}

	for name, fn := range map[string]BuildFunc{"panic": build, "error": failing} {
		t.Run(name, func(t *testing.T) {
			pool := NewWorkerPool(1, 1, fn)
			defer pool.Shutdown()

			results := make(chan MeshResult, 1)
			require.NoError(t, pool.SubmitJob(MeshJob{Token: task.NewCancellationToken(), ResultChan: results}))
			r := receive(t, results)
			assert.NoError(t, r.Error)
			assert.Same(t, data.Empty, r.Info)
		})
	}
}

func TestPoolBackPressure(t *testing.T) {
	started := make(chan struct{}, 4)
	release := make(chan struct{})
	blocking := func(*world.Snapshot, *task.CancellationToken) (*data.BuiltSectionInfo, error) {
		started <- struct{}{}
		<-release
		return data.Empty, nil
	}

	pool := NewWorkerPool(1, 1, blocking)
	results := make(chan MeshResult, 4)

	require.NoError(t, pool.SubmitJob(MeshJob{ResultChan: results}))
	<-started
	require.NoError(t, pool.SubmitJob(MeshJob{ResultChan: results}))
	assert.ErrorIs(t, pool.SubmitJob(MeshJob{ResultChan: results}), ErrQueueFull)
	assert.Equal(t, 1, pool.GetQueueLength())

	close(release)
	receive(t, results)
	receive(t, results)

	pool.Shutdown()
	assert.ErrorIs(t, pool.SubmitJob(MeshJob{ResultChan: results}), ErrPoolClosed)
}
