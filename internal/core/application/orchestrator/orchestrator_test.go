package orchestrator_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"tailoring/internal/core/application/orchestrator"
	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/core/domain/model/kernel"
	"tailoring/internal/core/domain/model/order"
	"tailoring/internal/core/domain/model/tailor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdvancer advances orders in memory and records what it saw.
type fakeAdvancer struct {
	mu        sync.Mutex
	inFlight  map[string]int
	overlap   bool
	history   map[string][]order.Stage
	failAt    map[string]order.Stage
	reachedAt map[string]order.Stage
	failed    chan string
	done      chan string
}

func newFakeAdvancer(capacity int) *fakeAdvancer {
	return &fakeAdvancer{
		inFlight:  make(map[string]int),
		history:   make(map[string][]order.Stage),
		failAt:    make(map[string]order.Stage),
		reachedAt: make(map[string]order.Stage),
		failed:    make(chan string, capacity),
		done:      make(chan string, capacity),
	}
}

func (f *fakeAdvancer) Handle(_ context.Context, cmd commands.AdvanceStageCommand) error {
	sc := cmd.StageContext()
	id := sc.Order.ID().String()

	f.mu.Lock()
	f.inFlight[id]++
	if f.inFlight[id] > 1 {
		f.overlap = true
	}
	failAt, shouldFail := f.failAt[id]
	reachedAt, alreadyThere := f.reachedAt[id]
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight[id]--
		f.mu.Unlock()
	}()

	time.Sleep(time.Millisecond)

	if shouldFail && failAt == cmd.Target() {
		f.failed <- id
		return errors.New("broker unavailable")
	}
	if alreadyThere && reachedAt == cmd.Target() {
		f.failed <- id
		return commands.ErrStageAlreadyReached
	}

	if err := sc.Order.Advance(cmd.Target(), time.Now()); err != nil {
		return err
	}

	f.mu.Lock()
	f.history[id] = append(f.history[id], cmd.Target())
	f.mu.Unlock()

	if cmd.Target().IsTerminal() {
		if err := sc.Tailor.Release(sc.Order.ID()); err != nil {
			return err
		}
		f.done <- id
	}
	return nil
}

func (f *fakeAdvancer) stagesOf(id string) []order.Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]order.Stage(nil), f.history[id]...)
}

func newStageContext(t *testing.T, tailorID int64) commands.StageContext {
	t.Helper()
	id := kernel.NewUUID()
	o, err := order.NewOrder(id, 7, "Silk", tailorID, time.Now())
	require.NoError(t, err)
	tl, err := tailor.NewTailor(tailorID, "Ravi", []string{"Silk"}, 20)
	require.NoError(t, err)
	require.NoError(t, tl.Occupy(id))
	return commands.StageContext{Order: o, Tailor: tl, OwnerEmail: "asha@example.com"}
}

func waitFor(t *testing.T, ch <-chan string, n int, timeout time.Duration) []string {
	t.Helper()
	got := make([]string, 0, n)
	deadline := time.After(timeout)
	for len(got) < n {
		select {
		case id := <-ch:
			got = append(got, id)
		case <-deadline:
			t.Fatalf("timed out after %d of %d", len(got), n)
		}
	}
	return got
}

func startOrchestrator(t *testing.T, cfg orchestrator.Config) *orchestrator.Orchestrator {
	t.Helper()
	o, err := orchestrator.New(cfg)
	require.NoError(t, err)
	o.Start(t.Context())
	t.Cleanup(o.Stop)
	return o
}

var allStages = []order.Stage{order.Confirm, order.FabricCut, order.Stitching, order.QualityCheck, order.Dispatched}

func TestOrchestrator_SingleOrderReachesDispatched(t *testing.T) {
	advancer := newFakeAdvancer(1)
	orch := startOrchestrator(t, orchestrator.Config{Advancer: advancer, Workers: 2})
	sc := newStageContext(t, 1)

	require.NoError(t, orch.Submit(t.Context(), sc))
	waitFor(t, advancer.done, 1, 5*time.Second)

	assert.Equal(t, allStages, advancer.stagesOf(sc.Order.ID().String()))
	assert.True(t, sc.Order.IsCompleted())
	assert.NotNil(t, sc.Order.CompletedAt())
	assert.True(t, sc.Tailor.IsFree())
	assert.Equal(t, int64(1), sc.Order.TailorID())
}

func TestOrchestrator_ManyOrdersNeverOverlapPerOrder(t *testing.T) {
	const orders = 40
	advancer := newFakeAdvancer(orders)
	orch := startOrchestrator(t, orchestrator.Config{Advancer: advancer, Workers: 8, QueueSize: 4})

	contexts := make([]commands.StageContext, 0, orders)
	for i := range orders {
		sc := newStageContext(t, int64(i+1))
		contexts = append(contexts, sc)
		require.NoError(t, orch.Submit(t.Context(), sc))
	}

	waitFor(t, advancer.done, orders, 10*time.Second)

	advancer.mu.Lock()
	overlap := advancer.overlap
	advancer.mu.Unlock()
	assert.False(t, overlap, "an order had two steps in flight")

	for _, sc := range contexts {
		assert.Equal(t, allStages, advancer.stagesOf(sc.Order.ID().String()))
	}
}

func TestOrchestrator_FailureHaltsOnlyThatOrder(t *testing.T) {
	advancer := newFakeAdvancer(2)
	orch := startOrchestrator(t, orchestrator.Config{Advancer: advancer, Workers: 2})

	broken := newStageContext(t, 1)
	healthy := newStageContext(t, 2)
	advancer.failAt[broken.Order.ID().String()] = order.FabricCut

	require.NoError(t, orch.Submit(t.Context(), broken))
	require.NoError(t, orch.Submit(t.Context(), healthy))

	waitFor(t, advancer.failed, 1, 5*time.Second)
	waitFor(t, advancer.done, 1, 5*time.Second)

	// give a misbehaving orchestrator the chance to retry
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []order.Stage{order.Confirm}, advancer.stagesOf(broken.Order.ID().String()))
	assert.Equal(t, order.Confirm, broken.Order.Stage())
	assert.False(t, broken.Tailor.IsFree())
	assert.Equal(t, allStages, advancer.stagesOf(healthy.Order.ID().String()))
}

func TestOrchestrator_DropsCopyWhoseStageIsAlreadyPersisted(t *testing.T) {
	advancer := newFakeAdvancer(1)
	orch := startOrchestrator(t, orchestrator.Config{Advancer: advancer, Workers: 2})

	stale := newStageContext(t, 1)
	advancer.reachedAt[stale.Order.ID().String()] = order.Stitching

	require.NoError(t, orch.Submit(t.Context(), stale))

	waitFor(t, advancer.failed, 1, 5*time.Second)
	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, []order.Stage{order.Confirm, order.FabricCut}, advancer.stagesOf(stale.Order.ID().String()))
	assert.Empty(t, advancer.done)
}

func TestOrchestrator_StageDelayHoldsEachStage(t *testing.T) {
	const delay = 20 * time.Millisecond
	advancer := newFakeAdvancer(1)
	orch := startOrchestrator(t, orchestrator.Config{Advancer: advancer, StageDelay: delay})
	sc := newStageContext(t, 1)

	started := time.Now()
	require.NoError(t, orch.Submit(t.Context(), sc))
	waitFor(t, advancer.done, 1, 5*time.Second)

	// four holds between five transitions
	assert.GreaterOrEqual(t, time.Since(started), 4*delay)
	assert.True(t, sc.Order.IsCompleted())
}

func TestOrchestrator_ResumesFromPersistedStage(t *testing.T) {
	advancer := newFakeAdvancer(1)
	orch := startOrchestrator(t, orchestrator.Config{Advancer: advancer})

	id := kernel.NewUUID()
	at := time.Now().Add(-time.Hour)
	o, err := order.RestoreOrder(id, 7, "Silk", order.Stitching, 1, false, at, nil, at)
	require.NoError(t, err)
	tl, err := tailor.RestoreTailor(1, "Ravi", []string{"Silk"}, 20, &id)
	require.NoError(t, err)

	require.NoError(t, orch.Submit(t.Context(), commands.StageContext{Order: o, Tailor: tl, OwnerEmail: "asha@example.com"}))
	waitFor(t, advancer.done, 1, 5*time.Second)

	assert.Equal(t, []order.Stage{order.QualityCheck, order.Dispatched}, advancer.stagesOf(id.String()))
}

func TestOrchestrator_SubmitAfterStop(t *testing.T) {
	orch, err := orchestrator.New(orchestrator.Config{Advancer: newFakeAdvancer(1)})
	require.NoError(t, err)
	orch.Start(t.Context())
	orch.Stop()

	err = orch.Submit(t.Context(), newStageContext(t, 1))

	require.ErrorIs(t, err, orchestrator.ErrStopped)
	assert.True(t, orch.IsStopped())
}

func TestOrchestrator_SubmitRejectsIncompleteContext(t *testing.T) {
	orch := startOrchestrator(t, orchestrator.Config{Advancer: newFakeAdvancer(1)})

	err := orch.Submit(t.Context(), commands.StageContext{})

	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
}

func TestOrchestrator_SubmitHonoursContextWhenQueueIsFull(t *testing.T) {
	// not started: nothing drains the queue
	orch, err := orchestrator.New(orchestrator.Config{Advancer: newFakeAdvancer(2), QueueSize: 1})
	require.NoError(t, err)
	t.Cleanup(orch.Stop)

	require.NoError(t, orch.Submit(t.Context(), newStageContext(t, 1)))

	ctx, cancel := context.WithTimeout(t.Context(), 20*time.Millisecond)
	defer cancel()
	err = orch.Submit(ctx, newStageContext(t, 2))

	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNew_RequiresAdvancer(t *testing.T) {
	_, err := orchestrator.New(orchestrator.Config{})

	require.Error(t, err)
}
