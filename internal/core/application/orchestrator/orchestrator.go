package orchestrator

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tailoring/internal/core/application/usecases/commands"
	"tailoring/internal/pkg/metrics"
)

const (
	defaultWorkers   = 4
	defaultQueueSize = 256
)

// ErrStopped is returned by Submit once the orchestrator is stopping.
var ErrStopped = errors.New("orchestrator is stopped")

// Advancer performs a single stage transition.
type Advancer interface {
	Handle(ctx context.Context, cmd commands.AdvanceStageCommand) error
}

type Config struct {
	Advancer Advancer

	// Workers is the number of goroutines running stage steps (default 4).
	Workers int

	// QueueSize bounds the task queue (default 256).
	QueueSize int

	// StageDelay holds an order in its stage before the next step is queued.
	// Zero moves on immediately.
	StageDelay time.Duration

	Logger *slog.Logger
}

// Orchestrator implements commands.StageSubmitter.
type Orchestrator struct {
	advancer   Advancer
	tasks      chan commands.StageContext
	workers    int
	stageDelay time.Duration
	logger     *slog.Logger

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	pending    sync.WaitGroup
	stopped    bool
	stoppedMu  sync.RWMutex
}

func New(cfg Config) (*Orchestrator, error) {
	if cfg.Advancer == nil {
		return nil, errors.New("orchestrator: advancer is required")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Orchestrator{
		advancer:   cfg.Advancer,
		tasks:      make(chan commands.StageContext, queueSize),
		workers:    workers,
		stageDelay: cfg.StageDelay,
		logger:     logger.With("component", "stage_orchestrator"),
		ctx:        ctx,
		cancelFunc: cancel,
	}, nil
}

// Start launches the workers. They run until Stop is called or ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	go func() {
		select {
		case <-ctx.Done():
			o.cancelFunc()
		case <-o.ctx.Done():
		}
	}()

	for i := range o.workers {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			o.work(i)
		}()
	}

	o.logger.Info("stage orchestrator started",
		"workers", o.workers,
		"queue_size", cap(o.tasks),
		"stage_delay", o.stageDelay,
	)
}

// Stop cancels in-flight steps and waits for the workers to exit. Queued contexts are
// dropped; their orders resume from the database on the next start.
func (o *Orchestrator) Stop() {
	o.stoppedMu.Lock()
	o.stopped = true
	o.stoppedMu.Unlock()

	o.logger.Info("stopping stage orchestrator...")

	o.cancelFunc()
	o.wg.Wait()
	o.pending.Wait()

	o.logger.Info("stage orchestrator stopped", "dropped", len(o.tasks))
}

func (o *Orchestrator) IsStopped() bool {
	o.stoppedMu.RLock()
	defer o.stoppedMu.RUnlock()
	return o.stopped
}

// Submit queues the first step of an order. It blocks while the queue is full, until
// ctx is done or the orchestrator stops.
func (o *Orchestrator) Submit(ctx context.Context, sc commands.StageContext) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	if o.IsStopped() {
		return ErrStopped
	}

	select {
	case o.tasks <- sc:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-o.ctx.Done():
		return ErrStopped
	}
}

func (o *Orchestrator) work(id int) {
	for {
		select {
		case <-o.ctx.Done():
			return
		case sc := <-o.tasks:
			o.step(id, sc)
		}
	}
}

// step advances sc by one stage and schedules the following step.
func (o *Orchestrator) step(worker int, sc commands.StageContext) {
	if sc.Order.IsCompleted() {
		return
	}

	from := sc.Order.Stage()
	target, err := from.Next()
	if err != nil {
		o.logger.Error("order has no next stage",
			"order_id", sc.Order.ID().String(),
			"stage", from.String(),
			"error", err,
		)
		return
	}

	log := o.logger.With(
		"worker", worker,
		"order_id", sc.Order.ID().String(),
		"stage", target.String(),
	)

	cmd, err := commands.NewAdvanceStageCommand(sc, target)
	if err != nil {
		log.Error("invalid stage context, order halted", "error", err)
		metrics.StageFailures.WithLabelValues(target.String()).Inc()
		return
	}

	err = o.advancer.Handle(o.ctx, cmd)
	switch {
	case errors.Is(err, commands.ErrStageAlreadyReached):
		// a resumed copy of the order got there first
		log.Warn("stage already persisted, dropping this copy of the order", "from", from.String())
		return
	case err != nil:
		if o.ctx.Err() != nil {
			log.Info("stage step interrupted by shutdown", "error", err)
			return
		}
		log.Error("stage transition failed, order halted", "from", from.String(), "error", err)
		metrics.StageFailures.WithLabelValues(target.String()).Inc()
		return
	default:
		log.Info("order entered stage")
		metrics.StageTransitions.WithLabelValues(target.String()).Inc()
	}

	if sc.Order.IsCompleted() {
		log.Info("order completed", "tailor_id", sc.Tailor.ID())
		return
	}

	o.schedule(sc)
}

// schedule puts sc back on the queue, after the stage delay if one is configured.
// It never blocks the calling worker: if the queue is full the hand-off continues
// on its own goroutine.
func (o *Orchestrator) schedule(sc commands.StageContext) {
	o.pending.Add(1)

	if o.stageDelay > 0 {
		go func() {
			defer o.pending.Done()
			timer := time.NewTimer(o.stageDelay)
			defer timer.Stop()
			select {
			case <-timer.C:
				o.enqueue(sc)
			case <-o.ctx.Done():
			}
		}()
		return
	}

	select {
	case o.tasks <- sc:
		o.pending.Done()
	default:
		go func() {
			defer o.pending.Done()
			o.enqueue(sc)
		}()
	}
}

func (o *Orchestrator) enqueue(sc commands.StageContext) {
	select {
	case o.tasks <- sc:
	case <-o.ctx.Done():
	}
}
