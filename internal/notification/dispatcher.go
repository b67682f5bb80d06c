package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const sendTimeout = 30 * time.Second

type Worker struct {
	ID         int
	WorkerPool chan chan Message
	JobChannel chan Message
	Logger     *slog.Logger
}

func NewWorker(id int, workerPool chan chan Message, logger *slog.Logger) *Worker {
	return &Worker{
		ID:         id,
		WorkerPool: workerPool,
		JobChannel: make(chan Message),
		Logger:     logger,
	}
}

func (w *Worker) Start(ctx context.Context, wg *sync.WaitGroup, processFunc func(Message)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.WorkerPool <- w.JobChannel

			select {
			case job := <-w.JobChannel:
				w.Logger.Debug("worker sending mail", "worker_id", w.ID, "to", job.To)
				processFunc(job)
			case <-ctx.Done():
				w.Logger.Debug("worker shutting down", "worker_id", w.ID)
				return
			}
		}
	}()
}

type DispatcherConfig struct {
	Workers   int
	QueueSize int
}

// Dispatcher delivers queued mail on a fixed pool of workers. The queue is
// bounded; Enqueue never blocks the caller.
type Dispatcher struct {
	sender Sender
	logger *slog.Logger

	jobQueue   chan Message
	workerPool chan chan Message
	maxWorkers int
	wg         sync.WaitGroup

	// stop ends idle workers once the queue is drained; abort also cancels
	// sends in flight and is only used when Shutdown runs out of time.
	stopCtx  context.Context
	stop     context.CancelFunc
	abortCtx context.Context
	abort    context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(sender Sender, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	abortCtx, abort := context.WithCancel(context.Background())
	stopCtx, stop := context.WithCancel(abortCtx)

	maxWorkers := config.Workers
	if maxWorkers <= 0 {
		maxWorkers = 2
	}
	queueSize := config.QueueSize
	if queueSize <= 0 {
		queueSize = 100
	}

	d := &Dispatcher{
		sender:     sender,
		logger:     logger,
		jobQueue:   make(chan Message, queueSize),
		workerPool: make(chan chan Message, maxWorkers),
		maxWorkers: maxWorkers,
		stopCtx:    stopCtx,
		stop:       stop,
		abortCtx:   abortCtx,
		abort:      abort,
	}

	for i := 0; i < d.maxWorkers; i++ {
		NewWorker(i, d.workerPool, logger).Start(d.stopCtx, &d.wg, d.deliver)
	}

	d.wg.Add(1)
	go d.dispatch()

	logger.Info("mail dispatcher started",
		"workers", d.maxWorkers,
		"queue_size", cap(d.jobQueue))
	return d
}

// Enqueue hands msg to the pool. It returns false when the queue is full or
// the dispatcher is shutting down; the message is dropped in both cases.
func (d *Dispatcher) Enqueue(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("mail dropped, dispatcher is shut down", "to", msg.To, "subject", msg.Subject)
		return false
	}

	select {
	case d.jobQueue <- msg:
		return true
	default:
		d.logger.Warn("mail queue full, dropping message",
			"to", msg.To,
			"subject", msg.Subject,
			"queue_size", cap(d.jobQueue))
		return false
	}
}

// dispatch drains the queue into idle workers and stops the pool once the
// queue has been closed and emptied.
func (d *Dispatcher) dispatch() {
	defer d.wg.Done()
	defer d.stop()

	for job := range d.jobQueue {
		select {
		case jobChannel := <-d.workerPool:
			select {
			case jobChannel <- job:
			case <-d.abortCtx.Done():
				d.logger.Info("dispatcher stopped with pending mail")
				return
			}
		case <-d.abortCtx.Done():
			d.logger.Info("dispatcher stopped with pending mail")
			return
		}
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(d.abortCtx, sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Error("failed to send mail", "error", err, "to", msg.To, "subject", msg.Subject)
		return
	}
	d.logger.Info("mail sent", "to", msg.To, "subject", msg.Subject)
}

// Shutdown stops accepting mail and waits for queued mail to be delivered.
// When ctx expires first the pool is stopped and the rest is dropped.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.jobQueue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.abort()
		d.logger.Info("mail dispatcher shutdown complete")
		return nil
	case <-ctx.Done():
		d.abort()
		<-done
		d.logger.Warn("mail dispatcher shutdown timed out", "dropped", len(d.jobQueue))
		return ctx.Err()
	}
}
