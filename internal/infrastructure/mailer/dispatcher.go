package mailer

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

// Dispatcher queues outbound mail and sends it in the background so callers
// never wait on the transport.
type Dispatcher struct {
	pool    *WorkerPool
	sender  Sender
	logger  *zap.Logger
	results <-chan Result
	done    chan struct{}
}

func NewDispatcher(sender Sender, workers, queue int, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		pool:   NewWorkerPool(workers, queue),
		sender: sender,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// SetRateLimit caps sends per second. Call it before Start.
func (d *Dispatcher) SetRateLimit(rps int) {
	d.pool.SetRateLimit(rps)
}

// Start runs the workers until ctx is cancelled or Close is called.
func (d *Dispatcher) Start(ctx context.Context) {
	d.results = d.pool.Run(ctx)
	go func() {
		defer close(d.done)
		for r := range d.results {
			if r.Err != nil {
				d.logger.Error("mail send failed", zap.Error(r.Err))
			}
		}
	}()
}

func (d *Dispatcher) Dispatch(_ context.Context, subject, body, from string, to []string) error {
	m := Mail{Subject: subject, Body: body, From: from, To: append([]string(nil), to...)}
	return d.pool.TrySubmit(func(ctx context.Context) error {
		sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()
		if err := d.sender.Send(sendCtx, m); err != nil {
			return err
		}
		d.logger.Debug("mail sent", zap.String("subject", m.Subject), zap.Int("recipients", len(m.To)))
		return nil
	})
}

// Close stops accepting mail and waits for queued mail to be handled.
func (d *Dispatcher) Close() {
	d.pool.Close()
	if d.results != nil {
		<-d.done
	}
}
