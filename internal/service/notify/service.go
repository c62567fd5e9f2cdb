package notify

import (
	"log/slog"
	"sync"

	"github.com/staffhub-hr/timeoff-backend-go/internal/pkg/email"
)

// Message is one email to be delivered out of band.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Config holds dispatcher configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
}

// Dispatcher delivers messages asynchronously so request handling never waits
// on SMTP. Messages are enqueued after the surrounding transaction commits.
type Dispatcher struct {
	sender email.EmailService

	queue  chan Message
	wg     sync.WaitGroup
	stopCh chan struct{}
}

// NewDispatcher creates a dispatcher with background workers
func NewDispatcher(sender email.EmailService, cfg Config) *Dispatcher {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}

	slog.Info("Notification dispatcher started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return d
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	for {
		select {
		case msg := <-d.queue:
			if err := d.sender.Send(msg.To, msg.Subject, msg.Body); err != nil {
				slog.Error("Failed to deliver notification", "worker", id, "to", msg.To, "error", err)
			}
		case <-d.stopCh:
			// Drain whatever is already queued before exiting.
			for {
				select {
				case msg := <-d.queue:
					if err := d.sender.Send(msg.To, msg.Subject, msg.Body); err != nil {
						slog.Error("Failed to deliver notification", "worker", id, "to", msg.To, "error", err)
					}
				default:
					return
				}
			}
		}
	}
}

// Enqueue queues messages for delivery. When the queue is full the message is
// dropped with a log line rather than blocking the caller.
func (d *Dispatcher) Enqueue(msgs ...Message) {
	for _, msg := range msgs {
		select {
		case d.queue <- msg:
		default:
			slog.Warn("Notification queue full, dropping message", "to", msg.To, "subject", msg.Subject)
		}
	}
}

// Stop gracefully stops the dispatcher
func (d *Dispatcher) Stop() {
	close(d.stopCh)
	d.wg.Wait()
	slog.Info("Notification dispatcher stopped")
}
