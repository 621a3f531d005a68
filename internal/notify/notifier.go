package notify

import (
	"context" // Delivery deadline
	"sync"    // Pending delivery tracking
	"time"    // Timeouts

	"github.com/sirupsen/logrus" // Logging library
)

// DefaultSendTimeout bounds a single delivery attempt
const DefaultSendTimeout = 30 * time.Second

// Notifier dispatches messages fire-and-forget: Notify returns immediately
// and delivery errors are logged, never returned.
type Notifier struct {
	mailer  Mailer         // Delivery backend
	timeout time.Duration  // Per message deadline
	wg      sync.WaitGroup // In-flight deliveries
}

// NewNotifier wraps a Mailer. A non-positive timeout selects DefaultSendTimeout.
func NewNotifier(mailer Mailer, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = DefaultSendTimeout
	}
	return &Notifier{mailer: mailer, timeout: timeout}
}

// Notify schedules msg on its own goroutine
func (n *Notifier) Notify(msg Message) {
	n.wg.Add(1)
	go n.deliver(msg)
}

// Wait blocks until every scheduled delivery has finished
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) deliver(msg Message) {
	defer n.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logrus.WithFields(logrus.Fields{
				"to":      msg.To,      // Recipient
				"subject": msg.Subject, // Subject
				"panic":   r,           // Recovered value
			}).Error("Notification delivery panicked")
		}
	}()

	// Not derived from any request context; only the send timeout applies
	ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
	defer cancel()

	if err := n.mailer.Send(ctx, msg); err != nil {
		logrus.WithFields(logrus.Fields{
			"to":      msg.To,      // Recipient
			"subject": msg.Subject, // Subject
			"error":   err.Error(), // Error message
		}).Error("Notification delivery failed") // Log and swallow
		return
	}
	logrus.WithFields(logrus.Fields{
		"to":      msg.To,      // Recipient
		"subject": msg.Subject, // Subject
	}).Info("Notification sent")
}
