package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"hireboard-backend/pkg/database"
	"hireboard-backend/pkg/logs"
	"hireboard-backend/pkg/models"
)

// Email is an outbound message rendered from a named template.
type Email struct {
	To        string
	Subject   string
	Template  string
	Variables map[string]string
}

// Mailer delivers emails. Implementations must not block the caller
// beyond the context deadline.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// LogMailer writes emails to the log instead of delivering them. Used in
// development and tests.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, email Email) error {
	logs.Logger.WithFields(logrus.Fields{
		"to":       email.To,
		"subject":  email.Subject,
		"template": email.Template,
	}).Info("email dispatched")
	return nil
}

const dispatchTimeout = 5 * time.Second

// Sink fans out notifications and emails on background goroutines.
// Delivery failures are logged and never surface to the caller: side
// effects here must not fail the request that triggered them.
type Sink struct {
	store  database.Store
	mailer Mailer
	wg     sync.WaitGroup
}

func NewSink(store database.Store, mailer Mailer) *Sink {
	return &Sink{store: store, mailer: mailer}
}

// Notify persists an in-app notification asynchronously.
func (s *Sink) Notify(n models.Notification) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := s.store.CreateNotification(ctx, &n); err != nil {
			logs.Logger.WithError(err).WithField("user_id", n.UserID).Warn("failed to persist notification")
		}
	}()
}

// Mail sends an email asynchronously.
func (s *Sink) Mail(email Email) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := s.mailer.Send(ctx, email); err != nil {
			logs.Logger.WithError(err).WithField("to", email.To).Warn("failed to send email")
		}
	}()
}

// Flush blocks until every queued dispatch has finished.
func (s *Sink) Flush() {
	s.wg.Wait()
}
