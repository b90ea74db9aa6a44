// Package worker runs the periodic expiry job. It calls the API's worker
// endpoint through the SDK rather than touching the database directly, so
// one binary can be scaled out without duplicating the expiry logic.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/mail"
	"github.com/aussiebroadwan/todohub/pkg/tasklock"
	"github.com/aussiebroadwan/todohub/pkg/todosdk"
)

// API is the slice of the SDK client the worker uses.
type API interface {
	UpdateExpiredTodos(ctx context.Context) ([]todosdk.ExpiredTodo, error)
}

// Scheduler periodically expires overdue todos and notifies their owners.
// Concurrent runs across replicas are prevented with a distributed task
// lock held in the cache.
type Scheduler struct {
	API      API
	Lock     *tasklock.Guard
	Mail     mail.Sender
	Logger   *slog.Logger
	Interval time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewScheduler creates an expiry scheduler with the given interval.
// If interval is 0 or negative, defaults to 1 minute.
func NewScheduler(api API, lock *tasklock.Guard, sender mail.Sender, logger *slog.Logger, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Scheduler{
		API:      api,
		Lock:     lock,
		Mail:     sender,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background loop. Non-blocking; call Stop to shut down.
func (s *Scheduler) Start() {
	go s.run()
	s.Logger.Info("expiry scheduler started", "interval", s.Interval)
}

// Stop gracefully shuts down the background loop. Blocks until any
// in-progress run has finished.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("expiry scheduler stopped")
}

func (s *Scheduler) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run once immediately on startup
	s.tick()

	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) tick() {
	ctx := context.Background()

	err := s.Lock.Run(ctx, "update_expired_todos", func(ctx context.Context) error {
		return s.expire(ctx)
	})
	if err != nil {
		s.Logger.Error("expiry run failed", "err", err)
	}
}

// expire asks the API to mark overdue todos and mails each affected owner.
// Mail failures are logged per recipient and don't abort the run.
func (s *Scheduler) expire(ctx context.Context) error {
	expired, err := s.API.UpdateExpiredTodos(ctx)
	if err != nil {
		return fmt.Errorf("update expired todos: %w", err)
	}
	if len(expired) == 0 {
		return nil
	}

	s.Logger.Info("expired overdue todos", "count", len(expired))

	for _, e := range expired {
		msg := mail.Message{
			To:      e.User.Email,
			Subject: "Your todo has expired",
			Body: fmt.Sprintf("Your todo %q was due on %s and has been marked as expired.",
				e.Todo.Title, e.Todo.ValidUntil.Format(time.RFC1123)),
		}
		if err := s.Mail.Send(ctx, msg); err != nil {
			s.Logger.Error("failed to send expiry mail", "to", e.User.Email, "todo_id", e.Todo.ID, "err", err)
		}
	}

	return nil
}
