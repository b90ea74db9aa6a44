package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/store"
	"github.com/aussiebroadwan/todohub/internal/todo/uow"
)

// WorkerService implements the machine-to-machine maintenance operations.
type WorkerService struct {
	UoW    *uow.Factory
	Logger *slog.Logger
}

// UpdateExpiredTodos flips every overdue open todo to expired and returns
// the affected todos with their owners. Safe to run concurrently: the
// status re-check inside the update makes the second runner come back
// empty-handed.
func (s *WorkerService) UpdateExpiredTodos(ctx context.Context) ([]store.TodoUser, error) {
	unit := s.UoW.New()

	var pairs []store.TodoUser
	err := unit.Do(ctx, func(ctx context.Context) error {
		var err error
		pairs, err = unit.Todos().ExpireOverdue(ctx, time.Now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(pairs) > 0 {
		s.Logger.InfoContext(ctx, "expired overdue todos",
			slog.Int("count", len(pairs)))
	}
	return pairs, nil
}
