package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
	"github.com/aussiebroadwan/todohub/internal/todo/store"
	"github.com/aussiebroadwan/todohub/internal/todo/uow"
)

// CacheSyncListener keeps the cache in step with committed writes. The unit
// of work calls it synchronously after the outermost commit, so every read
// here sees committed state. Cache trouble is logged and swallowed; a
// request never fails because Redis had a bad moment.
type CacheSyncListener struct {
	Store  store.Store
	Cache  cache.Cache
	Logger *slog.Logger
}

func (l *CacheSyncListener) AfterCommit(ctx context.Context, events []uow.Event) {
	// A burst of writes for one user only needs its list set dropped once
	droppedSets := make(map[string]struct{})

	for _, e := range events {
		switch e.Entity {
		case uow.EntityTodo:
			l.refreshTodo(ctx, e.ID)
			l.dropListSet(ctx, e.UserID, droppedSets)
		case uow.EntityTodoList:
			l.dropListSet(ctx, e.UserID, droppedSets)
		}
	}
}

// refreshTodo re-reads the committed row and rewrites its cache entry. The
// row is cached even when soft-deleted; readers treat a deleted cached copy
// as a miss, which beats serving the stale pre-delete version for the TTL.
func (l *CacheSyncListener) refreshTodo(ctx context.Context, id string) {
	t, err := l.Store.Todos().Get(ctx, id)
	if err != nil || t == nil {
		if err != nil {
			l.Logger.WarnContext(ctx, "cache sync read-back failed",
				slog.String("todo_id", id),
				slog.Any("error", err))
		}
		return
	}

	b, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := l.Cache.Set(ctx, cache.TodoKey(id), b, cache.TodoTTL); err != nil {
		l.Logger.WarnContext(ctx, "cache sync refresh failed",
			slog.String("todo_id", id),
			slog.Any("error", err))
	}
}

func (l *CacheSyncListener) dropListSet(ctx context.Context, userID string, dropped map[string]struct{}) {
	if _, done := dropped[userID]; done {
		return
	}
	dropped[userID] = struct{}{}

	if err := l.Cache.Del(ctx, cache.TodoListsKey(userID)); err != nil {
		l.Logger.WarnContext(ctx, "cache sync invalidation failed",
			slog.String("user_id", userID),
			slog.Any("error", err))
	}
}
