package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
	"github.com/aussiebroadwan/todohub/internal/todo/domain"
)

// CachedTodos is a read-through decorator over a Todos repository. Only the
// single-todo user read is cached; everything else passes through. Cache
// failures are logged and swallowed, the store stays authoritative.
type CachedTodos struct {
	Todos
	cache cache.Cache
	log   *slog.Logger
}

func NewCachedTodos(base Todos, c cache.Cache, log *slog.Logger) *CachedTodos {
	return &CachedTodos{Todos: base, cache: c, log: log}
}

func (r *CachedTodos) UserGet(ctx context.Context, userID, id string) (*domain.Todo, error) {
	key := cache.TodoKey(id)

	if b, err := r.cache.Get(ctx, key); err == nil {
		var t domain.Todo
		if err := json.Unmarshal(b, &t); err == nil {
			switch {
			case t.Deleted():
				// A deleted cached copy counts as a miss; the store
				// read below applies the same filter and returns nil.
			case t.UserID != userID:
				return nil, nil
			default:
				return &t, nil
			}
		} else {
			r.log.WarnContext(ctx, "dropping undecodable cached todo",
				slog.String("key", key),
				slog.Any("error", err))
			_ = r.cache.Del(ctx, key)
		}
	}

	t, err := r.Todos.UserGet(ctx, userID, id)
	if err != nil || t == nil {
		return t, err
	}

	if b, err := json.Marshal(t); err == nil {
		if err := r.cache.Set(ctx, key, b, cache.TodoTTL); err != nil {
			r.log.WarnContext(ctx, "failed to cache todo",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}

	return t, nil
}

// CachedTodoLists is a read-through decorator over a TodoLists repository.
// The per-user list query is served from a cached set when populated.
type CachedTodoLists struct {
	TodoLists
	cache cache.Cache
	log   *slog.Logger
}

func NewCachedTodoLists(base TodoLists, c cache.Cache, log *slog.Logger) *CachedTodoLists {
	return &CachedTodoLists{TodoLists: base, cache: c, log: log}
}

func (r *CachedTodoLists) UserList(ctx context.Context, userID string) ([]domain.TodoList, error) {
	key := cache.TodoListsKey(userID)

	if members, err := r.cache.SMembers(ctx, key); err == nil && len(members) > 0 {
		lists := make([]domain.TodoList, 0, len(members))
		decodable := true
		for _, m := range members {
			var l domain.TodoList
			if err := json.Unmarshal(m, &l); err != nil {
				decodable = false
				break
			}
			lists = append(lists, l)
		}
		if decodable {
			// Set members come back unordered; ULIDs sort by creation
			sort.Slice(lists, func(i, j int) bool { return lists[i].ID < lists[j].ID })
			return lists, nil
		}

		r.log.WarnContext(ctx, "dropping undecodable cached todo list set",
			slog.String("key", key))
		_ = r.cache.Del(ctx, key)
	}

	lists, err := r.TodoLists.UserList(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(lists) > 0 {
		members := make([][]byte, 0, len(lists))
		for i := range lists {
			b, err := json.Marshal(&lists[i])
			if err != nil {
				return lists, nil
			}
			members = append(members, b)
		}
		if err := r.cache.SAdd(ctx, key, members...); err != nil {
			r.log.WarnContext(ctx, "failed to cache todo lists",
				slog.String("key", key),
				slog.Any("error", err))
			return lists, nil
		}
		if err := r.cache.Expire(ctx, key, cache.TodoListsTTL); err != nil {
			r.log.WarnContext(ctx, "failed to set todo lists ttl",
				slog.String("key", key),
				slog.Any("error", err))
		}
	}

	return lists, nil
}
