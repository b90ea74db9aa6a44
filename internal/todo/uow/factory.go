package uow

import (
	"log/slog"

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
	"github.com/aussiebroadwan/todohub/internal/todo/store"
)

// Factory stamps out per-request units of work over shared dependencies.
// The factory itself is safe to share; the units it builds are not.
type Factory struct {
	Store    store.Store
	Cache    cache.Cache
	Logger   *slog.Logger
	Listener CommitListener
}

// New creates a fresh unit of work for one request or task.
func (f *Factory) New() *UnitOfWork {
	return New(f.Store, f.Cache, f.Logger, f.Listener)
}
