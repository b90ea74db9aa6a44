package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/todohub/internal/todo/cache"
	"github.com/aussiebroadwan/todohub/internal/todo/service"
	"github.com/aussiebroadwan/todohub/internal/todo/store"
	"github.com/aussiebroadwan/todohub/pkg/httpx"
	"github.com/aussiebroadwan/todohub/pkg/jwtx"
	"github.com/aussiebroadwan/todohub/pkg/slogx"

	_ "github.com/aussiebroadwan/todohub/api/todo" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store
	cache cache.Cache

	UserService     *service.UserService
	TodoService     *service.TodoService
	TodoListService *service.TodoListService
	WorkerService   *service.WorkerService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	c cache.Cache,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		cache:        c,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTodos()
	r.registerTodoLists()
	r.registerWorker()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TodoHub API
//	@version		0.1.0
//	@description	REST backend for per-user todos and todo lists. Access tokens are
//	@description	issued by the external identity provider and verified against its
//	@description	JWKS endpoint; users are provisioned locally on first contact.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/todohub
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTodos() {
	h := &TodoHandler{Todos: r.TodoService}
	authn := Authenticate(r.verifier, r.UserService)

	r.Mux.Handle("GET /v1/todo",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			authn,
			RequireScopes(ScopeReadTodo),
			httpx.RateLimitByUser(httpx.LenientLimit),
		))
	r.Mux.Handle("GET /v1/todo/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			authn,
			RequireScopes(ScopeReadTodo),
			httpx.RateLimitByUser(httpx.LenientLimit),
		))
	r.Mux.Handle("POST /v1/todo",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			authn,
			RequireScopes(ScopeWriteTodo),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
	r.Mux.Handle("PUT /v1/todo/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			authn,
			RequireScopes(ScopeWriteTodo),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
	r.Mux.Handle("DELETE /v1/todo/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			authn,
			RequireScopes(ScopeWriteTodo),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
}

func (r *Router) registerTodoLists() {
	h := &TodoListHandler{TodoLists: r.TodoListService}
	authn := Authenticate(r.verifier, r.UserService)

	r.Mux.Handle("GET /v1/todo_list",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			authn,
			RequireScopes(ScopeReadTodo),
			httpx.RateLimitByUser(httpx.LenientLimit),
		))
	r.Mux.Handle("GET /v1/todo_list/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			authn,
			RequireScopes(ScopeReadTodo),
			httpx.RateLimitByUser(httpx.LenientLimit),
		))
	r.Mux.Handle("POST /v1/todo_list",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			authn,
			RequireScopes(ScopeWriteTodo),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
	r.Mux.Handle("PUT /v1/todo_list/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			authn,
			RequireScopes(ScopeWriteTodo),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
	r.Mux.Handle("DELETE /v1/todo_list/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			authn,
			RequireScopes(ScopeWriteTodo),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		))
}

func (r *Router) registerWorker() {
	h := &WorkerHandler{Worker: r.WorkerService}

	r.Mux.Handle("PUT /v1/worker/expired",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateExpired),
			Authenticate(r.verifier, r.UserService),
			RequireScopes(ScopeWorker),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.cache))
}
