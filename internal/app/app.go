package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"taskKeeper/internal/config"
	"taskKeeper/internal/handlers"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/middleware"
	"taskKeeper/internal/repository"
	"taskKeeper/internal/repository/task/inmemory"
	"taskKeeper/internal/repository/task/sqlite"
	"taskKeeper/internal/service"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	server    *http.Server
	handler   handlers.TaskHandler
	shutdowns []func() // функции для graceful shutdown, вызываются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("инициализация логгера: %w", err)
	}

	a.shutdowns = append(a.shutdowns, func() {
		logger.Info("Завершение работы логгера")
		logger.Sync()
	})

	repo, err := a.buildRepository(ctx)
	if err != nil {
		return err
	}

	taskService := service.NewTaskService(repo)
	a.handler = handlers.NewTaskHandler(&taskService, a.config.Repository.Type)

	a.server = &http.Server{
		Addr:    a.config.ServerAddr(),
		Handler: a.router(),
	}

	return nil
}

// buildRepository — единственное место выбора бэкенда; дальше все слои
// видят только порт.
func (a *App) buildRepository(ctx context.Context) (repository.TaskRepository, error) {
	switch a.config.Repository.Type {
	case config.RepositorySQLite:
		storage, err := sqlite.New(ctx, a.config.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("инициализация SQLite-хранилища: %w", err)
		}
		return storage, nil

	case config.RepositoryInMemory:
		return inmemory.NewTaskStorage(), nil

	default:
		return nil, fmt.Errorf("неизвестный тип хранилища: %s", a.config.Repository.Type)
	}
}

func (a *App) router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))
	r.Use(middleware.RateLimit(100))

	r.Route("/tasks", func(r chi.Router) {

		r.Get("/", a.handler.GetAllTasks) // GET /tasks
		r.Post("/", a.handler.PostTask)   // POST /tasks

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.handler.GetTaskByID)       // GET /tasks/{id}
			r.Put("/", a.handler.UpdateTaskByID)    // PUT /tasks/{id}
			r.Delete("/", a.handler.DeleteTaskByID) // DELETE /tasks/{id}
		})
	})

	r.Get("/health", a.handler.HealthCheck)

	return r
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Сервер запущен", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.Shutdown()
		return fmt.Errorf("работа сервера: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Остановка сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}

	a.Shutdown()
	return nil
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}
