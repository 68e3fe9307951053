package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/catalog"
	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	auditRepo "github.com/mrlokans/bookshelf/internal/database/audit"
	http_controllers "github.com/mrlokans/bookshelf/internal/http"
	"github.com/mrlokans/bookshelf/internal/readonly"
	"github.com/mrlokans/bookshelf/internal/scheduler"
	"github.com/mrlokans/bookshelf/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop accepting requests first so no new audit events are produced.
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server Shutdown: %v", err)
	}

	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

// auditStack groups the optional audit trail components.
type auditStack struct {
	db        *database.Database
	service   *audit.Service
	tasks     *tasks.Client
	cancel    context.CancelFunc
	scheduler *scheduler.AuditCleanupScheduler
}

func startAudit(cfg *config.Config) *auditStack {
	db, err := database.NewDatabase(cfg.Audit.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize audit database: %v", err)
	}

	stack := &auditStack{
		db:      db,
		service: audit.NewService(auditRepo.NewRepository(db.DB)),
	}

	taskClient, err := tasks.NewClient(cfg.Audit.DatabasePath, tasks.Config{
		Workers:         cfg.Tasks.Workers,
		ReleaseAfter:    cfg.Tasks.ReleaseAfter,
		CleanupInterval: cfg.Tasks.CleanupInterval,
	})
	if err != nil {
		log.Fatalf("Failed to initialize task queue: %v", err)
	}
	taskClient.Register(tasks.NewPruneAuditEventsQueue(stack.service))
	stack.tasks = taskClient

	var taskCtx context.Context
	taskCtx, stack.cancel = context.WithCancel(context.Background())
	go taskClient.Start(taskCtx)

	if cfg.Audit.CleanupEnabled {
		if err := scheduler.ValidateSchedule(cfg.Audit.CleanupSchedule); err != nil {
			log.Printf("WARNING: Invalid audit cleanup schedule %q: %v. Cleanup disabled.", cfg.Audit.CleanupSchedule, err)
		} else {
			stack.scheduler = scheduler.NewAuditCleanupScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
			if err := stack.scheduler.Start(taskCtx); err != nil {
				log.Printf("WARNING: Failed to start audit cleanup scheduler: %v", err)
				stack.scheduler = nil
			}
		}
	}

	log.Printf("Audit trail enabled (database: %s, retention: %d days)", cfg.Audit.DatabasePath, cfg.Audit.RetentionDays)
	return stack
}

func (a *auditStack) shutdown(ctx context.Context) {
	if a.scheduler != nil {
		a.scheduler.Stop()
	}
	a.tasks.Stop(ctx)
	a.cancel()
	a.service.Wait()

	if err := a.tasks.Close(); err != nil {
		log.Printf("Error closing task client: %v", err)
	}
	if err := a.db.Close(); err != nil {
		log.Printf("Error closing audit database: %v", err)
	}
}

// Run wires the catalog, the optional audit trail and the HTTP router, then
// serves until the process is signalled.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bookshelf v%s", version)

	books := catalog.NewService()

	var readOnly *readonly.Middleware
	if cfg.ReadOnly.Enabled {
		log.Printf("Read-only mode enabled - write operations will be blocked")
		readOnly = readonly.NewMiddleware(true)
	}

	routerCfg := http_controllers.RouterConfig{
		Catalog:  books,
		ReadOnly: readOnly,
		Version:  version,
	}

	var stack *auditStack
	if cfg.Audit.Enabled {
		stack = startAudit(cfg)
		routerCfg.Database = stack.db
		routerCfg.AuditService = stack.service
	} else {
		log.Printf("Audit trail disabled")
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if stack != nil {
			stack.shutdown(ctx)
		}
		log.Printf("Catalog held %d books at shutdown", books.Len())
	}

	Serve(router, cfg, onShutdown)
}
