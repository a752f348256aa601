package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/PabloGalante/fillyourcup/internal/adapters/http"
	"github.com/PabloGalante/fillyourcup/internal/adapters/llm"
	firestorestore "github.com/PabloGalante/fillyourcup/internal/adapters/storage/firestore"
	memstore "github.com/PabloGalante/fillyourcup/internal/adapters/storage/memory"
	sqlitestore "github.com/PabloGalante/fillyourcup/internal/adapters/storage/sqlite"
	"github.com/PabloGalante/fillyourcup/internal/app/autosave"
	"github.com/PabloGalante/fillyourcup/internal/app/celebration"
	"github.com/PabloGalante/fillyourcup/internal/app/coach"
	"github.com/PabloGalante/fillyourcup/internal/app/cup"
	"github.com/PabloGalante/fillyourcup/internal/config"
	"github.com/PabloGalante/fillyourcup/internal/domain"
	"github.com/PabloGalante/fillyourcup/internal/observability"
	"github.com/PabloGalante/fillyourcup/internal/seed"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		observability.Logger().Error("fillcup api stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	observability.Configure(os.Stdout, cfg.LogLevel)
	log := observability.WithFields("mode", cfg.Mode, "user_id", cfg.UserID)

	userID := domain.UserID(cfg.UserID)

	// Storage: memory, Firestore or SQLite
	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	log.Info("storage ready", "backend", cfg.StorageBackend)

	initial, err := initialState(ctx, cfg, store, userID, time.Now())
	if err != nil {
		return err
	}

	engine := cup.NewEngine(initial, cup.WithLocation(cfg.Location))

	dismisser := celebration.NewDismisser(engine, cfg.CelebrationDelay)
	defer dismisser.Stop()

	saver, err := startAutosave(cfg, store, engine, userID)
	if err != nil {
		return err
	}

	// LLM: mock or Vertex
	var llmClient domain.LLMClient
	if cfg.UseMockLLM {
		log.Info("using mock LLM client")
		llmClient = llm.NewMockLLM()
	} else {
		log.Info("using Vertex LLM client", "model", cfg.ModelName)
		llmClient, err = llm.NewVertexClient(ctx, cfg.GCPProjectID, cfg.GCPLocation, cfg.ModelName)
		if err != nil {
			return err
		}
	}
	coachSvc := coach.NewService(llmClient, userID)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpadapter.NewServer(engine, coachSvc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("fillcup api listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "error", err)
	}
	if saver == nil {
		return nil
	}
	return saver.Stop(shutdownCtx)
}

func openStore(ctx context.Context, cfg *config.Config) (domain.StateStore, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		fsStore, err := firestorestore.NewStore(ctx, cfg.GCPProjectID)
		if err != nil {
			return nil, nil, err
		}
		return fsStore, func() { _ = fsStore.Close() }, nil

	case config.StorageSQLite:
		sqlStore, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlStore, func() { _ = sqlStore.Close() }, nil

	default:
		return memstore.NewStateStore(), func() {}, nil
	}
}

// initialState restores the saved state for userID on top of the seed.
// A saved task list from an earlier day is replaced by the seed tasks.
func initialState(ctx context.Context, cfg *config.Config, store domain.StateStore, userID domain.UserID, now time.Time) (domain.State, error) {
	seeded, err := loadSeed(cfg)
	if err != nil {
		return domain.State{}, err
	}

	saved, err := store.LoadState(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrStateNotFound):
		return seeded, nil
	case err != nil:
		return domain.State{}, err
	}

	today := domain.DayOf(now.In(cfg.Location))
	observability.Logger().Info("restored saved state", "user_id", userID, "day", today, "last_completed", saved.Streak.LastCompleted)
	return cup.ResumeState(*saved, seeded.Tasks, today), nil
}

func loadSeed(cfg *config.Config) (domain.State, error) {
	if cfg.SeedPath != "" {
		return seed.Load(cfg.SeedPath)
	}
	return seed.Default()
}

// startAutosave schedules periodic saves. The memory backend is never read
// back, so it gets no scheduler and nil is returned.
func startAutosave(cfg *config.Config, store domain.StateStore, engine *cup.Engine, userID domain.UserID) (*autosave.Scheduler, error) {
	if cfg.StorageBackend == config.StorageMemory {
		return nil, nil
	}
	saver := autosave.NewScheduler(store, engine, userID, cfg.Location)
	if _, err := saver.Every(cfg.AutosaveEvery); err != nil {
		return nil, err
	}
	return saver, nil
}
