package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"maw-server/internal/agent"
	"maw-server/internal/config"
	"maw-server/internal/domain"
	"maw-server/internal/engine"
	"maw-server/internal/infrastructure/journal"
	"maw-server/internal/infrastructure/storage"
	"maw-server/internal/monsters"
	"maw-server/internal/network"
	"maw-server/internal/server"
	"maw-server/internal/version"
	"maw-server/internal/worldfile"
	"maw-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("Invalid configuration: ", err)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	var worldPath, replayPath string
	flag.StringVar(&worldPath, "world", cfg.WorldFile, "Path to world YAML (empty for the built-in cave)")
	flag.StringVar(&replayPath, "replay", "", "Path to "+storage.FileExt+" replay file to simulate")
	flag.Parse()

	logger.Log.Info("Starting maw-server...")
	logger.Log.Info(version.String())

	def, err := worldfile.Load(worldPath)
	if err != nil {
		logger.Log.Fatal("Failed to load world: ", err)
	}
	registry := monsters.DefaultRegistry()

	// РЕЖИМ РЕПЛЕЯ
	if replayPath != "" {
		if err := runReplay(cfg, def, registry, replayPath); err != nil {
			logger.Log.Fatal("Replay failed: ", err)
		}
		return
	}

	if err := runServer(cfg, def, registry); err != nil {
		logger.Log.Fatal(err)
	}
	logger.Log.Info("Done.")
}

func runServer(cfg config.Config, def worldfile.Definition, registry *monsters.Registry) error {
	world, err := engine.BuildWorld(def, registry)
	if err != nil {
		return err
	}

	eng := engine.New(cfg.Engine(), world, registry)
	hub := network.NewBroadcaster()
	eng.AddSink(hub)

	// Журнал необязателен: без него /journal отвечает 404
	var reader server.JournalReader
	var jr *journal.Journal
	if cfg.JournalPath != "" {
		jr, err = journal.Open(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer jr.Close()
		eng.AddSink(jr)
		reader = jr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recorder *storage.Recorder
	var replays *storage.ReplayService
	ckCtx, ckCancel := context.WithCancel(ctx)
	defer ckCancel()
	ckDone := make(chan struct{})
	if cfg.ReplayDir != "" {
		replays, err = storage.NewReplayService(cfg.ReplayDir)
		if err != nil {
			return err
		}
		recorder = storage.NewRecorder(def.Name, time.Now(), cfg.ReplayMaxTicks)
		eng.SetRecorder(recorder)
		go func() {
			checkpointReplay(ckCtx, replays, recorder, cfg.ReplayCheckpoint)
			close(ckDone)
		}()
	}

	srv := server.New(eng, hub, reader, cfg.Port)
	go func() {
		if err := srv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Server error: ", err)
			stop()
		}
	}()

	for _, p := range def.Bots() {
		bot := agent.NewBot(domain.PlayerID(p.ID), p.Name, eng, hub)
		go bot.Run(ctx)
	}

	logger.Log.WithField("world", def.Name).Info("World is running")
	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Log.Error("Game loop error: ", err)
	}

	logger.Log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Warn("HTTP shutdown: ", err)
	}

	if recorder != nil {
		// Финальная запись только после остановки контрольных точек
		ckCancel()
		<-ckDone
		if _, err := replays.Save(recorder.Session()); err != nil {
			logger.Log.Error("Failed to save replay: ", err)
		}
	}
	return nil
}

// checkpointReplay периодически сбрасывает запись на диск, чтобы падение
// процесса стоило не больше одного интервала
func checkpointReplay(ctx context.Context, svc *storage.ReplayService, rec *storage.Recorder, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.Save(rec.Session()); err != nil {
				logger.Log.Warn("Replay checkpoint failed: ", err)
			}
		}
	}
}

// runReplay прогоняет записанную партию на свежем мире без сети
func runReplay(cfg config.Config, def worldfile.Definition, registry *monsters.Registry, path string) error {
	logger.Log.Info("💿 Mode: Replay Simulation")

	session, err := storage.LoadFile(path)
	if err != nil {
		return err
	}
	if session.WorldName != def.Name {
		logger.Log.Warnf("Replay was recorded in world %q, simulating in %q", session.WorldName, def.Name)
	}

	world, err := engine.BuildWorld(def, registry)
	if err != nil {
		return err
	}
	eng := engine.New(cfg.Engine(), world, registry)

	ctx := context.Background()
	for i, t := range session.Ticks {
		if !eng.Replay(ctx, t.Delta, t.Commands) {
			logger.Log.Infof("Replay stopped at tick %d of %d", i+1, len(session.Ticks))
			break
		}
	}

	world.Actors.Each(func(id domain.EntityID, a *domain.ActorComponent) bool {
		logger.For("replay").
			WithField("actor", world.NameOf(id)).
			WithField("health", a.HealthCurrent).
			Info("Final state")
		return true
	})
	return nil
}
