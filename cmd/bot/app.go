package main

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"CryptoBuddy/internal/catalog"
	"CryptoBuddy/internal/chat"
	"CryptoBuddy/internal/config"
	"CryptoBuddy/internal/logger"
	"CryptoBuddy/internal/recorder"
)

// app holds what every command shares once startup succeeded.
type app struct {
	cfg *config.Config
	log *zap.Logger
	cat *catalog.Catalog
	rec recorder.Recorder
	bot *chat.Bot
}

func resolveConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return config.DefaultPath
}

func (a *app) setup(configFlag string) error {
	cfg, err := config.Load(resolveConfigPath(configFlag))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log

	src := catalog.SourceFor(cfg.Catalog.Path)
	cat, err := catalog.Open(src)
	if err != nil {
		log.Error("catalog unavailable", zap.String("source", src.Name()), zap.Error(err))
		return err
	}
	a.cat = cat
	log.Info("catalog loaded", zap.String("source", src.Name()), zap.Int("assets", cat.Len()))

	a.rec = a.openRecorder()

	bot, err := chat.New(cat, nil, a.rec, log)
	if err != nil {
		return fmt.Errorf("init bot: %w", err)
	}
	a.bot = bot
	return nil
}

// openRecorder falls back to the no-op recorder when SQLite is unset or unusable.
func (a *app) openRecorder() recorder.Recorder {
	path := a.cfg.Database.SQLitePath
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			a.log.Warn("create database directory failed, using noop recorder", zap.Error(err))
			return recorder.NewNoopRecorder()
		}
	}
	sr, err := recorder.NewSQLiteRecorder(path, a.log)
	if err != nil {
		a.log.Warn("init sqlite recorder failed, using noop recorder", zap.Error(err))
		return recorder.NewNoopRecorder()
	}
	return sr
}

func (a *app) close() {
	if a.rec != nil {
		if err := a.rec.Close(); err != nil {
			a.log.Error("close recorder", zap.Error(err))
		}
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
