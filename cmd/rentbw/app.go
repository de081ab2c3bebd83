package main

import (
	"fmt"
	"log"

	"RentMarket/internal/config"
	"RentMarket/internal/executor"
	"RentMarket/internal/metrics"
	"RentMarket/internal/recorder"
	"RentMarket/internal/stake"
	"RentMarket/internal/store"
)

// app bundles everything a command needs to act on the market.
type app struct {
	cfg     *config.Config
	store   *store.Store
	rec     recorder.Recorder
	metrics *metrics.Metrics
	exec    *executor.Executor
}

func openApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	st, err := store.Open(cfg.Store.DBPath)
	if err != nil {
		return nil, err
	}

	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	var provider stake.Provider = stake.Static{Weight: cfg.Market.TotalStake}
	if cfg.Market.StakeFile != "" {
		provider = stake.File{Path: cfg.Market.StakeFile}
	}

	m := metrics.New()
	a := &app{
		cfg:     cfg,
		store:   st,
		rec:     rec,
		metrics: m,
		exec: executor.New(executor.Options{
			Store:      st,
			Stake:      provider,
			CoreSymbol: cfg.Market.CoreSymbol,
			Recorder:   rec,
			Metrics:    m,
		}),
	}
	return a, nil
}

func (a *app) Close() {
	if err := a.rec.Close(); err != nil {
		log.Printf("[ERROR] close recorder: %v", err)
	}
}
