package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/spf13/cobra"

	"RentMarket/internal/scheduler"
)

func serveCmd() *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run scheduled maintenance and serve metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if os.Getenv("RUN_ON_START") == "true" {
				runOnStart = true
			}
			return serve(runOnStart)
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "tick once immediately on start")
	return cmd
}

func serve(runOnStart bool) error {
	log.Println("[INFO] rentbw starting...")
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sched := scheduler.NewScheduler(a.exec, a.cfg.Schedule.Caller, a.cfg.Schedule.MaxBatch)
	if err := sched.Register(a.cfg.Schedule.TickCron); err != nil {
		return err
	}

	if s, err := a.exec.State(); err == nil {
		a.metrics.Observe(&s, nil)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	g.Add(run.SignalHandler(ctx, os.Interrupt, syscall.SIGTERM))
	{
		done := make(chan struct{})
		g.Add(func() error {
			sched.Start()
			if runOnStart {
				log.Println("[INFO] RUN_ON_START enabled, ticking now")
				sched.RunNow()
			}
			<-done
			return nil
		}, func(error) {
			sched.Stop()
			close(done)
		})
	}
	if addr := a.cfg.Metrics.Addr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", a.metrics.Handler())
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Add(func() error {
			log.Printf("[INFO] metrics listening on %s", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}, func(error) {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("[ERROR] metrics shutdown: %v", err)
			}
		})
	}

	log.Printf("[INFO] rentbw is running on %s (tick %q, batch %d). Press Ctrl+C to stop.",
		a.store.Path(), a.cfg.Schedule.TickCron, a.cfg.Schedule.MaxBatch)
	err = g.Run()
	var sig run.SignalError
	if errors.As(err, &sig) {
		log.Printf("[INFO] %v, stopped", sig)
		return nil
	}
	return err
}
