package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hoverplot/hoverplot/internal/config"
	"github.com/hoverplot/hoverplot/internal/database"
	"github.com/hoverplot/hoverplot/internal/engine"
	"github.com/hoverplot/hoverplot/internal/server"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := config.NewConfig()
	dbs := database.NewDatabaseService(cfg)

	seed, err := dbs.GetLayout()
	if err != nil {
		log.Fatalf("could not get layout: %s", err)
	}

	eng := engine.NewEngine(cfg, seed, ctx)

	s := server.NewServer(cfg, dbs, eng, ctx)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.ListenAndServe()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	select {
	case err := <-errChan:
		log.Printf("could not serve: %v", err)
	case sig := <-sigChan:
		log.Printf("terminating: %v", sig)
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	_ = dbs.Close()
}
