package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"fstspell/internal/config"
	sc "fstspell/internal/corrector"
	"fstspell/internal/customdict"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	var dict sc.WordStore
	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		cd := customdict.New(client, cfg.Redis.Key)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := cd.Ping(ctx); err != nil {
			log.Printf("warning: redis %s unreachable: %v", cfg.Redis.Addr, err)
		}
		cancel()
		dict = cd
	}

	corrector, err := sc.NewSpellCorrector(cfg.Corrector(), cfg.Dictionary.Path, dict)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newMux(corrector),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	corrector.Terminate()
}
