package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/talkincode/gocrm/config"
	"github.com/talkincode/gocrm/internal/app"
	"github.com/talkincode/gocrm/internal/webserver"
	"go.uber.org/zap"
)

var (
	conffile = flag.String("c", "/etc/gocrm.yml", "config file")
	initdb   = flag.Bool("x", false, "drop and recreate the database schema, then exit")
	seed     = flag.Bool("s", false, "load the sample dataset, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*conffile)
	cfg.InitDirs()

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		zap.S().Fatalf("application init failed: %v", err)
	}
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		return
	}

	if *seed {
		if err := application.SeedData(); err != nil {
			zap.S().Fatalf("seeding failed: %v", err)
		}
		return
	}

	server := webserver.NewWebServer(cfg, application.Schema())
	go func() {
		if err := server.Start(); err != nil {
			zap.S().Fatalf("web server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.S().Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		zap.S().Errorf("shutdown error: %v", err)
	}
}
